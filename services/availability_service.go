package services

import (
	"time"

	"github.com/anjiri1684/duty_roster/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityGrid returns the user's full weekly grid, one row per
// weekday in time-range order. Missing cells are created unticked on
// first access so the web grid always has a row to update.
func AvailabilityGrid(db *gorm.DB, userID uuid.UUID) ([][]models.Availability, error) {
	var ranges []models.TimeRange
	if err := db.Order("start_time").Find(&ranges).Error; err != nil {
		return nil, err
	}

	grid := make([][]models.Availability, 7)
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Availability
		if err := tx.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
			return err
		}
		byCell := make(map[[2]interface{}]models.Availability, len(existing))
		for _, a := range existing {
			byCell[[2]interface{}{a.Weekday, a.TimeRangeID}] = a
		}

		for day := time.Sunday; day <= time.Saturday; day++ {
			row := make([]models.Availability, 0, len(ranges))
			for _, tr := range ranges {
				cell, ok := byCell[[2]interface{}{day, tr.ID}]
				if !ok {
					cell = models.Availability{
						UserID:      userID,
						Weekday:     day,
						TimeRangeID: tr.ID,
					}
					res := tx.Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "user_id"}, {Name: "weekday"}, {Name: "time_range_id"}},
						DoNothing: true,
					}).Create(&cell)
					if res.Error != nil {
						return res.Error
					}
				}
				cell.TimeRange = tr
				row = append(row, cell)
			}
			grid[int(day)] = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// SetAvailabilities replaces the user's ticks: cells named in tickedIDs
// become available, every other cell of theirs becomes unavailable.
func SetAvailabilities(db *gorm.DB, userID uuid.UUID, tickedIDs []uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Availability{}).
			Where("user_id = ?", userID).
			Update("status", false).Error; err != nil {
			return err
		}
		if len(tickedIDs) == 0 {
			return nil
		}
		return tx.Model(&models.Availability{}).
			Where("user_id = ? AND id IN ?", userID, tickedIDs).
			Update("status", true).Error
	})
}

// AvailableUserIDs maps each (weekday, time range) cell to the users who
// declared themselves available for it. Used by the admin template editor.
func AvailableUserIDs(db *gorm.DB) (map[time.Weekday]map[uuid.UUID][]uuid.UUID, error) {
	var ticked []models.Availability
	if err := db.Where("status = ?", true).Find(&ticked).Error; err != nil {
		return nil, err
	}
	out := make(map[time.Weekday]map[uuid.UUID][]uuid.UUID)
	for _, a := range ticked {
		if out[a.Weekday] == nil {
			out[a.Weekday] = make(map[uuid.UUID][]uuid.UUID)
		}
		out[a.Weekday][a.TimeRangeID] = append(out[a.Weekday][a.TimeRangeID], a.UserID)
	}
	return out, nil
}
