package services

import (
	"time"

	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The roster table is laid out in half-hour columns spanning the
// time-range catalog. Consecutive duties held by the same user merge
// into one cell; uncovered stretches render as unnamed filler cells.

const rosterColumnMinutes = 30

type RosterCell struct {
	Name    string      `json:"name"`
	Colspan int         `json:"colspan"`
	Free    bool        `json:"free,omitempty"`
	DutyIDs []uuid.UUID `json:"duty_ids,omitempty"`
}

type RosterRow struct {
	Date      time.Time    `json:"date"`
	PlaceID   uuid.UUID    `json:"place_id"`
	PlaceName string       `json:"place_name"`
	Cells     []RosterCell `json:"cells"`
}

// WeekRoster builds the seven-day roster starting at startDate, one row
// per (day, place).
func WeekRoster(db *gorm.DB, startDate time.Time) ([]RosterRow, error) {
	startDate = utils.DateOf(startDate)

	var ranges []models.TimeRange
	if err := db.Order("start_time").Find(&ranges).Error; err != nil {
		return nil, err
	}
	var places []models.Place
	if err := db.Order("name").Find(&places).Error; err != nil {
		return nil, err
	}

	rows := make([]RosterRow, 0, 7*len(places))
	for i := 0; i < 7; i++ {
		date := startDate.AddDate(0, 0, i)
		for _, place := range places {
			cells, err := dayPlaceCells(db, date, place.ID, ranges)
			if err != nil {
				return nil, err
			}
			rows = append(rows, RosterRow{
				Date:      date,
				PlaceID:   place.ID,
				PlaceName: place.Name,
				Cells:     cells,
			})
		}
	}
	return rows, nil
}

func dayPlaceCells(db *gorm.DB, date time.Time, placeID uuid.UUID, ranges []models.TimeRange) ([]RosterCell, error) {
	if len(ranges) == 0 {
		return []RosterCell{}, nil
	}
	dayStart := ranges[0].StartTime
	dayEnd := ranges[len(ranges)-1].EndTime

	var duties []models.Duty
	err := db.Preload("Timeslot.TimeRange").Preload("User").
		Joins("JOIN timeslots ON timeslots.id = duties.timeslot_id").
		Joins("JOIN time_ranges ON time_ranges.id = timeslots.time_range_id").
		Where("duties.date = ? AND timeslots.place_id = ?", date, placeID).
		Order("time_ranges.start_time").
		Find(&duties).Error
	if err != nil {
		return nil, err
	}

	if len(duties) == 0 {
		return []RosterCell{{Colspan: calcColspan(dayStart, dayEnd)}}, nil
	}

	cells := []RosterCell{}
	cursor := dayStart
	var open *RosterCell

	flush := func() {
		if open != nil {
			cells = append(cells, *open)
			open = nil
		}
	}

	for _, d := range duties {
		tr := d.Timeslot.TimeRange
		if tr.StartTime > cursor {
			flush()
			cells = append(cells, RosterCell{Colspan: calcColspan(cursor, tr.StartTime)})
		}

		name := ""
		if d.User != nil {
			name = d.User.Email
		}
		if open != nil && open.Name == name && open.Free == d.Free {
			open.Colspan += calcColspan(tr.StartTime, tr.EndTime)
			open.DutyIDs = append(open.DutyIDs, d.ID)
		} else {
			flush()
			open = &RosterCell{
				Name:    name,
				Colspan: calcColspan(tr.StartTime, tr.EndTime),
				Free:    d.Free,
				DutyIDs: []uuid.UUID{d.ID},
			}
		}
		cursor = tr.EndTime
	}
	flush()

	if cursor < dayEnd {
		cells = append(cells, RosterCell{Colspan: calcColspan(cursor, dayEnd)})
	}
	return cells, nil
}

func calcColspan(start, end string) int {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Minutes()) / rosterColumnMinutes
}
