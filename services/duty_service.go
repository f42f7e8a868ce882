package services

import (
	"errors"
	"sort"
	"time"

	"github.com/anjiri1684/duty_roster/models"
	"github.com/anjiri1684/duty_roster/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidBatch = errors.New("no duties selected")
	ErrNotGrabable  = errors.New("at least one duty cannot be grabbed")
	ErrNotOwner     = errors.New("at least one duty is not owned by you")
	ErrDropTooLate  = errors.New("duty starts too soon to be dropped")
	ErrInvalidRange = errors.New("end date is before start date")
)

// GenerateDuties materializes every Timeslot template into a Duty for each
// matching date in [startDate, endDate]. Existing rows are never touched,
// so re-running over an overlapping range is safe. Returns the number of
// duties created.
func GenerateDuties(db *gorm.DB, startDate, endDate time.Time) (int, error) {
	startDate = utils.DateOf(startDate)
	endDate = utils.DateOf(endDate)
	if endDate.Before(startDate) {
		return 0, ErrInvalidRange
	}

	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
			var templates []models.Timeslot
			if err := tx.Where("weekday = ?", date.Weekday()).Find(&templates).Error; err != nil {
				return err
			}
			if len(templates) == 0 {
				continue
			}

			var existing []uuid.UUID
			if err := tx.Model(&models.Duty{}).Where("date = ?", date).
				Pluck("timeslot_id", &existing).Error; err != nil {
				return err
			}
			have := make(map[uuid.UUID]bool, len(existing))
			for _, id := range existing {
				have[id] = true
			}

			for _, ts := range templates {
				if have[ts.ID] {
					continue
				}
				duty := models.Duty{
					TimeslotID: ts.ID,
					Date:       date,
					UserID:     ts.DefaultUserID,
					Free:       false,
				}
				// The unique index on (timeslot_id, date) is the backstop
				// against a concurrent generation run.
				res := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "timeslot_id"}, {Name: "date"}},
					DoNothing: true,
				}).Create(&duty)
				if res.Error != nil {
					return res.Error
				}
				created += int(res.RowsAffected)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// GrabDuties takes ownership of every duty in the batch for the actor.
// The batch is all-or-nothing: one ineligible duty rejects the lot with
// no mutation. Each UPDATE re-asserts the eligibility predicate so two
// racing grabs on the same free duty produce exactly one owner.
func GrabDuties(db *gorm.DB, actorID uuid.UUID, dutyIDs []uuid.UUID) ([]models.Duty, error) {
	ids := dedupeIDs(dutyIDs)
	if len(ids) == 0 {
		return nil, ErrInvalidBatch
	}

	var grabbed []models.Duty
	err := db.Transaction(func(tx *gorm.DB) error {
		var actor models.User
		if err := tx.First(&actor, "id = ?", actorID).Error; err != nil {
			return err
		}

		var duties []models.Duty
		if err := tx.Preload("Timeslot").Where("id IN ?", ids).Find(&duties).Error; err != nil {
			return err
		}
		if len(duties) != len(ids) {
			return gorm.ErrRecordNotFound
		}

		for _, d := range duties {
			if !grabableBy(&d, actorID) {
				return ErrNotGrabable
			}
			if d.Timeslot.MCOnly && !actor.MC {
				return ErrNotGrabable
			}
		}

		for _, d := range duties {
			res := tx.Model(&models.Duty{}).
				Where("id = ? AND (free = ? OR request_user_id = ? OR (request_user_id IS NOT NULL AND user_id = ?))",
					d.ID, true, actorID, actorID).
				Updates(map[string]interface{}{
					"user_id":         actorID,
					"free":            false,
					"request_user_id": nil,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Someone else won the race between our read and this write.
				return ErrNotGrabable
			}
		}

		return tx.Preload("Timeslot.TimeRange").Preload("Timeslot.Place").
			Where("id IN ?", ids).Find(&grabbed).Error
	})
	if err != nil {
		return nil, err
	}
	return grabbed, nil
}

// DropDuties releases a batch of duties the actor owns. With targetUserID
// set to uuid.Nil the duties become free for anyone; otherwise they stay
// with the actor and a transfer to the target is proposed. A duty whose
// start is within leadWindow of now cannot be dropped. Returns the
// affected duties (ordered by start) and the user ids to notify.
func DropDuties(db *gorm.DB, actorID uuid.UUID, dutyIDs []uuid.UUID, targetUserID uuid.UUID, now time.Time, leadWindow time.Duration) ([]models.Duty, []uuid.UUID, error) {
	ids := dedupeIDs(dutyIDs)
	if len(ids) == 0 {
		return nil, nil, ErrInvalidBatch
	}

	var dropped []models.Duty
	var recipients []uuid.UUID
	err := db.Transaction(func(tx *gorm.DB) error {
		if targetUserID != uuid.Nil {
			var target models.User
			if err := tx.First(&target, "id = ?", targetUserID).Error; err != nil {
				return err
			}
		}

		var duties []models.Duty
		if err := tx.Preload("Timeslot.TimeRange").Preload("Timeslot.Place").
			Where("id IN ?", ids).Find(&duties).Error; err != nil {
			return err
		}
		if len(duties) != len(ids) {
			return gorm.ErrRecordNotFound
		}

		for _, d := range duties {
			if d.UserID == nil || *d.UserID != actorID {
				return ErrNotOwner
			}
			if d.StartAt().Sub(now) < leadWindow {
				return ErrDropTooLate
			}
		}

		for _, d := range duties {
			updates := map[string]interface{}{"request_user_id": targetUserID}
			if targetUserID == uuid.Nil {
				updates = map[string]interface{}{
					"free":            true,
					"user_id":         nil,
					"request_user_id": nil,
				}
			}
			res := tx.Model(&models.Duty{}).
				Where("id = ? AND user_id = ?", d.ID, actorID).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotOwner
			}
		}

		if err := tx.Preload("Timeslot.TimeRange").Preload("Timeslot.Place").
			Where("id IN ?", ids).Find(&dropped).Error; err != nil {
			return err
		}
		sortByStart(dropped)

		if targetUserID == uuid.Nil {
			return tx.Model(&models.User{}).Pluck("id", &recipients).Error
		}
		recipients = []uuid.UUID{targetUserID}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return dropped, recipients, nil
}

// GrabableDuties lists upcoming duties the actor could take over: free
// ones, transfers proposed to them, and their own pending transfers
// (which they may reclaim).
func GrabableDuties(db *gorm.DB, actorID uuid.UUID, now time.Time) ([]models.Duty, error) {
	var candidates []models.Duty
	err := db.Preload("Timeslot.TimeRange").Preload("Timeslot.Place").
		Preload("User").Preload("RequestUser").
		Where("free = ? OR request_user_id = ? OR (request_user_id IS NOT NULL AND user_id = ?)",
			true, actorID, actorID).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	duties := make([]models.Duty, 0, len(candidates))
	for _, d := range candidates {
		if d.StartAt().After(now) {
			duties = append(duties, d)
		}
	}
	sortByStart(duties)
	return duties, nil
}

func grabableBy(d *models.Duty, actorID uuid.UUID) bool {
	if d.Free {
		return true
	}
	if d.RequestUserID != nil && *d.RequestUserID == actorID {
		return true
	}
	// A pending transfer the actor initiated can be reclaimed.
	return d.RequestUserID != nil && d.UserID != nil && *d.UserID == actorID
}

func sortByStart(duties []models.Duty) {
	sort.Slice(duties, func(i, j int) bool {
		return duties[i].StartAt().Before(duties[j].StartAt())
	})
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
