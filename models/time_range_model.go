package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeRange is a shared half-open time-of-day interval, stored as "HH:MM".
type TimeRange struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (tr *TimeRange) BeforeCreate(tx *gorm.DB) error {
	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}
	return nil
}

// StartOn anchors the range's start time to the given calendar date.
func (tr *TimeRange) StartOn(date time.Time) time.Time {
	return atClock(date, tr.StartTime)
}

// EndOn anchors the range's end time to the given calendar date.
func (tr *TimeRange) EndOn(date time.Time) time.Time {
	return atClock(date, tr.EndTime)
}

func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
