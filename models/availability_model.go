package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is a user's self-declared willingness to cover a weekly
// (weekday, time range) cell. Rows exist for every cell of the grid once
// the user has opened their availability page; Status carries the tick.
type Availability struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_availabilities_user_day_range" json:"user_id"`
	Weekday     time.Weekday `gorm:"not null;uniqueIndex:idx_availabilities_user_day_range" json:"weekday"`
	TimeRangeID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_availabilities_user_day_range" json:"time_range_id"`
	Status      bool         `gorm:"not null;default:false" json:"status"`

	User      User      `gorm:"foreignKey:UserID" json:"-"`
	TimeRange TimeRange `gorm:"foreignKey:TimeRangeID" json:"time_range,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
