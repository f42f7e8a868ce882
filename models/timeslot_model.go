package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timeslot is the weekly template: on this weekday, at this place, during
// this time range, this user covers the duty by default.
type Timeslot struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PlaceID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_timeslots_place_day_range" json:"place_id"`
	Weekday       time.Weekday `gorm:"not null;uniqueIndex:idx_timeslots_place_day_range" json:"weekday"`
	TimeRangeID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_timeslots_place_day_range" json:"time_range_id"`
	DefaultUserID *uuid.UUID   `gorm:"type:uuid" json:"default_user_id"`
	MCOnly        bool         `gorm:"not null;default:false" json:"mc_only"`

	Place       Place     `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	TimeRange   TimeRange `gorm:"foreignKey:TimeRangeID" json:"time_range,omitempty"`
	DefaultUser *User     `gorm:"foreignKey:DefaultUserID" json:"default_user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ts *Timeslot) BeforeCreate(tx *gorm.DB) error {
	if ts.ID == uuid.Nil {
		ts.ID = uuid.New()
	}
	return nil
}
