package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Duty is a dated obligation materialized from a Timeslot template.
//
// Ownership states: owned (user set, free=false, request_user=nil),
// free (free=true, open to any eligible grab), pending transfer
// (request_user set, current owner kept until the target grabs).
type Duty struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TimeslotID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_duties_timeslot_date" json:"timeslot_id"`
	Date          time.Time  `gorm:"type:date;not null;uniqueIndex:idx_duties_timeslot_date" json:"date"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Free          bool       `gorm:"not null;default:false" json:"free"`
	RequestUserID *uuid.UUID `gorm:"type:uuid" json:"request_user_id"`

	Timeslot    Timeslot `gorm:"foreignKey:TimeslotID" json:"timeslot,omitempty"`
	User        *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RequestUser *User    `gorm:"foreignKey:RequestUserID" json:"request_user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Duty) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// StartAt is the wall-clock start of the duty. Requires Timeslot.TimeRange
// to be preloaded.
func (d *Duty) StartAt() time.Time {
	return d.Timeslot.TimeRange.StartOn(d.Date)
}
