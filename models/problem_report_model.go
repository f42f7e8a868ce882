package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProblemReport struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Details          string     `gorm:"type:text;not null" json:"details"`
	Status           string     `gorm:"size:20;not null;default:'open'" json:"status"`
	ReporterUserID   uuid.UUID  `gorm:"type:uuid;not null" json:"reporter_user_id"`
	LastUpdateUserID *uuid.UUID `gorm:"type:uuid" json:"last_update_user_id"`

	ReporterUser   User  `gorm:"foreignKey:ReporterUserID" json:"reporter_user,omitempty"`
	LastUpdateUser *User `gorm:"foreignKey:LastUpdateUserID" json:"last_update_user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (pr *ProblemReport) BeforeCreate(tx *gorm.DB) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return nil
}
