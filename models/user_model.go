package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var Cells = []string{"marketing", "presidential", "publicity", "technical", "training", "welfare"}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"size:255;unique" json:"username"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`

	Cell         string `gorm:"size:20;not null" json:"cell"`
	MC           bool   `gorm:"not null;default:false" json:"mc"`
	ReceiveEmail bool   `gorm:"not null;default:true" json:"receive_email"`

	MatricNum  *string `gorm:"size:20" json:"matric_num"`
	ContactNum *string `gorm:"size:20" json:"contact_num"`
	IsActive   bool    `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
