package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address holds the administrative-division address attached to a user.
type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Province  string    `gorm:"type:text" json:"province,omitempty"`
	District  string    `gorm:"type:text" json:"district,omitempty"`
	Commune   string    `gorm:"type:text" json:"commune,omitempty"`
	Details   string    `gorm:"type:text" json:"details,omitempty"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`
}

func (Address) TableName() string { return "addresses" }

func (a *Address) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
