package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the timber record-keeping platform.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	// Username is optional; absent usernames are stored as NULL so they never
	// collide on the unique index.
	Username     *string    `gorm:"type:text;uniqueIndex" json:"username,omitempty"`
	Email        string     `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	FullName     string     `gorm:"type:text" json:"fullName"`
	Phone        string     `gorm:"type:text" json:"phone,omitempty"`
	Active       bool       `gorm:"not null" json:"active"`
	RoleID       *uuid.UUID `gorm:"type:uuid;index" json:"roleId,omitempty"`
	AddressID    *uuid.UUID `gorm:"type:uuid" json:"addressId,omitempty"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime" json:"updatedAt"`

	Role    *Role    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:RoleID;references:ID" json:"role,omitempty"`
	Address *Address `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:AddressID;references:ID" json:"address,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
