package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission names a single capability grantable through roles.
type Permission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`
}

func (Permission) TableName() string { return "permissions" }

func (p *Permission) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RolePermission ties a role to a permission.
type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;autoCreateTime"`

	Role       Role       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoleID;references:ID"`
	Permission Permission `gorm:"constraint:OnDelete:CASCADE;foreignKey:PermissionID;references:ID"`
}

func (RolePermission) TableName() string { return "role_permissions" }
