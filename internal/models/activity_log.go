package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actions recorded in the activity log.
const (
	ActionAdd     = "add"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionSubmit  = "submit"
	ActionView    = "view"
)

// ActivityLog captures notable API events for audit purposes.
type ActivityLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID        `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action     string            `gorm:"type:text;not null" json:"action"`
	EntityType string            `gorm:"type:text;not null" json:"entityType"`
	EntityID   *string           `gorm:"type:text" json:"entityId,omitempty"`
	Message    string            `gorm:"type:text" json:"message,omitempty"`
	IPAddress  string            `gorm:"type:text" json:"ipAddress,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"-"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (l *ActivityLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
