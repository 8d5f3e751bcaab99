package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionDocument is file metadata attached to a transaction, such as a
// harvest permit or a bill of sale. Only metadata is tracked; storage of the
// file itself is out of scope.
type TransactionDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transactionId"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Kind          string    `gorm:"type:text" json:"kind,omitempty"`
	URL           string    `gorm:"type:text" json:"url,omitempty"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`
}

func (TransactionDocument) TableName() string { return "transaction_documents" }

func (d *TransactionDocument) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
