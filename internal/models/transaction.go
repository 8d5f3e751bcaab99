package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction status values. Completed and Cancelled are terminal: a
// transaction in either state rejects all further edits.
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is a recognised transaction status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether s permits no further edits.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Transaction records a buy/sell agreement over a wood lot.
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WoodLotID       *uuid.UUID `gorm:"type:uuid;index" json:"woodLotId,omitempty"`
	BuyerID         *uuid.UUID `gorm:"type:uuid;index" json:"buyerId,omitempty"`
	SellerID        *uuid.UUID `gorm:"type:uuid;index" json:"sellerId,omitempty"`
	Price           *float64   `gorm:"type:numeric(15,2)" json:"price,omitempty"`
	TransactionDate *time.Time `gorm:"type:timestamptz;index" json:"transactionDate,omitempty"`
	Status          string     `gorm:"type:text;not null;index" json:"status"`
	CreatedByID     *uuid.UUID `gorm:"type:uuid;index" json:"createdById,omitempty"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`

	WoodLot *WoodLot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:WoodLotID;references:ID" json:"woodLot,omitempty"`
	Buyer   *User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:BuyerID;references:ID" json:"buyer,omitempty"`
	Seller  *User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:SellerID;references:ID" json:"seller,omitempty"`
	Creator *User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:CreatedByID;references:ID" json:"creator,omitempty"`

	Documents []TransactionDocument `gorm:"constraint:OnDelete:CASCADE;foreignKey:TransactionID" json:"documents,omitempty"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return nil
}
