package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quality grades recognised for a wood lot.
const (
	QualityHigh   = "High"
	QualityMedium = "Medium"
	QualityLow    = "Low"
)

// ValidQuality reports whether q is a recognised quality grade.
func ValidQuality(q string) bool {
	switch q {
	case QualityHigh, QualityMedium, QualityLow:
		return true
	}
	return false
}

// DefaultUnit is the quantity unit applied when none is given.
const DefaultUnit = "m³"

// WoodLot is an inventory lot of harvested timber.
type WoodLot struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SpeciesID   *uuid.UUID `gorm:"type:uuid;index" json:"speciesId,omitempty"`
	Origin      string     `gorm:"type:text" json:"origin,omitempty"`
	Quantity    float64    `gorm:"type:double precision;not null" json:"quantity"`
	Unit        string     `gorm:"type:text;not null" json:"unit"`
	Quality     string     `gorm:"type:text" json:"quality,omitempty"`
	HarvestDate *time.Time `gorm:"type:timestamptz;index" json:"harvestDate,omitempty"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;index" json:"createdById,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`

	Species *WoodSpecies `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:SpeciesID;references:ID" json:"species,omitempty"`
	Creator *User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:CreatedByID;references:ID" json:"creator,omitempty"`
}

func (WoodLot) TableName() string { return "wood_lots" }

func (l *WoodLot) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Unit == "" {
		l.Unit = DefaultUnit
	}
	return nil
}
