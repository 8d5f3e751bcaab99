package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conservation status values recognised for a wood species.
const (
	ConservationCommon     = "Common"
	ConservationEndangered = "Endangered"
	ConservationRare       = "Rare"
	ConservationCITES      = "CITES I/II"
)

// ValidConservationStatus reports whether s is a recognised conservation status.
func ValidConservationStatus(s string) bool {
	switch s {
	case ConservationCommon, ConservationEndangered, ConservationRare, ConservationCITES:
		return true
	}
	return false
}

// WoodSpecies is a catalog entry identified by its scientific name.
type WoodSpecies struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ScientificName     string    `gorm:"type:text;uniqueIndex;not null" json:"scientificName"`
	CommonName         string    `gorm:"type:text" json:"commonName,omitempty"`
	ConservationStatus string    `gorm:"type:text;not null" json:"conservationStatus"`
	CreatedAt          time.Time `gorm:"type:timestamptz;not null;autoCreateTime" json:"createdAt"`
}

func (WoodSpecies) TableName() string { return "wood_species" }

func (s *WoodSpecies) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.ConservationStatus == "" {
		s.ConservationStatus = ConservationCommon
	}
	return nil
}
