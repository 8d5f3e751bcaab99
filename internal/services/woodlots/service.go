// Package woodlots is the domain repository for timber inventory lots.
package woodlots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"timberd/internal/apperr"
	"timberd/internal/models"
	"timberd/internal/repo"
)

var detailPreloads = []string{"Species", "Creator"}

// Service exposes inventory operations over the generic repository.
type Service struct {
	repo *repo.Repository[models.WoodLot]
	log  zerolog.Logger
}

// New returns a wood lot service bound to database.
func New(database *gorm.DB, log zerolog.Logger) *Service {
	return &Service{
		repo: repo.New[models.WoodLot](database, "wood lot"),
		log:  log.With().Str("component", "woodlots").Logger(),
	}
}

// CreateParams carries the fields accepted when recording a lot.
type CreateParams struct {
	SpeciesID   *uuid.UUID
	Origin      string
	Quantity    float64
	Unit        string
	Quality     string
	HarvestDate *time.Time
	CreatedByID *uuid.UUID
}

// UpdateParams carries the optional fields accepted on lot updates.
type UpdateParams struct {
	SpeciesID   *uuid.UUID
	Origin      *string
	Quantity    *float64
	Unit        *string
	Quality     *string
	HarvestDate *time.Time
}

// Filter enumerates the predicates accepted when listing lots. Every field
// is optional and independently applied; bounds are inclusive.
type Filter struct {
	SpeciesID     *uuid.UUID
	Quality       string
	Origin        string
	CreatedByID   *uuid.UUID
	HarvestedFrom *time.Time
	HarvestedTo   *time.Time
	MinQuantity   *float64
	MaxQuantity   *float64
}

func (f Filter) query() repo.Query {
	q := repo.Query{Conds: map[string]any{}, Preloads: detailPreloads}
	if f.SpeciesID != nil {
		q.Conds["species_id"] = *f.SpeciesID
	}
	if f.Quality != "" {
		q.Conds["quality"] = f.Quality
	}
	if f.CreatedByID != nil {
		q.Conds["created_by_id"] = *f.CreatedByID
	}
	if f.Origin != "" {
		q.Matches = append(q.Matches, repo.Match{Column: "origin", Term: f.Origin})
	}
	if f.MinQuantity != nil || f.MaxQuantity != nil {
		rg := repo.Range{Column: "quantity"}
		if f.MinQuantity != nil {
			rg.Min = *f.MinQuantity
		}
		if f.MaxQuantity != nil {
			rg.Max = *f.MaxQuantity
		}
		q.Ranges = append(q.Ranges, rg)
	}
	if f.HarvestedFrom != nil || f.HarvestedTo != nil {
		rg := repo.Range{Column: "harvest_date"}
		if f.HarvestedFrom != nil {
			rg.Min = *f.HarvestedFrom
		}
		if f.HarvestedTo != nil {
			rg.Max = *f.HarvestedTo
		}
		q.Ranges = append(q.Ranges, rg)
	}
	return q
}

// List returns lots matching filter, with species and creator resolved on
// every call.
func (s *Service) List(ctx context.Context, filter Filter) ([]models.WoodLot, error) {
	if filter.Quality != "" && !models.ValidQuality(filter.Quality) {
		return nil, apperr.Validation("unknown quality grade %q", filter.Quality)
	}
	return s.repo.FindAll(ctx, filter.query())
}

// GetDetails returns one lot with its species and creator resolved, or nil.
func (s *Service) GetDetails(ctx context.Context, id uuid.UUID) (*models.WoodLot, error) {
	return s.repo.FindByID(ctx, id, repo.Query{Preloads: detailPreloads})
}

// FindBySpecies returns the lots of one species.
func (s *Service) FindBySpecies(ctx context.Context, speciesID uuid.UUID) ([]models.WoodLot, error) {
	return s.List(ctx, Filter{SpeciesID: &speciesID})
}

// FindByCreator returns the lots recorded by one user.
func (s *Service) FindByCreator(ctx context.Context, createdByID uuid.UUID) ([]models.WoodLot, error) {
	return s.List(ctx, Filter{CreatedByID: &createdByID})
}

// Create validates and records a new lot.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.WoodLot, error) {
	if p.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be greater than zero")
	}
	if p.Quality != "" && !models.ValidQuality(p.Quality) {
		return nil, apperr.Validation("unknown quality grade %q", p.Quality)
	}

	lot := models.WoodLot{
		SpeciesID:   p.SpeciesID,
		Origin:      p.Origin,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		Quality:     p.Quality,
		HarvestDate: p.HarvestDate,
		CreatedByID: p.CreatedByID,
	}
	if err := s.repo.Create(ctx, &lot); err != nil {
		return nil, err
	}

	s.log.Info().Str("lot_id", lot.ID.String()).Float64("quantity", lot.Quantity).Msg("wood lot recorded")
	return &lot, nil
}

// Update applies partial changes to a lot.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.WoodLot, error) {
	fields := map[string]any{}
	if p.SpeciesID != nil {
		fields["species_id"] = *p.SpeciesID
	}
	if p.Origin != nil {
		fields["origin"] = *p.Origin
	}
	if p.Quantity != nil {
		if *p.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be greater than zero")
		}
		fields["quantity"] = *p.Quantity
	}
	if p.Unit != nil {
		fields["unit"] = *p.Unit
	}
	if p.Quality != nil {
		if *p.Quality != "" && !models.ValidQuality(*p.Quality) {
			return nil, apperr.Validation("unknown quality grade %q", *p.Quality)
		}
		fields["quality"] = *p.Quality
	}
	if p.HarvestDate != nil {
		fields["harvest_date"] = *p.HarvestDate
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes a lot.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
