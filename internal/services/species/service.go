// Package species is the domain repository for the wood species catalog.
package species

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"timberd/internal/apperr"
	"timberd/internal/models"
	"timberd/internal/repo"
)

// Service exposes catalog operations over the generic repository.
type Service struct {
	repo *repo.Repository[models.WoodSpecies]
	log  zerolog.Logger
}

// New returns a species service bound to database.
func New(database *gorm.DB, log zerolog.Logger) *Service {
	return &Service{
		repo: repo.New[models.WoodSpecies](database, "wood species"),
		log:  log.With().Str("component", "species").Logger(),
	}
}

// CreateParams carries the fields accepted when cataloguing a species.
type CreateParams struct {
	ScientificName     string
	CommonName         string
	ConservationStatus string
}

// UpdateParams carries the optional fields accepted on catalog updates.
type UpdateParams struct {
	ScientificName     *string
	CommonName         *string
	ConservationStatus *string
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]models.WoodSpecies, error) {
	return s.repo.FindAll(ctx, repo.Query{Order: "scientific_name"})
}

// Get returns one catalog entry, or nil when absent.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.WoodSpecies, error) {
	return s.repo.FindByID(ctx, id, repo.Query{})
}

// FindByScientificName returns the entry with exactly that scientific name,
// or nil.
func (s *Service) FindByScientificName(ctx context.Context, name string) (*models.WoodSpecies, error) {
	return s.repo.FindOne(ctx, repo.Query{Conds: map[string]any{"scientific_name": name}})
}

// SearchByName returns entries whose scientific or common name contains
// query.
func (s *Service) SearchByName(ctx context.Context, query string) ([]models.WoodSpecies, error) {
	return s.repo.FindAll(ctx, repo.Query{AnyMatch: []repo.Match{
		{Column: "scientific_name", Term: query},
		{Column: "common_name", Term: query},
	}})
}

// FindByConservationStatus returns entries with the given status.
func (s *Service) FindByConservationStatus(ctx context.Context, status string) ([]models.WoodSpecies, error) {
	if !models.ValidConservationStatus(status) {
		return nil, apperr.Validation("unknown conservation status %q", status)
	}
	return s.repo.FindAll(ctx, repo.Query{Conds: map[string]any{"conservation_status": status}})
}

// Create catalogues a new species. The scientific name is pre-checked for
// uniqueness; a concurrent duplicate is still caught by the store's unique
// constraint and surfaces as a PersistenceError.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.WoodSpecies, error) {
	if p.ScientificName == "" {
		return nil, apperr.Validation("scientific name is required")
	}
	if p.ConservationStatus != "" && !models.ValidConservationStatus(p.ConservationStatus) {
		return nil, apperr.Validation("unknown conservation status %q", p.ConservationStatus)
	}

	existing, err := s.FindByScientificName(ctx, p.ScientificName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("a species with this scientific name already exists")
	}

	entry := models.WoodSpecies{
		ScientificName:     p.ScientificName,
		CommonName:         p.CommonName,
		ConservationStatus: p.ConservationStatus,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}

	s.log.Info().Str("species_id", entry.ID.String()).Str("scientific_name", entry.ScientificName).Msg("species catalogued")
	return &entry, nil
}

// Update applies partial changes to a catalog entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.WoodSpecies, error) {
	fields := map[string]any{}
	if p.ScientificName != nil {
		if *p.ScientificName == "" {
			return nil, apperr.Validation("scientific name is required")
		}
		existing, err := s.FindByScientificName(ctx, *p.ScientificName)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Validation("a species with this scientific name already exists")
		}
		fields["scientific_name"] = *p.ScientificName
	}
	if p.CommonName != nil {
		fields["common_name"] = *p.CommonName
	}
	if p.ConservationStatus != nil {
		if !models.ValidConservationStatus(*p.ConservationStatus) {
			return nil, apperr.Validation("unknown conservation status %q", *p.ConservationStatus)
		}
		fields["conservation_status"] = *p.ConservationStatus
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes a catalog entry. Lots referencing it keep a null species
// per the store's SET NULL rule.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
