// Package activity persists the audit trail of notable API events.
package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"timberd/internal/models"
	"timberd/internal/repo"
)

// Entry describes one event to record.
type Entry struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   string
	Message    string
	IPAddress  string
	Metadata   map[string]any
}

// Recorder writes activity log rows. Recording is best effort: a failed
// write is logged and swallowed so it never fails the request that
// triggered it.
type Recorder struct {
	repo *repo.Repository[models.ActivityLog]
	log  zerolog.Logger
}

// NewRecorder returns a recorder bound to database.
func NewRecorder(database *gorm.DB, log zerolog.Logger) *Recorder {
	return &Recorder{
		repo: repo.New[models.ActivityLog](database, "activity log"),
		log:  log.With().Str("component", "activity").Logger(),
	}
}

// Record persists entry.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	row := models.ActivityLog{
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		Message:    e.Message,
		IPAddress:  e.IPAddress,
	}
	if e.EntityID != "" {
		id := e.EntityID
		row.EntityID = &id
	}
	if len(e.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(e.Metadata)
	}
	if err := r.repo.Create(ctx, &row); err != nil {
		r.log.Warn().Err(err).Str("action", e.Action).Str("entity_type", e.EntityType).Msg("activity record failed")
	}
}

// List returns the most recent entries, newest first, capped at limit.
func (r *Recorder) List(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return r.repo.FindAll(ctx, repo.Query{Order: "created_at DESC", Limit: limit})
}
