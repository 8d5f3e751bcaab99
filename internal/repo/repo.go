// Package repo provides the generic persistence-access layer: one uniform
// CRUD contract over GORM, decoupled from any one entity's shape. Domain
// repositories are built exclusively from these primitives.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timberd/internal/apperr"
)

// Repository is a parametrized CRUD wrapper over one entity type. It never
// caches across calls and never retries; store failures propagate
// immediately as PersistenceError.
type Repository[T any] struct {
	db       *gorm.DB
	resource string
}

// New returns a repository for entity type T. resource is the human-readable
// entity name used in error messages.
func New[T any](db *gorm.DB, resource string) *Repository[T] {
	return &Repository[T]{db: db, resource: resource}
}

// FindAll returns every record matching q. The zero Query returns all
// records; result sets are unbounded.
func (r *Repository[T]) FindAll(ctx context.Context, q Query) ([]T, error) {
	var out []T
	if err := q.apply(r.db.WithContext(ctx)).Find(&out).Error; err != nil {
		return nil, r.wrap("find "+r.resource, err)
	}
	return out, nil
}

// FindByID looks a record up by primary key. Absence is a valid non-error
// outcome: the result is nil, nil.
func (r *Repository[T]) FindByID(ctx context.Context, id uuid.UUID, q Query) (*T, error) {
	var out T
	err := q.apply(r.db.WithContext(ctx)).First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("find "+r.resource, err)
	}
	return &out, nil
}

// FindOne returns the first record matching q, or nil, nil when none match.
// Tie-break order among multiple matches is store-defined.
func (r *Repository[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	var out T
	err := q.apply(r.db.WithContext(ctx)).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("find "+r.resource, err)
	}
	return &out, nil
}

// Create inserts entity. Constraint violations surface as PersistenceError
// wrapping gorm.ErrDuplicatedKey; they are never retried here.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return r.wrap("create "+r.resource, err)
	}
	return nil
}

// Update applies partial field updates to the record with the given id and
// returns the refreshed entity. It is one read followed by one write, not a
// single atomic store operation; concurrent updates to the same id are
// last-write-wins.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	entity, err := r.FindByID(ctx, id, Query{})
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, &apperr.NotFoundError{Resource: r.resource, ID: id.String()}
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(entity).Updates(fields).Error; err != nil {
			return nil, r.wrap("update "+r.resource, err)
		}
	}
	return entity, nil
}

// Delete removes the record with the given id. Cascade behaviour is
// delegated entirely to the store's referential-integrity configuration.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := r.FindByID(ctx, id, Query{})
	if err != nil {
		return err
	}
	if entity == nil {
		return &apperr.NotFoundError{Resource: r.resource, ID: id.String()}
	}
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return r.wrap("delete "+r.resource, err)
	}
	return nil
}

func (r *Repository[T]) wrap(op string, err error) error {
	return &apperr.PersistenceError{Op: op, Err: err}
}

// IsDuplicate reports whether err stems from a uniqueness constraint
// violation. Relies on GORM error translation being enabled on the session.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
