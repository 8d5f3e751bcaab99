// Package transactions is the domain repository for buy/sell records and
// their attached documents.
package transactions

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

var detailPreloads = []string{"WoodLot", "WoodLot.Species", "Buyer", "Seller", "Creator"}

// Service exposes transaction operations over the generic repository.
type Service struct {
	repo *repo.Repository[models.Transaction]
	docs *repo.Repository[models.TransactionDocument]
	log  zerolog.Logger
}

// New returns a transaction service bound to database.
func New(database *gorm.DB, log zerolog.Logger) *Service {
	return &Service{
		repo: repo.New[models.Transaction](database, "transaction"),
		docs: repo.New[models.TransactionDocument](database, "transaction document"),
		log:  log.With().Str("component", "transactions").Logger(),
	}
}

// CreateParams carries the fields accepted when recording a transaction.
type CreateParams struct {
	WoodLotID       *uuid.UUID
	BuyerID         *uuid.UUID
	SellerID        *uuid.UUID
	Price           *float64
	TransactionDate *time.Time
	Status          string
	CreatedByID     *uuid.UUID
}

// UpdateParams carries the optional fields accepted on transaction updates.
type UpdateParams struct {
	WoodLotID       *uuid.UUID
	BuyerID         *uuid.UUID
	SellerID        *uuid.UUID
	Price           *float64
	TransactionDate *time.Time
	Status          *string
}

// Filter enumerates the predicates accepted when listing transactions.
type Filter struct {
	WoodLotID   *uuid.UUID
	BuyerID     *uuid.UUID
	SellerID    *uuid.UUID
	CreatedByID *uuid.UUID
	Status      string
	DateFrom    *time.Time
	DateTo      *time.Time
	MinPrice    *float64
	MaxPrice    *float64
}

func (f Filter) query() repo.Query {
	q := repo.Query{Conds: map[string]any{}, Preloads: detailPreloads, Order: "transaction_date DESC"}
	if f.WoodLotID != nil {
		q.Conds["wood_lot_id"] = *f.WoodLotID
	}
	if f.BuyerID != nil {
		q.Conds["buyer_id"] = *f.BuyerID
	}
	if f.SellerID != nil {
		q.Conds["seller_id"] = *f.SellerID
	}
	if f.CreatedByID != nil {
		q.Conds["created_by_id"] = *f.CreatedByID
	}
	if f.Status != "" {
		q.Conds["status"] = f.Status
	}
	if f.DateFrom != nil || f.DateTo != nil {
		rg := repo.Range{Column: "transaction_date"}
		if f.DateFrom != nil {
			rg.Min = *f.DateFrom
		}
		if f.DateTo != nil {
			rg.Max = *f.DateTo
		}
		q.Ranges = append(q.Ranges, rg)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		rg := repo.Range{Column: "price"}
		if f.MinPrice != nil {
			rg.Min = *f.MinPrice
		}
		if f.MaxPrice != nil {
			rg.Max = *f.MaxPrice
		}
		q.Ranges = append(q.Ranges, rg)
	}
	return q
}

// List returns transactions matching filter, with lot, species, and parties
// resolved on every call.
func (s *Service) List(ctx context.Context, filter Filter) ([]models.Transaction, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, apperr.Validation("unknown transaction status %q", filter.Status)
	}
	return s.repo.FindAll(ctx, filter.query())
}

// GetDetails returns one transaction with its lot, parties, and documents
// resolved, or nil.
func (s *Service) GetDetails(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	q := repo.Query{Preloads: append(append([]string{}, detailPreloads...), "Documents")}
	return s.repo.FindByID(ctx, id, q)
}

// FindByBuyer returns the transactions where the given user buys.
func (s *Service) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Transaction, error) {
	return s.List(ctx, Filter{BuyerID: &buyerID})
}

// FindBySeller returns the transactions where the given user sells.
func (s *Service) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Transaction, error) {
	return s.List(ctx, Filter{SellerID: &sellerID})
}

// FindByStatus returns the transactions in the given state.
func (s *Service) FindByStatus(ctx context.Context, status string) ([]models.Transaction, error) {
	return s.List(ctx, Filter{Status: status})
}

// FindByWoodLot returns the transactions over one lot.
func (s *Service) FindByWoodLot(ctx context.Context, lotID uuid.UUID) ([]models.Transaction, error) {
	return s.List(ctx, Filter{WoodLotID: &lotID})
}

// Create validates and records a new transaction. An omitted date defaults
// to now, an omitted status to Pending.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Transaction, error) {
	if p.Price != nil && *p.Price <= 0 {
		return nil, apperr.Validation("price must be greater than zero")
	}
	if p.Status != "" && !models.ValidStatus(p.Status) {
		return nil, apperr.Validation("unknown transaction status %q", p.Status)
	}
	date := p.TransactionDate
	if date == nil {
		now := time.Now().UTC()
		date = &now
	}

	txn := models.Transaction{
		WoodLotID:       p.WoodLotID,
		BuyerID:         p.BuyerID,
		SellerID:        p.SellerID,
		Price:           p.Price,
		TransactionDate: date,
		Status:          p.Status,
		CreatedByID:     p.CreatedByID,
	}
	if err := s.repo.Create(ctx, &txn); err != nil {
		return nil, err
	}

	s.log.Info().Str("transaction_id", txn.ID.String()).Str("status", txn.Status).Msg("transaction recorded")
	return &txn, nil
}

// Update applies partial changes to a transaction. Transactions in a
// terminal state (Completed or Cancelled) reject every edit, including
// attempts to change the status itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Transaction, error) {
	current, err := s.repo.FindByID(ctx, id, repo.Query{})
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &apperr.NotFoundError{Resource: "transaction", ID: id.String()}
	}
	if models.TerminalStatus(current.Status) {
		return nil, apperr.Validation("transaction is %s and can no longer be modified", current.Status)
	}

	fields := map[string]any{}
	if p.WoodLotID != nil {
		fields["wood_lot_id"] = *p.WoodLotID
	}
	if p.BuyerID != nil {
		fields["buyer_id"] = *p.BuyerID
	}
	if p.SellerID != nil {
		fields["seller_id"] = *p.SellerID
	}
	if p.Price != nil {
		if *p.Price <= 0 {
			return nil, apperr.Validation("price must be greater than zero")
		}
		fields["price"] = *p.Price
	}
	if p.TransactionDate != nil {
		fields["transaction_date"] = *p.TransactionDate
	}
	if p.Status != nil {
		if !models.ValidStatus(*p.Status) {
			return nil, apperr.Validation("unknown transaction status %q", *p.Status)
		}
		fields["status"] = *p.Status
	}
	return s.repo.Update(ctx, id, fields)
}

// UpdateStatus moves a transaction to the given state, subject to the same
// terminal guard as Update.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Transaction, error) {
	return s.Update(ctx, id, UpdateParams{Status: &status})
}

// Delete removes a transaction and, through the store's cascade rule, its
// attached documents.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// DocumentParams carries the metadata accepted when attaching a document.
type DocumentParams struct {
	Name string
	Kind string
	URL  string
}

// ListDocuments returns the documents attached to a transaction.
func (s *Service) ListDocuments(ctx context.Context, transactionID uuid.UUID) ([]models.TransactionDocument, error) {
	return s.docs.FindAll(ctx, repo.Query{
		Conds: map[string]any{"transaction_id": transactionID},
		Order: "created_at",
	})
}

// AddDocument attaches document metadata to a transaction. Terminal
// transactions accept no new documents.
func (s *Service) AddDocument(ctx context.Context, transactionID uuid.UUID, p DocumentParams) (*models.TransactionDocument, error) {
	if p.Name == "" {
		return nil, apperr.Validation("document name is required")
	}
	txn, err := s.repo.FindByID(ctx, transactionID, repo.Query{})
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, &apperr.NotFoundError{Resource: "transaction", ID: transactionID.String()}
	}
	if models.TerminalStatus(txn.Status) {
		return nil, apperr.Validation("transaction is %s and can no longer be modified", txn.Status)
	}

	doc := models.TransactionDocument{
		TransactionID: transactionID,
		Name:          p.Name,
		Kind:          p.Kind,
		URL:           p.URL,
	}
	if err := s.docs.Create(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes one attached document.
func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.docs.Delete(ctx, id)
}
