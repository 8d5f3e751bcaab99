// Package users is the domain repository for accounts: uniqueness-checked
// creation, credential verification, and relationship-aware reads, built
// from the generic repository primitives.
package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timberd/internal/apperr"
	"timberd/internal/models"
	"timberd/internal/repo"
)

var detailPreloads = []string{"Role", "Role.Permissions", "Address"}

// Service exposes account operations over the generic repository.
type Service struct {
	repo *repo.Repository[models.User]
	log  zerolog.Logger
}

// New returns a user service bound to database.
func New(database *gorm.DB, log zerolog.Logger) *Service {
	return &Service{
		repo: repo.New[models.User](database, "user"),
		log:  log.With().Str("component", "users").Logger(),
	}
}

// CreateParams carries the fields accepted when registering an account.
type CreateParams struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	Phone     string
	RoleID    *uuid.UUID
	AddressID *uuid.UUID
}

// UpdateParams carries the optional fields accepted on profile updates. Nil
// means "leave unchanged".
type UpdateParams struct {
	FullName  *string
	Phone     *string
	Active    *bool
	RoleID    *uuid.UUID
	AddressID *uuid.UUID
}

// FindByEmail returns the account with the given email, or nil.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindOne(ctx, repo.Query{Conds: map[string]any{"email": email}})
}

// FindByUsername returns the account with the given username, or nil.
func (s *Service) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.FindOne(ctx, repo.Query{Conds: map[string]any{"username": username}})
}

// Create validates and registers a new account. Email and username
// uniqueness are pre-checked; the check is not atomic with the insert, so a
// concurrent duplicate is still caught by the store's unique constraint and
// surfaces as a PersistenceError. The username is optional and stored as
// NULL when absent.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.User, error) {
	if p.Email == "" || p.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	if err := ValidateEmail(p.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(p.Password); err != nil {
		return nil, err
	}
	if p.Username != "" {
		if err := ValidateUsername(p.Username); err != nil {
			return nil, err
		}
	}
	if err := ValidatePhone(p.Phone); err != nil {
		return nil, err
	}

	existing, err := s.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("email is already in use")
	}
	if p.Username != "" {
		existing, err = s.FindByUsername(ctx, p.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Validation("username is already taken")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        p.Email,
		PasswordHash: string(hash),
		FullName:     p.FullName,
		Phone:        p.Phone,
		Active:       true,
		RoleID:       p.RoleID,
		AddressID:    p.AddressID,
	}
	if p.Username != "" {
		user.Username = &p.Username
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user created")
	return &user, nil
}

// GetWithDetails returns an account with its role, permissions, and address
// resolved, or nil when absent.
func (s *Service) GetWithDetails(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id, repo.Query{Preloads: detailPreloads})
}

// Authenticate verifies an email-or-username plus password pair and returns
// the matching active account.
func (s *Service) Authenticate(ctx context.Context, email, username, password string) (*models.User, error) {
	if email == "" && username == "" {
		return nil, apperr.Validation("email or username is required")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}

	var (
		user *models.User
		err  error
	)
	if email != "" {
		user, err = s.FindByEmail(ctx, email)
	} else {
		user, err = s.FindByUsername(ctx, username)
	}
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, &apperr.InvalidCredentialError{Reason: "invalid credentials"}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, &apperr.InvalidCredentialError{Reason: "invalid credentials"}
	}
	return user, nil
}

// UpdatePassword replaces an account's password after verifying the current
// one.
func (s *Service) UpdatePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	user, err := s.repo.FindByID(ctx, id, repo.Query{})
	if err != nil {
		return err
	}
	if user == nil {
		return &apperr.NotFoundError{Resource: "user", ID: id.String()}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return &apperr.InvalidCredentialError{Reason: "current password does not match"}
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.repo.Update(ctx, id, map[string]any{"password_hash": string(hash)})
	return err
}

// List returns all accounts with role details attached.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx, repo.Query{Preloads: []string{"Role"}})
}

// FindByRole returns the accounts assigned the given role.
func (s *Service) FindByRole(ctx context.Context, roleID uuid.UUID) ([]models.User, error) {
	return s.repo.FindAll(ctx, repo.Query{Conds: map[string]any{"role_id": roleID}})
}

// Search returns accounts whose name, email, or username contains query.
func (s *Service) Search(ctx context.Context, query string) ([]models.User, error) {
	return s.repo.FindAll(ctx, repo.Query{AnyMatch: []repo.Match{
		{Column: "full_name", Term: query},
		{Column: "email", Term: query},
		{Column: "username", Term: query},
	}})
}

// Update applies partial profile changes to an account.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.User, error) {
	fields := map[string]any{}
	if p.FullName != nil {
		fields["full_name"] = *p.FullName
	}
	if p.Phone != nil {
		if err := ValidatePhone(*p.Phone); err != nil {
			return nil, err
		}
		fields["phone"] = *p.Phone
	}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	if p.RoleID != nil {
		fields["role_id"] = *p.RoleID
	}
	if p.AddressID != nil {
		fields["address_id"] = *p.AddressID
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
