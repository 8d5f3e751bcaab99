package users

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timberd/internal/apperr"
	"timberd/internal/models"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	database, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return New(database, zerolog.Nop()), mock
}

func userRows(entries ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "active"})
	for _, e := range entries {
		var username any
		if e.Username != nil {
			username = *e.Username
		}
		rows.AddRow(e.ID, username, e.Email, e.PasswordHash, e.Active)
	}
	return rows
}

func strPtr(s string) *string { return &s }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestCreateRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{Email: "a@b.co"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	_, err = svc.Create(context.Background(), CreateParams{Password: "Str0ng!pass"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRejectsWeakPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{Email: "trader@example.com", Password: "weakpass"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, mock := newTestService(t)

	existing := models.User{ID: uuid.New(), Email: "trader@example.com", Active: true}
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(existing))

	_, err := svc.Create(context.Background(), CreateParams{Email: "trader@example.com", Password: "Str0ng!pass"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected insert: %v", err)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc, mock := newTestService(t)

	// Email check passes, username check collides.
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(models.User{ID: uuid.New(), Username: strPtr("trader_01"), Active: true}))

	_, err := svc.Create(context.Background(), CreateParams{
		Username: "trader_01",
		Email:    "trader@example.com",
		Password: "Str0ng!pass",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRegistersActiveUser(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.Create(context.Background(), CreateParams{
		Username: "trader_01",
		Email:    "trader@example.com",
		Password: "Str0ng!pass",
		FullName: "Timber Trader",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !user.Active {
		t.Fatal("expected new account to be active")
	}
	if user.PasswordHash == "Str0ng!pass" || user.PasswordHash == "" {
		t.Fatal("expected password to be stored hashed")
	}
}

func TestCreateWithoutUsernameStoresNull(t *testing.T) {
	svc, mock := newTestService(t)

	// Two registrations without a username must both succeed: the column
	// stays NULL, so the unique index never sees two equal values. Only the
	// email pre-check runs; no username lookup is issued.
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	first, err := svc.Create(context.Background(), CreateParams{
		Email:    "first@example.com",
		Password: "Str0ng!pass",
	})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if first.Username != nil {
		t.Fatalf("expected nil username, got %q", *first.Username)
	}

	second, err := svc.Create(context.Background(), CreateParams{
		Email:    "second@example.com",
		Password: "Str0ng!pass",
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.Username != nil {
		t.Fatalf("expected nil username, got %q", *second.Username)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestAuthenticateByEmail(t *testing.T) {
	svc, mock := newTestService(t)

	stored := models.User{
		ID:           uuid.New(),
		Email:        "trader@example.com",
		PasswordHash: hashOf(t, "Str0ng!pass"),
		Active:       true,
	}
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(stored))

	user, err := svc.Authenticate(context.Background(), "trader@example.com", "", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != stored.ID {
		t.Fatalf("authenticated wrong user: %s", user.ID)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	svc, mock := newTestService(t)

	stored := models.User{
		ID:           uuid.New(),
		Email:        "trader@example.com",
		PasswordHash: hashOf(t, "Str0ng!pass"),
		Active:       true,
	}
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(stored))

	_, err := svc.Authenticate(context.Background(), "trader@example.com", "", "Wr0ng!pass")
	if !apperr.IsInvalidCredential(err) {
		t.Fatalf("expected InvalidCredentialError, got %v", err)
	}
}

func TestAuthenticateRejectsInactiveAccount(t *testing.T) {
	svc, mock := newTestService(t)

	stored := models.User{
		ID:           uuid.New(),
		Email:        "trader@example.com",
		PasswordHash: hashOf(t, "Str0ng!pass"),
		Active:       false,
	}
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(stored))

	_, err := svc.Authenticate(context.Background(), "trader@example.com", "", "Str0ng!pass")
	if !apperr.IsInvalidCredential(err) {
		t.Fatalf("expected InvalidCredentialError, got %v", err)
	}
}

func TestAuthenticateRejectsUnknownAccount(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "", "Str0ng!pass")
	if !apperr.IsInvalidCredential(err) {
		t.Fatalf("expected InvalidCredentialError, got %v", err)
	}
}

func TestAuthenticateRequiresIdentifierAndPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "", "", "Str0ng!pass")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	_, err = svc.Authenticate(context.Background(), "trader@example.com", "", "")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	svc, mock := newTestService(t)

	stored := models.User{
		ID:           uuid.New(),
		Email:        "trader@example.com",
		PasswordHash: hashOf(t, "Str0ng!pass"),
		Active:       true,
	}
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(stored))

	err := svc.UpdatePassword(context.Background(), stored.ID, "Wr0ng!pass", "N3w!passw")
	if !apperr.IsInvalidCredential(err) {
		t.Fatalf("expected InvalidCredentialError, got %v", err)
	}
}

func TestUpdatePasswordEnforcesStrength(t *testing.T) {
	svc, mock := newTestService(t)

	stored := models.User{
		ID:           uuid.New(),
		Email:        "trader@example.com",
		PasswordHash: hashOf(t, "Str0ng!pass"),
		Active:       true,
	}
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(stored))

	err := svc.UpdatePassword(context.Background(), stored.ID, "Str0ng!pass", "weak")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
