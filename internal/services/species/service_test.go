package species

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
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

func rows(entries ...models.WoodSpecies) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"id", "scientific_name", "common_name", "conservation_status"})
	for _, e := range entries {
		r.AddRow(e.ID, e.ScientificName, e.CommonName, e.ConservationStatus)
	}
	return r
}

func TestCreateRequiresScientificName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{CommonName: "Teak"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRejectsUnknownConservationStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		ScientificName:     "Tectona grandis",
		ConservationStatus: "Extinct",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRejectsDuplicateScientificName(t *testing.T) {
	svc, mock := newTestService(t)

	existing := models.WoodSpecies{ID: uuid.New(), ScientificName: "Tectona grandis", ConservationStatus: models.ConservationCommon}
	mock.ExpectQuery(`SELECT \* FROM "wood_species"`).WillReturnRows(rows(existing))

	_, err := svc.Create(context.Background(), CreateParams{ScientificName: "Tectona grandis"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected insert: %v", err)
	}
}

func TestCreateInsertsNewSpecies(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "wood_species"`).WillReturnRows(rows())
	mock.ExpectExec(`INSERT INTO "wood_species"`).WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := svc.Create(context.Background(), CreateParams{
		ScientificName: "Pterocarpus macrocarpus",
		CommonName:     "Burma padauk",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if entry.ConservationStatus != models.ConservationCommon {
		t.Fatalf("expected default conservation status, got %q", entry.ConservationStatus)
	}
}

func TestUpdateAllowsKeepingOwnName(t *testing.T) {
	svc, mock := newTestService(t)

	id := uuid.New()
	existing := models.WoodSpecies{ID: id, ScientificName: "Tectona grandis", ConservationStatus: models.ConservationCommon}

	// Uniqueness pre-check finds the same row; it must not block the update.
	mock.ExpectQuery(`SELECT \* FROM "wood_species"`).WillReturnRows(rows(existing))
	mock.ExpectQuery(`SELECT \* FROM "wood_species"`).WillReturnRows(rows(existing))
	mock.ExpectExec(`UPDATE "wood_species" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	name := "Tectona grandis"
	common := "Teak"
	_, err := svc.Update(context.Background(), id, UpdateParams{ScientificName: &name, CommonName: &common})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestUpdateRejectsNameOwnedByAnotherEntry(t *testing.T) {
	svc, mock := newTestService(t)

	other := models.WoodSpecies{ID: uuid.New(), ScientificName: "Tectona grandis", ConservationStatus: models.ConservationCommon}
	mock.ExpectQuery(`SELECT \* FROM "wood_species"`).WillReturnRows(rows(other))

	name := "Tectona grandis"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateParams{ScientificName: &name})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFindByConservationStatusValidatesEnum(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FindByConservationStatus(context.Background(), "Mythical")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
