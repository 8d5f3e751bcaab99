package transactions

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

func txnRows(entries ...models.Transaction) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "status"})
	for _, e := range entries {
		rows.AddRow(e.ID, e.Status)
	}
	return rows
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	svc, _ := newTestService(t)

	for _, price := range []float64{0, -100} {
		p := price
		_, err := svc.Create(context.Background(), CreateParams{Price: &p})
		if !apperr.IsValidation(err) {
			t.Fatalf("price %v: expected ValidationError, got %v", price, err)
		}
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{Status: "Shipped"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateDefaultsDateAndStatus(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`INSERT INTO "transactions"`).WillReturnResult(sqlmock.NewResult(0, 1))

	txn, err := svc.Create(context.Background(), CreateParams{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if txn.Status != models.StatusPending {
		t.Fatalf("Status = %q, want Pending", txn.Status)
	}
	if txn.TransactionDate == nil {
		t.Fatal("expected transaction date to default to now")
	}
	if txn.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
}

func TestUpdateRejectsTerminalTransaction(t *testing.T) {
	for _, status := range []string{models.StatusCompleted, models.StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			svc, mock := newTestService(t)

			existing := models.Transaction{ID: uuid.New(), Status: status}
			mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows(existing))

			price := 500.0
			_, err := svc.Update(context.Background(), existing.ID, UpdateParams{Price: &price})
			if !apperr.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			// No UPDATE must reach the store.
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unexpected write: %v", err)
			}
		})
	}
}

func TestUpdateStatusRejectsLeavingTerminalState(t *testing.T) {
	svc, mock := newTestService(t)

	existing := models.Transaction{ID: uuid.New(), Status: models.StatusCompleted}
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows(existing))

	_, err := svc.UpdateStatus(context.Background(), existing.ID, models.StatusPending)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateAllowsPendingToApproved(t *testing.T) {
	svc, mock := newTestService(t)

	existing := models.Transaction{ID: uuid.New(), Status: models.StatusPending}
	// Terminal guard read, then the repository's read-before-write.
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows(existing))
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows(existing))
	mock.ExpectExec(`UPDATE "transactions" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	txn, err := svc.UpdateStatus(context.Background(), existing.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if txn.Status != models.StatusApproved {
		t.Fatalf("Status = %q, want Approved", txn.Status)
	}
}

func TestUpdateAbsentReturnsNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows())

	price := 100.0
	_, err := svc.Update(context.Background(), uuid.New(), UpdateParams{Price: &price})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFindByStatusValidatesEnum(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FindByStatus(context.Background(), "Shipped")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddDocumentRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddDocument(context.Background(), uuid.New(), DocumentParams{Kind: "permit"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddDocumentRejectsTerminalTransaction(t *testing.T) {
	svc, mock := newTestService(t)

	existing := models.Transaction{ID: uuid.New(), Status: models.StatusCancelled}
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows(existing))

	_, err := svc.AddDocument(context.Background(), existing.ID, DocumentParams{Name: "harvest-permit.pdf"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddDocumentAttachesToOpenTransaction(t *testing.T) {
	svc, mock := newTestService(t)

	existing := models.Transaction{ID: uuid.New(), Status: models.StatusApproved}
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).WillReturnRows(txnRows(existing))
	mock.ExpectExec(`INSERT INTO "transaction_documents"`).WillReturnResult(sqlmock.NewResult(0, 1))

	doc, err := svc.AddDocument(context.Background(), existing.ID, DocumentParams{Name: "bill-of-sale.pdf", Kind: "invoice"})
	if err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if doc.TransactionID != existing.ID {
		t.Fatalf("TransactionID = %s, want %s", doc.TransactionID, existing.ID)
	}
	if doc.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
}
