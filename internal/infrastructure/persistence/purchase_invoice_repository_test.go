package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNextInvoiceNumber_Sequence(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	repo := NewGormPurchaseInvoiceRepository(db)
	date := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"invoice_number"}).
		AddRow("PN20250115-001").
		AddRow("PN20250115-002")
	mock.ExpectQuery(`SELECT "invoice_number" FROM "purchase_invoices" WHERE invoice_number LIKE \$1`).
		WithArgs("PN20250115-%").
		WillReturnRows(rows)

	number, err := repo.NextInvoiceNumber(context.Background(), date)
	assert.NoError(t, err)
	assert.Equal(t, "PN20250115-003", number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextInvoiceNumber_FirstOfTheDay(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	repo := NewGormPurchaseInvoiceRepository(db)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT "invoice_number" FROM "purchase_invoices"`).
		WithArgs("PN20250115-%").
		WillReturnRows(sqlmock.NewRows([]string{"invoice_number"}))

	number, err := repo.NextInvoiceNumber(context.Background(), date)
	assert.NoError(t, err)
	assert.Equal(t, "PN20250115-001", number)
}

func TestNextInvoiceNumber_IgnoresMalformedNumbers(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	repo := NewGormSalesInvoiceRepository(db)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"invoice_number"}).
		AddRow("HD20250115-005").
		AddRow("HD20250115-abc")
	mock.ExpectQuery(`SELECT "invoice_number" FROM "sales_invoices"`).
		WithArgs("HD20250115-%").
		WillReturnRows(rows)

	number, err := repo.NextInvoiceNumber(context.Background(), date)
	assert.NoError(t, err)
	assert.Equal(t, "HD20250115-006", number)
}
