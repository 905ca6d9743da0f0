package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormStockLedger_Decrease_ConditionalUpdate(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	ledger := NewGormStockLedger(db)
	productID := uuid.New()

	// the stock check is part of the UPDATE's WHERE clause
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1,"updated_at"=\$2 WHERE id = \$3 AND stock_quantity >= \$4`).
		WithArgs(3, sqlmock.AnyArg(), productID, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := ledger.Decrease(context.Background(), productID, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockLedger_Decrease_InsufficientStock(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	ledger := NewGormStockLedger(db)
	productID := uuid.New()

	// no row matches when the quantity on hand is too low
	mock.ExpectExec(`UPDATE "products"`).
		WithArgs(5, sqlmock.AnyArg(), productID, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := ledger.Decrease(context.Background(), productID, 5)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockLedger_Increase(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	ledger := NewGormStockLedger(db)
	productID := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity \+ \$1`).
		WithArgs(4, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := ledger.Increase(context.Background(), productID, 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockLedger_Increase_UnknownProduct(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	ledger := NewGormStockLedger(db)

	mock.ExpectExec(`UPDATE "products"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := ledger.Increase(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStockLedger_RejectsNonPositiveQuantity(t *testing.T) {
	db, _, conn := newMockDB(t)
	defer conn.Close()

	ledger := NewGormStockLedger(db)

	assert.ErrorIs(t, ledger.Increase(context.Background(), uuid.New(), 0), shared.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.Decrease(context.Background(), uuid.New(), -2), shared.ErrInvalidQuantity)
}
