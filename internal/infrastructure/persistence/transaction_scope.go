package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/shoestore/backend/internal/application/trade"
	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/identity"
	"github.com/shoestore/backend/internal/domain/trade"
)

// GormTransactionScope implements the invoice engines' TransactionScope on
// a GORM transaction. Every repository handed to fn shares the tx handle,
// so a failure anywhere rolls back all writes.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTransactionalRepositories(tx))
	})
}

var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

// gormTransactionalRepositories bundles all repositories over one tx handle
type gormTransactionalRepositories struct {
	products        *GormProductRepository
	stockLedger     *GormStockLedger
	sizeIndex       *GormSizeIndex
	purchases       *GormPurchaseInvoiceRepository
	sales           *GormSalesInvoiceRepository
	returnExchanges *GormReturnExchangeRepository
	users           *GormUserRepository
}

func newTransactionalRepositories(tx *gorm.DB) *gormTransactionalRepositories {
	return &gormTransactionalRepositories{
		products:        NewGormProductRepository(tx),
		stockLedger:     NewGormStockLedger(tx),
		sizeIndex:       NewGormSizeIndex(tx),
		purchases:       NewGormPurchaseInvoiceRepository(tx),
		sales:           NewGormSalesInvoiceRepository(tx),
		returnExchanges: NewGormReturnExchangeRepository(tx),
		users:           NewGormUserRepository(tx),
	}
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository { return r.products }
func (r *gormTransactionalRepositories) StockLedger() catalog.StockLedger    { return r.stockLedger }
func (r *gormTransactionalRepositories) SizeIndex() catalog.SizeIndex        { return r.sizeIndex }
func (r *gormTransactionalRepositories) PurchaseInvoices() trade.PurchaseInvoiceRepository {
	return r.purchases
}
func (r *gormTransactionalRepositories) SalesInvoices() trade.SalesInvoiceRepository {
	return r.sales
}
func (r *gormTransactionalRepositories) ReturnExchanges() trade.ReturnExchangeRepository {
	return r.returnExchanges
}
func (r *gormTransactionalRepositories) Users() identity.UserRepository { return r.users }

var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
