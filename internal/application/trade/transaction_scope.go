package trade

import (
	"context"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/identity"
	"github.com/shoestore/backend/internal/domain/trade"
)

// TransactionalRepositories exposes every repository an invoice engine may
// touch, all scoped to one store transaction.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	StockLedger() catalog.StockLedger
	SizeIndex() catalog.SizeIndex
	PurchaseInvoices() trade.PurchaseInvoiceRepository
	SalesInvoices() trade.SalesInvoiceRepository
	ReturnExchanges() trade.ReturnExchangeRepository
	Users() identity.UserRepository
}

// TransactionScope runs a function atomically: every repository operation
// inside fn commits together or rolls back together. All cross-step
// atomicity of the engines is delegated here; the engines take no locks.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope executes the function against a fixed repository
// set without any transaction. Used in tests.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn directly against the configured repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
