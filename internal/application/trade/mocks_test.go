package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/identity"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/trade"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockLedger is a mock implementation of catalog.StockLedger
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) Increase(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockStockLedger) Decrease(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockSizeIndex is a mock implementation of catalog.SizeIndex
type MockSizeIndex struct {
	mock.Mock
}

func (m *MockSizeIndex) Increase(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	args := m.Called(ctx, productID, sizeValue, quantity)
	return args.Error(0)
}

func (m *MockSizeIndex) Decrease(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	args := m.Called(ctx, productID, sizeValue, quantity)
	return args.Error(0)
}

func (m *MockSizeIndex) DecreaseClamped(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	args := m.Called(ctx, productID, sizeValue, quantity)
	return args.Error(0)
}

func (m *MockSizeIndex) Quantities(ctx context.Context, productID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockPurchaseInvoiceRepository is a mock implementation of trade.PurchaseInvoiceRepository
type MockPurchaseInvoiceRepository struct {
	mock.Mock
}

func (m *MockPurchaseInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*trade.PurchaseInvoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseInvoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseInvoice), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) Save(ctx context.Context, invoice *trade.PurchaseInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseInvoiceRepository) NextInvoiceNumber(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

// MockSalesInvoiceRepository is a mock implementation of trade.SalesInvoiceRepository
type MockSalesInvoiceRepository struct {
	mock.Mock
}

func (m *MockSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*trade.SalesInvoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesInvoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesInvoice), args.Error(1)
}

func (m *MockSalesInvoiceRepository) Save(ctx context.Context, invoice *trade.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSalesInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesInvoiceRepository) NextInvoiceNumber(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

// MockReturnExchangeRepository is a mock implementation of trade.ReturnExchangeRepository
type MockReturnExchangeRepository struct {
	mock.Mock
}

func (m *MockReturnExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ReturnExchange), args.Error(1)
}

func (m *MockReturnExchangeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnExchange, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ReturnExchange), args.Error(1)
}

func (m *MockReturnExchangeRepository) Save(ctx context.Context, returnExchange *trade.ReturnExchange) error {
	args := m.Called(ctx, returnExchange)
	return args.Error(0)
}

func (m *MockReturnExchangeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// testRepos bundles all mocks behind TransactionalRepositories for use
// with NoOpTransactionScope.
type testRepos struct {
	products        *MockProductRepository
	ledger          *MockStockLedger
	sizeIndex       *MockSizeIndex
	purchases       *MockPurchaseInvoiceRepository
	sales           *MockSalesInvoiceRepository
	returnExchanges *MockReturnExchangeRepository
	users           *MockUserRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		products:        new(MockProductRepository),
		ledger:          new(MockStockLedger),
		sizeIndex:       new(MockSizeIndex),
		purchases:       new(MockPurchaseInvoiceRepository),
		sales:           new(MockSalesInvoiceRepository),
		returnExchanges: new(MockReturnExchangeRepository),
		users:           new(MockUserRepository),
	}
}

func (r *testRepos) Products() catalog.ProductRepository              { return r.products }
func (r *testRepos) StockLedger() catalog.StockLedger                 { return r.ledger }
func (r *testRepos) SizeIndex() catalog.SizeIndex                     { return r.sizeIndex }
func (r *testRepos) PurchaseInvoices() trade.PurchaseInvoiceRepository { return r.purchases }
func (r *testRepos) SalesInvoices() trade.SalesInvoiceRepository      { return r.sales }
func (r *testRepos) ReturnExchanges() trade.ReturnExchangeRepository  { return r.returnExchanges }
func (r *testRepos) Users() identity.UserRepository                   { return r.users }

func newTestScope(r *testRepos) *NoOpTransactionScope {
	return &NoOpTransactionScope{Repos: r}
}
