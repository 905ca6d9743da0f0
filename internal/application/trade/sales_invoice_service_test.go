package trade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/identity"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/trade"
)

func newStockedProduct(t *testing.T, name string, price float64, stock int, size string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, vnd(price), nil)
	require.NoError(t, err)
	p.StockQuantity = stock
	p.Size = size
	return p
}

func TestSalesInvoiceService_Create_ProvisionsCustomerAccount(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	product := newStockedProduct(t, "Giày A", 100, 10, "40")

	repos.users.On("FindByEmail", mock.Anything, "khach@example.com").Return(nil, shared.ErrNotFound).Once()
	var createdUser *identity.User
	repos.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) { createdUser = args.Get(1).(*identity.User) }).
		Return(nil).Once()
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	var savedInvoice *trade.SalesInvoice
	repos.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.SalesInvoice")).
		Run(func(args mock.Arguments) { savedInvoice = args.Get(1).(*trade.SalesInvoice) }).
		Return(nil).Once()
	repos.ledger.On("Decrease", mock.Anything, product.ID, 2).Return(nil).Once()
	repos.sizeIndex.On("Decrease", mock.Anything, product.ID, "40", 2).Return(nil).Once()

	out, err := svc.Create(context.Background(), CreateSalesInvoiceInput{
		InvoiceNumber: "HD20250115-001",
		CustomerName:  "Nguyễn Văn An",
		CustomerEmail: "khach@example.com",
		Lines:         []SalesLineInput{{ProductID: product.ID, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(200), out.TotalRevenue)

	require.NotNil(t, createdUser)
	assert.Equal(t, "khach@example.com", createdUser.Email)
	assert.Equal(t, identity.RoleUser, createdUser.Role)
	assert.True(t, createdUser.CheckPassword(identity.DefaultCustomerPassword))

	require.NotNil(t, savedInvoice)
	require.NotNil(t, savedInvoice.CustomerID)
	assert.Equal(t, createdUser.ID, *savedInvoice.CustomerID)
	assert.Equal(t, "40", savedInvoice.Items[0].SizeEU)
}

func TestSalesInvoiceService_Create_ReusesExistingCustomer(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	product := newStockedProduct(t, "Giày A", 100, 10, "40")
	existing, err := identity.NewUser("khach", "khach@example.com", "secret-1", identity.RoleUser)
	require.NoError(t, err)

	repos.users.On("FindByEmail", mock.Anything, "khach@example.com").Return(existing, nil).Once()
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.sales.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Decrease", mock.Anything, product.ID, 1).Return(nil).Once()
	repos.sizeIndex.On("Decrease", mock.Anything, product.ID, "40", 1).Return(nil).Once()

	_, err = svc.Create(context.Background(), CreateSalesInvoiceInput{
		InvoiceNumber: "HD20250115-002",
		CustomerEmail: "khach@example.com",
		Lines:         []SalesLineInput{{ProductID: product.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	repos.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSalesInvoiceService_Create_InsufficientStockAbortsEverything(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	product := newStockedProduct(t, "Giày A", 100, 3, "40")
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()

	_, err := svc.Create(context.Background(), CreateSalesInvoiceInput{
		InvoiceNumber: "HD20250115-003",
		Lines:         []SalesLineInput{{ProductID: product.ID, Quantity: 10}},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	repos.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	repos.ledger.AssertNotCalled(t, "Decrease", mock.Anything, mock.Anything, mock.Anything)
}

func TestSalesInvoiceService_Create_WriteTimeDecrementFailurePropagates(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	// advisory pre-check passes, conditional update loses the race
	product := newStockedProduct(t, "Giày A", 100, 5, "40")
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.sales.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Decrease", mock.Anything, product.ID, 5).Return(shared.ErrInsufficientStock).Once()

	_, err := svc.Create(context.Background(), CreateSalesInvoiceInput{
		InvoiceNumber: "HD20250115-004",
		Lines:         []SalesLineInput{{ProductID: product.ID, Quantity: 5}},
	})

	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestSalesInvoiceService_Create_UnitPriceOverride(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	product := newStockedProduct(t, "Giày A", 100, 10, "40")
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.sales.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Decrease", mock.Anything, product.ID, 2).Return(nil).Once()
	repos.sizeIndex.On("Decrease", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	override := vnd(80)
	out, err := svc.Create(context.Background(), CreateSalesInvoiceInput{
		InvoiceNumber: "HD20250115-005",
		Lines:         []SalesLineInput{{ProductID: product.ID, Quantity: 2, UnitPrice: &override}},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(160), out.TotalRevenue)
}

func TestSalesInvoiceService_Create_UsesDiscountPrice(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	product := newStockedProduct(t, "Giày A", 100, 10, "40")
	discount := vnd(90)
	product.DiscountPrice = &discount

	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.sales.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Decrease", mock.Anything, product.ID, 1).Return(nil).Once()
	repos.sizeIndex.On("Decrease", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	out, err := svc.Create(context.Background(), CreateSalesInvoiceInput{
		InvoiceNumber: "HD20250115-006",
		Lines:         []SalesLineInput{{ProductID: product.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(90), out.TotalRevenue)
}

func TestSalesInvoiceService_Create_GeneratesNumberWhenEmpty(t *testing.T) {
	repos := newTestRepos()
	svc := NewSalesInvoiceService(newTestScope(repos), repos.sales, zap.NewNop())

	product := newStockedProduct(t, "Giày A", 100, 10, "")
	repos.sales.On("NextInvoiceNumber", mock.Anything, mock.AnythingOfType("time.Time")).
		Return("HD20250115-007", nil).Once()
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.sales.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Decrease", mock.Anything, product.ID, 1).Return(nil).Once()

	out, err := svc.Create(context.Background(), CreateSalesInvoiceInput{
		Lines: []SalesLineInput{{ProductID: product.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "HD20250115-007", out.InvoiceNumber)
}
