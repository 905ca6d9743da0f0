package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
	"github.com/shoestore/backend/internal/domain/trade"
)

func vnd(amount float64) valueobject.Money {
	return valueobject.NewMoneyVNDFromFloat(amount)
}

func TestPurchaseInvoiceService_Create_GroupsNewProductsByVariant(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	var createdProduct *catalog.Product
	repos.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).
		Run(func(args mock.Arguments) {
			createdProduct = args.Get(1).(*catalog.Product)
		}).Return(nil).Once()
	repos.purchases.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseInvoice")).Return(nil).Once()
	repos.ledger.On("Increase", mock.Anything, mock.Anything, 5).Return(nil).Once()
	repos.ledger.On("Increase", mock.Anything, mock.Anything, 3).Return(nil).Once()
	repos.sizeIndex.On("Increase", mock.Anything, mock.Anything, "40", 5).Return(nil).Once()
	repos.sizeIndex.On("Increase", mock.Anything, mock.Anything, "41", 3).Return(nil).Once()

	out, err := svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-001",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
		Lines: []PurchaseLine{
			NewProductLine{Name: "Giày Thể Thao A", Price: vnd(100), Color: "trắng", SizeEU: "40", Quantity: 5, UnitCost: vnd(60)},
			NewProductLine{Name: "Giày Thể Thao A", Price: vnd(100), Color: "trắng", SizeEU: "41", Quantity: 3, UnitCost: vnd(60)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.ProductsCreated)
	assert.Equal(t, float64(480), out.TotalCost)

	require.NotNil(t, createdProduct)
	assert.Equal(t, "Giày Thể Thao A", createdProduct.Name)
	assert.Equal(t, "40, 41", createdProduct.Size)
	assert.Equal(t, 0, createdProduct.StockQuantity)

	repos.products.AssertExpectations(t)
	repos.purchases.AssertExpectations(t)
	repos.ledger.AssertExpectations(t)
}

func TestPurchaseInvoiceService_Create_DistinctColorsCreateDistinctProducts(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	repos.products.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()
	repos.purchases.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Increase", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
	repos.sizeIndex.On("Increase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)

	out, err := svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-002",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
		Lines: []PurchaseLine{
			NewProductLine{Name: "Giày A", Price: vnd(100), Color: "trắng", SizeEU: "40", Quantity: 2, UnitCost: vnd(60)},
			NewProductLine{Name: "Giày A", Price: vnd(100), Color: "đen", SizeEU: "40", Quantity: 2, UnitCost: vnd(60)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, out.ProductsCreated)
	repos.products.AssertExpectations(t)
}

func TestPurchaseInvoiceService_Create_ExistingProductLine(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	product, _ := catalog.NewProduct("Giày B", vnd(200), nil)
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.purchases.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Increase", mock.Anything, product.ID, 4).Return(nil).Once()
	repos.sizeIndex.On("Increase", mock.Anything, product.ID, "42", 4).Return(nil).Once()

	out, err := svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-003",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
		Lines: []PurchaseLine{
			ExistingProductLine{ProductID: product.ID, SizeEU: "42", Quantity: 4, UnitCost: vnd(120)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, out.ProductsCreated)
	assert.Equal(t, float64(480), out.TotalCost)
}

func TestPurchaseInvoiceService_Create_ProductNotFoundAbortsEverything(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	missing := uuid.New()
	repos.products.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound).Once()

	_, err := svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-004",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
		Lines: []PurchaseLine{
			ExistingProductLine{ProductID: missing, SizeEU: "40", Quantity: 1, UnitCost: vnd(50)},
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	repos.purchases.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	repos.ledger.AssertNotCalled(t, "Increase", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseInvoiceService_Create_Validation(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	_, err := svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-005",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-005",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
		Lines: []PurchaseLine{
			NewProductLine{Name: "Giày", Price: vnd(100), SizeEU: "40", Quantity: 0, UnitCost: vnd(60)},
		},
	})
	assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
}

func TestPurchaseInvoiceService_Create_SizeIndexFailureIsNonFatal(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	product, _ := catalog.NewProduct("Giày B", vnd(200), nil)
	repos.products.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
	repos.purchases.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repos.ledger.On("Increase", mock.Anything, product.ID, 2).Return(nil).Once()
	repos.sizeIndex.On("Increase", mock.Anything, product.ID, "40", 2).
		Return(assert.AnError).Once()

	_, err := svc.Create(context.Background(), CreatePurchaseInvoiceInput{
		InvoiceNumber: "PN20250115-006",
		SupplierID:    uuid.New(),
		InvoiceDate:   time.Now(),
		Lines: []PurchaseLine{
			ExistingProductLine{ProductID: product.ID, SizeEU: "40", Quantity: 2, UnitCost: vnd(60)},
		},
	})

	assert.NoError(t, err)
}

func TestPurchaseInvoiceService_Delete_ReversesStock(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	invoice, err := trade.NewPurchaseInvoice("PN20250115-007", uuid.New(), time.Now(), "", nil)
	require.NoError(t, err)
	productID := uuid.New()
	require.NoError(t, invoice.AddItem(productID, "40", 5, vnd(60)))

	repos.purchases.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil).Once()
	repos.ledger.On("Decrease", mock.Anything, productID, 5).Return(nil).Once()
	repos.sizeIndex.On("DecreaseClamped", mock.Anything, productID, "40", 5).Return(nil).Once()
	repos.purchases.On("Delete", mock.Anything, invoice.ID).Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), invoice.ID))
	repos.purchases.AssertExpectations(t)
	repos.ledger.AssertExpectations(t)
}

func TestPurchaseInvoiceService_Delete_FailsWhenStockAlreadySold(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	invoice, _ := trade.NewPurchaseInvoice("PN20250115-008", uuid.New(), time.Now(), "", nil)
	productID := uuid.New()
	require.NoError(t, invoice.AddItem(productID, "40", 5, vnd(60)))

	repos.purchases.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil).Once()
	repos.ledger.On("Decrease", mock.Anything, productID, 5).Return(shared.ErrInsufficientStock).Once()

	err := svc.Delete(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	repos.purchases.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPurchaseInvoiceService_Import_CollectsPerInvoiceResults(t *testing.T) {
	repos := newTestRepos()
	svc := NewPurchaseInvoiceService(newTestScope(repos), repos.purchases, zap.NewNop())

	repos.products.On("Save", mock.Anything, mock.Anything).Return(nil)
	repos.purchases.On("Save", mock.Anything, mock.Anything).Return(nil)
	repos.ledger.On("Increase", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repos.sizeIndex.On("Increase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	results := svc.Import(context.Background(), []CreatePurchaseInvoiceInput{
		{
			InvoiceNumber: "PN20250115-010",
			SupplierID:    uuid.New(),
			InvoiceDate:   time.Now(),
			Lines: []PurchaseLine{
				NewProductLine{Name: "Giày C", Price: vnd(100), SizeEU: "40", Quantity: 1, UnitCost: vnd(60)},
			},
		},
		{
			// no lines: must fail without affecting its neighbour
			InvoiceNumber: "PN20250115-011",
			SupplierID:    uuid.New(),
			InvoiceDate:   time.Now(),
		},
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
}
