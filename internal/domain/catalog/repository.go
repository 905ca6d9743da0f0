package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by its exact name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockLedger mutates the authoritative per-product quantity on hand.
// Implementations operate on the caller's transaction handle and hold no
// transaction boundary of their own.
type StockLedger interface {
	// Increase credits quantity to the product's stock
	Increase(ctx context.Context, productID uuid.UUID, quantity int) error

	// Decrease debits quantity from the product's stock. Fails with
	// shared.ErrInsufficientStock when quantity on hand is too low; the
	// check and the write are a single conditional update.
	Decrease(ctx context.Context, productID uuid.UUID, quantity int) error
}

// SizeIndex is the optional per-size quantity breakdown. It is a
// best-effort collaborator: callers log and continue on error, and the
// no-op implementation stands in when the table is absent.
type SizeIndex interface {
	// Increase credits quantity to the (product, size) row, creating it
	// when missing.
	Increase(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error

	// Decrease debits quantity from the (product, size) row. Fails with
	// shared.ErrInsufficientStock when the row's quantity is too low.
	Decrease(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error

	// DecreaseClamped debits quantity but clamps the row at zero instead
	// of failing. Used when reversing purchase credits.
	DecreaseClamped(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error

	// Quantities returns the per-size quantities recorded for a product.
	Quantities(ctx context.Context, productID uuid.UUID) (map[string]int, error)
}

// NoOpSizeIndex is the stand-in used when the per-size table is not
// provisioned. All mutations succeed without effect.
type NoOpSizeIndex struct{}

func (NoOpSizeIndex) Increase(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	return nil
}

func (NoOpSizeIndex) Decrease(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	return nil
}

func (NoOpSizeIndex) DecreaseClamped(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	return nil
}

func (NoOpSizeIndex) Quantities(ctx context.Context, productID uuid.UUID) (map[string]int, error) {
	return nil, nil
}

var _ SizeIndex = (*NoOpSizeIndex)(nil)
