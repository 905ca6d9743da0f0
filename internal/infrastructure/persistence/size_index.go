package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/shared"
)

// GormSizeIndex implements catalog.SizeIndex over the product_sizes table
type GormSizeIndex struct {
	db *gorm.DB
}

// NewGormSizeIndex creates a new GormSizeIndex
func NewGormSizeIndex(db *gorm.DB) *GormSizeIndex {
	return &GormSizeIndex{db: db}
}

// Increase credits quantity to the (product, size) row, creating it when missing
func (s *GormSizeIndex) Increase(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	result := s.db.WithContext(ctx).Model(&catalog.ProductSize{}).
		Where("product_id = ? AND size_value = ?", productID, sizeValue).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	row := catalog.NewProductSize(productID, sizeValue, quantity)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent writer created the row first, retry the update
			return s.db.WithContext(ctx).Model(&catalog.ProductSize{}).
				Where("product_id = ? AND size_value = ?", productID, sizeValue).
				Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
		}
		return err
	}
	return nil
}

// Decrease debits quantity from the (product, size) row, failing when the
// row's quantity is too low
func (s *GormSizeIndex) Decrease(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	result := s.db.WithContext(ctx).Model(&catalog.ProductSize{}).
		Where("product_id = ? AND size_value = ? AND quantity >= ?", productID, sizeValue, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

// DecreaseClamped debits quantity but clamps the row at zero instead of failing
func (s *GormSizeIndex) DecreaseClamped(ctx context.Context, productID uuid.UUID, sizeValue string, quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	return s.db.WithContext(ctx).Model(&catalog.ProductSize{}).
		Where("product_id = ? AND size_value = ?", productID, sizeValue).
		Update("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", quantity)).Error
}

// Quantities returns the per-size quantities recorded for a product
func (s *GormSizeIndex) Quantities(ctx context.Context, productID uuid.UUID) (map[string]int, error) {
	var rows []catalog.ProductSize
	if err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	quantities := make(map[string]int, len(rows))
	for _, row := range rows {
		quantities[row.SizeValue] = row.Quantity
	}
	return quantities, nil
}

var _ catalog.SizeIndex = (*GormSizeIndex)(nil)
