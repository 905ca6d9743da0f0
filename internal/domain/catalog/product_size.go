package catalog

import (
	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
)

// ProductSize is one row of the normalized per-size quantity table.
// The table is an advisory secondary index over Product.StockQuantity:
// sum(quantity) per product should track the aggregate but is not enforced.
type ProductSize struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_size,priority:1"`
	SizeValue string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_product_size,priority:2"`
	Quantity  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductSize) TableName() string {
	return "product_sizes"
}

// NewProductSize creates a per-size quantity row
func NewProductSize(productID uuid.UUID, sizeValue string, quantity int) *ProductSize {
	return &ProductSize{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		SizeValue:  sizeValue,
		Quantity:   quantity,
	}
}
