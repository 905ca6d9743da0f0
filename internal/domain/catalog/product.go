package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

// Product is the aggregate root for a product-color SKU. StockQuantity is
// the authoritative quantity on hand; per-size rows (ProductSize) are an
// advisory breakdown of it.
type Product struct {
	shared.BaseAggregateRoot
	Name          string             `gorm:"type:varchar(200);not null;index"`
	Description   string             `gorm:"type:text"`
	Price         valueobject.Money  `gorm:"type:decimal(18,2);not null"`
	DiscountPrice *valueobject.Money `gorm:"type:decimal(18,2)"`
	CategoryID    *uuid.UUID         `gorm:"type:uuid;index"`
	StockQuantity int                `gorm:"not null;default:0"`
	ImageURL      string             `gorm:"type:text"`
	Brand         string             `gorm:"type:varchar(100)"`
	// Size is the comma-joined list of sizes this SKU is stocked in,
	// e.g. "40, 41, 42". Kept as the fallback when no per-size rows exist.
	Size  string `gorm:"type:varchar(200)"`
	Color string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(name string, price valueobject.Money, categoryID *uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tên sản phẩm không được để trống")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Giá sản phẩm không được âm")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             price,
		CategoryID:        categoryID,
		StockQuantity:     0,
	}, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, brand, color, imageURL string, price valueobject.Money) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tên sản phẩm không được để trống")
	}
	if price.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Giá sản phẩm không được âm")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Brand = brand
	p.Color = color
	p.ImageURL = imageURL
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// EffectivePrice returns the discount price when set, the list price otherwise
func (p *Product) EffectivePrice() valueobject.Money {
	if p.DiscountPrice != nil && !p.DiscountPrice.IsZero() {
		return *p.DiscountPrice
	}
	return p.Price
}

// CanFulfill reports whether the aggregate stock covers the requested quantity.
// Advisory only: the write-time conditional update is the authoritative check.
func (p *Product) CanFulfill(quantity int) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}

// Sizes returns the parsed size list ("40, 41" -> ["40", "41"])
func (p *Product) Sizes() []string {
	return ParseSizeList(p.Size)
}

// SetSizes stores the given sizes as a sorted comma-joined list
func (p *Product) SetSizes(sizes []string) {
	p.Size = JoinSizeList(sizes)
}

// MergeSizes adds any sizes not yet present and re-sorts the list
func (p *Product) MergeSizes(sizes []string) {
	merged := append(p.Sizes(), sizes...)
	p.SetSizes(merged)
}

// ParseSizeList splits a comma-joined size string into trimmed values
func ParseSizeList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			sizes = append(sizes, v)
		}
	}
	return sizes
}

// JoinSizeList deduplicates, sorts and comma-joins size values.
// Numeric sizes sort numerically ("9" before "40").
func JoinSizeList(sizes []string) string {
	seen := make(map[string]struct{}, len(sizes))
	unique := make([]string, 0, len(sizes))
	for _, s := range sizes {
		v := strings.TrimSpace(s)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sort.Slice(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		if len(a) != len(b) && isNumeric(a) && isNumeric(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return strings.Join(unique, ", ")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
