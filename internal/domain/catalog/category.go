package catalog

import (
	"strings"
	"time"

	"github.com/shoestore/backend/internal/domain/shared"
)

// Category groups products for browsing and reporting
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tên danh mục không được để trống")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
	}, nil
}

// Update updates the category's information
func (c *Category) Update(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tên danh mục không được để trống")
	}
	c.Name = strings.TrimSpace(name)
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
