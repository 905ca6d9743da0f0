package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoestore/backend/internal/domain/catalog"
)

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64   `json:"discount_price"`
	CategoryID    *uuid.UUID `json:"category_id"`
	StockQuantity int        `json:"stock_quantity" binding:"gte=0"`
	ImageURL      string     `json:"image_url"`
	Brand         string     `json:"brand"`
	Size          string     `json:"size"`
	Color         string     `json:"color"`
}

// UpdateProductRequest is the payload for updating a product
type UpdateProductRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64   `json:"discount_price"`
	CategoryID    *uuid.UUID `json:"category_id"`
	ImageURL      string     `json:"image_url"`
	Brand         string     `json:"brand"`
	Size          string     `json:"size"`
	Color         string     `json:"color"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	DiscountPrice *float64       `json:"discount_price,omitempty"`
	CategoryID    *uuid.UUID     `json:"category_id,omitempty"`
	StockQuantity int            `json:"stock_quantity"`
	ImageURL      string         `json:"image_url"`
	Brand         string         `json:"brand"`
	Size          string         `json:"size"`
	Color         string         `json:"color"`
	Sizes         map[string]int `json:"sizes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.Float64(),
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		Brand:         p.Brand,
		Size:          p.Size,
		Color:         p.Color,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.DiscountPrice != nil {
		v := p.DiscountPrice.Float64()
		resp.DiscountPrice = &v
	}
	return resp
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category aggregate to its API representation
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
