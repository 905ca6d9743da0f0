package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shoestore/backend/internal/application/catalog"
	"github.com/shoestore/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes. Deletion is admin-only.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
		products.GET("/:id/sizes", h.Sizes)
		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.Delete)
	}
}

// List returns a paginated product list. Search matches name, brand and
// color.
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Tham số phân trang không hợp lệ")
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one product with its per-size stock breakdown
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Sizes returns the per-size stock breakdown for one product
func (h *ProductHandler) Sizes(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	sizes, err := h.productService.GetSizes(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sizes)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update modifies a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
