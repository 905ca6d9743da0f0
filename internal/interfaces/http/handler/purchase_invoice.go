package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/shoestore/backend/internal/application/trade"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
	"github.com/shoestore/backend/internal/interfaces/http/middleware"
)

// parseDateTime parses a datetime string in the formats clients send
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// PurchaseInvoiceHandler handles purchase invoice endpoints
type PurchaseInvoiceHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseInvoiceService
}

// NewPurchaseInvoiceHandler creates a new PurchaseInvoiceHandler
func NewPurchaseInvoiceHandler(purchaseService *tradeapp.PurchaseInvoiceService) *PurchaseInvoiceHandler {
	return &PurchaseInvoiceHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase invoice routes. Deleting an invoice
// reverses its stock credit, so it is admin-only.
func (h *PurchaseInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/purchase-invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/next-number", h.NextNumber)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("", h.Create)
		invoices.POST("/import", h.Import)
		invoices.DELETE("/:id", middleware.RequireRole("admin"), h.Delete)
	}
}

// PurchaseItemRequest is one line of a purchase invoice. Either
// product_id references an existing product, or name/price describe a
// product created on the fly.
type PurchaseItemRequest struct {
	ProductID  *uuid.UUID `json:"product_id"`
	Name       string     `json:"name"`
	Price      *float64   `json:"price"`
	CategoryID *uuid.UUID `json:"category_id"`
	Brand      string     `json:"brand"`
	Color      string     `json:"color"`
	ImageURL   string     `json:"image_url"`
	SizeEU     string     `json:"size_eu"`
	Quantity   int        `json:"quantity" binding:"required,gt=0"`
	UnitCost   float64    `json:"unit_cost" binding:"gte=0"`
}

// CreatePurchaseInvoiceRequest is the request body for creating a
// purchase invoice
type CreatePurchaseInvoiceRequest struct {
	InvoiceNumber string                `json:"invoice_number"`
	SupplierID    uuid.UUID             `json:"supplier_id" binding:"required"`
	InvoiceDate   string                `json:"invoice_date"`
	Notes         string                `json:"notes"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// toInput converts the request body into the purchase engine's input
func (r CreatePurchaseInvoiceRequest) toInput(createdBy *uuid.UUID) (tradeapp.CreatePurchaseInvoiceInput, error) {
	input := tradeapp.CreatePurchaseInvoiceInput{
		InvoiceNumber: r.InvoiceNumber,
		SupplierID:    r.SupplierID,
		Notes:         r.Notes,
		CreatedBy:     createdBy,
	}

	if r.InvoiceDate != "" {
		date, err := parseDateTime(r.InvoiceDate)
		if err != nil {
			return input, fmt.Errorf("invalid invoice_date: %w", err)
		}
		input.InvoiceDate = date
	}

	for i, item := range r.Items {
		unitCost := valueobject.NewMoneyVNDFromFloat(item.UnitCost)
		if item.ProductID != nil {
			input.Lines = append(input.Lines, tradeapp.ExistingProductLine{
				ProductID: *item.ProductID,
				SizeEU:    item.SizeEU,
				Quantity:  item.Quantity,
				UnitCost:  unitCost,
			})
			continue
		}
		if item.Name == "" || item.Price == nil {
			return input, fmt.Errorf("item %d: either product_id or name and price are required", i)
		}
		input.Lines = append(input.Lines, tradeapp.NewProductLine{
			Name:       item.Name,
			Price:      valueobject.NewMoneyVNDFromFloat(*item.Price),
			CategoryID: item.CategoryID,
			Brand:      item.Brand,
			Color:      item.Color,
			ImageURL:   item.ImageURL,
			SizeEU:     item.SizeEU,
			Quantity:   item.Quantity,
			UnitCost:   unitCost,
		})
	}
	return input, nil
}

// List returns a paginated purchase invoice list
func (h *PurchaseInvoiceHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Tham số phân trang không hợp lệ")
		return
	}

	page, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one purchase invoice with its items
func (h *PurchaseInvoiceHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	invoice, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Create runs the purchase engine for one invoice
func (h *PurchaseInvoiceHandler) Create(c *gin.Context) {
	var req CreatePurchaseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input, err := req.toInput(currentUserID(c))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	out, err := h.purchaseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// ImportPurchaseInvoicesRequest is a batch of invoices to import
type ImportPurchaseInvoicesRequest struct {
	Invoices []CreatePurchaseInvoiceRequest `json:"invoices" binding:"required,min=1,dive"`
}

// Import creates many invoices, reporting per-invoice success/failure.
// A failed invoice does not abort the rest of the batch.
func (h *PurchaseInvoiceHandler) Import(c *gin.Context) {
	var req ImportPurchaseInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Dữ liệu nhập hàng loạt không hợp lệ")
		return
	}

	createdBy := currentUserID(c)
	inputs := make([]tradeapp.CreatePurchaseInvoiceInput, 0, len(req.Invoices))
	for i, invoice := range req.Invoices {
		input, err := invoice.toInput(createdBy)
		if err != nil {
			h.BadRequest(c, fmt.Sprintf("invoice %d: %v", i, err))
			return
		}
		inputs = append(inputs, input)
	}

	results := h.purchaseService.Import(c.Request.Context(), inputs)
	h.Success(c, results)
}

// Delete removes a purchase invoice and reverses its stock credit
func (h *PurchaseInvoiceHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// NextNumber returns the next free invoice number for today
func (h *PurchaseInvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.purchaseService.NextNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"invoice_number": number})
}

// currentUserID returns the authenticated user's ID, or nil when the
// claims are missing or malformed
func currentUserID(c *gin.Context) *uuid.UUID {
	id, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		return nil
	}
	return &id
}
