package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/shoestore/backend/internal/application/trade"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

// SalesInvoiceHandler handles sales invoice endpoints
type SalesInvoiceHandler struct {
	BaseHandler
	salesService *tradeapp.SalesInvoiceService
}

// NewSalesInvoiceHandler creates a new SalesInvoiceHandler
func NewSalesInvoiceHandler(salesService *tradeapp.SalesInvoiceService) *SalesInvoiceHandler {
	return &SalesInvoiceHandler{salesService: salesService}
}

// RegisterRoutes registers sales invoice routes
func (h *SalesInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/sales-invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/next-number", h.NextNumber)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("", h.Create)
	}
}

// SalesItemRequest is one sold line. unit_price overrides the product's
// effective price when set.
type SalesItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice *float64  `json:"unit_price"`
}

// CreateSalesInvoiceRequest is the request body for creating a sales
// invoice
type CreateSalesInvoiceRequest struct {
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   string             `json:"invoice_date"`
	CustomerID    *uuid.UUID         `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail string             `json:"customer_email" binding:"omitempty,email"`
	Notes         string             `json:"notes"`
	Items         []SalesItemRequest `json:"items" binding:"required,min=1,dive"`
}

// List returns a paginated sales invoice list. Search matches invoice
// number, customer name and phone.
func (h *SalesInvoiceHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Tham số phân trang không hợp lệ")
		return
	}

	page, err := h.salesService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one sales invoice with its active items
func (h *SalesInvoiceHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	invoice, err := h.salesService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Create runs the sales engine for one invoice
func (h *SalesInvoiceHandler) Create(c *gin.Context) {
	var req CreateSalesInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := tradeapp.CreateSalesInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}
	if req.InvoiceDate != "" {
		date, err := parseDateTime(req.InvoiceDate)
		if err != nil {
			h.BadRequest(c, "Ngày hóa đơn không hợp lệ")
			return
		}
		input.InvoiceDate = date
	}
	for _, item := range req.Items {
		line := tradeapp.SalesLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.UnitPrice != nil {
			price := valueobject.NewMoneyVNDFromFloat(*item.UnitPrice)
			line.UnitPrice = &price
		}
		input.Lines = append(input.Lines, line)
	}

	out, err := h.salesService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// NextNumber returns the next free invoice number for today
func (h *SalesInvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.salesService.NextNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"invoice_number": number})
}
