package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/shoestore/backend/internal/application/trade"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
	"github.com/shoestore/backend/internal/domain/trade"
)

// ReturnExchangeHandler handles return and exchange endpoints
type ReturnExchangeHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnExchangeService
}

// NewReturnExchangeHandler creates a new ReturnExchangeHandler
func NewReturnExchangeHandler(returnService *tradeapp.ReturnExchangeService) *ReturnExchangeHandler {
	return &ReturnExchangeHandler{returnService: returnService}
}

// RegisterRoutes registers return/exchange routes
func (h *ReturnExchangeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/return-exchanges")
	{
		returns.GET("", h.List)
		returns.GET("/:id", h.GetByID)
		returns.POST("", h.Create)
	}
}

// ReturnExchangeItemRequest amends one sold line. new_product_id and
// new_unit_price apply to exchanges only.
type ReturnExchangeItemRequest struct {
	SalesInvoiceItemID uuid.UUID  `json:"sales_invoice_item_id" binding:"required"`
	Quantity           int        `json:"quantity" binding:"required,gt=0"`
	NewProductID       *uuid.UUID `json:"new_product_id"`
	NewUnitPrice       *float64   `json:"new_unit_price"`
}

// CreateReturnExchangeRequest is the request body for a return or
// exchange. The type applies to every item of the request.
type CreateReturnExchangeRequest struct {
	SalesInvoiceID uuid.UUID                   `json:"sales_invoice_id" binding:"required"`
	Type           string                      `json:"type" binding:"required,oneof=return exchange"`
	Reason         string                      `json:"reason" binding:"required"`
	Notes          string                      `json:"notes"`
	Items          []ReturnExchangeItemRequest `json:"items" binding:"required,min=1,dive"`
}

// List returns a paginated return/exchange list
func (h *ReturnExchangeHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Tham số phân trang không hợp lệ")
		return
	}

	page, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one return/exchange request with its items
func (h *ReturnExchangeHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.InvalidID(c)
		return
	}

	request, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// Create runs the return/exchange engine: stock, invoice lines and
// revenue are reconciled in one transaction.
func (h *ReturnExchangeHandler) Create(c *gin.Context) {
	var req CreateReturnExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := tradeapp.CreateReturnExchangeInput{
		SalesInvoiceID: req.SalesInvoiceID,
		Type:           trade.ReturnExchangeType(req.Type),
		Reason:         req.Reason,
		Notes:          req.Notes,
	}
	for _, item := range req.Items {
		line := tradeapp.ReturnExchangeLineInput{
			SalesInvoiceItemID: item.SalesInvoiceItemID,
			Quantity:           item.Quantity,
			NewProductID:       item.NewProductID,
		}
		if item.NewUnitPrice != nil {
			price := valueobject.NewMoneyVNDFromFloat(*item.NewUnitPrice)
			line.NewUnitPrice = &price
		}
		input.Lines = append(input.Lines, line)
	}

	out, err := h.returnService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}
