package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/trade"
)

// PurchaseInvoiceItemResponse is one stocked line in API responses
type PurchaseInvoiceItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SizeEU    string    `json:"size_eu"`
	Quantity  int       `json:"quantity"`
	UnitCost  float64   `json:"unit_cost"`
	TotalCost float64   `json:"total_cost"`
}

// PurchaseInvoiceResponse is a purchase invoice in API responses
type PurchaseInvoiceResponse struct {
	ID            uuid.UUID                     `json:"id"`
	InvoiceNumber string                        `json:"invoice_number"`
	SupplierID    uuid.UUID                     `json:"supplier_id"`
	TotalCost     float64                       `json:"total_cost"`
	InvoiceDate   time.Time                     `json:"invoice_date"`
	Notes         string                        `json:"notes,omitempty"`
	Items         []PurchaseInvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time                     `json:"created_at"`
}

// ToPurchaseInvoiceResponse converts a domain invoice to its response form
func ToPurchaseInvoiceResponse(inv *trade.PurchaseInvoice) PurchaseInvoiceResponse {
	items := make([]PurchaseInvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, PurchaseInvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			SizeEU:    item.SizeEU,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost.Float64(),
			TotalCost: item.TotalCost.Float64(),
		})
	}
	return PurchaseInvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		SupplierID:    inv.SupplierID,
		TotalCost:     inv.TotalCost.Float64(),
		InvoiceDate:   inv.InvoiceDate,
		Notes:         inv.Notes,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
	}
}

// SalesInvoiceItemResponse is one sold line in API responses
type SalesInvoiceItemResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	SizeEU     string    `json:"size_eu"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
}

// SalesInvoiceResponse is a sales invoice in API responses. Items carry
// only the active (quantity > 0) lines.
type SalesInvoiceResponse struct {
	ID            uuid.UUID                  `json:"id"`
	InvoiceNumber string                     `json:"invoice_number"`
	CustomerID    *uuid.UUID                 `json:"customer_id,omitempty"`
	CustomerName  string                     `json:"customer_name,omitempty"`
	CustomerPhone string                     `json:"customer_phone,omitempty"`
	CustomerEmail string                     `json:"customer_email,omitempty"`
	TotalRevenue  float64                    `json:"total_revenue"`
	InvoiceDate   time.Time                  `json:"invoice_date"`
	Notes         string                     `json:"notes,omitempty"`
	Items         []SalesInvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
}

// ToSalesInvoiceResponse converts a domain invoice to its response form,
// hiding zero-quantity rows.
func ToSalesInvoiceResponse(inv *trade.SalesInvoice) SalesInvoiceResponse {
	active := inv.ActiveItems()
	items := make([]SalesInvoiceItemResponse, 0, len(active))
	for _, item := range active {
		items = append(items, SalesInvoiceItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			SizeEU:     item.SizeEU,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.Float64(),
			TotalPrice: item.TotalPrice.Float64(),
		})
	}
	return SalesInvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		CustomerPhone: inv.CustomerPhone,
		CustomerEmail: inv.CustomerEmail,
		TotalRevenue:  inv.TotalRevenue.Float64(),
		InvoiceDate:   inv.InvoiceDate,
		Notes:         inv.Notes,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
	}
}

// ReturnExchangeItemResponse is one delta entry in API responses
type ReturnExchangeItemResponse struct {
	ID                 uuid.UUID  `json:"id"`
	SalesInvoiceItemID uuid.UUID  `json:"sales_invoice_item_id"`
	ProductID          uuid.UUID  `json:"product_id"`
	Quantity           int        `json:"quantity"`
	NewProductID       *uuid.UUID `json:"new_product_id,omitempty"`
}

// ReturnExchangeResponse is a return/exchange request in API responses
type ReturnExchangeResponse struct {
	ID             uuid.UUID                    `json:"id"`
	SalesInvoiceID uuid.UUID                    `json:"sales_invoice_id"`
	Type           string                       `json:"type"`
	Status         string                       `json:"status"`
	Reason         string                       `json:"reason"`
	Notes          string                       `json:"notes,omitempty"`
	RevenueDelta   float64                      `json:"revenue_delta"`
	Items          []ReturnExchangeItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
}

// ToReturnExchangeResponse converts a domain return/exchange to its
// response form. revenueDelta is carried separately since the aggregate
// does not store it.
func ToReturnExchangeResponse(re *trade.ReturnExchange, revenueDelta float64) ReturnExchangeResponse {
	items := make([]ReturnExchangeItemResponse, 0, len(re.Items))
	for _, item := range re.Items {
		items = append(items, ReturnExchangeItemResponse{
			ID:                 item.ID,
			SalesInvoiceItemID: item.SalesInvoiceItemID,
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			NewProductID:       item.NewProductID,
		})
	}
	return ReturnExchangeResponse{
		ID:             re.ID,
		SalesInvoiceID: re.SalesInvoiceID,
		Type:           string(re.Type),
		Status:         string(re.Status),
		Reason:         re.Reason,
		Notes:          re.Notes,
		RevenueDelta:   revenueDelta,
		Items:          items,
		CreatedAt:      re.CreatedAt,
	}
}
