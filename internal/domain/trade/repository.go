package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
)

// PurchaseInvoiceRepository defines the interface for purchase invoice persistence
type PurchaseInvoiceRepository interface {
	// FindByID loads an invoice with its items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseInvoice, error)

	// FindByNumber loads an invoice by its unique number
	FindByNumber(ctx context.Context, invoiceNumber string) (*PurchaseInvoice, error)

	// FindAll lists invoices matching the filter (items not preloaded)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseInvoice, error)

	// Save persists the invoice and its items
	Save(ctx context.Context, invoice *PurchaseInvoice) error

	// Delete removes the invoice; item rows cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextInvoiceNumber derives the next PN<YYYYMMDD>-<seq3> number for
	// the given day by scanning the day's maximum trailing sequence.
	NextInvoiceNumber(ctx context.Context, date time.Time) (string, error)
}

// SalesInvoiceRepository defines the interface for sales invoice persistence
type SalesInvoiceRepository interface {
	// FindByID loads an invoice with all item rows, zeroed ones included
	FindByID(ctx context.Context, id uuid.UUID) (*SalesInvoice, error)

	// FindByNumber loads an invoice by its unique number
	FindByNumber(ctx context.Context, invoiceNumber string) (*SalesInvoice, error)

	// FindAll lists invoices matching the filter (items not preloaded)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesInvoice, error)

	// Save persists the invoice and all of its item rows
	Save(ctx context.Context, invoice *SalesInvoice) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextInvoiceNumber derives the next HD<YYYYMMDD>-<seq3> number
	NextInvoiceNumber(ctx context.Context, date time.Time) (string, error)
}

// ReturnExchangeRepository defines the interface for return/exchange persistence
type ReturnExchangeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnExchange, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ReturnExchange, error)
	Save(ctx context.Context, returnExchange *ReturnExchange) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
