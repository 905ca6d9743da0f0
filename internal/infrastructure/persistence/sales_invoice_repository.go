package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/trade"
)

// GormSalesInvoiceRepository implements trade.SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSalesInvoiceRepository creates a new GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{db: db}
}

// FindByID finds a sales invoice with its items
func (r *GormSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesInvoice, error) {
	var invoice trade.SalesInvoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds a sales invoice by its invoice number
func (r *GormSalesInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*trade.SalesInvoice, error) {
	var invoice trade.SalesInvoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds sales invoices matching the filter, items included
func (r *GormSalesInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesInvoice, error) {
	var invoices []trade.SalesInvoice
	query := applyFilter(r.db.WithContext(ctx).Model(&trade.SalesInvoice{}), filter, "invoice_number", "customer_name", "customer_phone")
	if err := query.Preload("Items").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates a sales invoice together with its items.
// FullSaveAssociations persists in-place item rewrites from exchanges.
func (r *GormSalesInvoiceRepository) Save(ctx context.Context, invoice *trade.SalesInvoice) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(invoice).Error
}

// Count counts sales invoices matching the filter
func (r *GormSalesInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.SalesInvoice{}), filter, "invoice_number", "customer_name", "customer_phone")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextInvoiceNumber returns the next sequential number for the date,
// e.g. HD20250115-007
func (r *GormSalesInvoiceRepository) NextInvoiceNumber(ctx context.Context, date time.Time) (string, error) {
	return nextInvoiceNumber(ctx, r.db, "sales_invoices", trade.SalesInvoicePrefix, date)
}

var _ trade.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)
