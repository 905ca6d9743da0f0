package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/trade"
)

// GormPurchaseInvoiceRepository implements trade.PurchaseInvoiceRepository using GORM
type GormPurchaseInvoiceRepository struct {
	db *gorm.DB
}

// NewGormPurchaseInvoiceRepository creates a new GormPurchaseInvoiceRepository
func NewGormPurchaseInvoiceRepository(db *gorm.DB) *GormPurchaseInvoiceRepository {
	return &GormPurchaseInvoiceRepository{db: db}
}

// FindByID finds a purchase invoice with its items
func (r *GormPurchaseInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseInvoice, error) {
	var invoice trade.PurchaseInvoice
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

// FindByNumber finds a purchase invoice by its invoice number
func (r *GormPurchaseInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*trade.PurchaseInvoice, error) {
	var invoice trade.PurchaseInvoice
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

// FindAll finds purchase invoices matching the filter, items included
func (r *GormPurchaseInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseInvoice, error) {
	var invoices []trade.PurchaseInvoice
	query := applyFilter(r.db.WithContext(ctx).Model(&trade.PurchaseInvoice{}), filter, "invoice_number")
	if err := query.Preload("Items").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates a purchase invoice together with its items
func (r *GormPurchaseInvoiceRepository) Save(ctx context.Context, invoice *trade.PurchaseInvoice) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(invoice).Error
}

// Delete deletes a purchase invoice; items cascade
func (r *GormPurchaseInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Select("Items").
		Delete(&trade.PurchaseInvoice{BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: id}}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts purchase invoices matching the filter
func (r *GormPurchaseInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.PurchaseInvoice{}), filter, "invoice_number")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextInvoiceNumber returns the next sequential number for the date,
// e.g. PN20250115-003. The scan runs on the caller's transaction handle;
// the invoice number's unique index backstops concurrent creators.
func (r *GormPurchaseInvoiceRepository) NextInvoiceNumber(ctx context.Context, date time.Time) (string, error) {
	return nextInvoiceNumber(ctx, r.db, "purchase_invoices", trade.PurchaseInvoicePrefix, date)
}

var _ trade.PurchaseInvoiceRepository = (*GormPurchaseInvoiceRepository)(nil)

// nextInvoiceNumber scans a table's invoice numbers for the given day and
// returns prefix+date with the next three-digit sequence.
func nextInvoiceNumber(ctx context.Context, db *gorm.DB, table, prefix string, date time.Time) (string, error) {
	day := prefix + date.Format("20060102")

	var numbers []string
	if err := db.WithContext(ctx).Table(table).
		Where("invoice_number LIKE ?", day+"-%").
		Pluck("invoice_number", &numbers).Error; err != nil {
		return "", err
	}

	maxSeq := 0
	for _, number := range numbers {
		var seq int
		if _, err := fmt.Sscanf(number, day+"-%d", &seq); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s-%03d", day, maxSeq+1), nil
}
