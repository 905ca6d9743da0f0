package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

// Invoice number prefixes, scoped per calendar day:
// PN20250115-001 (purchase), HD20250115-001 (sales).
const (
	PurchaseInvoicePrefix = "PN"
	SalesInvoicePrefix    = "HD"
)

// PurchaseInvoice records a stock-in from a supplier. Created atomically
// with its items and the stock credit; deleted atomically with the
// reversal.
type PurchaseInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string                `gorm:"type:varchar(30);not null;uniqueIndex"`
	SupplierID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	TotalCost     valueobject.Money     `gorm:"type:decimal(18,2);not null"`
	InvoiceDate   time.Time             `gorm:"not null;index"`
	Notes         string                `gorm:"type:text"`
	CreatedBy     *uuid.UUID            `gorm:"type:uuid"`
	Items         []PurchaseInvoiceItem `gorm:"foreignKey:PurchaseInvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseInvoice) TableName() string {
	return "purchase_invoices"
}

// PurchaseInvoiceItem is one stocked line of a purchase invoice.
// Immutable once created except via invoice deletion.
type PurchaseInvoiceItem struct {
	shared.BaseEntity
	PurchaseInvoiceID uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	SizeEU            string            `gorm:"type:varchar(20)"`
	Quantity          int               `gorm:"not null"`
	UnitCost          valueobject.Money `gorm:"type:decimal(18,2);not null"`
	TotalCost         valueobject.Money `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseInvoiceItem) TableName() string {
	return "purchase_invoice_items"
}

// NewPurchaseInvoice creates an empty purchase invoice
func NewPurchaseInvoice(invoiceNumber string, supplierID uuid.UUID, invoiceDate time.Time, notes string, createdBy *uuid.UUID) (*PurchaseInvoice, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Số hóa đơn không được để trống")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Nhà cung cấp không được để trống")
	}
	if invoiceDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Ngày hóa đơn không hợp lệ")
	}

	return &PurchaseInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     strings.TrimSpace(invoiceNumber),
		SupplierID:        supplierID,
		TotalCost:         valueobject.ZeroVND(),
		InvoiceDate:       invoiceDate,
		Notes:             notes,
		CreatedBy:         createdBy,
	}, nil
}

// AddItem appends a stocked line and recalculates the invoice total
func (pi *PurchaseInvoice) AddItem(productID uuid.UUID, sizeEU string, quantity int, unitCost valueobject.Money) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Sản phẩm không được để trống")
	}
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Giá nhập không được âm")
	}

	pi.Items = append(pi.Items, PurchaseInvoiceItem{
		BaseEntity:        shared.NewBaseEntity(),
		PurchaseInvoiceID: pi.ID,
		ProductID:         productID,
		SizeEU:            strings.TrimSpace(sizeEU),
		Quantity:          quantity,
		UnitCost:          unitCost,
		TotalCost:         unitCost.MultiplyByInt(int64(quantity)),
	})
	pi.recalculateTotal()
	return nil
}

func (pi *PurchaseInvoice) recalculateTotal() {
	total := valueobject.ZeroVND()
	for _, item := range pi.Items {
		total = total.MustAdd(item.TotalCost)
	}
	pi.TotalCost = total
	pi.UpdatedAt = time.Now()
}

// TotalQuantity returns the summed quantity over all lines
func (pi *PurchaseInvoice) TotalQuantity() int {
	total := 0
	for _, item := range pi.Items {
		total += item.Quantity
	}
	return total
}
