package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

// SalesInvoice records a stock-out sale. TotalRevenue is derived at
// creation and later adjusted by return/exchange deltas. Customer fields
// are a denormalized snapshot; CustomerID is a weak reference to the
// (possibly implicitly provisioned) user account.
type SalesInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string             `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index"`
	CustomerName  string             `gorm:"type:varchar(100)"`
	CustomerPhone string             `gorm:"type:varchar(20)"`
	CustomerEmail string             `gorm:"type:varchar(100)"`
	TotalRevenue  valueobject.Money  `gorm:"type:decimal(18,2);not null"`
	InvoiceDate   time.Time          `gorm:"not null;index"`
	Notes         string             `gorm:"type:text"`
	Items         []SalesInvoiceItem `gorm:"foreignKey:SalesInvoiceID"`
}

// TableName returns the table name for GORM
func (SalesInvoice) TableName() string {
	return "sales_invoices"
}

// SalesInvoiceItem is one sold line. Mutable: returns shrink
// quantity/total in place, full exchanges rewrite the row, partial
// exchanges append a sibling row. Rows are never deleted once a
// ReturnExchangeItem references them; fully returned rows stay with
// quantity zero and are hidden from listings.
type SalesInvoiceItem struct {
	shared.BaseEntity
	SalesInvoiceID uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	SizeEU         string            `gorm:"type:varchar(20)"`
	Quantity       int               `gorm:"not null"`
	UnitPrice      valueobject.Money `gorm:"type:decimal(18,2);not null"`
	TotalPrice     valueobject.Money `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SalesInvoiceItem) TableName() string {
	return "sales_invoice_items"
}

// NewSalesInvoice creates an empty sales invoice
func NewSalesInvoice(invoiceNumber string, invoiceDate time.Time, notes string) (*SalesInvoice, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Số hóa đơn không được để trống")
	}
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	return &SalesInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     strings.TrimSpace(invoiceNumber),
		TotalRevenue:      valueobject.ZeroVND(),
		InvoiceDate:       invoiceDate,
		Notes:             notes,
	}, nil
}

// SetCustomer records the customer snapshot and optional account link
func (si *SalesInvoice) SetCustomer(customerID *uuid.UUID, name, phone, email string) {
	si.CustomerID = customerID
	si.CustomerName = name
	si.CustomerPhone = phone
	si.CustomerEmail = strings.ToLower(strings.TrimSpace(email))
}

// AddItem appends a sold line and recalculates total revenue
func (si *SalesInvoice) AddItem(productID uuid.UUID, sizeEU string, quantity int, unitPrice valueobject.Money) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Sản phẩm không được để trống")
	}
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Đơn giá không được âm")
	}

	si.Items = append(si.Items, SalesInvoiceItem{
		BaseEntity:     shared.NewBaseEntity(),
		SalesInvoiceID: si.ID,
		ProductID:      productID,
		SizeEU:         strings.TrimSpace(sizeEU),
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     unitPrice.MultiplyByInt(int64(quantity)),
	})
	si.recalculateRevenue()
	return nil
}

func (si *SalesInvoice) recalculateRevenue() {
	total := valueobject.ZeroVND()
	for _, item := range si.Items {
		total = total.MustAdd(item.TotalPrice)
	}
	si.TotalRevenue = total
	si.UpdatedAt = time.Now()
}

// Item returns a pointer to the line with the given ID, or ErrNotFound
func (si *SalesInvoice) Item(itemID uuid.UUID) (*SalesInvoiceItem, error) {
	for i := range si.Items {
		if si.Items[i].ID == itemID {
			return &si.Items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// ActiveItems returns the lines with quantity > 0 (fully returned rows
// are retained but hidden)
func (si *SalesInvoice) ActiveItems() []SalesInvoiceItem {
	active := make([]SalesInvoiceItem, 0, len(si.Items))
	for _, item := range si.Items {
		if item.Quantity > 0 {
			active = append(active, item)
		}
	}
	return active
}

// AppendExchangeLine inserts the sibling row created by a partial exchange
func (si *SalesInvoice) AppendExchangeLine(productID uuid.UUID, sizeEU string, quantity int, unitPrice valueobject.Money) *SalesInvoiceItem {
	si.Items = append(si.Items, SalesInvoiceItem{
		BaseEntity:     shared.NewBaseEntity(),
		SalesInvoiceID: si.ID,
		ProductID:      productID,
		SizeEU:         sizeEU,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     unitPrice.MultiplyByInt(int64(quantity)),
	})
	return &si.Items[len(si.Items)-1]
}

// ApplyRevenueDelta adjusts the invoice total by a return/exchange delta
func (si *SalesInvoice) ApplyRevenueDelta(delta valueobject.Money) error {
	adjusted, err := si.TotalRevenue.Add(delta)
	if err != nil {
		return err
	}
	si.TotalRevenue = adjusted
	si.UpdatedAt = time.Now()
	si.IncrementVersion()
	return nil
}

// Shrink reduces the line's quantity by the returned amount and keeps
// total_price consistent. The row survives at quantity zero.
func (item *SalesInvoiceItem) Shrink(quantity int) error {
	if quantity <= 0 || quantity > item.Quantity {
		return shared.ErrInvalidQuantity
	}
	item.Quantity -= quantity
	item.TotalPrice = item.UnitPrice.MultiplyByInt(int64(item.Quantity))
	item.UpdatedAt = time.Now()
	return nil
}

// Rewrite repoints the line at a different product, keeping the quantity.
// Used for full exchanges of a line.
func (item *SalesInvoiceItem) Rewrite(productID uuid.UUID, sizeEU string, unitPrice valueobject.Money) {
	item.ProductID = productID
	item.SizeEU = sizeEU
	item.UnitPrice = unitPrice
	item.TotalPrice = unitPrice.MultiplyByInt(int64(item.Quantity))
	item.UpdatedAt = time.Now()
}
