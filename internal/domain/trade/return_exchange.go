package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoestore/backend/internal/domain/shared"
)

// ReturnExchangeType discriminates the two request kinds. The type is
// request-wide: items of a return never carry a new product, items of an
// exchange always do.
type ReturnExchangeType string

const (
	TypeReturn   ReturnExchangeType = "return"
	TypeExchange ReturnExchangeType = "exchange"
)

// IsValid reports whether the type is a known value
func (t ReturnExchangeType) IsValid() bool {
	return t == TypeReturn || t == TypeExchange
}

// ReturnExchangeStatus tracks the request lifecycle. Transitions
// pending -> completed inside one transaction, so pending is only
// observable after a crash mid-transaction.
type ReturnExchangeStatus string

const (
	StatusPending   ReturnExchangeStatus = "pending"
	StatusCompleted ReturnExchangeStatus = "completed"
)

// ReturnExchange is the delta log over a sales invoice's materialized
// line items: each item records which original line it amends and by how
// much, while the line itself is shrunk/rewritten in the same transaction.
type ReturnExchange struct {
	shared.BaseAggregateRoot
	SalesInvoiceID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Type           ReturnExchangeType   `gorm:"type:varchar(20);not null"`
	Status         ReturnExchangeStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Reason         string               `gorm:"type:text"`
	Notes          string               `gorm:"type:text"`
	Items          []ReturnExchangeItem `gorm:"foreignKey:ReturnExchangeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReturnExchange) TableName() string {
	return "return_exchanges"
}

// ReturnExchangeItem is one delta entry. SalesInvoiceItemID back-references
// the amended line without owning it; ProductID is the returned (old)
// product; NewProductID is set only on exchanges.
type ReturnExchangeItem struct {
	shared.BaseEntity
	ReturnExchangeID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SalesInvoiceItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity           int        `gorm:"not null"`
	NewProductID       *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ReturnExchangeItem) TableName() string {
	return "return_exchange_items"
}

// NewReturnExchange creates a pending return/exchange request
func NewReturnExchange(salesInvoiceID uuid.UUID, typ ReturnExchangeType, reason, notes string) (*ReturnExchange, error) {
	if salesInvoiceID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Hóa đơn bán không được để trống")
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Loại yêu cầu phải là return hoặc exchange")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lý do không được để trống")
	}

	return &ReturnExchange{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SalesInvoiceID:    salesInvoiceID,
		Type:              typ,
		Status:            StatusPending,
		Reason:            strings.TrimSpace(reason),
		Notes:             notes,
	}, nil
}

// AddItem records a delta entry. The item set must be homogeneous with the
// request type: exchange items require a new product, return items must
// not carry one.
func (re *ReturnExchange) AddItem(salesInvoiceItemID, productID uuid.UUID, quantity int, newProductID *uuid.UUID) error {
	if salesInvoiceItemID == uuid.Nil || productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Dòng hóa đơn không hợp lệ")
	}
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	switch re.Type {
	case TypeExchange:
		if newProductID == nil || *newProductID == uuid.Nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Đổi hàng phải có sản phẩm thay thế")
		}
	case TypeReturn:
		if newProductID != nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Trả hàng không được kèm sản phẩm thay thế")
		}
	}

	re.Items = append(re.Items, ReturnExchangeItem{
		BaseEntity:         shared.NewBaseEntity(),
		ReturnExchangeID:   re.ID,
		SalesInvoiceItemID: salesInvoiceItemID,
		ProductID:          productID,
		Quantity:           quantity,
		NewProductID:       newProductID,
	})
	return nil
}

// Complete transitions pending -> completed
func (re *ReturnExchange) Complete() error {
	if re.Status != StatusPending {
		return shared.ErrInvalidState
	}
	if len(re.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Yêu cầu phải có ít nhất một sản phẩm")
	}
	re.Status = StatusCompleted
	re.UpdatedAt = time.Now()
	re.IncrementVersion()
	return nil
}

// IsExchange reports whether this request exchanges rather than returns
func (re *ReturnExchange) IsExchange() bool {
	return re.Type == TypeExchange
}
