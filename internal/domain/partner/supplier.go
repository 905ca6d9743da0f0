package partner

import (
	"strings"
	"time"

	"github.com/shoestore/backend/internal/domain/shared"
)

// Supplier is a purchasing counterpart referenced by purchase invoices
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"type:varchar(200);not null"`
	ContactPerson string `gorm:"type:varchar(100)"`
	Phone         string `gorm:"type:varchar(20)"`
	Email         string `gorm:"type:varchar(100)"`
	Address       string `gorm:"type:text"`
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactPerson, phone, email, address string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tên nhà cung cấp không được để trống")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		ContactPerson:     contactPerson,
		Phone:             phone,
		Email:             email,
		Address:           address,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, contactPerson, phone, email, address, notes string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tên nhà cung cấp không được để trống")
	}
	s.Name = strings.TrimSpace(name)
	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
