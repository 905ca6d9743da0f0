package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/partner"
	"github.com/shoestore/backend/internal/domain/shared"
)

// SupplierRequest is the payload for creating or updating a supplier
type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier aggregate to its API representation
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SupplierService handles supplier operations
type SupplierService struct {
	suppliers partner.SupplierRepository
	logger    *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, logger: logger}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.ContactPerson, req.Phone, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	supplier.Notes = req.Notes

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update updates a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.ContactPerson, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierResponse], error) {
	suppliers, err := s.suppliers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.suppliers.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		items = append(items, ToSupplierResponse(&suppliers[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.suppliers.Delete(ctx, id)
}
