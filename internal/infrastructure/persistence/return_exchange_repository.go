package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/trade"
)

// GormReturnExchangeRepository implements trade.ReturnExchangeRepository using GORM
type GormReturnExchangeRepository struct {
	db *gorm.DB
}

// NewGormReturnExchangeRepository creates a new GormReturnExchangeRepository
func NewGormReturnExchangeRepository(db *gorm.DB) *GormReturnExchangeRepository {
	return &GormReturnExchangeRepository{db: db}
}

// FindByID finds a return/exchange request with its items
func (r *GormReturnExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnExchange, error) {
	var request trade.ReturnExchange
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll finds return/exchange requests matching the filter
func (r *GormReturnExchangeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnExchange, error) {
	var requests []trade.ReturnExchange
	query := applyFilter(r.db.WithContext(ctx).Model(&trade.ReturnExchange{}), filter)
	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a return/exchange request with its items
func (r *GormReturnExchangeRepository) Save(ctx context.Context, request *trade.ReturnExchange) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(request).Error
}

// Count counts return/exchange requests matching the filter
func (r *GormReturnExchangeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.ReturnExchange{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ trade.ReturnExchangeRepository = (*GormReturnExchangeRepository)(nil)
