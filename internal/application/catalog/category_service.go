package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/shared"
)

// CategoryService handles category operations
type CategoryService struct {
	categories catalog.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

// Create creates a new category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categories.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Danh mục đã tồn tại")
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories matching the filter
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	categories, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categories.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToCategoryResponse(&categories[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
