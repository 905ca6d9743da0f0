package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
)

// ProductService handles product catalog operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	sizeIndex  catalog.SizeIndex
	logger     *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	sizeIndex catalog.SizeIndex,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		sizeIndex:  sizeIndex,
		logger:     logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("VALIDATION_ERROR", "Danh mục không tồn tại")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Name, valueobject.NewMoneyVNDFromFloat(req.Price), req.CategoryID)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.Brand = req.Brand
	product.Color = req.Color
	product.ImageURL = req.ImageURL
	product.StockQuantity = req.StockQuantity
	product.SetSizes(catalog.ParseSizeList(req.Size))
	if req.DiscountPrice != nil {
		discount := valueobject.NewMoneyVNDFromFloat(*req.DiscountPrice)
		if discount.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Giá khuyến mãi không được âm")
		}
		product.DiscountPrice = &discount
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's descriptive fields and pricing
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("VALIDATION_ERROR", "Danh mục không tồn tại")
			}
			return nil, err
		}
	}

	if err := product.Update(req.Name, req.Description, req.Brand, req.Color, req.ImageURL, valueobject.NewMoneyVNDFromFloat(req.Price)); err != nil {
		return nil, err
	}
	product.CategoryID = req.CategoryID
	product.SetSizes(catalog.ParseSizeList(req.Size))
	if req.DiscountPrice != nil {
		discount := valueobject.NewMoneyVNDFromFloat(*req.DiscountPrice)
		if discount.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Giá khuyến mãi không được âm")
		}
		product.DiscountPrice = &discount
	} else {
		product.DiscountPrice = nil
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product with its per-size stock breakdown
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	response.Sizes = s.sizeBreakdown(ctx, product)
	return &response, nil
}

// GetSizes returns only the per-size stock breakdown for a product
func (s *ProductService) GetSizes(ctx context.Context, id uuid.UUID) (map[string]int, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.sizeBreakdown(ctx, product), nil
}

// List retrieves products matching the filter with the total count
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// sizeBreakdown returns per-size quantities from the index when available.
// Without index rows the aggregate stock is split evenly across the
// declared size list, which is what the storefront shows for legacy SKUs.
func (s *ProductService) sizeBreakdown(ctx context.Context, product *catalog.Product) map[string]int {
	quantities, err := s.sizeIndex.Quantities(ctx, product.ID)
	if err != nil {
		s.logger.Warn("size index lookup failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		quantities = nil
	}
	if len(quantities) > 0 {
		return quantities
	}

	sizes := product.Sizes()
	if len(sizes) == 0 {
		return nil
	}
	breakdown := make(map[string]int, len(sizes))
	per := product.StockQuantity / len(sizes)
	remainder := product.StockQuantity % len(sizes)
	for i, size := range sizes {
		q := per
		if i < remainder {
			q++
		}
		breakdown[size] = q
	}
	return breakdown
}
