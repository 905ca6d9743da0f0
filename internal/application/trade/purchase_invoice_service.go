package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/catalog"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
	"github.com/shoestore/backend/internal/domain/trade"
)

// PurchaseLine is the tagged union of the two purchase item shapes: a
// line for an already catalogued product, or a line that creates its
// product on the fly. The shape is resolved once at the engine boundary.
type PurchaseLine interface {
	isPurchaseLine()
	LineQuantity() int
	LineUnitCost() valueobject.Money
}

// ExistingProductLine stocks a product already in the catalog
type ExistingProductLine struct {
	ProductID uuid.UUID
	SizeEU    string
	Quantity  int
	UnitCost  valueobject.Money
}

func (ExistingProductLine) isPurchaseLine() {}

// LineQuantity returns the stocked quantity
func (l ExistingProductLine) LineQuantity() int { return l.Quantity }

// LineUnitCost returns the per-unit cost
func (l ExistingProductLine) LineUnitCost() valueobject.Money { return l.UnitCost }

// NewProductLine stocks a product that does not exist yet. Lines sharing
// name, color and image URL describe sizes of one product-color SKU and
// collapse into a single product row.
type NewProductLine struct {
	Name       string
	Price      valueobject.Money
	CategoryID *uuid.UUID
	Brand      string
	Color      string
	ImageURL   string
	SizeEU     string
	Quantity   int
	UnitCost   valueobject.Money
}

func (NewProductLine) isPurchaseLine() {}

// LineQuantity returns the stocked quantity
func (l NewProductLine) LineQuantity() int { return l.Quantity }

// LineUnitCost returns the per-unit cost
func (l NewProductLine) LineUnitCost() valueobject.Money { return l.UnitCost }

// groupKey is the composite identity of a new-product group
func (l NewProductLine) groupKey() string {
	return l.Name + "|" + l.Color + "|" + l.ImageURL
}

// CreatePurchaseInvoiceInput is the purchase engine's contract
type CreatePurchaseInvoiceInput struct {
	InvoiceNumber string
	SupplierID    uuid.UUID
	InvoiceDate   time.Time
	Notes         string
	CreatedBy     *uuid.UUID
	Lines         []PurchaseLine
}

// CreatePurchaseInvoiceOutput reports the created invoice
type CreatePurchaseInvoiceOutput struct {
	ID              uuid.UUID `json:"id"`
	InvoiceNumber   string    `json:"invoice_number"`
	TotalCost       float64   `json:"total_cost"`
	ProductsCreated int       `json:"products_created"`
}

// resolvedLine is a purchase line after product resolution
type resolvedLine struct {
	productID uuid.UUID
	sizeEU    string
	quantity  int
	unitCost  valueobject.Money
}

// PurchaseInvoiceService is the purchase invoice engine: it creates
// invoices (creating missing products grouped by variant) and credits the
// stock ledger, all within one transaction.
type PurchaseInvoiceService struct {
	scope    TransactionScope
	invoices trade.PurchaseInvoiceRepository
	logger   *zap.Logger
}

// NewPurchaseInvoiceService creates a new purchase invoice service
func NewPurchaseInvoiceService(scope TransactionScope, invoices trade.PurchaseInvoiceRepository, logger *zap.Logger) *PurchaseInvoiceService {
	return &PurchaseInvoiceService{scope: scope, invoices: invoices, logger: logger}
}

// Create runs the purchase engine. Any lookup failure or constraint
// violation aborts the whole transaction: no partial invoice, no partial
// stock credit.
func (s *PurchaseInvoiceService) Create(ctx context.Context, input CreatePurchaseInvoiceInput) (*CreatePurchaseInvoiceOutput, error) {
	if len(input.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Hóa đơn phải có ít nhất một sản phẩm")
	}
	for _, line := range input.Lines {
		if line.LineQuantity() <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
		if line.LineUnitCost().IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Giá nhập không được âm")
		}
	}

	var output *CreatePurchaseInvoiceOutput
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoiceNumber := input.InvoiceNumber
		if invoiceNumber == "" {
			generated, err := repos.PurchaseInvoices().NextInvoiceNumber(ctx, input.InvoiceDate)
			if err != nil {
				return err
			}
			invoiceNumber = generated
		}

		resolved, productsCreated, err := s.resolveLines(ctx, repos, input.Lines)
		if err != nil {
			return err
		}

		invoice, err := trade.NewPurchaseInvoice(invoiceNumber, input.SupplierID, input.InvoiceDate, input.Notes, input.CreatedBy)
		if err != nil {
			return err
		}
		for _, line := range resolved {
			if err := invoice.AddItem(line.productID, line.sizeEU, line.quantity, line.unitCost); err != nil {
				return err
			}
		}

		if err := repos.PurchaseInvoices().Save(ctx, invoice); err != nil {
			return err
		}

		for _, line := range resolved {
			if err := repos.StockLedger().Increase(ctx, line.productID, line.quantity); err != nil {
				return err
			}
			if line.sizeEU != "" {
				if err := repos.SizeIndex().Increase(ctx, line.productID, line.sizeEU, line.quantity); err != nil {
					// advisory index only, the aggregate stays authoritative
					s.logger.Warn("size index credit failed",
						zap.String("product_id", line.productID.String()),
						zap.String("size", line.sizeEU),
						zap.Error(err))
				}
			}
		}

		output = &CreatePurchaseInvoiceOutput{
			ID:              invoice.ID,
			InvoiceNumber:   invoice.InvoiceNumber,
			TotalCost:       invoice.TotalCost.Float64(),
			ProductsCreated: productsCreated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase invoice created",
		zap.String("invoice_number", output.InvoiceNumber),
		zap.Float64("total_cost", output.TotalCost),
		zap.Int("products_created", output.ProductsCreated))
	return output, nil
}

// resolveLines partitions the tagged union: existing lines are looked up,
// new lines are grouped by name|color|image_url, one product per group,
// then expanded back into one line per size.
func (s *PurchaseInvoiceService) resolveLines(ctx context.Context, repos TransactionalRepositories, lines []PurchaseLine) ([]resolvedLine, int, error) {
	resolved := make([]resolvedLine, 0, len(lines))
	groupOrder := make([]string, 0)
	groups := make(map[string][]NewProductLine)

	for _, line := range lines {
		switch l := line.(type) {
		case ExistingProductLine:
			product, err := repos.Products().FindByID(ctx, l.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, 0, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Không tìm thấy sản phẩm %s", l.ProductID))
				}
				return nil, 0, err
			}
			resolved = append(resolved, resolvedLine{
				productID: product.ID,
				sizeEU:    l.SizeEU,
				quantity:  l.Quantity,
				unitCost:  l.UnitCost,
			})
		case NewProductLine:
			if l.Name == "" {
				return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Sản phẩm mới phải có tên")
			}
			key := l.groupKey()
			if _, ok := groups[key]; !ok {
				groupOrder = append(groupOrder, key)
			}
			groups[key] = append(groups[key], l)
		default:
			return nil, 0, shared.ErrValidation
		}
	}

	for _, key := range groupOrder {
		group := groups[key]
		first := group[0]

		product, err := catalog.NewProduct(first.Name, first.Price, first.CategoryID)
		if err != nil {
			return nil, 0, err
		}
		product.Brand = first.Brand
		product.Color = first.Color
		product.ImageURL = first.ImageURL

		sizes := make([]string, 0, len(group))
		for _, l := range group {
			if l.SizeEU != "" {
				sizes = append(sizes, l.SizeEU)
			}
		}
		product.SetSizes(sizes)

		if err := repos.Products().Save(ctx, product); err != nil {
			return nil, 0, err
		}

		for _, l := range group {
			resolved = append(resolved, resolvedLine{
				productID: product.ID,
				sizeEU:    l.SizeEU,
				quantity:  l.Quantity,
				unitCost:  l.UnitCost,
			})
		}
	}

	return resolved, len(groups), nil
}

// GetByID returns an invoice with its items
func (s *PurchaseInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseInvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseInvoiceResponse(invoice)
	return &resp, nil
}

// List returns invoices matching the filter with the total count
func (s *PurchaseInvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseInvoiceResponse], error) {
	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, ToPurchaseInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete reverses every line's stock credit and removes the invoice with
// its items, atomically. Fails with INSUFFICIENT_STOCK when the stocked
// goods have already been sold.
func (s *PurchaseInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.PurchaseInvoices().FindByID(ctx, id)
		if err != nil {
			return err
		}

		for _, item := range invoice.Items {
			if err := repos.StockLedger().Decrease(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if item.SizeEU != "" {
				if err := repos.SizeIndex().DecreaseClamped(ctx, item.ProductID, item.SizeEU, item.Quantity); err != nil {
					s.logger.Warn("size index reversal failed",
						zap.String("product_id", item.ProductID.String()),
						zap.String("size", item.SizeEU),
						zap.Error(err))
				}
			}
		}

		return repos.PurchaseInvoices().Delete(ctx, invoice.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("purchase invoice deleted", zap.String("id", id.String()))
	return nil
}

// NextNumber returns the next available purchase invoice number for today
func (s *PurchaseInvoiceService) NextNumber(ctx context.Context) (string, error) {
	return s.invoices.NextInvoiceNumber(ctx, time.Now())
}

// ImportResult reports one invoice of a batch import
type ImportResult struct {
	Index         int     `json:"index"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Success       bool    `json:"success"`
	Error         string  `json:"error,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
}

// Import creates many invoices, collecting per-invoice success/failure
// independently. There is no cross-invoice atomicity: one bad invoice
// does not abort its neighbours.
func (s *PurchaseInvoiceService) Import(ctx context.Context, inputs []CreatePurchaseInvoiceInput) []ImportResult {
	results := make([]ImportResult, 0, len(inputs))
	for i, input := range inputs {
		out, err := s.Create(ctx, input)
		if err != nil {
			results = append(results, ImportResult{
				Index:         i,
				InvoiceNumber: input.InvoiceNumber,
				Success:       false,
				Error:         err.Error(),
			})
			continue
		}
		results = append(results, ImportResult{
			Index:         i,
			InvoiceNumber: out.InvoiceNumber,
			Success:       true,
			TotalCost:     out.TotalCost,
		})
	}
	return results
}
