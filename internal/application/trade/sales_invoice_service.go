package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/shoestore/backend/internal/application/identity"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
	"github.com/shoestore/backend/internal/domain/trade"
)

// SalesLineInput is one requested item of a sale. UnitPrice overrides the
// product's effective price when set.
type SalesLineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *valueobject.Money
}

// CreateSalesInvoiceInput is the sales engine's contract. When CustomerID
// is absent but CustomerEmail is given, a customer account is provisioned
// implicitly.
type CreateSalesInvoiceInput struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         string
	Lines         []SalesLineInput
}

// CreateSalesInvoiceOutput reports the created invoice
type CreateSalesInvoiceOutput struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	TotalRevenue  float64   `json:"total_revenue"`
}

// SalesInvoiceService is the sales invoice engine: it validates stock,
// provisions the customer account when needed, debits the ledger and
// records the invoice in one transaction.
type SalesInvoiceService struct {
	scope    TransactionScope
	invoices trade.SalesInvoiceRepository
	logger   *zap.Logger
}

// NewSalesInvoiceService creates a new sales invoice service
func NewSalesInvoiceService(scope TransactionScope, invoices trade.SalesInvoiceRepository, logger *zap.Logger) *SalesInvoiceService {
	return &SalesInvoiceService{scope: scope, invoices: invoices, logger: logger}
}

// Create runs the sales engine. The enrichment stock check is advisory;
// the conditional-update decrement at write time is what actually
// prevents overselling under concurrency.
func (s *SalesInvoiceService) Create(ctx context.Context, input CreateSalesInvoiceInput) (*CreateSalesInvoiceOutput, error) {
	if len(input.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Hóa đơn phải có ít nhất một sản phẩm")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
	}

	invoiceDate := input.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	var output *CreateSalesInvoiceOutput
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoiceNumber := input.InvoiceNumber
		if invoiceNumber == "" {
			generated, err := repos.SalesInvoices().NextInvoiceNumber(ctx, invoiceDate)
			if err != nil {
				return err
			}
			invoiceNumber = generated
		}

		customerID := input.CustomerID
		if customerID == nil && input.CustomerEmail != "" {
			provisioned, err := appidentity.EnsureCustomerAccount(ctx, repos.Users(), input.CustomerEmail, input.CustomerName)
			if err != nil {
				return err
			}
			customerID = &provisioned
		}

		invoice, err := trade.NewSalesInvoice(invoiceNumber, invoiceDate, input.Notes)
		if err != nil {
			return err
		}
		invoice.SetCustomer(customerID, input.CustomerName, input.CustomerPhone, input.CustomerEmail)

		for _, line := range input.Lines {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Không tìm thấy sản phẩm %s", line.ProductID))
				}
				return err
			}
			if !product.CanFulfill(line.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Sản phẩm %s không đủ hàng (còn %d, cần %d)", product.Name, product.StockQuantity, line.Quantity))
			}

			unitPrice := product.EffectivePrice()
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			if err := invoice.AddItem(product.ID, product.Size, line.Quantity, unitPrice); err != nil {
				return err
			}
		}

		if err := repos.SalesInvoices().Save(ctx, invoice); err != nil {
			return err
		}

		// write-time decrement re-validates sufficiency inside the
		// same transaction
		for _, item := range invoice.Items {
			if err := repos.StockLedger().Decrease(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if item.SizeEU != "" {
				if err := repos.SizeIndex().Decrease(ctx, item.ProductID, item.SizeEU, item.Quantity); err != nil {
					s.logger.Warn("size index debit failed",
						zap.String("product_id", item.ProductID.String()),
						zap.String("size", item.SizeEU),
						zap.Error(err))
				}
			}
		}

		output = &CreateSalesInvoiceOutput{
			ID:            invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			TotalRevenue:  invoice.TotalRevenue.Float64(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales invoice created",
		zap.String("invoice_number", output.InvoiceNumber),
		zap.Float64("total_revenue", output.TotalRevenue))
	return output, nil
}

// GetByID returns an invoice with its active items
func (s *SalesInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*SalesInvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSalesInvoiceResponse(invoice)
	return &resp, nil
}

// List returns invoices matching the filter with the total count
func (s *SalesInvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SalesInvoiceResponse], error) {
	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SalesInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, ToSalesInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// NextNumber returns the next available sales invoice number for today
func (s *SalesInvoiceService) NextNumber(ctx context.Context) (string, error) {
	return s.invoices.NextInvoiceNumber(ctx, time.Now())
}
