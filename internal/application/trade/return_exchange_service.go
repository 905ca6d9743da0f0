package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/domain/shared/valueobject"
	"github.com/shoestore/backend/internal/domain/trade"
)

// ReturnExchangeLineInput amends one sold line. NewProductID and
// NewUnitPrice apply to exchanges only.
type ReturnExchangeLineInput struct {
	SalesInvoiceItemID uuid.UUID
	Quantity           int
	NewProductID       *uuid.UUID
	NewUnitPrice       *valueobject.Money
}

// CreateReturnExchangeInput is the return/exchange engine's contract.
// The type is request-wide; the item set must be homogeneous with it.
type CreateReturnExchangeInput struct {
	SalesInvoiceID uuid.UUID
	Type           trade.ReturnExchangeType
	Reason         string
	Notes          string
	Lines          []ReturnExchangeLineInput
}

// CreateReturnExchangeOutput reports the completed request and the net
// revenue adjustment applied to the invoice (negative means refund).
type CreateReturnExchangeOutput struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	RevenueDelta float64   `json:"revenue_delta"`
	TotalRevenue float64   `json:"total_revenue"`
}

// ReturnExchangeService reconciles stock, invoice line items and revenue
// for returns and exchanges. The request goes pending -> completed inside
// one transaction; any failure rolls everything back.
type ReturnExchangeService struct {
	scope    TransactionScope
	requests trade.ReturnExchangeRepository
	logger   *zap.Logger
}

// NewReturnExchangeService creates a new return/exchange service
func NewReturnExchangeService(scope TransactionScope, requests trade.ReturnExchangeRepository, logger *zap.Logger) *ReturnExchangeService {
	return &ReturnExchangeService{scope: scope, requests: requests, logger: logger}
}

// Create runs the return/exchange engine. Per item: the old product is
// always credited back; an exchange additionally debits the new product.
// A full exchange rewrites the sold line in place, a partial one shrinks
// it and appends a sibling row; a return only shrinks. The summed revenue
// delta is applied to the invoice total.
func (s *ReturnExchangeService) Create(ctx context.Context, input CreateReturnExchangeInput) (*CreateReturnExchangeOutput, error) {
	if len(input.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Yêu cầu phải có ít nhất một sản phẩm")
	}

	var output *CreateReturnExchangeOutput
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.SalesInvoices().FindByID(ctx, input.SalesInvoiceID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Không tìm thấy hóa đơn bán")
			}
			return err
		}

		request, err := trade.NewReturnExchange(invoice.ID, input.Type, input.Reason, input.Notes)
		if err != nil {
			return err
		}

		delta := valueobject.ZeroVND()
		for _, line := range input.Lines {
			item, err := invoice.Item(line.SalesInvoiceItemID)
			if err != nil {
				return shared.NewDomainError("NOT_FOUND", "Dòng hóa đơn không thuộc hóa đơn này")
			}
			if line.Quantity > item.Quantity {
				return shared.NewDomainError("INVALID_QUANTITY",
					fmt.Sprintf("Số lượng trả (%d) vượt quá số lượng đã mua (%d)", line.Quantity, item.Quantity))
			}
			if err := request.AddItem(item.ID, item.ProductID, line.Quantity, line.NewProductID); err != nil {
				return err
			}

			// both return and exchange put the old units back on the shelf
			if err := repos.StockLedger().Increase(ctx, item.ProductID, line.Quantity); err != nil {
				return err
			}
			if item.SizeEU != "" {
				if err := repos.SizeIndex().Increase(ctx, item.ProductID, item.SizeEU, line.Quantity); err != nil {
					s.logger.Warn("size index credit failed",
						zap.String("product_id", item.ProductID.String()),
						zap.String("size", item.SizeEU),
						zap.Error(err))
				}
			}

			oldUnitPrice := item.UnitPrice
			lineDelta := oldUnitPrice.MultiplyByInt(int64(line.Quantity)).Negate()

			if input.Type == trade.TypeExchange {
				newProduct, err := repos.Products().FindByID(ctx, *line.NewProductID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						return shared.NewDomainError("NOT_FOUND", "Không tìm thấy sản phẩm thay thế")
					}
					return err
				}
				if !newProduct.CanFulfill(line.Quantity) {
					return shared.NewDomainError("INSUFFICIENT_STOCK",
						fmt.Sprintf("Sản phẩm %s không đủ hàng (còn %d, cần %d)", newProduct.Name, newProduct.StockQuantity, line.Quantity))
				}
				if err := repos.StockLedger().Decrease(ctx, newProduct.ID, line.Quantity); err != nil {
					return err
				}
				if newProduct.Size != "" {
					if err := repos.SizeIndex().Decrease(ctx, newProduct.ID, newProduct.Size, line.Quantity); err != nil {
						s.logger.Warn("size index debit failed",
							zap.String("product_id", newProduct.ID.String()),
							zap.Error(err))
					}
				}

				newUnitPrice := newProduct.EffectivePrice()
				if line.NewUnitPrice != nil {
					newUnitPrice = *line.NewUnitPrice
				}
				newTotal := newUnitPrice.MultiplyByInt(int64(line.Quantity))

				if line.Quantity == item.Quantity {
					item.Rewrite(newProduct.ID, newProduct.Size, newUnitPrice)
				} else {
					if err := item.Shrink(line.Quantity); err != nil {
						return err
					}
					invoice.AppendExchangeLine(newProduct.ID, newProduct.Size, line.Quantity, newUnitPrice)
				}

				lineDelta = lineDelta.MustAdd(newTotal)
			} else {
				if err := item.Shrink(line.Quantity); err != nil {
					return err
				}
			}

			delta = delta.MustAdd(lineDelta)
		}

		if !delta.IsZero() {
			if err := invoice.ApplyRevenueDelta(delta); err != nil {
				return err
			}
		}
		if err := repos.SalesInvoices().Save(ctx, invoice); err != nil {
			return err
		}

		if err := request.Complete(); err != nil {
			return err
		}
		if err := repos.ReturnExchanges().Save(ctx, request); err != nil {
			return err
		}

		output = &CreateReturnExchangeOutput{
			ID:           request.ID,
			Status:       string(request.Status),
			RevenueDelta: delta.Float64(),
			TotalRevenue: invoice.TotalRevenue.Float64(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("return/exchange completed",
		zap.String("id", output.ID.String()),
		zap.String("type", string(input.Type)),
		zap.Float64("revenue_delta", output.RevenueDelta))
	return output, nil
}

// GetByID returns a return/exchange request with its delta entries
func (s *ReturnExchangeService) GetByID(ctx context.Context, id uuid.UUID) (*ReturnExchangeResponse, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReturnExchangeResponse(request, 0)
	return &resp, nil
}

// List returns requests matching the filter with the total count
func (s *ReturnExchangeService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ReturnExchangeResponse], error) {
	requests, err := s.requests.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.requests.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ReturnExchangeResponse, 0, len(requests))
	for i := range requests {
		items = append(items, ToReturnExchangeResponse(&requests[i], 0))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
