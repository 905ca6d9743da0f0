package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoestore/backend/internal/domain/report"
	"github.com/shoestore/backend/internal/domain/shared"
)

// ReportFilter is the request filter for report endpoints
type ReportFilter struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02"`
	TopN      int       `form:"top_n"`
}

// SummaryResponse aggregates sales and purchase activity for a period
type SummaryResponse struct {
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	SalesInvoices  int64     `json:"sales_invoices"`
	ItemsSold      int64     `json:"items_sold"`
	TotalRevenue   float64   `json:"total_revenue"`
	PurchaseOrders int64     `json:"purchase_orders"`
	TotalCost      float64   `json:"total_cost"`
	GrossProfit    float64   `json:"gross_profit"`
}

// DailyPointResponse is one day's revenue in a trend series
type DailyPointResponse struct {
	Date         time.Time `json:"date"`
	InvoiceCount int64     `json:"invoice_count"`
	ItemsSold    int64     `json:"items_sold"`
	Revenue      float64   `json:"revenue"`
}

// ProductRankingResponse is one product's ranking entry
type ProductRankingResponse struct {
	Rank         int     `json:"rank"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int64   `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// ReportService provides application-level report operations
type ReportService struct {
	repo report.Repository
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository) *ReportService {
	return &ReportService{repo: repo}
}

// normalize defaults an open-ended range to the last 30 days and makes the
// end bound inclusive of the whole day.
func normalize(filter ReportFilter) (report.Filter, error) {
	f := report.Filter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		TopN:      filter.TopN,
	}
	if f.EndDate.IsZero() {
		f.EndDate = time.Now()
	}
	if f.StartDate.IsZero() {
		f.StartDate = f.EndDate.AddDate(0, 0, -30)
	}
	if f.EndDate.Before(f.StartDate) {
		return report.Filter{}, shared.NewDomainError("VALIDATION_ERROR", "Khoảng thời gian không hợp lệ")
	}
	if f.TopN <= 0 {
		f.TopN = 10
	}
	return f, nil
}

// Summary returns the period's sales/purchase summary
func (s *ReportService) Summary(ctx context.Context, filter ReportFilter) (*SummaryResponse, error) {
	f, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, f)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		PeriodStart:    summary.PeriodStart,
		PeriodEnd:      summary.PeriodEnd,
		SalesInvoices:  summary.SalesInvoices,
		ItemsSold:      summary.ItemsSold,
		TotalRevenue:   toFloat64(summary.TotalRevenue),
		PurchaseOrders: summary.PurchaseOrders,
		TotalCost:      toFloat64(summary.TotalCost),
		GrossProfit:    toFloat64(summary.GrossProfit),
	}, nil
}

// DailyTrend returns the per-day revenue series for the period
func (s *ReportService) DailyTrend(ctx context.Context, filter ReportFilter) ([]DailyPointResponse, error) {
	f, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	points, err := s.repo.DailyTrend(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]DailyPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, DailyPointResponse{
			Date:         p.Date,
			InvoiceCount: p.InvoiceCount,
			ItemsSold:    p.ItemsSold,
			Revenue:      toFloat64(p.Revenue),
		})
	}
	return out, nil
}

// TopProducts returns the best-selling products for the period
func (s *ReportService) TopProducts(ctx context.Context, filter ReportFilter) ([]ProductRankingResponse, error) {
	f, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	rankings, err := s.repo.TopProducts(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]ProductRankingResponse, 0, len(rankings))
	for i, r := range rankings {
		out = append(out, ProductRankingResponse{
			Rank:         i + 1,
			ProductID:    r.ProductID.String(),
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			Revenue:      toFloat64(r.Revenue),
		})
	}
	return out, nil
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
