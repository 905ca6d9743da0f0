package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoestore/backend/internal/domain/report"
)

// GormReportRepository answers report queries with aggregate SQL over the
// invoice tables. Revenue figures come from invoice totals, which returns
// and exchanges adjust in place.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Summary aggregates sales and purchase activity for the period
func (r *GormReportRepository) Summary(ctx context.Context, filter report.Filter) (*report.Summary, error) {
	summary := &report.Summary{
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
	}

	// revenue is summed per invoice; item rows would double count it
	var sales struct {
		InvoiceCount int64
		ItemsSold    int64
		TotalRevenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                              AS invoice_count,
			COALESCE(SUM(items.quantity), 0)      AS items_sold,
			COALESCE(SUM(si.total_revenue), 0)    AS total_revenue
		FROM sales_invoices si
		LEFT JOIN (
			SELECT sales_invoice_id, SUM(quantity) AS quantity
			FROM sales_invoice_items
			GROUP BY sales_invoice_id
		) items ON items.sales_invoice_id = si.id
		WHERE si.invoice_date >= ? AND si.invoice_date < ?`,
		filter.StartDate, filter.EndDate.AddDate(0, 0, 1)).
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}

	var purchases struct {
		OrderCount int64
		TotalCost  decimal.Decimal
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                       AS order_count,
			COALESCE(SUM(total_cost), 0)   AS total_cost
		FROM purchase_invoices
		WHERE invoice_date >= ? AND invoice_date < ?`,
		filter.StartDate, filter.EndDate.AddDate(0, 0, 1)).
		Scan(&purchases).Error
	if err != nil {
		return nil, err
	}

	summary.SalesInvoices = sales.InvoiceCount
	summary.ItemsSold = sales.ItemsSold
	summary.TotalRevenue = sales.TotalRevenue
	summary.PurchaseOrders = purchases.OrderCount
	summary.TotalCost = purchases.TotalCost
	summary.GrossProfit = sales.TotalRevenue.Sub(purchases.TotalCost)
	return summary, nil
}

// DailyTrend returns per-day invoice counts and revenue for the period
func (r *GormReportRepository) DailyTrend(ctx context.Context, filter report.Filter) ([]report.DailyPoint, error) {
	var rows []struct {
		Day          time.Time
		InvoiceCount int64
		ItemsSold    int64
		Revenue      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE_TRUNC('day', si.invoice_date)     AS day,
			COUNT(DISTINCT si.id)                  AS invoice_count,
			COALESCE(SUM(sii.quantity), 0)         AS items_sold,
			COALESCE(SUM(sii.total_price), 0)      AS revenue
		FROM sales_invoices si
		LEFT JOIN sales_invoice_items sii ON sii.sales_invoice_id = si.id
		WHERE si.invoice_date >= ? AND si.invoice_date < ?
		GROUP BY DATE_TRUNC('day', si.invoice_date)
		ORDER BY day`,
		filter.StartDate, filter.EndDate.AddDate(0, 0, 1)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]report.DailyPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, report.DailyPoint{
			Date:         row.Day,
			InvoiceCount: row.InvoiceCount,
			ItemsSold:    row.ItemsSold,
			Revenue:      row.Revenue,
		})
	}
	return points, nil
}

// TopProducts ranks products by quantity sold over the period. Zero-quantity
// rows (fully returned lines) drop out of the ranking.
func (r *GormReportRepository) TopProducts(ctx context.Context, filter report.Filter) ([]report.ProductRanking, error) {
	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	var rows []struct {
		ProductID    uuid.UUID
		ProductName  string
		QuantitySold int64
		Revenue      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sii.product_id                    AS product_id,
			COALESCE(p.name, '')              AS product_name,
			SUM(sii.quantity)                 AS quantity_sold,
			COALESCE(SUM(sii.total_price), 0) AS revenue
		FROM sales_invoice_items sii
		JOIN sales_invoices si ON si.id = sii.sales_invoice_id
		LEFT JOIN products p ON p.id = sii.product_id
		WHERE si.invoice_date >= ? AND si.invoice_date < ? AND sii.quantity > 0
		GROUP BY sii.product_id, p.name
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?`,
		filter.StartDate, filter.EndDate.AddDate(0, 0, 1), topN).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]report.ProductRanking, 0, len(rows))
	for _, row := range rows {
		rankings = append(rankings, report.ProductRanking{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
		})
	}
	return rankings, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
