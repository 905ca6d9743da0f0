package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter bounds a report query to a date range
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	TopN      int
}

// Summary aggregates sales and purchase activity for a period.
// Revenue reflects returns and exchanges, since those adjust the
// invoice totals in place.
type Summary struct {
	PeriodStart    time.Time
	PeriodEnd      time.Time
	SalesInvoices  int64
	ItemsSold      int64
	TotalRevenue   decimal.Decimal
	PurchaseOrders int64
	TotalCost      decimal.Decimal
	GrossProfit    decimal.Decimal
}

// DailyPoint is one day's revenue in a trend series
type DailyPoint struct {
	Date         time.Time
	InvoiceCount int64
	ItemsSold    int64
	Revenue      decimal.Decimal
}

// ProductRanking is one product's contribution over the period
type ProductRanking struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// Repository answers aggregate report queries. Implementations read the
// invoice tables directly; there is no materialized report storage.
type Repository interface {
	Summary(ctx context.Context, filter Filter) (*Summary, error)
	DailyTrend(ctx context.Context, filter Filter) ([]DailyPoint, error)
	TopProducts(ctx context.Context, filter Filter) ([]ProductRanking, error)
}
