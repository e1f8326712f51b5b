package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockSummary agregados de stock de una empresa.
type StockSummary struct {
	ActiveProductStocks    int
	ActiveSubproductStocks int
	TotalOnHand            decimal.Decimal
	OpenReservations       decimal.Decimal
	EventsLast30Days       int
}

// StockReportRepository consultas agregadas de solo lectura para reportes.
type StockReportRepository interface {
	StockSummary(ctx context.Context, companyID string) (*StockSummary, error)
}
