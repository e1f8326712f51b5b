package postgres

import (
	"context"
	"fmt"

	"github.com/invetex/cortes-api/internal/domain/repository"
)

var _ repository.StockReportRepository = (*StockReportRepo)(nil)

// StockReportRepo consultas agregadas de stock sobre PostgreSQL (solo lectura).
type StockReportRepo struct {
	q Querier
}

// NewStockReportRepository construye el adaptador.
func NewStockReportRepository(q Querier) *StockReportRepo {
	return &StockReportRepo{q: q}
}

// StockSummary agregados de stock de la empresa: snapshots activos por nivel,
// cantidad total en mano, reservas abiertas y eventos de los últimos 30 días.
func (r *StockReportRepo) StockSummary(ctx context.Context, companyID string) (*repository.StockSummary, error) {
	var s repository.StockSummary

	query := `
		SELECT
			COUNT(*) FILTER (WHERE ss.product_id IS NOT NULL),
			COUNT(*) FILTER (WHERE ss.subproduct_id IS NOT NULL),
			COALESCE(SUM(ss.quantity), 0)
		FROM stock_snapshots ss
		LEFT JOIN products p ON p.id = ss.product_id
		LEFT JOIN subproducts sp ON sp.id = ss.subproduct_id
		LEFT JOIN products pp ON pp.id = sp.product_id
		WHERE ss.active AND COALESCE(p.company_id, pp.company_id) = $1`
	if err := r.q.QueryRow(ctx, query, companyID).Scan(
		&s.ActiveProductStocks, &s.ActiveSubproductStocks, &s.TotalOnHand,
	); err != nil {
		return nil, fmt.Errorf("stock summary snapshots: %w", err)
	}

	query = `
		SELECT COALESCE(SUM(i.cutting_quantity), 0)
		FROM cutting_order_items i
		JOIN cutting_orders o ON o.id = i.order_id
		WHERE o.company_id = $1
		  AND o.active
		  AND o.workflow_status IN ('pending', 'in_process')`
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&s.OpenReservations); err != nil {
		return nil, fmt.Errorf("stock summary reservations: %w", err)
	}

	query = `
		SELECT COUNT(*)
		FROM stock_events e
		LEFT JOIN stock_snapshots ss ON ss.id = COALESCE(e.product_stock_id, e.subproduct_stock_id)
		LEFT JOIN products p ON p.id = ss.product_id
		LEFT JOIN subproducts sp ON sp.id = ss.subproduct_id
		LEFT JOIN products pp ON pp.id = sp.product_id
		WHERE COALESCE(p.company_id, pp.company_id) = $1
		  AND e.created_at >= now() - interval '30 days'`
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&s.EventsLast30Days); err != nil {
		return nil, fmt.Errorf("stock summary events: %w", err)
	}

	return &s, nil
}
