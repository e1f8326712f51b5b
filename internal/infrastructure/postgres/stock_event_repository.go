package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

var _ repository.StockEventRepository = (*StockEventRepo)(nil)

// StockEventRepo implementación del libro de eventos sobre PostgreSQL. La tabla
// es append-only: este adaptador no expone UPDATE ni DELETE.
type StockEventRepo struct {
	q Querier
}

// NewStockEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEventRepository(q Querier) *StockEventRepo {
	return &StockEventRepo{q: q}
}

// Create persiste un evento de stock.
func (r *StockEventRepo) Create(e *entity.StockEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_events (id, product_stock_id, subproduct_stock_id,
			event_type, quantity_change, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProductStockID, e.SubproductStockID,
		e.EventType, e.QuantityChange, e.Notes, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID, o (nil, nil) si no existe.
func (r *StockEventRepo) GetByID(id string) (*entity.StockEvent, error) {
	query := `
		SELECT id, product_stock_id, subproduct_stock_id, event_type,
			quantity_change, notes, created_at, created_by
		FROM stock_events WHERE id = $1`
	e, err := scanEvent(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock event: %w", err)
	}
	return e, nil
}

// ListByProductStock lista eventos de un snapshot de producto, más recientes primero.
func (r *StockEventRepo) ListByProductStock(productStockID string, limit, offset int) ([]*entity.StockEvent, error) {
	return r.listByColumn("product_stock_id", productStockID, limit, offset)
}

// ListBySubproductStock lista eventos de un snapshot de subproducto, más recientes primero.
func (r *StockEventRepo) ListBySubproductStock(subproductStockID string, limit, offset int) ([]*entity.StockEvent, error) {
	return r.listByColumn("subproduct_stock_id", subproductStockID, limit, offset)
}

func (r *StockEventRepo) listByColumn(column, id string, limit, offset int) ([]*entity.StockEvent, error) {
	query := `
		SELECT id, product_stock_id, subproduct_stock_id, event_type,
			quantity_change, notes, created_at, created_by
		FROM stock_events WHERE ` + column + ` = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock events: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEvent(row pgx.Row) (*entity.StockEvent, error) {
	var e entity.StockEvent
	err := row.Scan(
		&e.ID, &e.ProductStockID, &e.SubproductStockID, &e.EventType,
		&e.QuantityChange, &e.Notes, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
