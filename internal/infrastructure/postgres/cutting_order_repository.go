package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

var _ repository.CuttingOrderRepository = (*CuttingOrderRepo)(nil)

// CuttingOrderRepo implementación de CuttingOrderRepository sobre PostgreSQL.
type CuttingOrderRepo struct {
	q Querier
}

// NewCuttingOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuttingOrderRepository(q Querier) *CuttingOrderRepo {
	return &CuttingOrderRepo{q: q}
}

// Create persiste la orden y sus ítems.
func (r *CuttingOrderRepo) Create(o *entity.CuttingOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cutting_orders (id, company_id, customer, workflow_status, active,
			created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CompanyID, o.Customer, o.WorkflowStatus, o.Audit.Active,
		o.Audit.CreatedAt, o.Audit.CreatedBy, o.Audit.ModifiedAt, o.Audit.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("create cutting order: %w", err)
	}
	for i := range o.Items {
		item := &o.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = o.ID
		itemQuery := `
			INSERT INTO cutting_order_items (id, order_id, subproduct_id, cutting_quantity)
			VALUES ($1, $2, $3, $4)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.OrderID, item.SubproductID, item.CuttingQuantity,
		)
		if err != nil {
			return fmt.Errorf("create cutting order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus ítems, o (nil, nil) si no existe.
func (r *CuttingOrderRepo) GetByID(id string) (*entity.CuttingOrder, error) {
	query := `
		SELECT id, company_id, customer, workflow_status, active,
			created_at, created_by, modified_at, modified_by
		FROM cutting_orders WHERE id = $1`
	var o entity.CuttingOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CompanyID, &o.Customer, &o.WorkflowStatus, &o.Audit.Active,
		&o.Audit.CreatedAt, &o.Audit.CreatedBy, &o.Audit.ModifiedAt, &o.Audit.ModifiedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cutting order: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetForUpdate bloquea la fila de la orden dentro de la transacción en curso.
// Dos transiciones concurrentes sobre la misma orden se serializan acá: la
// segunda ve el estado que dejó la primera.
func (r *CuttingOrderRepo) GetForUpdate(id string) (*entity.CuttingOrder, error) {
	query := `
		SELECT id, company_id, customer, workflow_status, active,
			created_at, created_by, modified_at, modified_by
		FROM cutting_orders WHERE id = $1
		FOR UPDATE`
	var o entity.CuttingOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CompanyID, &o.Customer, &o.WorkflowStatus, &o.Audit.Active,
		&o.Audit.CreatedAt, &o.Audit.CreatedBy, &o.Audit.ModifiedAt, &o.Audit.ModifiedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock cutting order: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// ListByCompany lista órdenes de una empresa (sin ítems), más recientes primero.
func (r *CuttingOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CuttingOrder, error) {
	query := `
		SELECT id, company_id, customer, workflow_status, active,
			created_at, created_by, modified_at, modified_by
		FROM cutting_orders WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cutting orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.CuttingOrder
	for rows.Next() {
		var o entity.CuttingOrder
		if err := rows.Scan(
			&o.ID, &o.CompanyID, &o.Customer, &o.WorkflowStatus, &o.Audit.Active,
			&o.Audit.CreatedAt, &o.Audit.CreatedBy, &o.Audit.ModifiedAt, &o.Audit.ModifiedBy,
		); err != nil {
			return nil, fmt.Errorf("scan cutting order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateWorkflowStatus cambia el estado de flujo de la orden.
func (r *CuttingOrderRepo) UpdateWorkflowStatus(id, status, actor string, now time.Time) error {
	query := `
		UPDATE cutting_orders
		SET workflow_status = $2, modified_at = $3, modified_by = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, now, actor)
	if err != nil {
		return fmt.Errorf("update cutting order status: %w", err)
	}
	return nil
}

// SumOpenCuttingQuantity suma las cantidades de corte de ítems cuyas órdenes
// están activas y en estado pending o in_process. COALESCE garantiza cero (no
// NULL) cuando no hay filas.
func (r *CuttingOrderRepo) SumOpenCuttingQuantity(ctx context.Context, subproductID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(i.cutting_quantity), 0)
		FROM cutting_order_items i
		JOIN cutting_orders o ON o.id = i.order_id
		WHERE i.subproduct_id = $1
		  AND o.active
		  AND o.workflow_status IN ('pending', 'in_process')`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, subproductID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum open cutting quantity: %w", err)
	}
	return total, nil
}

func (r *CuttingOrderRepo) listItems(orderID string) ([]entity.CuttingOrderItem, error) {
	query := `
		SELECT id, order_id, subproduct_id, cutting_quantity
		FROM cutting_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list cutting order items: %w", err)
	}
	defer rows.Close()
	var items []entity.CuttingOrderItem
	for rows.Next() {
		var it entity.CuttingOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.SubproductID, &it.CuttingQuantity); err != nil {
			return nil, fmt.Errorf("scan cutting order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
