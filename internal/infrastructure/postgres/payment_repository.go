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
	domexpenses "github.com/invetex/cortes-api/internal/domain/expenses"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)
var _ repository.PaymentAllocationRepository = (*PaymentAllocationRepo)(nil)

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, status, retention_total_amount,
		active, created_at, created_by, modified_at, modified_by`

// Create persiste un pago.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, company_id, status, retention_total_amount,
			active, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Status, p.RetentionTotalAmount,
		p.Audit.Active, p.Audit.CreatedAt, p.Audit.CreatedBy, p.Audit.ModifiedAt, p.Audit.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID, o (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el pago y bloquea la fila (SELECT FOR UPDATE).
func (r *PaymentRepo) GetForUpdate(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment for update: %w", err)
	}
	return p, nil
}

// UpdateRetention escribe la retención total recalculada.
func (r *PaymentRepo) UpdateRetention(id string, total decimal.Decimal, actor string, now time.Time) error {
	query := `
		UPDATE payments
		SET retention_total_amount = $2, modified_at = $3, modified_by = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, total, now, actor)
	if err != nil {
		return fmt.Errorf("update payment retention: %w", err)
	}
	return nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Status, &p.RetentionTotalAmount,
		&p.Audit.Active, &p.Audit.CreatedAt, &p.Audit.CreatedBy,
		&p.Audit.ModifiedAt, &p.Audit.ModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PaymentAllocationRepo implementación de PaymentAllocationRepository.
type PaymentAllocationRepo struct {
	q Querier
}

// NewPaymentAllocationRepository construye el adaptador.
func NewPaymentAllocationRepository(q Querier) *PaymentAllocationRepo {
	return &PaymentAllocationRepo{q: q}
}

// Create persiste una imputación.
func (r *PaymentAllocationRepo) Create(a *entity.PaymentAllocation) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payment_allocations (id, payment_id, expense_id, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.PaymentID, a.ExpenseID, a.Amount, a.CreatedAt, a.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create payment allocation: %w", err)
	}
	return nil
}

// ListByPayment lista las imputaciones de un pago.
func (r *PaymentAllocationRepo) ListByPayment(paymentID string) ([]*entity.PaymentAllocation, error) {
	query := `
		SELECT id, payment_id, expense_id, amount, created_at, created_by
		FROM payment_allocations WHERE payment_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list payment allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentAllocation
	for rows.Next() {
		var a entity.PaymentAllocation
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.ExpenseID, &a.Amount, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan payment allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListRetentionItems devuelve monto y regla de retención por cada imputación
// del pago (join con gastos y tipos de gasto).
func (r *PaymentAllocationRepo) ListRetentionItems(paymentID string) ([]domexpenses.RetentionItem, error) {
	query := `
		SELECT a.amount, t.retention_percent, t.retention_minimum
		FROM payment_allocations a
		JOIN expenses e ON e.id = a.expense_id
		JOIN expense_types t ON t.id = e.expense_type_id
		WHERE a.payment_id = $1`
	rows, err := r.q.Query(context.Background(), query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list retention items: %w", err)
	}
	defer rows.Close()
	var items []domexpenses.RetentionItem
	for rows.Next() {
		var it domexpenses.RetentionItem
		if err := rows.Scan(&it.Amount, &it.RetentionPercent, &it.RetentionMinimum); err != nil {
			return nil, fmt.Errorf("scan retention item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
