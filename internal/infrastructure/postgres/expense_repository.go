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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)
var _ repository.ExpenseTypeRepository = (*ExpenseTypeRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, company_id, supplier_id, expense_type_id, status,
		net_amount, vat_amount, amount_paid,
		active, created_at, created_by, modified_at, modified_by`

// Create persiste un gasto.
func (r *ExpenseRepo) Create(e *entity.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO expenses (id, company_id, supplier_id, expense_type_id, status,
			net_amount, vat_amount, amount_paid,
			active, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CompanyID, e.SupplierID, e.ExpenseTypeID, e.Status,
		e.NetAmount, e.VATAmount, e.AmountPaid,
		e.Audit.Active, e.Audit.CreatedAt, e.Audit.CreatedBy, e.Audit.ModifiedAt, e.Audit.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID, o (nil, nil) si no existe.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// GetForUpdate obtiene el gasto y bloquea la fila (SELECT FOR UPDATE).
func (r *ExpenseRepo) GetForUpdate(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 FOR UPDATE`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense for update: %w", err)
	}
	return e, nil
}

// UpdatePayment actualiza monto pagado y estado en una sola escritura.
func (r *ExpenseRepo) UpdatePayment(id string, amountPaid decimal.Decimal, status, actor string, now time.Time) error {
	query := `
		UPDATE expenses
		SET amount_paid = $2, status = $3, modified_at = $4, modified_by = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, amountPaid, status, now, actor)
	if err != nil {
		return fmt.Errorf("update expense payment: %w", err)
	}
	return nil
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.SupplierID, &e.ExpenseTypeID, &e.Status,
		&e.NetAmount, &e.VATAmount, &e.AmountPaid,
		&e.Audit.Active, &e.Audit.CreatedAt, &e.Audit.CreatedBy,
		&e.Audit.ModifiedAt, &e.Audit.ModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ExpenseTypeRepo implementación de ExpenseTypeRepository sobre PostgreSQL.
type ExpenseTypeRepo struct {
	q Querier
}

// NewExpenseTypeRepository construye el adaptador.
func NewExpenseTypeRepository(q Querier) *ExpenseTypeRepo {
	return &ExpenseTypeRepo{q: q}
}

// Create persiste un tipo de gasto.
func (r *ExpenseTypeRepo) Create(t *entity.ExpenseType) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO expense_types (id, name, retention_percent, retention_minimum)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.RetentionPercent, t.RetentionMinimum,
	)
	if err != nil {
		return fmt.Errorf("create expense type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de gasto por ID, o (nil, nil) si no existe.
func (r *ExpenseTypeRepo) GetByID(id string) (*entity.ExpenseType, error) {
	query := `
		SELECT id, name, retention_percent, retention_minimum
		FROM expense_types WHERE id = $1`
	var t entity.ExpenseType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.RetentionPercent, &t.RetentionMinimum,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense type: %w", err)
	}
	return &t, nil
}

// List lista todos los tipos de gasto.
func (r *ExpenseTypeRepo) List() ([]*entity.ExpenseType, error) {
	query := `
		SELECT id, name, retention_percent, retention_minimum
		FROM expense_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list expense types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseType
	for rows.Next() {
		var t entity.ExpenseType
		if err := rows.Scan(&t.ID, &t.Name, &t.RetentionPercent, &t.RetentionMinimum); err != nil {
			return nil, fmt.Errorf("scan expense type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
