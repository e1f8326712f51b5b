package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain/entity"
	domexpenses "github.com/invetex/cortes-api/internal/domain/expenses"
)

// ExpenseRepository acceso a gastos.
type ExpenseRepository interface {
	Create(e *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	// GetForUpdate bloquea la fila del gasto dentro de la transacción en curso.
	GetForUpdate(id string) (*entity.Expense, error)
	// UpdatePayment actualiza monto pagado y estado en una sola escritura.
	UpdatePayment(id string, amountPaid decimal.Decimal, status, actor string, now time.Time) error
}

// ExpenseTypeRepository acceso a tipos de gasto (reglas de retención).
type ExpenseTypeRepository interface {
	Create(t *entity.ExpenseType) error
	GetByID(id string) (*entity.ExpenseType, error)
	List() ([]*entity.ExpenseType, error)
}

// PaymentRepository acceso a pagos.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	GetForUpdate(id string) (*entity.Payment, error)
	UpdateRetention(id string, total decimal.Decimal, actor string, now time.Time) error
}

// PaymentAllocationRepository acceso a imputaciones de pago.
type PaymentAllocationRepository interface {
	Create(a *entity.PaymentAllocation) error
	ListByPayment(paymentID string) ([]*entity.PaymentAllocation, error)
	// ListRetentionItems devuelve, por cada imputación del pago, el monto y la
	// regla de retención del tipo de gasto correspondiente (join con gastos y
	// tipos de gasto), para recalcular la retención total.
	ListRetentionItems(paymentID string) ([]domexpenses.RetentionItem, error)
}
