package expenses

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain/repository"
)

// ExpenseTxRunner ejecuta una función dentro de una transacción con los
// repositorios de gastos y pagos atados a esa tx.
type ExpenseTxRunner interface {
	RunExpense(ctx context.Context, fn func(
		expenseRepo repository.ExpenseRepository,
		paymentRepo repository.PaymentRepository,
		allocationRepo repository.PaymentAllocationRepository,
	) error) error
}

// Notifier aviso externo de una imputación aplicada (sincronización contable).
// Se invoca después del commit; su falla no revierte la imputación.
type Notifier interface {
	PaymentAllocated(ctx context.Context, paymentID, expenseID string, amount decimal.Decimal)
}
