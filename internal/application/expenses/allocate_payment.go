package expenses

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	domexpenses "github.com/invetex/cortes-api/internal/domain/expenses"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// AllocatePaymentUseCase imputa parte de un pago al saldo de un gasto. Toda la
// operación (imputación, saldo del gasto, retención del pago) ocurre en una
// transacción con bloqueo de fila sobre el pago y el gasto; cualquier
// validación fallida aborta sin escrituras parciales.
type AllocatePaymentUseCase struct {
	txRunner ExpenseTxRunner
	notifier Notifier
}

// NewAllocatePaymentUseCase construye el caso de uso.
func NewAllocatePaymentUseCase(txRunner ExpenseTxRunner, notifier Notifier) *AllocatePaymentUseCase {
	return &AllocatePaymentUseCase{txRunner: txRunner, notifier: notifier}
}

// AllocateInput entrada para imputar un pago a un gasto.
type AllocateInput struct {
	CompanyID string
	PaymentID string
	ExpenseID string
	Amount    decimal.Decimal
	Actor     string
}

// Allocate valida (documentos no anulados, monto positivo y dentro del saldo),
// persiste la imputación, actualiza el monto pagado del gasto (estado "paid"
// exactamente cuando el saldo llega a cero) y recalcula la retención total del
// pago sumando todas sus imputaciones. Después del commit avisa al notificador.
func (uc *AllocatePaymentUseCase) Allocate(ctx context.Context, in AllocateInput) (*entity.PaymentAllocation, error) {
	if in.PaymentID == "" || in.ExpenseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrNonPositiveAmount
	}

	now := time.Now()
	var allocation *entity.PaymentAllocation

	err := uc.txRunner.RunExpense(ctx, func(
		expenseRepo repository.ExpenseRepository,
		paymentRepo repository.PaymentRepository,
		allocationRepo repository.PaymentAllocationRepository,
	) error {
		payment, err := paymentRepo.GetForUpdate(in.PaymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		if in.CompanyID != "" && payment.CompanyID != in.CompanyID {
			return domain.ErrForbidden
		}
		if payment.IsCancelled() {
			return domain.ErrDocumentCancelled
		}

		expense, err := expenseRepo.GetForUpdate(in.ExpenseID)
		if err != nil {
			return err
		}
		if expense == nil {
			return domain.ErrNotFound
		}
		if in.CompanyID != "" && expense.CompanyID != in.CompanyID {
			return domain.ErrForbidden
		}
		if expense.IsCancelled() {
			return domain.ErrDocumentCancelled
		}

		outstanding := expense.OutstandingBalance()
		if in.Amount.GreaterThan(outstanding) {
			return domain.ErrExceedsBalance
		}

		a := &entity.PaymentAllocation{
			PaymentID: in.PaymentID,
			ExpenseID: in.ExpenseID,
			Amount:    in.Amount,
			CreatedAt: now,
			CreatedBy: in.Actor,
		}
		if err := allocationRepo.Create(a); err != nil {
			return err
		}

		newPaid := expense.AmountPaid.Add(in.Amount)
		status := entity.ExpenseStatusApproved
		if outstanding.Sub(in.Amount).IsZero() {
			status = entity.ExpenseStatusPaid
		}
		if err := expenseRepo.UpdatePayment(expense.ID, newPaid, status, in.Actor, now); err != nil {
			return err
		}

		// Recalcular la retención total del pago con todas sus imputaciones
		// (incluida la recién insertada, visible dentro de la misma tx).
		items, err := allocationRepo.ListRetentionItems(in.PaymentID)
		if err != nil {
			return err
		}
		total := domexpenses.RetentionTotal(items)
		if err := paymentRepo.UpdateRetention(payment.ID, total, in.Actor, now); err != nil {
			return err
		}

		allocation = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.PaymentAllocated(ctx, in.PaymentID, in.ExpenseID, in.Amount)
	}
	return allocation, nil
}
