package entity

import (
	"github.com/shopspring/decimal"
)

// Estados de un gasto.
const (
	ExpenseStatusApproved  = "approved"
	ExpenseStatusPaid      = "paid"
	ExpenseStatusCancelled = "cancelled"
)

// ExpenseType tipo de gasto con su regla de retención: porcentaje a retener y
// monto mínimo imputado a partir del cual aplica.
type ExpenseType struct {
	ID               string
	Name             string
	RetentionPercent decimal.Decimal
	RetentionMinimum decimal.Decimal
}

// AppliesRetention indica si la retención aplica para un monto imputado.
func (t *ExpenseType) AppliesRetention(amount decimal.Decimal) bool {
	return t.RetentionPercent.GreaterThan(decimal.Zero) &&
		amount.GreaterThanOrEqual(t.RetentionMinimum)
}

// Expense gasto a pagar. El saldo pendiente es neto + IVA − pagado.
type Expense struct {
	ID            string
	CompanyID     string
	SupplierID    string
	ExpenseTypeID string
	Status        string
	NetAmount     decimal.Decimal
	VATAmount     decimal.Decimal
	AmountPaid    decimal.Decimal
	Audit         Audit
}

// TotalAmount monto total del gasto (neto + IVA).
func (e *Expense) TotalAmount() decimal.Decimal {
	return e.NetAmount.Add(e.VATAmount)
}

// OutstandingBalance saldo pendiente de pago.
func (e *Expense) OutstandingBalance() decimal.Decimal {
	return e.TotalAmount().Sub(e.AmountPaid)
}

// IsCancelled indica si el gasto está anulado.
func (e *Expense) IsCancelled() bool {
	return e.Status == ExpenseStatusCancelled
}
