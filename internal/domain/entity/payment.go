package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PaymentStatusIssued    = "issued"
	PaymentStatusCancelled = "cancelled"
)

// Payment pago emitido que se imputa contra gastos. RetentionTotalAmount es el
// total retenido, recalculado al sumar todas sus imputaciones.
type Payment struct {
	ID                   string
	CompanyID            string
	Status               string
	RetentionTotalAmount decimal.Decimal
	Audit                Audit
}

// IsCancelled indica si el pago está anulado.
func (p *Payment) IsCancelled() bool {
	return p.Status == PaymentStatusCancelled
}

// PaymentAllocation imputación de parte de un pago al saldo de un gasto.
type PaymentAllocation struct {
	ID        string
	PaymentID string
	ExpenseID string
	Amount    decimal.Decimal
	CreatedAt time.Time
	CreatedBy string
}
