package dto

import "github.com/shopspring/decimal"

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// SupplierDTO proveedor en respuestas.
type SupplierDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// CreateExpenseTypeRequest body para POST /api/expense-types.
type CreateExpenseTypeRequest struct {
	Name             string          `json:"name"`
	RetentionPercent decimal.Decimal `json:"retention_percent"`
	RetentionMinimum decimal.Decimal `json:"retention_minimum"`
}

// ExpenseTypeDTO tipo de gasto en respuestas.
type ExpenseTypeDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	RetentionPercent decimal.Decimal `json:"retention_percent"`
	RetentionMinimum decimal.Decimal `json:"retention_minimum"`
}

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	SupplierID    string          `json:"supplier_id"`
	ExpenseTypeID string          `json:"expense_type_id"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
}

// ExpenseDTO gasto en respuestas, con saldo pendiente calculado.
type ExpenseDTO struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplier_id"`
	ExpenseTypeID string          `json:"expense_type_id"`
	Status        string          `json:"status"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// PaymentDTO pago en respuestas.
type PaymentDTO struct {
	ID                   string          `json:"id"`
	Status               string          `json:"status"`
	RetentionTotalAmount decimal.Decimal `json:"retention_total_amount"`
}

// AllocatePaymentRequest body para POST /api/payments/:id/allocations.
type AllocatePaymentRequest struct {
	ExpenseID string          `json:"expense_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// AllocationDTO imputación de pago en respuestas.
type AllocationDTO struct {
	ID        string          `json:"id"`
	PaymentID string          `json:"payment_id"`
	ExpenseID string          `json:"expense_id"`
	Amount    decimal.Decimal `json:"amount"`
}
