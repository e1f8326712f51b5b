package expenses

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// RegistryUseCase alta y consulta de proveedores, tipos de gasto, gastos y
// pagos. Las operaciones transaccionales (imputaciones) viven en
// AllocatePaymentUseCase.
type RegistryUseCase struct {
	supplierRepo    repository.SupplierRepository
	expenseTypeRepo repository.ExpenseTypeRepository
	expenseRepo     repository.ExpenseRepository
	paymentRepo     repository.PaymentRepository
	allocationRepo  repository.PaymentAllocationRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	supplierRepo repository.SupplierRepository,
	expenseTypeRepo repository.ExpenseTypeRepository,
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
	allocationRepo repository.PaymentAllocationRepository,
) *RegistryUseCase {
	return &RegistryUseCase{
		supplierRepo:    supplierRepo,
		expenseTypeRepo: expenseTypeRepo,
		expenseRepo:     expenseRepo,
		paymentRepo:     paymentRepo,
		allocationRepo:  allocationRepo,
	}
}

// CreateSupplier registra un proveedor.
func (uc *RegistryUseCase) CreateSupplier(companyID, name, taxID, actor string) (*entity.Supplier, error) {
	if companyID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Supplier{
		CompanyID: companyID,
		Name:      name,
		TaxID:     taxID,
		Audit:     entity.NewAudit(actor, time.Now()),
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSuppliers lista proveedores de la empresa.
func (uc *RegistryUseCase) ListSuppliers(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(companyID, limit, offset)
}

// CreateExpenseType registra un tipo de gasto con su regla de retención. El
// porcentaje debe estar entre 0 y 100 y el mínimo no puede ser negativo.
func (uc *RegistryUseCase) CreateExpenseType(name string, retentionPercent, retentionMinimum decimal.Decimal) (*entity.ExpenseType, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if retentionPercent.IsNegative() || retentionPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	if retentionMinimum.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.ExpenseType{
		Name:             name,
		RetentionPercent: retentionPercent,
		RetentionMinimum: retentionMinimum,
	}
	if err := uc.expenseTypeRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListExpenseTypes lista los tipos de gasto.
func (uc *RegistryUseCase) ListExpenseTypes() ([]*entity.ExpenseType, error) {
	return uc.expenseTypeRepo.List()
}

// CreateExpenseInput entrada para registrar un gasto.
type CreateExpenseInput struct {
	CompanyID     string
	SupplierID    string
	ExpenseTypeID string
	NetAmount     decimal.Decimal
	VATAmount     decimal.Decimal
	Actor         string
}

// CreateExpense registra un gasto aprobado, con saldo igual a neto + IVA.
// El proveedor y el tipo de gasto deben existir.
func (uc *RegistryUseCase) CreateExpense(in CreateExpenseInput) (*entity.Expense, error) {
	if in.CompanyID == "" || in.SupplierID == "" || in.ExpenseTypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.NetAmount.IsNegative() || in.VATAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !in.NetAmount.Add(in.VATAmount).GreaterThan(decimal.Zero) {
		return nil, domain.ErrNonPositiveAmount
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != in.CompanyID {
		return nil, domain.ErrNotFound
	}
	expenseType, err := uc.expenseTypeRepo.GetByID(in.ExpenseTypeID)
	if err != nil {
		return nil, err
	}
	if expenseType == nil {
		return nil, domain.ErrNotFound
	}

	e := &entity.Expense{
		CompanyID:     in.CompanyID,
		SupplierID:    in.SupplierID,
		ExpenseTypeID: in.ExpenseTypeID,
		Status:        entity.ExpenseStatusApproved,
		NetAmount:     in.NetAmount,
		VATAmount:     in.VATAmount,
		AmountPaid:    decimal.Zero,
		Audit:         entity.NewAudit(in.Actor, time.Now()),
	}
	if err := uc.expenseRepo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetExpense devuelve un gasto de la empresa.
func (uc *RegistryUseCase) GetExpense(companyID, id string) (*entity.Expense, error) {
	e, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

// CreatePayment emite un pago sin imputaciones, con retención en cero.
func (uc *RegistryUseCase) CreatePayment(companyID, actor string) (*entity.Payment, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Payment{
		CompanyID:            companyID,
		Status:               entity.PaymentStatusIssued,
		RetentionTotalAmount: decimal.Zero,
		Audit:                entity.NewAudit(actor, time.Now()),
	}
	if err := uc.paymentRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPayment devuelve un pago de la empresa.
func (uc *RegistryUseCase) GetPayment(companyID, id string) (*entity.Payment, error) {
	p, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// ListAllocations lista las imputaciones de un pago de la empresa.
func (uc *RegistryUseCase) ListAllocations(companyID, paymentID string) ([]*entity.PaymentAllocation, error) {
	if _, err := uc.GetPayment(companyID, paymentID); err != nil {
		return nil, err
	}
	return uc.allocationRepo.ListByPayment(paymentID)
}
