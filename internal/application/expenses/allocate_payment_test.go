package expenses_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invetex/cortes-api/internal/application/expenses"
	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	domexpenses "github.com/invetex/cortes-api/internal/domain/expenses"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type memStore struct {
	mu           sync.Mutex
	seq          int
	suppliers    map[string]*entity.Supplier
	expenseTypes map[string]*entity.ExpenseType
	expenses     map[string]*entity.Expense
	payments     map[string]*entity.Payment
	allocations  []*entity.PaymentAllocation
}

func newMemStore() *memStore {
	return &memStore{
		suppliers:    make(map[string]*entity.Supplier),
		expenseTypes: make(map[string]*entity.ExpenseType),
		expenses:     make(map[string]*entity.Expense),
		payments:     make(map[string]*entity.Payment),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type fakeSupplierRepo struct{ s *memStore }

func (r *fakeSupplierRepo) Create(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp.ID == "" {
		sp.ID = r.s.nextID("sup")
	}
	r.s.suppliers[sp.ID] = sp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *fakeSupplierRepo) List(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}

type fakeExpenseTypeRepo struct{ s *memStore }

func (r *fakeExpenseTypeRepo) Create(t *entity.ExpenseType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = r.s.nextID("etype")
	}
	r.s.expenseTypes[t.ID] = t
	return nil
}

func (r *fakeExpenseTypeRepo) GetByID(id string) (*entity.ExpenseType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.expenseTypes[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeExpenseTypeRepo) List() ([]*entity.ExpenseType, error) { return nil, nil }

type fakeExpenseRepo struct{ s *memStore }

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == "" {
		e.ID = r.s.nextID("exp")
	}
	cp := *e
	r.s.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) GetForUpdate(id string) (*entity.Expense, error) {
	return r.GetByID(id)
}

func (r *fakeExpenseRepo) UpdatePayment(id string, amountPaid decimal.Decimal, status, actor string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.AmountPaid = amountPaid
	e.Status = status
	e.Audit.Touch(actor, now)
	return nil
}

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = r.s.nextID("pay")
	}
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetForUpdate(id string) (*entity.Payment, error) {
	return r.GetByID(id)
}

func (r *fakePaymentRepo) UpdateRetention(id string, total decimal.Decimal, actor string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.RetentionTotalAmount = total
	p.Audit.Touch(actor, now)
	return nil
}

type fakeAllocationRepo struct{ s *memStore }

func (r *fakeAllocationRepo) Create(a *entity.PaymentAllocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = r.s.nextID("alloc")
	}
	cp := *a
	r.s.allocations = append(r.s.allocations, &cp)
	return nil
}

func (r *fakeAllocationRepo) ListByPayment(paymentID string) ([]*entity.PaymentAllocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PaymentAllocation
	for _, a := range r.s.allocations {
		if a.PaymentID == paymentID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ListRetentionItems replica el join imputación → gasto → tipo de gasto.
func (r *fakeAllocationRepo) ListRetentionItems(paymentID string) ([]domexpenses.RetentionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domexpenses.RetentionItem
	for _, a := range r.s.allocations {
		if a.PaymentID != paymentID {
			continue
		}
		e := r.s.expenses[a.ExpenseID]
		t := r.s.expenseTypes[e.ExpenseTypeID]
		out = append(out, domexpenses.RetentionItem{
			Amount:           a.Amount,
			RetentionPercent: t.RetentionPercent,
			RetentionMinimum: t.RetentionMinimum,
		})
	}
	return out, nil
}

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) RunExpense(ctx context.Context, fn func(
	expenseRepo repository.ExpenseRepository,
	paymentRepo repository.PaymentRepository,
	allocationRepo repository.PaymentAllocationRepository,
) error) error {
	return fn(&fakeExpenseRepo{r.s}, &fakePaymentRepo{r.s}, &fakeAllocationRepo{r.s})
}

type fakeNotifier struct{ calls int }

func (n *fakeNotifier) PaymentAllocated(_ context.Context, _, _ string, _ decimal.Decimal) {
	n.calls++
}

type harness struct {
	store    *memStore
	notifier *fakeNotifier
	registry *expenses.RegistryUseCase
	allocate *expenses.AllocatePaymentUseCase
}

func newHarness() *harness {
	s := newMemStore()
	notifier := &fakeNotifier{}
	return &harness{
		store:    s,
		notifier: notifier,
		registry: expenses.NewRegistryUseCase(
			&fakeSupplierRepo{s}, &fakeExpenseTypeRepo{s}, &fakeExpenseRepo{s},
			&fakePaymentRepo{s}, &fakeAllocationRepo{s},
		),
		allocate: expenses.NewAllocatePaymentUseCase(&fakeTxRunner{s}, notifier),
	}
}

// seedScenario arma proveedor, tipo de gasto 2.5% con mínimo 100, un gasto de
// 1000 sin IVA y un pago emitido.
func seedScenario(t *testing.T, h *harness) (expenseID, paymentID string) {
	t.Helper()
	sup, err := h.registry.CreateSupplier("co-1", "Aceros SA", "900123", "u1")
	require.NoError(t, err)
	etype, err := h.registry.CreateExpenseType("servicios", d("2.5"), d("100"))
	require.NoError(t, err)
	exp, err := h.registry.CreateExpense(expenses.CreateExpenseInput{
		CompanyID: "co-1", SupplierID: sup.ID, ExpenseTypeID: etype.ID,
		NetAmount: d("1000"), VATAmount: decimal.Zero, Actor: "u1",
	})
	require.NoError(t, err)
	pay, err := h.registry.CreatePayment("co-1", "u1")
	require.NoError(t, err)
	return exp.ID, pay.ID
}

// Escenario de referencia: 1000.00 pagado en 400 + 600 con retención 2.5% y
// mínimo 100. Tras la primera imputación la retención es 10.00 y el gasto sigue
// approved; tras la segunda el saldo llega exactamente a cero, el gasto pasa a
// paid y la retención total del pago es 25.00.
func TestAllocate_PagoParcialYTotal(t *testing.T) {
	h := newHarness()
	expenseID, paymentID := seedScenario(t, h)
	ctx := context.Background()

	a, err := h.allocate.Allocate(ctx, expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID,
		Amount: d("400"), Actor: "u1",
	})
	require.NoError(t, err)
	require.NotNil(t, a)

	exp := h.store.expenses[expenseID]
	assert.True(t, exp.AmountPaid.Equal(d("400")))
	assert.Equal(t, entity.ExpenseStatusApproved, exp.Status)
	pay := h.store.payments[paymentID]
	assert.Equal(t, "10.00", pay.RetentionTotalAmount.StringFixed(2))
	assert.Equal(t, 1, h.notifier.calls)

	_, err = h.allocate.Allocate(ctx, expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID,
		Amount: d("600"), Actor: "u1",
	})
	require.NoError(t, err)

	exp = h.store.expenses[expenseID]
	assert.True(t, exp.AmountPaid.Equal(d("1000")))
	assert.Equal(t, entity.ExpenseStatusPaid, exp.Status, "saldo cero exacto → paid")
	pay = h.store.payments[paymentID]
	assert.Equal(t, "25.00", pay.RetentionTotalAmount.StringFixed(2))
	assert.Equal(t, 2, h.notifier.calls)
}

// Imputar más que el saldo pendiente se rechaza sin mutar nada.
func TestAllocate_ExcedeSaldo(t *testing.T) {
	h := newHarness()
	expenseID, paymentID := seedScenario(t, h)

	_, err := h.allocate.Allocate(context.Background(), expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID,
		Amount: d("1000.01"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrExceedsBalance)

	exp := h.store.expenses[expenseID]
	assert.True(t, exp.AmountPaid.IsZero())
	assert.Equal(t, entity.ExpenseStatusApproved, exp.Status)
	assert.Empty(t, h.store.allocations)
	assert.Equal(t, 0, h.notifier.calls)
}

func TestAllocate_MontoNoPositivo(t *testing.T) {
	h := newHarness()
	expenseID, paymentID := seedScenario(t, h)
	ctx := context.Background()

	_, err := h.allocate.Allocate(ctx, expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID, Amount: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	_, err = h.allocate.Allocate(ctx, expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID, Amount: d("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
}

// Documentos anulados no admiten imputaciones.
func TestAllocate_DocumentoAnulado(t *testing.T) {
	h := newHarness()
	expenseID, paymentID := seedScenario(t, h)
	ctx := context.Background()

	h.store.payments[paymentID].Status = entity.PaymentStatusCancelled
	_, err := h.allocate.Allocate(ctx, expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID, Amount: d("100"),
	})
	assert.ErrorIs(t, err, domain.ErrDocumentCancelled)

	h.store.payments[paymentID].Status = entity.PaymentStatusIssued
	h.store.expenses[expenseID].Status = entity.ExpenseStatusCancelled
	_, err = h.allocate.Allocate(ctx, expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID, Amount: d("100"),
	})
	assert.ErrorIs(t, err, domain.ErrDocumentCancelled)
}

// Una imputación por debajo del mínimo del tipo de gasto no retiene.
func TestAllocate_DebajoDelMinimoNoRetiene(t *testing.T) {
	h := newHarness()
	expenseID, paymentID := seedScenario(t, h)

	_, err := h.allocate.Allocate(context.Background(), expenses.AllocateInput{
		CompanyID: "co-1", PaymentID: paymentID, ExpenseID: expenseID,
		Amount: d("99.99"), Actor: "u1",
	})
	require.NoError(t, err)

	pay := h.store.payments[paymentID]
	assert.True(t, pay.RetentionTotalAmount.IsZero())
	exp := h.store.expenses[expenseID]
	assert.True(t, exp.AmountPaid.Equal(d("99.99")))
}

func TestAllocate_EmpresaAjena(t *testing.T) {
	h := newHarness()
	expenseID, paymentID := seedScenario(t, h)

	_, err := h.allocate.Allocate(context.Background(), expenses.AllocateInput{
		CompanyID: "co-2", PaymentID: paymentID, ExpenseID: expenseID, Amount: d("100"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegistry_Validaciones(t *testing.T) {
	h := newHarness()

	_, err := h.registry.CreateExpenseType("x", d("101"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porcentaje > 100")

	_, err = h.registry.CreateExpenseType("x", d("-1"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porcentaje negativo")

	etype, err := h.registry.CreateExpenseType("honorarios", d("10"), d("0"))
	require.NoError(t, err)

	_, err = h.registry.CreateExpense(expenses.CreateExpenseInput{
		CompanyID: "co-1", SupplierID: "no-existe", ExpenseTypeID: etype.ID,
		NetAmount: d("100"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente")

	sup, err := h.registry.CreateSupplier("co-1", "Proveedor", "", "u1")
	require.NoError(t, err)

	_, err = h.registry.CreateExpense(expenses.CreateExpenseInput{
		CompanyID: "co-1", SupplierID: sup.ID, ExpenseTypeID: etype.ID,
		NetAmount: d("0"), VATAmount: d("0"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount, "gasto sin monto")
}
