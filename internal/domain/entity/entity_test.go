package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/invetex/cortes-api/internal/domain/entity"
)

func TestAudit_MarkDeletedYRestore(t *testing.T) {
	now := time.Now()
	a := entity.NewAudit("user-1", now)
	assert.True(t, a.Active)
	assert.Equal(t, "user-1", a.CreatedBy)
	assert.Nil(t, a.DeletedAt)

	later := now.Add(time.Hour)
	a.MarkDeleted("user-2", later)
	assert.False(t, a.Active)
	assert.NotNil(t, a.DeletedAt)
	assert.Equal(t, "user-2", a.DeletedBy)
	assert.Equal(t, later, a.ModifiedAt)

	a.Restore("user-3", later.Add(time.Hour))
	assert.True(t, a.Active)
	assert.Nil(t, a.DeletedAt)
	assert.Empty(t, a.DeletedBy)
}

// El borrado lógico no toca la cantidad del snapshot.
func TestStockSnapshot_SoftDeleteConservaCantidad(t *testing.T) {
	productID := "p1"
	s := entity.StockSnapshot{
		ProductID: &productID,
		Quantity:  decimal.NewFromInt(42),
		Audit:     entity.NewAudit("u", time.Now()),
	}
	s.Audit.MarkDeleted("u", time.Now())
	assert.False(t, s.Audit.Active)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(42)))
}

func TestStockSnapshot_Target(t *testing.T) {
	productID, subproductID := "p1", "sp1"

	p := entity.StockSnapshot{ProductID: &productID}
	assert.True(t, p.TargetsProduct())
	assert.False(t, p.TargetsSubproduct())
	assert.True(t, p.HasSingleTarget())

	sp := entity.StockSnapshot{SubproductID: &subproductID}
	assert.True(t, sp.TargetsSubproduct())
	assert.True(t, sp.HasSingleTarget())

	none := entity.StockSnapshot{}
	assert.False(t, none.HasSingleTarget())

	both := entity.StockSnapshot{ProductID: &productID, SubproductID: &subproductID}
	assert.False(t, both.HasSingleTarget())
}

// Activo exactamente cuando la cantidad es > 0.
func TestStockSnapshot_ShouldBeActive(t *testing.T) {
	s := entity.StockSnapshot{Quantity: decimal.NewFromInt(1)}
	assert.True(t, s.ShouldBeActive())

	s.Quantity = decimal.Zero
	assert.False(t, s.ShouldBeActive())

	s.Quantity = decimal.NewFromInt(-1)
	assert.False(t, s.ShouldBeActive())
}

func TestEventType_Direcciones(t *testing.T) {
	outflows := []string{
		entity.EventTypeSaleOut, entity.EventTypeCutOut,
		entity.EventTypeAdjustOut, entity.EventTypeTransferOut,
	}
	inflows := []string{
		entity.EventTypeInitial, entity.EventTypeAdjustIn, entity.EventTypeTransferIn,
	}
	for _, et := range outflows {
		assert.True(t, entity.IsValidEventType(et), et)
		assert.True(t, entity.IsOutflowType(et), et)
		assert.False(t, entity.IsInflowType(et), et)
	}
	for _, et := range inflows {
		assert.True(t, entity.IsValidEventType(et), et)
		assert.True(t, entity.IsInflowType(et), et)
		assert.False(t, entity.IsOutflowType(et), et)
	}
	assert.False(t, entity.IsValidEventType("RECOUNT"))
}

// Tabla de transiciones del flujo de órdenes de corte.
func TestCuttingOrder_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.WorkflowPending, entity.WorkflowInProcess, true},
		{entity.WorkflowPending, entity.WorkflowCancelled, true},
		{entity.WorkflowPending, entity.WorkflowCompleted, false},
		{entity.WorkflowInProcess, entity.WorkflowCompleted, true},
		{entity.WorkflowInProcess, entity.WorkflowCancelled, true},
		{entity.WorkflowInProcess, entity.WorkflowPending, false},
		{entity.WorkflowCompleted, entity.WorkflowCancelled, false},
		{entity.WorkflowCompleted, entity.WorkflowInProcess, false},
		{entity.WorkflowCancelled, entity.WorkflowPending, false},
		{entity.WorkflowCancelled, entity.WorkflowCompleted, false},
	}
	for _, tc := range cases {
		o := entity.CuttingOrder{WorkflowStatus: tc.from}
		assert.Equal(t, tc.want, o.CanTransitionTo(tc.to), "%s → %s", tc.from, tc.to)
	}
}

// Solo reservan stock las órdenes activas en pending o in_process.
func TestCuttingOrder_IsOpen(t *testing.T) {
	now := time.Now()

	open := entity.CuttingOrder{WorkflowStatus: entity.WorkflowPending, Audit: entity.NewAudit("u", now)}
	assert.True(t, open.IsOpen())

	open.WorkflowStatus = entity.WorkflowInProcess
	assert.True(t, open.IsOpen())

	open.WorkflowStatus = entity.WorkflowCompleted
	assert.False(t, open.IsOpen())

	deleted := entity.CuttingOrder{WorkflowStatus: entity.WorkflowPending, Audit: entity.NewAudit("u", now)}
	deleted.Audit.MarkDeleted("u", now)
	assert.False(t, deleted.IsOpen())
}

func TestExpense_SaldoYEstado(t *testing.T) {
	e := entity.Expense{
		NetAmount:  decimal.NewFromInt(1000),
		VATAmount:  decimal.NewFromInt(190),
		AmountPaid: decimal.NewFromInt(400),
	}
	assert.True(t, e.TotalAmount().Equal(decimal.NewFromInt(1190)))
	assert.True(t, e.OutstandingBalance().Equal(decimal.NewFromInt(790)))
	assert.False(t, e.IsCancelled())

	e.Status = entity.ExpenseStatusCancelled
	assert.True(t, e.IsCancelled())
}

func TestExpenseType_AppliesRetention(t *testing.T) {
	et := entity.ExpenseType{
		RetentionPercent: decimal.NewFromFloat(2.5),
		RetentionMinimum: decimal.NewFromInt(100),
	}
	assert.False(t, et.AppliesRetention(decimal.NewFromInt(99)))
	assert.True(t, et.AppliesRetention(decimal.NewFromInt(100)))
	assert.True(t, et.AppliesRetention(decimal.NewFromInt(500)))

	sinRetencion := entity.ExpenseType{RetentionPercent: decimal.Zero}
	assert.False(t, sinRetencion.AppliesRetention(decimal.NewFromInt(1000)))
}
