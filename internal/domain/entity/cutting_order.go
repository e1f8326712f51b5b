package entity

import (
	"github.com/shopspring/decimal"
)

// Estados de flujo de una orden de corte.
const (
	WorkflowPending   = "pending"
	WorkflowInProcess = "in_process"
	WorkflowCompleted = "completed"
	WorkflowCancelled = "cancelled"
)

// CuttingOrder orden de corte sobre subproductos. Mientras esté pendiente o en
// proceso, sus ítems cuentan como reserva blanda contra el stock del subproducto.
type CuttingOrder struct {
	ID             string
	CompanyID      string
	Customer       string
	WorkflowStatus string
	Items          []CuttingOrderItem
	Audit          Audit
}

// CuttingOrderItem cantidad de corte solicitada para un subproducto.
type CuttingOrderItem struct {
	ID              string
	OrderID         string
	SubproductID    string
	CuttingQuantity decimal.Decimal
}

// IsOpen indica si la orden reserva stock (activa y pendiente o en proceso).
func (o *CuttingOrder) IsOpen() bool {
	return o.Audit.Active &&
		(o.WorkflowStatus == WorkflowPending || o.WorkflowStatus == WorkflowInProcess)
}

// CanTransitionTo valida el flujo: pending → in_process → completed, y
// cancelación solo desde pending o in_process. No hay otras transiciones.
func (o *CuttingOrder) CanTransitionTo(next string) bool {
	switch o.WorkflowStatus {
	case WorkflowPending:
		return next == WorkflowInProcess || next == WorkflowCancelled
	case WorkflowInProcess:
		return next == WorkflowCompleted || next == WorkflowCancelled
	}
	return false
}
