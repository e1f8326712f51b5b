package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain/entity"
)

// CuttingOrderRepository acceso a órdenes de corte y sus ítems.
type CuttingOrderRepository interface {
	// Create persiste la orden con sus ítems.
	Create(o *entity.CuttingOrder) error
	// GetByID devuelve la orden con ítems, o (nil, nil) si no existe.
	GetByID(id string) (*entity.CuttingOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) dentro de la
	// transacción en curso y la devuelve con ítems. (nil, nil) si no existe.
	GetForUpdate(id string) (*entity.CuttingOrder, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.CuttingOrder, error)
	UpdateWorkflowStatus(id, status, actor string, now time.Time) error
	// SumOpenCuttingQuantity suma cutting_quantity de los ítems cuyas órdenes
	// están activas y en estado pending o in_process. Devuelve cero si no hay
	// filas (COALESCE), nunca error por ausencia.
	SumOpenCuttingQuantity(ctx context.Context, subproductID string) (decimal.Decimal, error)
}
