package stocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/repository"
	domstocks "github.com/invetex/cortes-api/internal/domain/stocks"
)

// AvailabilityUseCase disponibilidad de subproductos: stock en mano, reserva
// derivada de órdenes de corte abiertas y disponible a comprometer. Lectura
// pura: no muta ni cachea nada.
type AvailabilityUseCase struct {
	snapshotRepo repository.StockSnapshotRepository
	orderRepo    repository.CuttingOrderRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(
	snapshotRepo repository.StockSnapshotRepository,
	orderRepo repository.CuttingOrderRepository,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{snapshotRepo: snapshotRepo, orderRepo: orderRepo}
}

// Availability resultado del cálculo para un subproducto.
type Availability struct {
	SubproductID string
	OnHand       decimal.Decimal
	Reserved     decimal.Decimal
	Available    decimal.Decimal
}

// ReservedQuantity reserva abierta de un subproducto: suma de cantidades de
// corte de órdenes activas en pending o in_process. Cero si no hay órdenes.
func (uc *AvailabilityUseCase) ReservedQuantity(ctx context.Context, subproductID string) (decimal.Decimal, error) {
	return uc.orderRepo.SumOpenCuttingQuantity(ctx, subproductID)
}

// ForSubproduct calcula la disponibilidad: cantidad del snapshot menos la
// reserva abierta. El disponible se calcula en el momento, nunca se almacena.
func (uc *AvailabilityUseCase) ForSubproduct(ctx context.Context, subproductID string) (*Availability, error) {
	snap, err := uc.snapshotRepo.GetBySubproduct(subproductID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	reserved, err := uc.orderRepo.SumOpenCuttingQuantity(ctx, subproductID)
	if err != nil {
		return nil, err
	}
	return &Availability{
		SubproductID: subproductID,
		OnHand:       snap.Quantity,
		Reserved:     reserved,
		Available:    domstocks.AvailableToPromise(snap.Quantity, reserved),
	}, nil
}
