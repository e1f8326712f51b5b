package cuts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/application/stocks"
	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// CuttingOrderUseCase ciclo de vida de órdenes de corte. Mientras la orden está
// pendiente o en proceso sus ítems reservan stock (reserva blanda, derivada);
// al completarse la orden se descuenta el stock con eventos CUT_OUT en una sola
// transacción.
type CuttingOrderUseCase struct {
	txRunner       CutTxRunner
	orderRepo      repository.CuttingOrderRepository
	subproductRepo repository.SubproductRepository
	snapshotRepo   repository.StockSnapshotRepository
	notifier       stocks.Notifier
}

// NewCuttingOrderUseCase construye el caso de uso.
func NewCuttingOrderUseCase(
	txRunner CutTxRunner,
	orderRepo repository.CuttingOrderRepository,
	subproductRepo repository.SubproductRepository,
	snapshotRepo repository.StockSnapshotRepository,
	notifier stocks.Notifier,
) *CuttingOrderUseCase {
	return &CuttingOrderUseCase{
		txRunner:       txRunner,
		orderRepo:      orderRepo,
		subproductRepo: subproductRepo,
		snapshotRepo:   snapshotRepo,
		notifier:       notifier,
	}
}

// OrderItemInput ítem solicitado: subproducto y cantidad de corte.
type OrderItemInput struct {
	SubproductID string
	Quantity     decimal.Decimal
}

// CreateOrderInput entrada para crear una orden de corte.
type CreateOrderInput struct {
	CompanyID string
	Customer  string
	Items     []OrderItemInput
	Actor     string
}

// CreateOrder valida los ítems (cantidad positiva, subproducto existente y con
// stock rastreado) y persiste la orden en estado pending. Desde ese momento los
// ítems cuentan como reserva.
func (uc *CuttingOrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.CuttingOrder, error) {
	if in.CompanyID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.SubproductID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		sp, err := uc.subproductRepo.GetByID(it.SubproductID)
		if err != nil {
			return nil, err
		}
		if sp == nil {
			return nil, domain.ErrNotFound
		}
		snap, err := uc.snapshotRepo.GetBySubproduct(it.SubproductID)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.CuttingOrder{
		CompanyID:      in.CompanyID,
		Customer:       in.Customer,
		WorkflowStatus: entity.WorkflowPending,
		Audit:          entity.NewAudit(in.Actor, now),
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.CuttingOrderItem{
			SubproductID:    it.SubproductID,
			CuttingQuantity: it.Quantity,
		})
	}

	// Orden e ítems se insertan en una sola transacción.
	err := uc.txRunner.RunCut(ctx, func(
		orderRepo repository.CuttingOrderRepository,
		_ repository.StockEventRepository,
		_ repository.StockSnapshotRepository,
		_ repository.ProductRepository,
		_ repository.SubproductRepository,
	) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder devuelve la orden con sus ítems.
func (uc *CuttingOrderUseCase) GetOrder(companyID, orderID string) (*entity.CuttingOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListOrders lista órdenes de la empresa.
func (uc *CuttingOrderUseCase) ListOrders(companyID string, limit, offset int) ([]*entity.CuttingOrder, error) {
	return uc.orderRepo.ListByCompany(companyID, limit, offset)
}

// ChangeStatus aplica una transición de flujo. Completar la orden descuenta el
// stock de cada ítem con un evento CUT_OUT; el cambio de estado y los eventos
// se confirman en la misma transacción (o todo o nada).
func (uc *CuttingOrderUseCase) ChangeStatus(ctx context.Context, companyID, orderID, next, actor string) error {
	// Chequeo rápido fuera de la tx; la decisión se toma de nuevo sobre la
	// fila bloqueada adentro.
	pre, err := uc.GetOrder(companyID, orderID)
	if err != nil {
		return err
	}
	if !pre.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}

	now := time.Now()
	type change struct {
		snapshotID string
		qty        decimal.Decimal
	}
	var applied []change

	err = uc.txRunner.RunCut(ctx, func(
		orderRepo repository.CuttingOrderRepository,
		eventRepo repository.StockEventRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
		subproductRepo repository.SubproductRepository,
	) error {
		// Releer con lock: dos transiciones concurrentes se serializan y la
		// segunda ve el estado ya cambiado en vez de repetir el descuento.
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !order.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}

		if next == entity.WorkflowCompleted {
			for _, item := range order.Items {
				snap, err := snapshotRepo.GetBySubproduct(item.SubproductID)
				if err != nil {
					return err
				}
				if snap == nil {
					return domain.ErrNotFound
				}
				// La suficiencia se evalúa sobre la fila bloqueada, no sobre
				// la lectura suelta: un egreso confirmado en el medio cuenta.
				locked, err := snapshotRepo.GetForUpdate(snap.ID)
				if err != nil {
					return err
				}
				if locked == nil {
					return domain.ErrNotFound
				}
				if locked.Quantity.LessThan(item.CuttingQuantity) {
					return domain.ErrInsufficientStock
				}
				_, newQty, err := stocks.AppendInTx(
					eventRepo, snapshotRepo, productRepo, subproductRepo,
					locked.ID, entity.EventTypeCutOut, item.CuttingQuantity.Neg(),
					"orden de corte "+order.ID, actor, now,
				)
				if err != nil {
					return err
				}
				applied = append(applied, change{snapshotID: locked.ID, qty: newQty})
			}
		}
		return orderRepo.UpdateWorkflowStatus(order.ID, next, actor, now)
	})
	if err != nil {
		return err
	}

	if uc.notifier != nil {
		for _, c := range applied {
			uc.notifier.StockChanged(ctx, c.snapshotID, entity.EventTypeCutOut, c.qty)
		}
	}
	return nil
}
