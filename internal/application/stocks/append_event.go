package stocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
	domstocks "github.com/invetex/cortes-api/internal/domain/stocks"
)

// AppendEventUseCase agrega eventos al libro de stock. Cada evento y la
// actualización de cantidad del snapshot comparten una transacción: el libro y
// el contador no pueden divergir por una caída a mitad de camino. La cantidad
// se incrementa (no se recalcula sumando el libro): lecturas O(1) a cambio de
// que toda escritura pase por acá.
type AppendEventUseCase struct {
	txRunner     TxRunner
	snapshotRepo repository.StockSnapshotRepository
	eventRepo    repository.StockEventRepository
	notifier     Notifier
}

// NewAppendEventUseCase construye el caso de uso.
func NewAppendEventUseCase(
	txRunner TxRunner,
	snapshotRepo repository.StockSnapshotRepository,
	eventRepo repository.StockEventRepository,
	notifier Notifier,
) *AppendEventUseCase {
	return &AppendEventUseCase{
		txRunner:     txRunner,
		snapshotRepo: snapshotRepo,
		eventRepo:    eventRepo,
		notifier:     notifier,
	}
}

// AppendEventInput entrada para agregar un evento. Exactamente uno de
// ProductID o SubproductID debe venir informado.
type AppendEventInput struct {
	ProductID      string
	SubproductID   string
	EventType      string
	QuantityChange decimal.Decimal
	Notes          string
	Actor          string
}

// AppendEvent valida, agrega el evento y actualiza el snapshot en una
// transacción con bloqueo de fila (SELECT FOR UPDATE): dos ajustes
// concurrentes sobre el mismo snapshot se serializan. Después del commit avisa
// al notificador (fire-and-forget).
func (uc *AppendEventUseCase) AppendEvent(ctx context.Context, in AppendEventInput) (*entity.StockEvent, error) {
	if (in.ProductID == "") == (in.SubproductID == "") {
		return nil, domain.ErrAmbiguousTarget
	}
	if err := domstocks.ValidateChange(in.EventType, in.QuantityChange); err != nil {
		return nil, err
	}

	// Resolver el snapshot activo de la entidad (fuera de la tx, solo el id;
	// la fila se vuelve a leer con lock adentro).
	var target *entity.StockSnapshot
	var err error
	if in.ProductID != "" {
		target, err = uc.snapshotRepo.GetByProduct(in.ProductID)
	} else {
		target, err = uc.snapshotRepo.GetBySubproduct(in.SubproductID)
	}
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var ev *entity.StockEvent
	var newQty decimal.Decimal

	err = uc.txRunner.Run(ctx, func(
		eventRepo repository.StockEventRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
		subproductRepo repository.SubproductRepository,
	) error {
		created, qty, err := AppendInTx(
			eventRepo, snapshotRepo, productRepo, subproductRepo,
			target.ID, in.EventType, in.QuantityChange, in.Notes, in.Actor, now,
		)
		if err != nil {
			return err
		}
		ev = created
		newQty = qty
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.StockChanged(ctx, target.ID, in.EventType, newQty)
	}
	return ev, nil
}

// RegisterAdjustment normaliza un ajuste manual (dirección ingreso/egreso +
// cantidad cruda) al tipo de evento y signo correspondientes y delega en
// AppendEvent.
func (uc *AppendEventUseCase) RegisterAdjustment(ctx context.Context, productID, subproductID, direction string, quantity decimal.Decimal, notes, actor string) (*entity.StockEvent, error) {
	eventType, change, err := domstocks.NormalizeAdjustment(direction, quantity)
	if err != nil {
		return nil, err
	}
	return uc.AppendEvent(ctx, AppendEventInput{
		ProductID:      productID,
		SubproductID:   subproductID,
		EventType:      eventType,
		QuantityChange: change,
		Notes:          notes,
		Actor:          actor,
	})
}

// ListEvents historial de eventos de un snapshot, más recientes primero.
func (uc *AppendEventUseCase) ListEvents(snapshotID string, forSubproduct bool, limit, offset int) ([]*entity.StockEvent, error) {
	if forSubproduct {
		return uc.eventRepo.ListBySubproductStock(snapshotID, limit, offset)
	}
	return uc.eventRepo.ListByProductStock(snapshotID, limit, offset)
}

// AppendInTx agrega un evento usando los repositorios del caller (misma
// transacción): bloquea el snapshot, inserta el evento, incrementa la cantidad
// y sincroniza el flag activo de la entidad. Lo usan AppendEvent y el cierre
// de órdenes de corte.
func AppendInTx(
	eventRepo repository.StockEventRepository,
	snapshotRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	subproductRepo repository.SubproductRepository,
	snapshotID, eventType string,
	change decimal.Decimal,
	notes, actor string,
	now time.Time,
) (*entity.StockEvent, decimal.Decimal, error) {
	if err := domstocks.ValidateChange(eventType, change); err != nil {
		return nil, decimal.Zero, err
	}

	s, err := snapshotRepo.GetForUpdate(snapshotID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if s == nil || !s.Audit.Active {
		return nil, decimal.Zero, domain.ErrNotFound
	}

	ev := &entity.StockEvent{
		EventType:      eventType,
		QuantityChange: change,
		Notes:          notes,
		CreatedAt:      now,
		CreatedBy:      actor,
	}
	if s.TargetsProduct() {
		ev.ProductStockID = &s.ID
	} else {
		ev.SubproductStockID = &s.ID
	}
	if err := eventRepo.Create(ev); err != nil {
		return nil, decimal.Zero, err
	}

	s.Quantity = s.Quantity.Add(change)
	s.Audit.Touch(actor, now)
	if err := snapshotRepo.Update(s); err != nil {
		return nil, decimal.Zero, err
	}

	if err := syncActiveFlag(productRepo, subproductRepo, s, actor, now); err != nil {
		return nil, decimal.Zero, err
	}
	return ev, s.Quantity, nil
}

// syncActiveFlag regla del sincronizador de estado: la entidad rastreada está
// activa exactamente cuando su cantidad es > 0. Es un update directo del flag
// (no re-dispara reglas de snapshot) y es idempotente: si el flag ya coincide
// no escribe nada.
func syncActiveFlag(
	productRepo repository.ProductRepository,
	subproductRepo repository.SubproductRepository,
	s *entity.StockSnapshot,
	actor string,
	now time.Time,
) error {
	desired := s.ShouldBeActive()
	if s.TargetsProduct() {
		p, err := productRepo.GetByID(*s.ProductID)
		if err != nil {
			return err
		}
		if p == nil || p.Audit.Active == desired {
			return nil
		}
		return productRepo.UpdateActive(p.ID, desired, actor, now)
	}
	sp, err := subproductRepo.GetByID(*s.SubproductID)
	if err != nil {
		return err
	}
	if sp == nil || sp.Audit.Active == desired {
		return nil
	}
	return subproductRepo.UpdateActive(sp.ID, desired, actor, now)
}
