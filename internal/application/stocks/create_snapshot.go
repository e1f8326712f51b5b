package stocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// SnapshotUseCase crea, consulta y da de baja (borrado lógico) snapshots de
// stock. La creación es transaccional: snapshot + evento INITIAL + flag activo.
type SnapshotUseCase struct {
	txRunner       TxRunner
	snapshotRepo   repository.StockSnapshotRepository
	productRepo    repository.ProductRepository
	subproductRepo repository.SubproductRepository
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(
	txRunner TxRunner,
	snapshotRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	subproductRepo repository.SubproductRepository,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		txRunner:       txRunner,
		snapshotRepo:   snapshotRepo,
		productRepo:    productRepo,
		subproductRepo: subproductRepo,
	}
}

// CreateSnapshotInput entrada para iniciar el rastreo de stock de una entidad.
// Exactamente uno de ProductID o SubproductID debe venir informado.
type CreateSnapshotInput struct {
	ProductID       string
	SubproductID    string
	InitialQuantity decimal.Decimal
	Actor           string
}

// CreateSnapshot inicia el rastreo de stock. Rechaza cantidad inicial negativa,
// productos con subproductos (el stock se lleva por subproducto) y entidades ya
// rastreadas. El chequeo previo y el índice único cubren la carrera de doble
// creación: ambas rutas devuelven ErrSnapshotExists.
func (uc *SnapshotUseCase) CreateSnapshot(ctx context.Context, in CreateSnapshotInput) (*entity.StockSnapshot, error) {
	if (in.ProductID == "") == (in.SubproductID == "") {
		return nil, domain.ErrAmbiguousTarget
	}
	if in.InitialQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrNegativeQuantity
	}

	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		hasSubs, err := uc.subproductRepo.ExistsByProduct(in.ProductID)
		if err != nil {
			return nil, err
		}
		if hasSubs {
			return nil, domain.ErrHasSubproducts
		}
	} else {
		subproduct, err := uc.subproductRepo.GetByID(in.SubproductID)
		if err != nil {
			return nil, err
		}
		if subproduct == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var snap *entity.StockSnapshot

	err := uc.txRunner.Run(ctx, func(
		eventRepo repository.StockEventRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
		subproductRepo repository.SubproductRepository,
	) error {
		// Chequeo previo dentro de la tx; la constraint única cierra la ventana.
		existing, err := uc.findActive(snapshotRepo, in.ProductID, in.SubproductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrSnapshotExists
		}

		s := &entity.StockSnapshot{
			Quantity: in.InitialQuantity,
			Audit:    entity.NewAudit(in.Actor, now),
		}
		if in.ProductID != "" {
			s.ProductID = &in.ProductID
		} else {
			s.SubproductID = &in.SubproductID
		}
		if err := snapshotRepo.Create(s); err != nil {
			return err
		}

		// La carga inicial queda en el libro como evento INITIAL; cantidad cero
		// no genera evento (el libro no admite deltas cero).
		if in.InitialQuantity.GreaterThan(decimal.Zero) {
			ev := &entity.StockEvent{
				EventType:      entity.EventTypeInitial,
				QuantityChange: in.InitialQuantity,
				Notes:          "carga inicial",
				CreatedAt:      now,
				CreatedBy:      in.Actor,
			}
			if in.ProductID != "" {
				ev.ProductStockID = &s.ID
			} else {
				ev.SubproductStockID = &s.ID
			}
			if err := eventRepo.Create(ev); err != nil {
				return err
			}
		}

		if err := syncActiveFlag(productRepo, subproductRepo, s, in.Actor, now); err != nil {
			return err
		}

		snap = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// GetByProduct devuelve el snapshot activo de un producto, o (nil, nil).
func (uc *SnapshotUseCase) GetByProduct(productID string) (*entity.StockSnapshot, error) {
	return uc.snapshotRepo.GetByProduct(productID)
}

// GetBySubproduct devuelve el snapshot activo de un subproducto, o (nil, nil).
func (uc *SnapshotUseCase) GetBySubproduct(subproductID string) (*entity.StockSnapshot, error) {
	return uc.snapshotRepo.GetBySubproduct(subproductID)
}

// SoftDelete da de baja el snapshot (borrado lógico). No altera la cantidad ni
// toca el libro de eventos.
func (uc *SnapshotUseCase) SoftDelete(ctx context.Context, snapshotID, actor string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockEventRepository,
		snapshotRepo repository.StockSnapshotRepository,
		_ repository.ProductRepository,
		_ repository.SubproductRepository,
	) error {
		s, err := snapshotRepo.GetForUpdate(snapshotID)
		if err != nil {
			return err
		}
		if s == nil || !s.Audit.Active {
			return domain.ErrNotFound
		}
		s.Audit.MarkDeleted(actor, time.Now())
		return snapshotRepo.Update(s)
	})
}

func (uc *SnapshotUseCase) findActive(snapshotRepo repository.StockSnapshotRepository, productID, subproductID string) (*entity.StockSnapshot, error) {
	if productID != "" {
		return snapshotRepo.GetByProduct(productID)
	}
	return snapshotRepo.GetBySubproduct(subproductID)
}
