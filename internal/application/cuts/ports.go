package cuts

import (
	"context"

	"github.com/invetex/cortes-api/internal/domain/repository"
)

// CutTxRunner ejecuta una función dentro de una transacción con los
// repositorios de órdenes de corte y de stock atados a esa tx: el cambio de
// estado de la orden y los eventos de salida se confirman juntos.
type CutTxRunner interface {
	RunCut(ctx context.Context, fn func(
		orderRepo repository.CuttingOrderRepository,
		eventRepo repository.StockEventRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
		subproductRepo repository.SubproductRepository,
	) error) error
}
