package stocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el evento insertado
// y la cantidad actualizada del snapshot: o se escriben ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		eventRepo repository.StockEventRepository,
		snapshotRepo repository.StockSnapshotRepository,
		productRepo repository.ProductRepository,
		subproductRepo repository.SubproductRepository,
	) error) error
}

// Notifier aviso externo (broadcast, cache) de un cambio de stock. Se invoca
// después del commit, nunca dentro de la transacción; su falla no afecta al
// libro (fire-and-forget).
type Notifier interface {
	StockChanged(ctx context.Context, snapshotID, eventType string, newQuantity decimal.Decimal)
}
