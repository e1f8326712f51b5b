package notify

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/application/expenses"
	"github.com/invetex/cortes-api/internal/application/stocks"
)

var _ stocks.Notifier = (*LogNotifier)(nil)
var _ expenses.Notifier = (*LogNotifier)(nil)

// LogNotifier notificador de sincronización que registra cada cambio en el log
// estructurado. Se invoca después del commit; nunca afecta la transacción.
type LogNotifier struct{}

// NewLogNotifier construye el notificador.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// StockChanged registra un cambio de stock confirmado.
func (n *LogNotifier) StockChanged(_ context.Context, snapshotID, eventType string, newQuantity decimal.Decimal) {
	log.Info().
		Str("snapshot_id", snapshotID).
		Str("event_type", eventType).
		Str("new_quantity", newQuantity.String()).
		Msg("stock actualizado")
}

// PaymentAllocated registra una imputación de pago confirmada.
func (n *LogNotifier) PaymentAllocated(_ context.Context, paymentID, expenseID string, amount decimal.Decimal) {
	log.Info().
		Str("payment_id", paymentID).
		Str("expense_id", expenseID).
		Str("amount", amount.String()).
		Msg("pago imputado")
}
