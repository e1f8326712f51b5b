package stocks

import (
	"github.com/shopspring/decimal"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// Direcciones de un ajuste manual de stock.
const (
	AdjustmentIngreso = "ingreso"
	AdjustmentEgreso  = "egreso"
)

// ValidateChange valida el par (tipo de evento, cambio de cantidad): tipo
// conocido, cambio distinto de cero y signo acorde a la dirección del tipo
// (salidas negativas, entradas positivas).
func ValidateChange(eventType string, change decimal.Decimal) error {
	if !entity.IsValidEventType(eventType) {
		return domain.ErrInvalidInput
	}
	if change.IsZero() {
		return domain.ErrZeroQuantityChange
	}
	if entity.IsOutflowType(eventType) && change.GreaterThan(decimal.Zero) {
		return domain.ErrSignMismatch
	}
	if entity.IsInflowType(eventType) && change.LessThan(decimal.Zero) {
		return domain.ErrSignMismatch
	}
	return nil
}

// NormalizeAdjustment convierte la intención (dirección + cantidad cruda) en el
// tipo de evento y el cambio con signo: ingreso fuerza magnitud positiva,
// egreso la fuerza negativa. Cantidad cero se rechaza.
func NormalizeAdjustment(direction string, quantity decimal.Decimal) (eventType string, change decimal.Decimal, err error) {
	if quantity.IsZero() {
		return "", decimal.Zero, domain.ErrZeroQuantityChange
	}
	magnitude := quantity.Abs()
	switch direction {
	case AdjustmentIngreso:
		return entity.EventTypeAdjustIn, magnitude, nil
	case AdjustmentEgreso:
		return entity.EventTypeAdjustOut, magnitude.Neg(), nil
	}
	return "", decimal.Zero, domain.ErrInvalidInput
}

// AvailableToPromise cantidad disponible a comprometer: stock actual menos
// reservas abiertas. Puede ser negativa si se sobre-reservó.
func AvailableToPromise(onHand, reserved decimal.Decimal) decimal.Decimal {
	return onHand.Sub(reserved)
}
