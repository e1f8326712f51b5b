package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de stock. Los *_OUT exigen cambio negativo; el resto, positivo.
const (
	EventTypeInitial     = "INITIAL"      // carga inicial al crear el snapshot
	EventTypeSaleOut     = "SALE_OUT"     // salida por venta
	EventTypeCutOut      = "CUT_OUT"      // salida por orden de corte
	EventTypeAdjustIn    = "ADJUST_IN"    // ajuste de ingreso
	EventTypeAdjustOut   = "ADJUST_OUT"   // ajuste de egreso
	EventTypeTransferIn  = "TRANSFER_IN"  // entrada por traslado
	EventTypeTransferOut = "TRANSFER_OUT" // salida por traslado
)

// StockEvent entrada inmutable del libro de stock: un delta de cantidad con su
// tipo, aplicado a exactamente un snapshot (de producto o de subproducto).
// Nunca se modifica ni se borra después de creado.
type StockEvent struct {
	ID                string
	ProductStockID    *string
	SubproductStockID *string
	EventType         string
	QuantityChange    decimal.Decimal
	Notes             string
	CreatedAt         time.Time
	CreatedBy         string
}

// IsValidEventType indica si el tipo de evento es conocido.
func IsValidEventType(t string) bool {
	switch t {
	case EventTypeInitial, EventTypeSaleOut, EventTypeCutOut,
		EventTypeAdjustIn, EventTypeAdjustOut,
		EventTypeTransferIn, EventTypeTransferOut:
		return true
	}
	return false
}

// IsOutflowType indica si el tipo implica salida (cambio negativo).
func IsOutflowType(t string) bool {
	switch t {
	case EventTypeSaleOut, EventTypeCutOut, EventTypeAdjustOut, EventTypeTransferOut:
		return true
	}
	return false
}

// IsInflowType indica si el tipo implica entrada (cambio positivo).
func IsInflowType(t string) bool {
	switch t {
	case EventTypeInitial, EventTypeAdjustIn, EventTypeTransferIn:
		return true
	}
	return false
}
