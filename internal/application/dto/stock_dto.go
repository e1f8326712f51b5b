package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSnapshotRequest body para POST /api/stocks. Exactamente uno de
// product_id o subproduct_id debe venir informado.
type CreateSnapshotRequest struct {
	ProductID       string          `json:"product_id,omitempty"`
	SubproductID    string          `json:"subproduct_id,omitempty"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

// SnapshotDTO snapshot de stock en respuestas.
type SnapshotDTO struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id,omitempty"`
	SubproductID string          `json:"subproduct_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Active       bool            `json:"active"`
}

// AppendEventRequest body para POST /api/stocks/events.
type AppendEventRequest struct {
	ProductID      string          `json:"product_id,omitempty"`
	SubproductID   string          `json:"subproduct_id,omitempty"`
	EventType      string          `json:"event_type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Notes          string          `json:"notes,omitempty"`
}

// AdjustmentRequest body para POST /api/stocks/adjustments: dirección
// ingreso/egreso con cantidad en crudo (el signo lo pone el servidor).
type AdjustmentRequest struct {
	ProductID    string          `json:"product_id,omitempty"`
	SubproductID string          `json:"subproduct_id,omitempty"`
	Direction    string          `json:"direction"` // ingreso | egreso
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes,omitempty"`
}

// StockEventDTO evento del libro de stock en respuestas.
type StockEventDTO struct {
	ID             string          `json:"id"`
	EventType      string          `json:"event_type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// AvailabilityDTO disponibilidad de un subproducto.
type AvailabilityDTO struct {
	SubproductID string          `json:"subproduct_id"`
	OnHand       decimal.Decimal `json:"on_hand"`
	Reserved     decimal.Decimal `json:"reserved"`
	Available    decimal.Decimal `json:"available"`
}

// StockSummaryDTO agregados de stock de la empresa.
type StockSummaryDTO struct {
	ActiveProductStocks    int             `json:"active_product_stocks"`
	ActiveSubproductStocks int             `json:"active_subproduct_stocks"`
	TotalOnHand            decimal.Decimal `json:"total_on_hand"`
	OpenReservations       decimal.Decimal `json:"open_reservations"`
	EventsLast30Days       int             `json:"events_last_30_days"`
}
