package entity

import (
	"github.com/shopspring/decimal"
)

// StockSnapshot cantidad actual de una entidad rastreada. Apunta exactamente a
// un producto o a un subproducto (nunca ambos). Se crea una sola vez por entidad
// y de ahí en adelante solo la muta la aplicación de eventos; nunca se borra
// físicamente (borrado lógico vía Audit).
type StockSnapshot struct {
	ID           string
	ProductID    *string
	SubproductID *string
	Quantity     decimal.Decimal
	Audit        Audit
}

// TargetsProduct indica si el snapshot rastrea un producto.
func (s *StockSnapshot) TargetsProduct() bool {
	return s.ProductID != nil && *s.ProductID != ""
}

// TargetsSubproduct indica si el snapshot rastrea un subproducto.
func (s *StockSnapshot) TargetsSubproduct() bool {
	return s.SubproductID != nil && *s.SubproductID != ""
}

// HasSingleTarget valida el invariante: exactamente un destino.
func (s *StockSnapshot) HasSingleTarget() bool {
	return s.TargetsProduct() != s.TargetsSubproduct()
}

// ShouldBeActive regla del sincronizador de estado: la entidad rastreada debe
// estar activa exactamente cuando su cantidad es mayor que cero.
func (s *StockSnapshot) ShouldBeActive() bool {
	return s.Quantity.GreaterThan(decimal.Zero)
}
