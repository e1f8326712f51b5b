package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Errores del motor de stock (snapshots y eventos).
var (
	// ErrSnapshotExists: la entidad ya tiene stock registrado. Cubre tanto el
	// chequeo previo como la violación del índice único bajo concurrencia.
	ErrSnapshotExists     = errors.New("la entidad ya tiene stock registrado")
	ErrNegativeQuantity   = errors.New("la cantidad inicial no puede ser negativa")
	ErrHasSubproducts     = errors.New("el producto tiene subproductos: el stock se lleva por subproducto")
	ErrZeroQuantityChange = errors.New("el cambio de cantidad no puede ser cero")
	ErrSignMismatch       = errors.New("el signo del cambio no corresponde al tipo de evento")
	ErrAmbiguousTarget    = errors.New("el evento debe apuntar exactamente a un stock de producto o de subproducto")
)

// Errores del flujo de gastos y pagos.
var (
	ErrNonPositiveAmount = errors.New("el monto debe ser mayor que cero")
	ErrExceedsBalance    = errors.New("el monto excede el saldo pendiente del gasto")
	ErrDocumentCancelled = errors.New("el documento está anulado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)
