package repository

import (
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// StockSnapshotRepository acceso a los snapshots de cantidad (stock actual).
// Get* devuelven (nil, nil) si no hay snapshot activo para la entidad; si
// existiera más de uno activo (anomalía de integridad) la implementación debe
// registrarlo y devolver determinísticamente el primero por fecha de creación.
type StockSnapshotRepository interface {
	Create(s *entity.StockSnapshot) error
	GetByID(id string) (*entity.StockSnapshot, error)
	GetByProduct(productID string) (*entity.StockSnapshot, error)
	GetBySubproduct(subproductID string) (*entity.StockSnapshot, error)
	// GetForUpdate bloquea la fila del snapshot (SELECT FOR UPDATE) dentro de
	// la transacción en curso. Devuelve (nil, nil) si no existe.
	GetForUpdate(id string) (*entity.StockSnapshot, error)
	Update(s *entity.StockSnapshot) error
}
