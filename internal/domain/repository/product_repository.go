package repository

import (
	"context"
	"time"

	"github.com/invetex/cortes-api/internal/domain/entity"
)

// ProductRepository acceso a productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(companyID string, limit, offset int) ([]*entity.Product, error)
	// Search busca por nombre normalizado (sin tildes, minúsculas).
	Search(ctx context.Context, companyID, normalizedQuery string, limit, offset int) ([]*entity.Product, error)
	// UpdateActive sincroniza el flag activo derivado del stock. Debe ser un
	// update directo del flag, sin disparar ninguna otra regla.
	UpdateActive(id string, active bool, actor string, now time.Time) error
}

// SubproductRepository acceso a subproductos.
type SubproductRepository interface {
	Create(s *entity.Subproduct) error
	GetByID(id string) (*entity.Subproduct, error)
	ListByProduct(productID string) ([]*entity.Subproduct, error)
	// ExistsByProduct indica si el producto tiene subproductos activos (en ese
	// caso el stock se rastrea por subproducto, no por producto).
	ExistsByProduct(productID string) (bool, error)
	UpdateActive(id string, active bool, actor string, now time.Time) error
}
