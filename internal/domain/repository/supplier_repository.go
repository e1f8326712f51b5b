package repository

import (
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// SupplierRepository acceso a proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(companyID string, limit, offset int) ([]*entity.Supplier, error)
}
