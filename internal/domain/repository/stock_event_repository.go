package repository

import (
	"github.com/invetex/cortes-api/internal/domain/entity"
)

// StockEventRepository persistencia del libro de eventos de stock (append-only:
// solo inserción y lectura, nunca update ni delete).
type StockEventRepository interface {
	Create(e *entity.StockEvent) error
	GetByID(id string) (*entity.StockEvent, error)
	ListByProductStock(productStockID string, limit, offset int) ([]*entity.StockEvent, error)
	ListBySubproductStock(subproductStockID string, limit, offset int) ([]*entity.StockEvent, error)
}
