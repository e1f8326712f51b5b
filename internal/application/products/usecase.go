package products

import (
	"context"
	"time"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
	"github.com/invetex/cortes-api/pkg/normalize"
)

// ProductUseCase alta y consulta de productos y subproductos. El flag activo
// de ambos lo sincroniza el motor de stock; acá solo se crean y se listan.
type ProductUseCase struct {
	productRepo    repository.ProductRepository
	subproductRepo repository.SubproductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, subproductRepo repository.SubproductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, subproductRepo: subproductRepo}
}

// CreateProductInput entrada para crear un producto.
type CreateProductInput struct {
	CompanyID   string
	SKU         string
	Name        string
	Description string
	Actor       string
}

// CreateProduct crea el producto guardando además el nombre normalizado (sin
// tildes, minúsculas) para búsqueda insensible a acentos.
func (uc *ProductUseCase) CreateProduct(in CreateProductInput) (*entity.Product, error) {
	if in.CompanyID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		CompanyID:      in.CompanyID,
		SKU:            in.SKU,
		Name:           in.Name,
		NormalizedName: normalize.Text(in.Name),
		Description:    in.Description,
		Audit:          entity.NewAudit(in.Actor, time.Now()),
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct devuelve un producto de la empresa.
func (uc *ProductUseCase) GetProduct(companyID, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// ListProducts lista productos de la empresa.
func (uc *ProductUseCase) ListProducts(companyID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(companyID, limit, offset)
}

// SearchProducts busca por nombre, normalizando la consulta igual que el
// nombre almacenado ("Teléfono" y "telefono" encuentran lo mismo).
func (uc *ProductUseCase) SearchProducts(ctx context.Context, companyID, query string, limit, offset int) ([]*entity.Product, error) {
	if query == "" {
		return uc.productRepo.List(companyID, limit, offset)
	}
	return uc.productRepo.Search(ctx, companyID, normalize.Text(query), limit, offset)
}

// CreateSubproduct crea un subproducto del producto dado.
func (uc *ProductUseCase) CreateSubproduct(companyID, productID, name, actor string) (*entity.Subproduct, error) {
	if productID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.GetProduct(companyID, productID); err != nil {
		return nil, err
	}
	s := &entity.Subproduct{
		ProductID: productID,
		Name:      name,
		Audit:     entity.NewAudit(actor, time.Now()),
	}
	if err := uc.subproductRepo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubproducts lista los subproductos de un producto de la empresa.
func (uc *ProductUseCase) ListSubproducts(companyID, productID string) ([]*entity.Subproduct, error) {
	if _, err := uc.GetProduct(companyID, productID); err != nil {
		return nil, err
	}
	return uc.subproductRepo.ListByProduct(productID)
}
