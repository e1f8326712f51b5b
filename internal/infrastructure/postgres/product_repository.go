package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, normalized_name, description, active,
		created_at, created_by, modified_at, modified_by`

// Create persiste un producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, company_id, sku, name, normalized_name, description,
			active, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.SKU, p.Name, p.NormalizedName, p.Description,
		p.Audit.Active, p.Audit.CreatedAt, p.Audit.CreatedBy, p.Audit.ModifiedAt, p.Audit.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos de una empresa.
func (r *ProductRepo) List(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.queryProducts(query, companyID, limit, offset)
}

// Search busca productos por nombre normalizado (el caller normaliza el término
// con pkg/normalize para que la búsqueda ignore tildes y mayúsculas).
func (r *ProductRepo) Search(ctx context.Context, companyID, normalizedQuery string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND normalized_name LIKE '%' || $2 || '%'
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, normalizedQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// UpdateActive sincroniza el flag activo del producto. Update directo del flag:
// no dispara ninguna otra regla.
func (r *ProductRepo) UpdateActive(id string, active bool, actor string, now time.Time) error {
	query := `UPDATE products SET active = $2, modified_at = $3, modified_by = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, active, now, actor)
	if err != nil {
		return fmt.Errorf("update product active: %w", err)
	}
	return nil
}

func (r *ProductRepo) queryProducts(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.NormalizedName, &p.Description,
		&p.Audit.Active, &p.Audit.CreatedAt, &p.Audit.CreatedBy,
		&p.Audit.ModifiedAt, &p.Audit.ModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
