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

var _ repository.SubproductRepository = (*SubproductRepo)(nil)

// SubproductRepo implementación de SubproductRepository sobre PostgreSQL.
type SubproductRepo struct {
	q Querier
}

// NewSubproductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubproductRepository(q Querier) *SubproductRepo {
	return &SubproductRepo{q: q}
}

const subproductColumns = `id, product_id, name, active,
		created_at, created_by, modified_at, modified_by`

// Create persiste un subproducto.
func (r *SubproductRepo) Create(s *entity.Subproduct) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO subproducts (id, product_id, name, active,
			created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ProductID, s.Name, s.Audit.Active,
		s.Audit.CreatedAt, s.Audit.CreatedBy, s.Audit.ModifiedAt, s.Audit.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("create subproduct: %w", err)
	}
	return nil
}

// GetByID obtiene un subproducto por ID, o (nil, nil) si no existe.
func (r *SubproductRepo) GetByID(id string) (*entity.Subproduct, error) {
	query := `SELECT ` + subproductColumns + ` FROM subproducts WHERE id = $1`
	s, err := scanSubproduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subproduct: %w", err)
	}
	return s, nil
}

// ListByProduct lista los subproductos de un producto.
func (r *SubproductRepo) ListByProduct(productID string) ([]*entity.Subproduct, error) {
	query := `SELECT ` + subproductColumns + `
		FROM subproducts WHERE product_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list subproducts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subproduct
	for rows.Next() {
		s, err := scanSubproduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subproduct: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ExistsByProduct indica si el producto tiene subproductos activos.
func (r *SubproductRepo) ExistsByProduct(productID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM subproducts WHERE product_id = $1 AND active)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("subproducts exist: %w", err)
	}
	return exists, nil
}

// UpdateActive sincroniza el flag activo del subproducto (update directo).
func (r *SubproductRepo) UpdateActive(id string, active bool, actor string, now time.Time) error {
	query := `UPDATE subproducts SET active = $2, modified_at = $3, modified_by = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, active, now, actor)
	if err != nil {
		return fmt.Errorf("update subproduct active: %w", err)
	}
	return nil
}

func scanSubproduct(row pgx.Row) (*entity.Subproduct, error) {
	var s entity.Subproduct
	err := row.Scan(
		&s.ID, &s.ProductID, &s.Name, &s.Audit.Active,
		&s.Audit.CreatedAt, &s.Audit.CreatedBy, &s.Audit.ModifiedAt, &s.Audit.ModifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
