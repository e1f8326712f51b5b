package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

var _ repository.StockSnapshotRepository = (*StockSnapshotRepo)(nil)

// StockSnapshotRepo implementación de StockSnapshotRepository sobre PostgreSQL
// (usable con pool o tx).
type StockSnapshotRepo struct {
	q Querier
}

// NewStockSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSnapshotRepository(q Querier) *StockSnapshotRepo {
	return &StockSnapshotRepo{q: q}
}

const snapshotColumns = `id, product_id, subproduct_id, quantity, active,
		created_at, created_by, modified_at, modified_by, deleted_at, deleted_by`

// Create persiste un snapshot nuevo. El índice único parcial sobre
// (product_id) y (subproduct_id) con active=true cierra la ventana de carrera:
// una violación 23505 se traduce a ErrSnapshotExists.
func (r *StockSnapshotRepo) Create(s *entity.StockSnapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_snapshots (id, product_id, subproduct_id, quantity, active,
			created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ProductID, s.SubproductID, s.Quantity, s.Audit.Active,
		s.Audit.CreatedAt, s.Audit.CreatedBy, s.Audit.ModifiedAt, s.Audit.ModifiedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSnapshotExists
		}
		return fmt.Errorf("create stock snapshot: %w", err)
	}
	return nil
}

// GetByID obtiene un snapshot por ID, o (nil, nil) si no existe.
func (r *StockSnapshotRepo) GetByID(id string) (*entity.StockSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM stock_snapshots WHERE id = $1`
	s, err := scanSnapshot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock snapshot: %w", err)
	}
	return s, nil
}

// GetByProduct obtiene el snapshot activo de un producto.
func (r *StockSnapshotRepo) GetByProduct(productID string) (*entity.StockSnapshot, error) {
	return r.getActiveByTarget("product_id", productID)
}

// GetBySubproduct obtiene el snapshot activo de un subproducto.
func (r *StockSnapshotRepo) GetBySubproduct(subproductID string) (*entity.StockSnapshot, error) {
	return r.getActiveByTarget("subproduct_id", subproductID)
}

// getActiveByTarget lista los snapshots activos de la entidad. Si hay más de
// uno (anomalía de integridad: el índice único debería impedirlo) lo registra
// en el log y devuelve el primero por (created_at, id) para que la lectura siga
// disponible y sea determinística.
func (r *StockSnapshotRepo) getActiveByTarget(column, id string) (*entity.StockSnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM stock_snapshots WHERE ` + column + ` = $1 AND active
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get active snapshot: %w", err)
	}
	defer rows.Close()

	var found []*entity.StockSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	if len(found) > 1 {
		log.Warn().
			Str(column, id).
			Int("count", len(found)).
			Str("chosen", found[0].ID).
			Msg("más de un snapshot activo para la misma entidad")
	}
	return found[0], nil
}

// GetForUpdate obtiene el snapshot y bloquea la fila (SELECT FOR UPDATE).
// Devuelve (nil, nil) si no existe.
func (r *StockSnapshotRepo) GetForUpdate(id string) (*entity.StockSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM stock_snapshots WHERE id = $1 FOR UPDATE`
	s, err := scanSnapshot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock snapshot for update: %w", err)
	}
	return s, nil
}

// Update escribe cantidad y campos de auditoría (incluido el borrado lógico).
func (r *StockSnapshotRepo) Update(s *entity.StockSnapshot) error {
	query := `
		UPDATE stock_snapshots
		SET quantity = $2, active = $3, modified_at = $4, modified_by = $5,
			deleted_at = $6, deleted_by = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Quantity, s.Audit.Active, s.Audit.ModifiedAt, s.Audit.ModifiedBy,
		s.Audit.DeletedAt, nullableString(s.Audit.DeletedBy),
	)
	if err != nil {
		return fmt.Errorf("update stock snapshot: %w", err)
	}
	return nil
}

func scanSnapshot(row pgx.Row) (*entity.StockSnapshot, error) {
	var s entity.StockSnapshot
	var deletedBy *string
	err := row.Scan(
		&s.ID, &s.ProductID, &s.SubproductID, &s.Quantity, &s.Audit.Active,
		&s.Audit.CreatedAt, &s.Audit.CreatedBy, &s.Audit.ModifiedAt, &s.Audit.ModifiedBy,
		&s.Audit.DeletedAt, &deletedBy,
	)
	if err != nil {
		return nil, err
	}
	s.Audit.DeletedBy = stringValue(deletedBy)
	return &s, nil
}
