package details

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fieldtrack/internal/common"
	"github.com/dmitrijs2005/fieldtrack/internal/dbx"
	"github.com/dmitrijs2005/fieldtrack/internal/ids"
	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) NextID(ctx context.Context) (string, error) {
	var max int
	query := `SELECT COALESCE(MAX(CAST(substr(id, ?) AS INTEGER)), 0) FROM details`
	if err := r.db.QueryRowContext(ctx, query, ids.PrefixLen+1).Scan(&max); err != nil {
		return "", fmt.Errorf("failed to allocate detail id: %w", err)
	}
	return ids.Format(ids.DetailPrefix, max+1), nil
}

func (r *SQLiteRepository) Save(ctx context.Context, d *models.Detail) error {
	query := `INSERT INTO details (id, collection_id, entity_id, entity_name, collected_on, material, weight_kg, pending, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET collection_id = excluded.collection_id,
			entity_id = excluded.entity_id,
			entity_name = excluded.entity_name,
			collected_on = excluded.collected_on,
			material = excluded.material,
			weight_kg = excluded.weight_kg,
			pending = 1,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.CollectionID, d.EntityID, d.EntityName, d.CollectionDate, d.Material, d.WeightKg, d.Deleted)
	if err != nil {
		return fmt.Errorf("failed to save detail %s: %w", d.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Merge(ctx context.Context, d *models.Detail) error {
	query := `INSERT INTO details (id, collection_id, entity_id, entity_name, collected_on, material, weight_kg, pending, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0)
		ON CONFLICT(id) DO UPDATE SET collection_id = excluded.collection_id,
			entity_id = excluded.entity_id,
			entity_name = excluded.entity_name,
			collected_on = excluded.collected_on,
			material = excluded.material,
			weight_kg = excluded.weight_kg,
			pending = 0,
			deleted = 0
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.CollectionID, d.EntityID, d.EntityName, d.CollectionDate, d.Material, d.WeightKg)
	if err != nil {
		return fmt.Errorf("failed to merge detail %s: %w", d.ID, err)
	}
	return nil
}

const selectColumns = `id, collection_id, entity_id, entity_name, collected_on, material, weight_kg, pending, deleted`

func scanDetail(row interface{ Scan(...any) error }) (*models.Detail, error) {
	var d models.Detail
	err := row.Scan(&d.ID, &d.CollectionID, &d.EntityID, &d.EntityName,
		&d.CollectionDate, &d.Material, &d.WeightKg, &d.Pending, &d.Deleted)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Detail, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM details WHERE id = ?`, id)
	d, err := scanDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get detail %s: %w", id, err)
	}
	return d, nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) ([]models.Detail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM details `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select details: %w", err)
	}
	defer rows.Close()

	var result []models.Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detail: %w", err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate details: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Detail, error) {
	return r.getWhere(ctx, `ORDER BY id`)
}

func (r *SQLiteRepository) GetAllActive(ctx context.Context) ([]models.Detail, error) {
	return r.getWhere(ctx, `WHERE deleted = 0 ORDER BY id`)
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Detail, error) {
	return r.getWhere(ctx, `WHERE pending = 1 ORDER BY id`)
}

func (r *SQLiteRepository) GetByCollection(ctx context.Context, collectionID string) ([]models.Detail, error) {
	return r.getWhere(ctx, `WHERE collection_id = ? ORDER BY id`, collectionID)
}

func (r *SQLiteRepository) GetByEntity(ctx context.Context, entityID string) ([]models.Detail, error) {
	return r.getWhere(ctx, `WHERE entity_id = ? ORDER BY id`, entityID)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE details SET deleted = 1, pending = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete detail %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM details WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to hard-delete detail %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE details SET pending = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark detail %s synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkAllPending(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE details SET pending = 1`)
	if err != nil {
		return fmt.Errorf("failed to mark details pending: %w", err)
	}
	return nil
}
