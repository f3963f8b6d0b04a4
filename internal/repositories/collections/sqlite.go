package collections

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
	query := `SELECT COALESCE(MAX(CAST(substr(id, ?) AS INTEGER)), 0) FROM collections`
	if err := r.db.QueryRowContext(ctx, query, ids.PrefixLen+1).Scan(&max); err != nil {
		return "", fmt.Errorf("failed to allocate collection id: %w", err)
	}
	return ids.Format(ids.CollectionPrefix, max+1), nil
}

func (r *SQLiteRepository) Save(ctx context.Context, c *models.Collection) error {
	query := `INSERT INTO collections (id, entity_id, entity_name, collected_on, pending, deleted)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET entity_id = excluded.entity_id,
			entity_name = excluded.entity_name,
			collected_on = excluded.collected_on,
			pending = 1,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.EntityID, c.EntityName, c.Date, c.Deleted)
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Merge(ctx context.Context, c *models.Collection) error {
	query := `INSERT INTO collections (id, entity_id, entity_name, collected_on, pending, deleted)
		VALUES (?, ?, ?, ?, 0, 0)
		ON CONFLICT(id) DO UPDATE SET entity_id = excluded.entity_id,
			entity_name = excluded.entity_name,
			collected_on = excluded.collected_on,
			pending = 0,
			deleted = 0
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.EntityID, c.EntityName, c.Date)
	if err != nil {
		return fmt.Errorf("failed to merge collection %s: %w", c.ID, err)
	}
	return nil
}

const selectColumns = `id, entity_id, entity_name, collected_on, pending, deleted`

func scanCollection(row interface{ Scan(...any) error }) (*models.Collection, error) {
	var c models.Collection
	err := row.Scan(&c.ID, &c.EntityID, &c.EntityName, &c.Date, &c.Pending, &c.Deleted)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM collections WHERE id = ?`, id)
	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM collections `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select collections: %w", err)
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	return r.getWhere(ctx, `ORDER BY id`)
}

func (r *SQLiteRepository) GetAllActive(ctx context.Context) ([]models.Collection, error) {
	return r.getWhere(ctx, `WHERE deleted = 0 ORDER BY id`)
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Collection, error) {
	return r.getWhere(ctx, `WHERE pending = 1 ORDER BY id`)
}

func (r *SQLiteRepository) GetByEntity(ctx context.Context, entityID string) ([]models.Collection, error) {
	return r.getWhere(ctx, `WHERE entity_id = ? ORDER BY id`, entityID)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE collections SET deleted = 1, pending = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete collection %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to hard-delete collection %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE collections SET pending = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark collection %s synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkAllPending(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE collections SET pending = 1`)
	if err != nil {
		return fmt.Errorf("failed to mark collections pending: %w", err)
	}
	return nil
}
