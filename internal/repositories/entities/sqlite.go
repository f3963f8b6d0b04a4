package entities

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

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// NextID derives the next ENT identifier from the numerically greatest
// suffix currently stored. Tombstoned rows count too, so identifiers are
// never reused while a deletion awaits acknowledgement.
func (r *SQLiteRepository) NextID(ctx context.Context) (string, error) {
	var max int
	query := `SELECT COALESCE(MAX(CAST(substr(id, ?) AS INTEGER)), 0) FROM entities`
	if err := r.db.QueryRowContext(ctx, query, ids.PrefixLen+1).Scan(&max); err != nil {
		return "", fmt.Errorf("failed to allocate entity id: %w", err)
	}
	return ids.Format(ids.EntityPrefix, max+1), nil
}

func (r *SQLiteRepository) Save(ctx context.Context, e *models.Entity) error {
	query := `INSERT INTO entities (id, name, kind, visit_date, folder_link, pending, deleted)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			kind = excluded.kind,
			visit_date = excluded.visit_date,
			folder_link = excluded.folder_link,
			pending = 1,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Kind, e.VisitDate, e.FolderLink, e.Deleted)
	if err != nil {
		return fmt.Errorf("failed to save entity %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Merge(ctx context.Context, e *models.Entity) error {
	query := `INSERT INTO entities (id, name, kind, visit_date, folder_link, pending, deleted)
		VALUES (?, ?, ?, ?, ?, 0, 0)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			kind = excluded.kind,
			visit_date = excluded.visit_date,
			folder_link = excluded.folder_link,
			pending = 0,
			deleted = 0
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Kind, e.VisitDate, e.FolderLink)
	if err != nil {
		return fmt.Errorf("failed to merge entity %s: %w", e.ID, err)
	}
	return nil
}

const selectColumns = `id, name, kind, visit_date, folder_link, pending, deleted`

func scanEntity(row interface{ Scan(...any) error }) (*models.Entity, error) {
	var e models.Entity
	err := row.Scan(&e.ID, &e.Name, &e.Kind, &e.VisitDate, &e.FolderLink, &e.Pending, &e.Deleted)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM entities WHERE id = ?`, id)
	e, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity %s: %w", id, err)
	}
	return e, nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) ([]models.Entity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM entities `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entities: %w", err)
	}
	defer rows.Close()

	var result []models.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Entity, error) {
	return r.getWhere(ctx, `ORDER BY id`)
}

func (r *SQLiteRepository) GetAllActive(ctx context.Context) ([]models.Entity, error) {
	return r.getWhere(ctx, `WHERE deleted = 0 ORDER BY id`)
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Entity, error) {
	return r.getWhere(ctx, `WHERE pending = 1 ORDER BY id`)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE entities SET deleted = 1, pending = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete entity %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to hard-delete entity %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE entities SET pending = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark entity %s synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkAllPending(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE entities SET pending = 1`)
	if err != nil {
		return fmt.Errorf("failed to mark entities pending: %w", err)
	}
	return nil
}
