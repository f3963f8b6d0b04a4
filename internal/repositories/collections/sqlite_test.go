package collections

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE collections (
  id           TEXT PRIMARY KEY,
  entity_id    TEXT NOT NULL,
  entity_name  TEXT NOT NULL DEFAULT '',
  collected_on TEXT NOT NULL DEFAULT '',
  pending      INTEGER NOT NULL DEFAULT 0,
  deleted      INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func TestNextID_Sequence(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REC001", id)

	require.NoError(t, r.Save(ctx, &models.Collection{ID: id, EntityID: "ENT001"}))

	id, err = r.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REC002", id)
}

func TestGetByEntity_IncludesTombstoned(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &models.Collection{ID: "REC001", EntityID: "ENT001", Date: "2024-03-01"}))
	require.NoError(t, r.Save(ctx, &models.Collection{ID: "REC002", EntityID: "ENT001", Date: "2024-03-08"}))
	require.NoError(t, r.Save(ctx, &models.Collection{ID: "REC003", EntityID: "ENT002", Date: "2024-03-08"}))
	require.NoError(t, r.SoftDelete(ctx, "REC002"))

	// The cascade walks every row of the parent, tombstoned or not.
	got, err := r.GetByEntity(ctx, "ENT001")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "REC001", got[0].ID)
	assert.Equal(t, "REC002", got[1].ID)
	assert.True(t, got[1].Deleted)
}

func TestSave_SnapshotColumns(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &models.Collection{
		ID: "REC001", EntityID: "ENT001", EntityName: "School A", Date: "2024-03-01",
	}))

	got, err := r.GetByID(ctx, "REC001")
	require.NoError(t, err)
	assert.Equal(t, "School A", got.EntityName)
	assert.Equal(t, "2024-03-01", got.Date)
	assert.True(t, got.Pending)
}

func TestMerge_OverwritesLocalRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &models.Collection{ID: "REC001", EntityID: "ENT001", Date: "2024-03-01"}))
	require.NoError(t, r.SoftDelete(ctx, "REC001"))

	require.NoError(t, r.Merge(ctx, &models.Collection{ID: "REC001", EntityID: "ENT001", Date: "2024-03-02"}))

	got, err := r.GetByID(ctx, "REC001")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got.Date)
	assert.False(t, got.Pending)
	assert.False(t, got.Deleted)
}
