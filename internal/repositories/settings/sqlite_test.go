package settings

import (
	"context"
	"database/sql"
	"testing"

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
CREATE TABLE settings (
  key   TEXT PRIMARY KEY,
  value BLOB
);
`)
	require.NoError(t, err)

	return db
}

func TestGet_MissingKeyReturnsNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), KeyAPIToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSetGetOverwrite(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAPIURL, []byte("https://example.test/api")))
	v, err := r.Get(ctx, KeyAPIURL)
	require.NoError(t, err)
	assert.Equal(t, []byte("https://example.test/api"), v)

	require.NoError(t, r.Set(ctx, KeyAPIURL, []byte("https://other.test/api")))
	v, err = r.Get(ctx, KeyAPIURL)
	require.NoError(t, err)
	assert.Equal(t, []byte("https://other.test/api"), v)
}

func TestDeleteAndList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAPIURL, []byte("u")))
	require.NoError(t, r.Set(ctx, KeyAPIToken, []byte("t")))
	require.NoError(t, r.Delete(ctx, KeyAPIToken))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{KeyAPIURL: []byte("u")}, all)
}
