package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/fieldtrack/internal/gateway"
	"github.com/dmitrijs2005/fieldtrack/internal/logging"
	"github.com/dmitrijs2005/fieldtrack/internal/store"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient implements gateway.Client with overridable behavior per test.
type fakeClient struct {
	pingFn  func(ctx context.Context) error
	fetchFn func(ctx context.Context) (*gateway.Snapshot, error)
	pushFn  func(ctx context.Context, batch gateway.Batch) (*gateway.PushResult, error)

	pingCalls  int
	pushCalls  int
	lastPushed gateway.Batch
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.pingCalls++
	if f.pingFn != nil {
		return f.pingFn(ctx)
	}
	return nil
}

func (f *fakeClient) FetchData(ctx context.Context) (*gateway.Snapshot, error) {
	if f.fetchFn != nil {
		return f.fetchFn(ctx)
	}
	return &gateway.Snapshot{}, nil
}

func (f *fakeClient) Push(ctx context.Context, batch gateway.Batch) (*gateway.PushResult, error) {
	f.pushCalls++
	f.lastPushed = batch
	if f.pushFn != nil {
		return f.pushFn(ctx, batch)
	}
	return &gateway.PushResult{}, nil
}

func (f *fakeClient) Close() error { return nil }

func dialerFor(c gateway.Client) Dialer {
	return func(ctx context.Context) (gateway.Client, error) { return c, nil }
}
