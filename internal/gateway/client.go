// Package gateway implements the remote system-of-record contract: a
// JSON-over-HTTP service that accepts an upsert/delete batch, reports which
// identifiers it accepted, and can return the full current dataset plus
// dashboard metrics. Authentication is a single shared secret presented on
// every call.
package gateway

import (
	"context"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

// Client is the transport-agnostic view of the remote gateway used by the
// sync engine. Tests substitute a fake.
type Client interface {
	// Ping performs the health check used to detect network availability
	// before push/pull.
	Ping(ctx context.Context) error

	// FetchData downloads the full authoritative dataset plus metrics.
	FetchData(ctx context.Context) (*Snapshot, error)

	// Push uploads the pending set in one batch and returns the
	// identifiers the remote accepted per family.
	Push(ctx context.Context, batch Batch) (*PushResult, error)

	Close() error
}

// Snapshot is the full remote dataset returned by a pull.
type Snapshot struct {
	Entities    []models.Entity
	Collections []models.Collection
	Details     []models.Detail
	Metrics     models.Metrics
}

// Batch is the pending set sent by a push. Tombstoned records travel with
// their deleted flag set so the remote removes the matching rows.
type Batch struct {
	Entities    []models.Entity
	Collections []models.Collection
	Details     []models.Detail
}

// Empty reports whether the batch carries no records at all.
func (b Batch) Empty() bool {
	return len(b.Entities) == 0 && len(b.Collections) == 0 && len(b.Details) == 0
}

// PushResult lists, per family, the identifiers the remote accepted.
// Identifiers absent from these lists were not applied and must stay pending.
type PushResult struct {
	Entities    []string
	Collections []string
	Details     []string
	Logs        []string
}
