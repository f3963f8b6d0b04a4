package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/fieldtrack/internal/common"
	"github.com/dmitrijs2005/fieldtrack/internal/dbx"
	"github.com/dmitrijs2005/fieldtrack/internal/gateway"
	"github.com/dmitrijs2005/fieldtrack/internal/logging"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/collections"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/details"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/entities"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/settings"
)

// Dialer builds a gateway client from the current device settings. It is a
// function so the endpoint and token can change at runtime without
// rebuilding the engine; it returns gateway.ErrNotConfigured when the
// operator has not saved them yet.
type Dialer func(ctx context.Context) (gateway.Client, error)

// SyncService is the offline-first synchronization engine: it pushes
// pending local mutations, reconciles the remote's acknowledgement, pulls
// the authoritative dataset under a local-wins conflict policy, and offers
// a recovery operation that re-marks everything for upload.
type SyncService struct {
	db   *sql.DB
	dial Dialer
	log  logging.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewSyncService(db *sql.DB, dial Dialer, log logging.Logger) *SyncService {
	return &SyncService{db: db, dial: dial, log: log}
}

// Report summarizes one push or pull for the caller's status display.
type Report struct {
	// UpToDate is set when a push found nothing pending and made no
	// network call.
	UpToDate bool

	// Push figures: records uploaded, acknowledgements that cleared the
	// pending flag, tombstones finalized into hard deletes.
	Pushed  int
	Cleared int
	Removed int

	// Pull figures: remote records merged, records skipped because a
	// pending local edit wins.
	Merged  int
	Skipped int

	// ServerLogs carries the remote's diagnostic lines, if any.
	ServerLogs []string
}

// tryBegin flips the in-flight guard. At most one push runs at a time; a
// second request while one is active is dropped, not queued.
func (s *SyncService) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *SyncService) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// SyncUp uploads every pending record in one batch and applies the remote's
// acknowledgement: accepted tombstones are hard-deleted, other accepted
// records have their pending flag cleared, and anything the remote did not
// acknowledge stays pending for the next push. An empty pending set returns
// up to date without dialing the remote at all. On any failure the local
// store is left exactly as it was; there is no automatic retry.
func (s *SyncService) SyncUp(ctx context.Context) (*Report, error) {
	if !s.tryBegin() {
		return nil, ErrSyncInFlight
	}
	defer s.end()

	batch, err := s.collectPending(ctx)
	if err != nil {
		return nil, err
	}
	if batch.Empty() {
		s.log.Info(ctx, "nothing to upload")
		return &Report{UpToDate: true}, nil
	}

	client, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connectivity check failed: %w", err)
	}

	s.log.Info(ctx, "uploading pending records",
		"entities", len(batch.Entities),
		"collections", len(batch.Collections),
		"details", len(batch.Details))

	res, err := client.Push(ctx, batch)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Pushed:     len(batch.Entities) + len(batch.Collections) + len(batch.Details),
		ServerLogs: res.Logs,
	}

	// Acknowledgements for all three families are applied in a single
	// transaction: acceptance is driven strictly by the identifiers the
	// remote reported back.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ents := entities.NewSQLiteRepository(tx)
		for _, id := range res.Entities {
			if err := acknowledge(ackRepo{
				get:  func() (bool, error) { e, err := ents.GetByID(ctx, id); return err == nil && e.Deleted, err },
				drop: func() error { return ents.HardDelete(ctx, id) },
				keep: func() error { return ents.MarkSynced(ctx, id) },
			}, report); err != nil {
				return err
			}
		}

		cols := collections.NewSQLiteRepository(tx)
		for _, id := range res.Collections {
			if err := acknowledge(ackRepo{
				get:  func() (bool, error) { c, err := cols.GetByID(ctx, id); return err == nil && c.Deleted, err },
				drop: func() error { return cols.HardDelete(ctx, id) },
				keep: func() error { return cols.MarkSynced(ctx, id) },
			}, report); err != nil {
				return err
			}
		}

		dets := details.NewSQLiteRepository(tx)
		for _, id := range res.Details {
			if err := acknowledge(ackRepo{
				get:  func() (bool, error) { d, err := dets.GetByID(ctx, id); return err == nil && d.Deleted, err },
				drop: func() error { return dets.HardDelete(ctx, id) },
				keep: func() error { return dets.MarkSynced(ctx, id) },
			}, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("applying acknowledgement: %w", err)
	}

	s.log.Info(ctx, "push finished", "cleared", report.Cleared, "removed", report.Removed)
	return report, nil
}

// ackRepo narrows one acknowledged identifier to the three outcomes the
// engine distinguishes: record gone, tombstone to finalize, record to keep.
type ackRepo struct {
	get  func() (deleted bool, err error)
	drop func() error
	keep func() error
}

func acknowledge(r ackRepo, report *Report) error {
	deleted, err := r.get()
	if errors.Is(err, common.ErrorNotFound) {
		// Acknowledged id no longer present locally (e.g. already
		// finalized by an earlier push). Nothing to do.
		return nil
	}
	if err != nil {
		return err
	}
	if deleted {
		report.Removed++
		return r.drop()
	}
	report.Cleared++
	return r.keep()
}

func (s *SyncService) collectPending(ctx context.Context) (gateway.Batch, error) {
	var batch gateway.Batch
	var err error

	if batch.Entities, err = entities.NewSQLiteRepository(s.db).GetAllPending(ctx); err != nil {
		return batch, err
	}
	if batch.Collections, err = collections.NewSQLiteRepository(s.db).GetAllPending(ctx); err != nil {
		return batch, err
	}
	if batch.Details, err = details.NewSQLiteRepository(s.db).GetAllPending(ctx); err != nil {
		return batch, err
	}
	return batch, nil
}

// SyncDown downloads the authoritative dataset and merges it under the
// local-wins policy: a remote record overwrites the local copy only when no
// local copy exists or the local copy is clean (not pending). Pull never
// deletes local records; deletions only happen through the push
// acknowledgement path.
func (s *SyncService) SyncDown(ctx context.Context) (*Report, error) {
	client, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connectivity check failed: %w", err)
	}

	snap, err := client.FetchData(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ents := entities.NewSQLiteRepository(tx)
		for i := range snap.Entities {
			remote := snap.Entities[i]
			local, err := ents.GetByID(ctx, remote.ID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			if local != nil && local.Pending {
				s.log.Warn(ctx, "pull conflict ignored, local edit pending", "id", remote.ID)
				report.Skipped++
				continue
			}
			if err := ents.Merge(ctx, &remote); err != nil {
				return err
			}
			report.Merged++
		}

		cols := collections.NewSQLiteRepository(tx)
		for i := range snap.Collections {
			remote := snap.Collections[i]
			local, err := cols.GetByID(ctx, remote.ID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			if local != nil && local.Pending {
				report.Skipped++
				continue
			}
			if err := cols.Merge(ctx, &remote); err != nil {
				return err
			}
			report.Merged++
		}

		dets := details.NewSQLiteRepository(tx)
		for i := range snap.Details {
			remote := snap.Details[i]
			local, err := dets.GetByID(ctx, remote.ID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			if local != nil && local.Pending {
				report.Skipped++
				continue
			}
			if err := dets.Merge(ctx, &remote); err != nil {
				return err
			}
			report.Merged++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("merging remote data: %w", err)
	}

	// The quarterly target lives outside the record families, keyed in the
	// settings table for the dashboard.
	target := strconv.FormatFloat(snap.Metrics.QuarterlyTarget, 'f', -1, 64)
	if err := settings.NewSQLiteRepository(s.db).Set(ctx, settings.KeyQuarterlyTarget, []byte(target)); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "pull finished", "merged", report.Merged, "skipped", report.Skipped)
	return report, nil
}

// ResetSyncStatus re-marks every record in all three families as pending in
// one transaction. Manual escape hatch for a wiped or diverged remote; the
// next push re-sends everything.
func (s *SyncService) ResetSyncStatus(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := entities.NewSQLiteRepository(tx).MarkAllPending(ctx); err != nil {
			return err
		}
		if err := collections.NewSQLiteRepository(tx).MarkAllPending(ctx); err != nil {
			return err
		}
		return details.NewSQLiteRepository(tx).MarkAllPending(ctx)
	})
}
