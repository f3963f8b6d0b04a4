// Package entities persists Entity records (ENT family) in the local store.
package entities

import (
	"context"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

// Repository is the Entity slice of the local store. Mutations made through
// Save and SoftDelete mark the record pending; Merge and MarkSynced are
// reserved for the sync engine's pull and acknowledgement paths.
type Repository interface {
	// NextID returns the next free identifier in the ENT family.
	NextID(ctx context.Context) (string, error)

	// Save upserts the record and forces pending=1.
	Save(ctx context.Context, e *models.Entity) error

	// Merge upserts the remote version of the record with pending=0.
	Merge(ctx context.Context, e *models.Entity) error

	GetByID(ctx context.Context, id string) (*models.Entity, error)
	GetAll(ctx context.Context) ([]models.Entity, error)
	GetAllActive(ctx context.Context) ([]models.Entity, error)
	GetAllPending(ctx context.Context) ([]models.Entity, error)

	// SoftDelete tombstones the record (deleted=1, pending=1).
	SoftDelete(ctx context.Context, id string) error

	// HardDelete physically removes the record. Only the push
	// acknowledgement path may call this.
	HardDelete(ctx context.Context, id string) error

	// MarkSynced clears the pending flag after remote acknowledgement.
	MarkSynced(ctx context.Context, id string) error

	// MarkAllPending re-marks every record for upload (sync recovery).
	MarkAllPending(ctx context.Context) error
}
