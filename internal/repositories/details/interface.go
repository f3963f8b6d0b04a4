// Package details persists Detail records (DET family) in the local store.
package details

import (
	"context"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

// Repository is the Detail slice of the local store. See the entities
// package for the Save/Merge pending-flag convention.
type Repository interface {
	NextID(ctx context.Context) (string, error)

	Save(ctx context.Context, d *models.Detail) error
	Merge(ctx context.Context, d *models.Detail) error

	GetByID(ctx context.Context, id string) (*models.Detail, error)
	GetAll(ctx context.Context) ([]models.Detail, error)
	GetAllActive(ctx context.Context) ([]models.Detail, error)
	GetAllPending(ctx context.Context) ([]models.Detail, error)

	// GetByCollection and GetByEntity include tombstoned rows; the cascade
	// resolver needs the full dependent set.
	GetByCollection(ctx context.Context, collectionID string) ([]models.Detail, error)
	GetByEntity(ctx context.Context, entityID string) ([]models.Detail, error)

	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string) error
	MarkAllPending(ctx context.Context) error
}
