// Package collections persists Collection records (REC family) in the local store.
package collections

import (
	"context"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

// Repository is the Collection slice of the local store. See the entities
// package for the Save/Merge pending-flag convention.
type Repository interface {
	NextID(ctx context.Context) (string, error)

	Save(ctx context.Context, c *models.Collection) error
	Merge(ctx context.Context, c *models.Collection) error

	GetByID(ctx context.Context, id string) (*models.Collection, error)
	GetAll(ctx context.Context) ([]models.Collection, error)
	GetAllActive(ctx context.Context) ([]models.Collection, error)
	GetAllPending(ctx context.Context) ([]models.Collection, error)

	// GetByEntity lists every collection referencing the entity, including
	// tombstoned ones; the cascade resolver needs the full set.
	GetByEntity(ctx context.Context, entityID string) ([]models.Collection, error)

	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string) error
	MarkAllPending(ctx context.Context) error
}
