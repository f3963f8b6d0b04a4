package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fieldtrack/internal/common"
	"github.com/dmitrijs2005/fieldtrack/internal/dbx"
	"github.com/dmitrijs2005/fieldtrack/internal/models"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/collections"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/details"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/entities"
)

// CollectionService manages Collection records.
type CollectionService struct {
	db *sql.DB
}

func NewCollectionService(db *sql.DB) *CollectionService {
	return &CollectionService{db: db}
}

// Create validates the parent Entity before any write, snapshots its name
// for display, allocates the next REC identifier and stores the record as
// pending.
func (s *CollectionService) Create(ctx context.Context, entityID, date string) (*models.Collection, error) {
	c := &models.Collection{
		EntityID: entityID,
		Date:     models.NormalizeDate(date),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		parent, err := lookupActiveEntity(ctx, tx, entityID)
		if err != nil {
			return err
		}
		c.EntityName = parent.Name

		repo := collections.NewSQLiteRepository(tx)
		id, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		c.ID = id
		return repo.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	c.Pending = true
	return c, nil
}

// Update rewrites the record and re-snapshots the parent name as of now.
// Details under this collection keep their own older snapshots.
func (s *CollectionService) Update(ctx context.Context, c *models.Collection) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := collections.NewSQLiteRepository(tx)
		if _, err := repo.GetByID(ctx, c.ID); err != nil {
			return err
		}

		parent, err := lookupActiveEntity(ctx, tx, c.EntityID)
		if err != nil {
			return err
		}
		c.EntityName = parent.Name
		c.Date = models.NormalizeDate(c.Date)
		return repo.Save(ctx, c)
	})
}

// Delete tombstones the collection and every Detail referencing it, in one
// transaction, re-querying dependents from current store state.
func (s *CollectionService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cols := collections.NewSQLiteRepository(tx)
		dets := details.NewSQLiteRepository(tx)

		if _, err := cols.GetByID(ctx, id); err != nil {
			return err
		}

		depDetails, err := dets.GetByCollection(ctx, id)
		if err != nil {
			return err
		}
		for _, d := range depDetails {
			if err := dets.SoftDelete(ctx, d.ID); err != nil {
				return err
			}
		}

		return cols.SoftDelete(ctx, id)
	})
}

// List returns active collections for display.
func (s *CollectionService) List(ctx context.Context) ([]models.Collection, error) {
	return collections.NewSQLiteRepository(s.db).GetAllActive(ctx)
}

// ListByEntity returns the active collections of one entity.
func (s *CollectionService) ListByEntity(ctx context.Context, entityID string) ([]models.Collection, error) {
	all, err := collections.NewSQLiteRepository(s.db).GetByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, c := range all {
		if !c.Deleted {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *CollectionService) Get(ctx context.Context, id string) (*models.Collection, error) {
	return collections.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

// lookupActiveEntity resolves a parent Entity for a new or updated child.
// A missing or tombstoned parent rejects the write before it happens.
func lookupActiveEntity(ctx context.Context, tx dbx.DBTX, entityID string) (*models.Entity, error) {
	parent, err := entities.NewSQLiteRepository(tx).GetByID(ctx, entityID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %s", common.ErrorEntityNotFound, entityID)
	}
	if err != nil {
		return nil, err
	}
	if parent.Deleted {
		return nil, fmt.Errorf("%w: %s is deleted", common.ErrorEntityNotFound, entityID)
	}
	return parent, nil
}
