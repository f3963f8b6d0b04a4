// Package services contains the application services that sit between the
// CLI and the local store: record management with cascading soft deletes,
// the bidirectional sync engine, dashboard metrics and device settings.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fieldtrack/internal/common"
	"github.com/dmitrijs2005/fieldtrack/internal/dbx"
	"github.com/dmitrijs2005/fieldtrack/internal/models"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/collections"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/details"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/entities"
)

// EntityService manages Entity records.
type EntityService struct {
	db *sql.DB
}

func NewEntityService(db *sql.DB) *EntityService {
	return &EntityService{db: db}
}

func validateEntity(name string, kind models.EstablishmentKind) error {
	if name == "" {
		return fmt.Errorf("%w: entity name is required", common.ErrorValidation)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown establishment type %q", common.ErrorValidation, kind)
	}
	return nil
}

// Create allocates the next ENT identifier and stores the record as pending.
// Allocation and insert share one transaction so the id cannot be taken by
// a concurrent write.
func (s *EntityService) Create(ctx context.Context, name string, kind models.EstablishmentKind, visitDate, folderLink string) (*models.Entity, error) {
	if err := validateEntity(name, kind); err != nil {
		return nil, err
	}

	e := &models.Entity{
		Name:       name,
		Kind:       kind,
		VisitDate:  models.NormalizeDate(visitDate),
		FolderLink: folderLink,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := entities.NewSQLiteRepository(tx)
		id, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		e.ID = id
		return repo.Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	e.Pending = true
	return e, nil
}

// Update rewrites the record and marks it pending again. Denormalized
// copies of the name on existing Collections and Details are snapshots and
// are NOT refreshed here; they keep the name as of their own last write.
func (s *EntityService) Update(ctx context.Context, e *models.Entity) error {
	if err := validateEntity(e.Name, e.Kind); err != nil {
		return err
	}

	repo := entities.NewSQLiteRepository(s.db)
	if _, err := repo.GetByID(ctx, e.ID); err != nil {
		return err
	}
	e.VisitDate = models.NormalizeDate(e.VisitDate)
	return repo.Save(ctx, e)
}

// Delete tombstones the entity together with the closure of its dependents:
// every Collection referencing it and every Detail referencing either the
// entity or one of those Collections. The dependent set is re-queried inside
// the transaction so the cascade acts on current store state, and either
// every record is tombstoned or none is.
func (s *EntityService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ents := entities.NewSQLiteRepository(tx)
		cols := collections.NewSQLiteRepository(tx)
		dets := details.NewSQLiteRepository(tx)

		if _, err := ents.GetByID(ctx, id); err != nil {
			return err
		}

		depDetails, err := dets.GetByEntity(ctx, id)
		if err != nil {
			return err
		}
		for _, d := range depDetails {
			if err := dets.SoftDelete(ctx, d.ID); err != nil {
				return err
			}
		}

		depCollections, err := cols.GetByEntity(ctx, id)
		if err != nil {
			return err
		}
		for _, c := range depCollections {
			// Details whose entity snapshot drifted still belong to the
			// closure through their collection.
			byCollection, err := dets.GetByCollection(ctx, c.ID)
			if err != nil {
				return err
			}
			for _, d := range byCollection {
				if err := dets.SoftDelete(ctx, d.ID); err != nil {
					return err
				}
			}
			if err := cols.SoftDelete(ctx, c.ID); err != nil {
				return err
			}
		}

		return ents.SoftDelete(ctx, id)
	})
}

// List returns active (non-tombstoned) entities for display.
func (s *EntityService) List(ctx context.Context) ([]models.Entity, error) {
	return entities.NewSQLiteRepository(s.db).GetAllActive(ctx)
}

func (s *EntityService) Get(ctx context.Context, id string) (*models.Entity, error) {
	return entities.NewSQLiteRepository(s.db).GetByID(ctx, id)
}
