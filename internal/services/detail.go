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
)

// DetailService manages Detail records (material line items).
type DetailService struct {
	db *sql.DB
}

func NewDetailService(db *sql.DB) *DetailService {
	return &DetailService{db: db}
}

func validateDetail(material models.MaterialKind, weightKg float64) error {
	if !material.Valid() {
		return fmt.Errorf("%w: unknown material %q", common.ErrorValidation, material)
	}
	if weightKg < 0 {
		return fmt.Errorf("%w: weight must not be negative", common.ErrorValidation)
	}
	return nil
}

// Create validates the parent Collection before any write, snapshots its
// entity id/name and date, allocates the next DET identifier and stores the
// record as pending.
func (s *DetailService) Create(ctx context.Context, collectionID string, material models.MaterialKind, weightKg float64) (*models.Detail, error) {
	if err := validateDetail(material, weightKg); err != nil {
		return nil, err
	}

	d := &models.Detail{
		CollectionID: collectionID,
		Material:     material,
		WeightKg:     weightKg,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		parent, err := lookupActiveCollection(ctx, tx, collectionID)
		if err != nil {
			return err
		}
		d.EntityID = parent.EntityID
		d.EntityName = parent.EntityName
		d.CollectionDate = parent.Date

		repo := details.NewSQLiteRepository(tx)
		id, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		d.ID = id
		return repo.Save(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	d.Pending = true
	return d, nil
}

// Update rewrites the record, refreshing its snapshots from the current
// parent Collection, and marks it pending again.
func (s *DetailService) Update(ctx context.Context, d *models.Detail) error {
	if err := validateDetail(d.Material, d.WeightKg); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := details.NewSQLiteRepository(tx)
		if _, err := repo.GetByID(ctx, d.ID); err != nil {
			return err
		}

		parent, err := lookupActiveCollection(ctx, tx, d.CollectionID)
		if err != nil {
			return err
		}
		d.EntityID = parent.EntityID
		d.EntityName = parent.EntityName
		d.CollectionDate = parent.Date
		return repo.Save(ctx, d)
	})
}

// Delete tombstones a single detail. Details have no dependents.
func (s *DetailService) Delete(ctx context.Context, id string) error {
	repo := details.NewSQLiteRepository(s.db)
	if _, err := repo.GetByID(ctx, id); err != nil {
		return err
	}
	return repo.SoftDelete(ctx, id)
}

// ListByCollection returns the active details of one collection.
func (s *DetailService) ListByCollection(ctx context.Context, collectionID string) ([]models.Detail, error) {
	all, err := details.NewSQLiteRepository(s.db).GetByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, d := range all {
		if !d.Deleted {
			active = append(active, d)
		}
	}
	return active, nil
}

// List returns all active details.
func (s *DetailService) List(ctx context.Context) ([]models.Detail, error) {
	return details.NewSQLiteRepository(s.db).GetAllActive(ctx)
}

func (s *DetailService) Get(ctx context.Context, id string) (*models.Detail, error) {
	return details.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func lookupActiveCollection(ctx context.Context, tx dbx.DBTX, collectionID string) (*models.Collection, error) {
	parent, err := collections.NewSQLiteRepository(tx).GetByID(ctx, collectionID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %s", common.ErrorCollectionNotFound, collectionID)
	}
	if err != nil {
		return nil, err
	}
	if parent.Deleted {
		return nil, fmt.Errorf("%w: %s is deleted", common.ErrorCollectionNotFound, collectionID)
	}
	return parent, nil
}
