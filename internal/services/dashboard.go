package services

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/collections"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/details"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/entities"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/settings"
)

// DashboardService computes the dashboard figures from active local records
// plus the quarterly target persisted by the last pull.
type DashboardService struct {
	db *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) Metrics(ctx context.Context) (*models.Metrics, error) {
	m := &models.Metrics{}

	ents, err := entities.NewSQLiteRepository(s.db).GetAllActive(ctx)
	if err != nil {
		return nil, err
	}
	m.TotalEntities = len(ents)

	cols, err := collections.NewSQLiteRepository(s.db).GetAllActive(ctx)
	if err != nil {
		return nil, err
	}
	m.TotalCollections = len(cols)

	dets, err := details.NewSQLiteRepository(s.db).GetAllActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range dets {
		m.TotalCollected += d.WeightKg
	}

	raw, err := settings.NewSQLiteRepository(s.db).Get(ctx, settings.KeyQuarterlyTarget)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if target, err := strconv.ParseFloat(string(raw), 64); err == nil {
			m.QuarterlyTarget = target
		}
	}

	if m.QuarterlyTarget > 0 {
		m.PercentComplete = m.TotalCollected / m.QuarterlyTarget * 100
		if remaining := m.QuarterlyTarget - m.TotalCollected; remaining > 0 {
			m.Remaining = remaining
		}
	}
	if m.TotalCollections > 0 {
		m.AvgKgPerCollection = m.TotalCollected / float64(m.TotalCollections)
	}

	return m, nil
}
