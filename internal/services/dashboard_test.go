package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
	"github.com/dmitrijs2005/fieldtrack/internal/repositories/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardMetrics_EmptyStore(t *testing.T) {
	svc := NewDashboardService(setupDB(t))

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, m.TotalEntities)
	assert.Zero(t, m.TotalCollected)
	assert.Zero(t, m.PercentComplete)
	assert.Zero(t, m.AvgKgPerCollection)
}

func TestDashboardMetrics(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	e, err := NewEntityService(db).Create(ctx, "School A", models.KindEducational, "", "")
	require.NoError(t, err)
	cols := NewCollectionService(db)
	c1, err := cols.Create(ctx, e.ID, "2024-03-01")
	require.NoError(t, err)
	c2, err := cols.Create(ctx, e.ID, "2024-03-08")
	require.NoError(t, err)

	dets := NewDetailService(db)
	_, err = dets.Create(ctx, c1.ID, models.MaterialCardboard, 30)
	require.NoError(t, err)
	_, err = dets.Create(ctx, c2.ID, models.MaterialGlass, 20)
	require.NoError(t, err)
	dropped, err := dets.Create(ctx, c2.ID, models.MaterialPET, 999)
	require.NoError(t, err)
	require.NoError(t, dets.Delete(ctx, dropped.ID))

	require.NoError(t, settings.NewSQLiteRepository(db).Set(ctx, settings.KeyQuarterlyTarget, []byte("200")))

	m, err := NewDashboardService(db).Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalEntities)
	assert.Equal(t, 2, m.TotalCollections)
	assert.Equal(t, 50.0, m.TotalCollected)
	assert.Equal(t, 200.0, m.QuarterlyTarget)
	assert.Equal(t, 25.0, m.PercentComplete)
	assert.Equal(t, 150.0, m.Remaining)
	assert.Equal(t, 25.0, m.AvgKgPerCollection)
}

func TestDashboardMetrics_TargetMet(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	e, err := NewEntityService(db).Create(ctx, "A", models.KindHotel, "", "")
	require.NoError(t, err)
	c, err := NewCollectionService(db).Create(ctx, e.ID, "2024-03-01")
	require.NoError(t, err)
	_, err = NewDetailService(db).Create(ctx, c.ID, models.MaterialScrap, 120)
	require.NoError(t, err)

	require.NoError(t, settings.NewSQLiteRepository(db).Set(ctx, settings.KeyQuarterlyTarget, []byte("100")))

	m, err := NewDashboardService(db).Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120.0, m.PercentComplete)
	assert.Zero(t, m.Remaining)
}
