package services_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/testutil"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

type metricsFixture struct {
	repo     *testutil.MemoryMetricsRepository
	projects *testutil.MemoryProjectRepository
	service  *services.FinancialMetricsService
}

func newMetricsFixture(t *testing.T) *metricsFixture {
	t.Helper()
	repo := testutil.NewMemoryMetricsRepository()
	projects := testutil.NewMemoryProjectRepository()
	_, err := projects.Append(context.Background(), &entities.ProjectData{ID: "proj-1", Name: "Test"})
	require.NoError(t, err)
	return &metricsFixture{
		repo:     repo,
		projects: projects,
		service:  services.NewFinancialMetricsService(repo, projects),
	}
}

func sliders(deposit, quality, capex, projectTime float64) []entities.SliderPosition {
	return []entities.SliderPosition{
		{ID: entities.SliderDepositSize, Value: entities.SingleValue(deposit)},
		{ID: entities.SliderMineralQuality, Value: entities.SingleValue(quality)},
		{ID: entities.SliderCapex, Value: entities.SingleValue(capex)},
		{ID: entities.SliderProjectTime, Value: entities.SingleValue(projectTime)},
	}
}

func TestFinancialMetricsService_Compute_Defaults(t *testing.T) {
	f := newMetricsFixture(t)

	metrics := f.service.Compute(sliders(500, 70, 50, 5))

	// At the defaults: 0.3 + 0.7 + 0.3 + 0 + 0 = 1.3 of the base NPV.
	assert.Equal(t, math.Round(63_000_000*1.3), metrics.NPV)
	assert.Equal(t, math.Round(8.3*math.Sqrt(1.3)*10)/10, metrics.IRR)
	assert.Equal(t, math.Round(8*63_000_000/metrics.NPV*10)/10, metrics.PaybackPeriod)
}

func TestFinancialMetricsService_Compute_CashFlowSeries(t *testing.T) {
	f := newMetricsFixture(t)

	metrics := f.service.Compute(sliders(500, 70, 50, 5))

	// Year zero is the initial investment, then one entry per project year.
	require.Len(t, metrics.NPVData, 6)
	assert.Equal(t, 0, metrics.NPVData[0].Year)
	assert.Equal(t, -15_000_000.0, metrics.NPVData[0].Value)

	require.Len(t, metrics.PaybackData, 6)
	cumulative := -15_000_000.0
	for i := 1; i < len(metrics.PaybackData); i++ {
		cumulative += metrics.NPVData[i].Value
		assert.Equal(t, cumulative, metrics.PaybackData[i].Value)
	}
	// Cumulative cash flow ends positive for a profitable configuration.
	assert.Greater(t, metrics.PaybackData[5].Value, 0.0)
}

func TestFinancialMetricsService_Compute_SliderEffects(t *testing.T) {
	f := newMetricsFixture(t)

	base := f.service.Compute(sliders(500, 70, 50, 5))

	bigger := f.service.Compute(sliders(800, 70, 50, 5))
	assert.Greater(t, bigger.NPV, base.NPV)

	costlier := f.service.Compute(sliders(500, 70, 90, 5))
	assert.Less(t, costlier.NPV, base.NPV)

	longer := f.service.Compute(sliders(500, 70, 50, 9))
	assert.Less(t, longer.NPV, base.NPV)
}

func TestFinancialMetricsService_Compute_WorstCaseStaysPositive(t *testing.T) {
	f := newMetricsFixture(t)

	metrics := f.service.Compute(sliders(0, 0, 100, 10))

	assert.Greater(t, metrics.NPV, 0.0)
	assert.False(t, math.IsNaN(metrics.IRR))
	assert.Greater(t, metrics.PaybackPeriod, 0.0)
}

func TestFinancialMetricsService_Compute_RangeSliderUsesMidpoint(t *testing.T) {
	f := newMetricsFixture(t)

	ranged := f.service.Compute([]entities.SliderPosition{
		{ID: entities.SliderDepositSize, Value: entities.RangeValue(400, 600)},
	})
	single := f.service.Compute([]entities.SliderPosition{
		{ID: entities.SliderDepositSize, Value: entities.SingleValue(500)},
	})

	assert.Equal(t, single.NPV, ranged.NPV)
}

func TestFinancialMetricsService_GetForProject_DefaultsWithoutPersisting(t *testing.T) {
	f := newMetricsFixture(t)

	metrics, err := f.service.GetForProject(context.Background(), "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "proj-1", metrics.ProjectID)
	assert.Equal(t, math.Round(63_000_000*1.3), metrics.NPV)

	// Reading defaults does not create a stored record.
	_, err = f.repo.GetByProjectID(context.Background(), "proj-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFinancialMetricsService_UpdateForProject_Persists(t *testing.T) {
	f := newMetricsFixture(t)

	updated, err := f.service.UpdateForProject(context.Background(), "proj-1", sliders(800, 90, 30, 4))
	require.NoError(t, err)

	stored, err := f.repo.GetByProjectID(context.Background(), "proj-1")
	require.NoError(t, err)
	assert.Equal(t, updated.NPV, stored.NPV)

	// A later read returns the stored record rather than the defaults.
	metrics, err := f.service.GetForProject(context.Background(), "proj-1")
	require.NoError(t, err)
	assert.Equal(t, updated.NPV, metrics.NPV)
}

func TestFinancialMetricsService_UnknownProject(t *testing.T) {
	f := newMetricsFixture(t)

	_, err := f.service.GetForProject(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.service.UpdateForProject(context.Background(), "missing", sliders(500, 70, 50, 5))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFinancialMetricsService_UpdateForProject_Validation(t *testing.T) {
	f := newMetricsFixture(t)

	_, err := f.service.UpdateForProject(context.Background(), "proj-1", []entities.SliderPosition{
		{ID: "unknown-slider", Value: entities.SingleValue(1)},
	})
	require.Error(t, err)

	_, err = f.service.UpdateForProject(context.Background(), "proj-1", []entities.SliderPosition{
		{ID: entities.SliderDepositSize, Value: entities.SingleValue(5000)},
	})
	require.Error(t, err)

	_, err = f.service.UpdateForProject(context.Background(), "proj-1", []entities.SliderPosition{
		{ID: entities.SliderDepositSize, Value: entities.RangeValue(600, 400)},
	})
	require.Error(t, err)
}
