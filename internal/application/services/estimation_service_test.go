package services_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/adapters/providers/geology"
	"github.com/geognosis/orecast/internal/adapters/providers/random"
	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/testutil"
)

func newEstimator(seed int64) *services.EstimationService {
	return services.NewEstimationService(geology.NewStaticProvider(), rand.New(rand.NewSource(seed)))
}

func costByName(points []entities.CostPoint, name string) float64 {
	for _, point := range points {
		if point.Name == name {
			return point.Cost
		}
	}
	return -1
}

func TestEstimationService_ScenarioOrdering(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		estimator := newEstimator(seed)
		result := estimator.Estimate(context.Background(), "400", "", []entities.MineralType{entities.MineralGold})

		ambitious := costByName(result.CostData, entities.ScenarioAmbitious)
		average := costByName(result.CostData, entities.ScenarioAverage)
		conservative := costByName(result.CostData, entities.ScenarioConservative)

		assert.Less(t, ambitious, average, "seed %d", seed)
		assert.Less(t, average, conservative, "seed %d", seed)
	}
}

func TestEstimationService_CostPerMeterDerivation(t *testing.T) {
	estimator := newEstimator(7)
	depth := 400.0
	result := estimator.Estimate(context.Background(), "400", "", []entities.MineralType{entities.MineralCopper})

	require.Len(t, result.CostPerMeterData, len(result.CostData))
	for i, point := range result.CostData {
		assert.Equal(t, point.Name, result.CostPerMeterData[i].Name)
		assert.Equal(t, math.Round(point.Cost/depth), result.CostPerMeterData[i].Cost)
	}
}

func TestEstimationService_RangeBounds(t *testing.T) {
	estimator := newEstimator(11)
	result := estimator.Estimate(context.Background(), "250", "", []entities.MineralType{entities.MineralSilver})

	low := costByName(result.CostData, entities.ScenarioAmbitious)
	high := costByName(result.CostData, entities.ScenarioConservative)
	assert.Equal(t, fmt.Sprintf("$%.0f - $%.0f", low, high), result.CostRange)

	lowPM := costByName(result.CostPerMeterData, entities.ScenarioAmbitious)
	highPM := costByName(result.CostPerMeterData, entities.ScenarioConservative)
	assert.Equal(t, fmt.Sprintf("$%.0f - $%.0f", lowPM, highPM), result.CostPerMeterRange)
}

func TestEstimationService_BreakdownSumsToAverage(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		estimator := newEstimator(seed)
		result := estimator.Estimate(context.Background(), "600", "", []entities.MineralType{entities.MineralIron})

		average := costByName(result.CostData, entities.ScenarioAverage)
		assert.Equal(t, average, result.CostBreakdown.Labor+result.CostBreakdown.Hardware, "seed %d", seed)

		// Labor lands between 40% and 60% of the average.
		assert.GreaterOrEqual(t, result.CostBreakdown.Labor, math.Floor(average*0.4))
		assert.LessOrEqual(t, result.CostBreakdown.Labor, math.Ceil(average*0.6))
	}
}

func TestEstimationService_TimeEstimationScalesWithDepth(t *testing.T) {
	estimator := newEstimator(3)
	result := estimator.Estimate(context.Background(), "520", "", []entities.MineralType{entities.MineralGold})

	// ceil(520/100) = 6 weeks at the low end.
	var low, high int
	_, err := fmt.Sscanf(result.TimeEstimation, "%d-%d weeks", &low, &high)
	require.NoError(t, err)
	assert.Equal(t, 6, low)
	assert.GreaterOrEqual(t, high, low)
	assert.LessOrEqual(t, high, low+2)
}

func TestEstimationService_DepthFallback(t *testing.T) {
	tests := []struct {
		name  string
		depth string
	}{
		{"empty", ""},
		{"non-numeric", "abc"},
		{"negative", "-40"},
		{"zero", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimator := newEstimator(5)
			result := estimator.Estimate(context.Background(), tt.depth, "", []entities.MineralType{entities.MineralGold})

			// Fallback depth is 250m, so the low end of the time estimate
			// is ceil(250/100) = 3 weeks.
			var low, high int
			_, err := fmt.Sscanf(result.TimeEstimation, "%d-%d weeks", &low, &high)
			require.NoError(t, err)
			assert.Equal(t, 3, low)
		})
	}
}

func TestEstimationService_BudgetAnalysis(t *testing.T) {
	estimator := newEstimator(13)
	result := estimator.Estimate(context.Background(), "300", "500000", []entities.MineralType{entities.MineralCopper})

	require.NotNil(t, result.BudgetAnalysis)
	averagePM := costByName(result.CostPerMeterData, entities.ScenarioAverage)
	expectedMeters := int(math.Floor(500000 / averagePM))
	assert.Equal(t, expectedMeters, result.BudgetAnalysis.MaxMeters)
	assert.Equal(t, int(math.Floor(float64(expectedMeters)/300)), result.BudgetAnalysis.MaxHoles)
}

func TestEstimationService_NoBudgetNoAnalysis(t *testing.T) {
	estimator := newEstimator(17)

	for _, budget := range []string{"", "0", "-100", "abc"} {
		result := estimator.Estimate(context.Background(), "300", budget, []entities.MineralType{entities.MineralCopper})
		assert.Nil(t, result.BudgetAnalysis, "budget %q", budget)
	}
}

func TestEstimationService_DrawsComeFromReferenceLists(t *testing.T) {
	estimator := newEstimator(23)
	result := estimator.Estimate(context.Background(), "250", "", []entities.MineralType{entities.MineralGold})

	assert.NotEmpty(t, result.LocationDetails.Name)
	assert.NotEmpty(t, result.LocationDetails.Country)
	assert.NotEmpty(t, result.DrillingMethod)
	assert.NotEmpty(t, result.Terrain.Type)
	assert.GreaterOrEqual(t, result.LocationDetails.ConfidenceRating, 1)
	assert.LessOrEqual(t, result.LocationDetails.ConfidenceRating, 10)
}

func TestEstimationService_ConcurrentRequests(t *testing.T) {
	// Estimation and project creation share one locked random source, the
	// same shape the server wires; overlapping requests must not corrupt it.
	rng := random.NewLockedSource(1)
	estimator := services.NewEstimationService(geology.NewStaticProvider(), rng)
	projects := services.NewProjectService(
		testutil.NewMemoryProjectRepository(),
		testutil.NewMemoryMetricsRepository(),
		testutil.NewMemoryHistoryRepository(),
		rng,
		false,
	)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				result := estimator.Estimate(context.Background(), "400", "300000", []entities.MineralType{entities.MineralGold})
				if result == nil || result.CostRange == "" {
					t.Error("incomplete estimate under concurrent load")
				}
			}
		}()
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				input := services.CreateProjectInput{
					Name:     fmt.Sprintf("Site %d-%d", n, j),
					Minerals: []string{"Copper"},
				}
				if _, err := projects.Create(context.Background(), input); err != nil {
					t.Errorf("create failed under concurrent load: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()
}
