package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/providers"
	"github.com/geognosis/orecast/internal/infrastructure/observability"
)

const (
	// baseRatePerMeter is the reference drilling rate in $/m.
	baseRatePerMeter = 720.0

	// defaultDepthMeters is used when the submitted depth does not parse to
	// a positive number. Malformed input falls back, it never fails.
	defaultDepthMeters = 250.0
)

// EstimationService produces drilling cost estimates. The calculation is
// randomized on purpose to emulate variability across reports; the random
// source is injected so tests can fix the seed.
type EstimationService struct {
	geology providers.GeologyProvider
	rng     providers.RandomSource
	metrics *observability.Metrics
}

// NewEstimationService creates a new estimation service
func NewEstimationService(geology providers.GeologyProvider, rng providers.RandomSource) *EstimationService {
	return &EstimationService{
		geology: geology,
		rng:     rng,
	}
}

// SetMetrics attaches application metrics. Optional.
func (s *EstimationService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Estimate maps depth, optional budget, and the selected minerals to a
// fully-populated estimate. Pure with respect to its inputs plus the random
// source; there is no error case.
func (s *EstimationService) Estimate(ctx context.Context, depthInput, budgetInput string, minerals []entities.MineralType) *entities.EstimateResult {
	depth := parseDepth(depthInput)
	budget, hasBudget := parseBudget(budgetInput)

	location := s.geology.DrawLocation(s.rng)
	method := s.geology.DrawDrillingMethod(s.rng)
	terrain := s.geology.DrawTerrain(s.rng)

	depthMultiplier := math.Max(1, depth/200)
	averageCost := baseRatePerMeter * depth * s.between(0.7, 1.3) * depthMultiplier
	conservativeCost := averageCost * s.between(1.2, 1.4)
	ambitiousCost := averageCost * s.between(0.7, 0.8)

	costData := []entities.CostPoint{
		{Name: entities.ScenarioAmbitious, Cost: math.Round(ambitiousCost)},
		{Name: entities.ScenarioAverage, Cost: math.Round(averageCost)},
		{Name: entities.ScenarioConservative, Cost: math.Round(conservativeCost)},
	}

	costPerMeterData := make([]entities.CostPoint, len(costData))
	for i, point := range costData {
		costPerMeterData[i] = entities.CostPoint{
			Name: point.Name,
			Cost: math.Round(point.Cost / depth),
		}
	}

	labor := math.Round(averageCost * s.between(0.4, 0.6))
	hardware := math.Round(averageCost) - labor

	weeks := int(math.Ceil(depth / 100))
	timeEstimation := fmt.Sprintf("%d-%d weeks", weeks, weeks+s.rng.Intn(3))

	result := &entities.EstimateResult{
		LocationDetails:   location,
		CostData:          costData,
		CostPerMeterData:  costPerMeterData,
		CostRange:         formatRange(costData),
		CostPerMeterRange: formatRange(costPerMeterData),
		CostBreakdown:     entities.CostBreakdown{Labor: labor, Hardware: hardware},
		DrillingMethod:    method,
		Terrain:           terrain,
		TimeEstimation:    timeEstimation,
	}

	if hasBudget {
		averageCostPerMeter := costPerMeterAt(costPerMeterData, entities.ScenarioAverage)
		if averageCostPerMeter > 0 {
			maxMeters := int(math.Floor(budget / averageCostPerMeter))
			result.BudgetAnalysis = &entities.BudgetAnalysis{
				MaxMeters: maxMeters,
				MaxHoles:  int(math.Floor(float64(maxMeters) / depth)),
			}
		}
	}

	if s.metrics != nil {
		observability.RecordEstimate(ctx, s.metrics)
	}

	return result
}

// between draws a uniform value in [low, high).
func (s *EstimationService) between(low, high float64) float64 {
	return low + s.rng.Float64()*(high-low)
}

func parseDepth(input string) float64 {
	depth, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || depth <= 0 {
		return defaultDepthMeters
	}
	return depth
}

func parseBudget(input string) (float64, bool) {
	budget, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || budget <= 0 {
		return 0, false
	}
	return budget, true
}

// formatRange renders "$min - $max" over the series.
func formatRange(points []entities.CostPoint) string {
	low, high := points[0].Cost, points[0].Cost
	for _, point := range points[1:] {
		low = math.Min(low, point.Cost)
		high = math.Max(high, point.Cost)
	}
	return fmt.Sprintf("$%.0f - $%.0f", low, high)
}

func costPerMeterAt(points []entities.CostPoint, name string) float64 {
	for _, point := range points {
		if point.Name == name {
			return point.Cost
		}
	}
	return 0
}
