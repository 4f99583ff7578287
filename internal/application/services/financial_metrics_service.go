package services

import (
	"context"
	"math"
	"time"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/repositories"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// Reference figures the slider calculator scales from.
const (
	baseNPV           = 63_000_000.0
	baseIRR           = 8.3
	basePaybackFactor = 8.0
	initialInvestment = -15_000_000.0

	// multiplierFloor keeps the NPV positive even at the most pessimistic
	// slider positions, so IRR and payback stay defined.
	multiplierFloor = 0.05
)

// FinancialMetricsService computes and persists the per-project NPV slider
// calculator output. Metrics are recomputed from the slider positions on
// every update; the stored record is a cache of the latest computation.
type FinancialMetricsService struct {
	repo     repositories.FinancialMetricsRepository
	projects repositories.ProjectRepository
}

// NewFinancialMetricsService creates a new financial metrics service
func NewFinancialMetricsService(repo repositories.FinancialMetricsRepository, projects repositories.ProjectRepository) *FinancialMetricsService {
	return &FinancialMetricsService{
		repo:     repo,
		projects: projects,
	}
}

// SliderConfigs returns the slider definitions shown alongside the metrics.
func (s *FinancialMetricsService) SliderConfigs() []entities.SliderConfig {
	return entities.DefaultSliders()
}

// GetForProject returns the stored metrics for a project, or a fresh
// computation at the default slider positions when none was saved. The
// default computation is not persisted; it only becomes a record once the
// user moves a slider.
func (s *FinancialMetricsService) GetForProject(ctx context.Context, projectID string) (*entities.FinancialMetrics, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	metrics, err := s.repo.GetByProjectID(ctx, projectID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			metrics = s.Compute(defaultPositions())
			metrics.ProjectID = projectID
			return metrics, nil
		}
		return nil, err
	}

	return metrics, nil
}

// SavedForProject returns the persisted metrics record for a project. Unlike
// GetForProject it never falls back to a default computation; a not-found
// error means the sliders were never adjusted.
func (s *FinancialMetricsService) SavedForProject(ctx context.Context, projectID string) (*entities.FinancialMetrics, error) {
	return s.repo.GetByProjectID(ctx, projectID)
}

// UpdateForProject recomputes the metrics from the given slider positions and
// persists the result for the project.
func (s *FinancialMetricsService) UpdateForProject(ctx context.Context, projectID string, sliders []entities.SliderPosition) (*entities.FinancialMetrics, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	if err := validateSliders(sliders); err != nil {
		return nil, err
	}

	metrics := s.Compute(sliders)
	metrics.ProjectID = projectID

	if err := s.repo.Save(ctx, metrics); err != nil {
		return nil, err
	}

	return metrics, nil
}

// Compute derives NPV, IRR, payback period, and the yearly cash-flow series
// from the slider positions. Each slider contributes a weighted effect
// relative to its default position.
func (s *FinancialMetricsService) Compute(sliders []entities.SliderPosition) *entities.FinancialMetrics {
	deposit := effectiveValue(sliders, entities.SliderDepositSize, 500)
	quality := effectiveValue(sliders, entities.SliderMineralQuality, 70)
	capex := effectiveValue(sliders, entities.SliderCapex, 50)
	projectTime := effectiveValue(sliders, entities.SliderProjectTime, 5)

	depositEffect := deposit / 500 * 0.7
	qualityEffect := quality / 70 * 0.3
	capexEffect := (1 - capex/50) * 0.4
	timeEffect := (1 - projectTime/5) * 0.2

	multiplier := 0.3 + depositEffect + qualityEffect + capexEffect + timeEffect
	if multiplier < multiplierFloor {
		multiplier = multiplierFloor
	}

	npv := math.Round(baseNPV * multiplier)
	irr := round1(baseIRR * math.Sqrt(npv/baseNPV))
	payback := round1(basePaybackFactor * baseNPV / npv)

	years := int(math.Max(1, math.Round(projectTime)))
	npvData := make([]entities.YearValue, 0, years+1)
	paybackData := make([]entities.YearValue, 0, years+1)
	npvData = append(npvData, entities.YearValue{Year: 0, Value: initialInvestment})
	paybackData = append(paybackData, entities.YearValue{Year: 0, Value: initialInvestment})

	cumulative := initialInvestment
	for i := 1; i <= years; i++ {
		flow := math.Round(npv / float64(years) * (1 + float64(i)/10) * (float64(i) / float64(years)))
		cumulative += flow
		npvData = append(npvData, entities.YearValue{Year: i, Value: flow})
		paybackData = append(paybackData, entities.YearValue{Year: i, Value: cumulative})
	}

	return &entities.FinancialMetrics{
		NPV:           npv,
		IRR:           irr,
		PaybackPeriod: payback,
		Sliders:       sliders,
		NPVData:       npvData,
		PaybackData:   paybackData,
		UpdatedAt:     time.Now(),
	}
}

// defaultPositions builds the slider positions at their configured defaults.
func defaultPositions() []entities.SliderPosition {
	configs := entities.DefaultSliders()
	positions := make([]entities.SliderPosition, len(configs))
	for i, config := range configs {
		positions[i] = entities.SliderPosition{
			ID:    config.ID,
			Value: entities.SingleValue(config.Default),
		}
	}
	return positions
}

// effectiveValue resolves the effective position of one slider, falling back
// to its default when the slider is absent.
func effectiveValue(sliders []entities.SliderPosition, id string, fallback float64) float64 {
	for _, slider := range sliders {
		if slider.ID == id {
			return slider.Value.Effective()
		}
	}
	return fallback
}

// validateSliders checks ids and bounds against the slider configs.
func validateSliders(sliders []entities.SliderPosition) error {
	configs := make(map[string]entities.SliderConfig)
	for _, config := range entities.DefaultSliders() {
		configs[config.ID] = config
	}

	for _, slider := range sliders {
		config, ok := configs[slider.ID]
		if !ok {
			return apperrors.NewValidationError("unknown slider: " + slider.ID)
		}

		switch slider.Value.Kind {
		case entities.SliderValueSingle:
			if slider.Value.Value < config.Min || slider.Value.Value > config.Max {
				return apperrors.NewValidationError("slider out of range: " + slider.ID)
			}
		case entities.SliderValueRange:
			if slider.Value.Low > slider.Value.High {
				return apperrors.NewValidationError("slider range inverted: " + slider.ID)
			}
			if slider.Value.Low < config.Min || slider.Value.High > config.Max {
				return apperrors.NewValidationError("slider out of range: " + slider.ID)
			}
		default:
			return apperrors.NewValidationError("unknown slider value kind: " + string(slider.Value.Kind))
		}
	}

	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
