package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/providers"
	"github.com/geognosis/orecast/internal/domain/repositories"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// ProjectService owns the exploration project portfolio: listing with demo
// seeding, manual creation, promotion from the search history, and deletion
// together with any financial metrics side record.
type ProjectService struct {
	repo        repositories.ProjectRepository
	metricsRepo repositories.FinancialMetricsRepository
	historyRepo repositories.SearchHistoryRepository
	rng         providers.RandomSource
	seedDemo    bool
}

// CreateProjectInput carries one manual project creation.
type CreateProjectInput struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Country  string   `json:"country"`
	Minerals []string `json:"minerals"`
}

// NewProjectService creates a new project service
func NewProjectService(
	repo repositories.ProjectRepository,
	metricsRepo repositories.FinancialMetricsRepository,
	historyRepo repositories.SearchHistoryRepository,
	rng providers.RandomSource,
	seedDemo bool,
) *ProjectService {
	return &ProjectService{
		repo:        repo,
		metricsRepo: metricsRepo,
		historyRepo: historyRepo,
		rng:         rng,
		seedDemo:    seedDemo,
	}
}

// List returns every project, seeding the demo portfolio on first load.
func (s *ProjectService) List(ctx context.Context) ([]*entities.ProjectData, error) {
	projects, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(projects) == 0 && s.seedDemo {
		return s.seedDemoProjects(ctx)
	}

	return projects, nil
}

// Get returns one project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*entities.ProjectData, error) {
	return s.repo.FindByID(ctx, id)
}

// Create adds a manually entered project. An NPV range is assigned at random
// since no drilling estimate backs the entry.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*entities.ProjectData, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("project name must not be empty")
	}

	minerals, err := parseMinerals(input.Minerals)
	if err != nil {
		return nil, err
	}

	project := &entities.ProjectData{
		ID:          "proj-" + uuid.New().String(),
		Name:        name,
		Location:    strings.TrimSpace(input.Location),
		Country:     strings.TrimSpace(input.Country),
		NPVRange:    s.randomNPVRange(),
		Minerals:    minerals,
		CreatedDate: time.Now(),
		Status:      entities.StatusPlanning,
	}

	if _, err := s.repo.Append(ctx, project); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("project_id", project.ID).Msg("Project created")
	return project, nil
}

// SaveFromHistory promotes a search history item into a project, copying its
// cost figures and minerals. The history item itself is kept untouched so the
// estimator's record of past searches stays complete.
func (s *ProjectService) SaveFromHistory(ctx context.Context, historyID string) (*entities.ProjectData, error) {
	item, err := s.historyRepo.FindByID(ctx, historyID)
	if err != nil {
		return nil, err
	}

	project := &entities.ProjectData{
		ID:                    "proj-" + uuid.New().String(),
		Name:                  item.Name,
		Location:              item.LocationDetails.Name,
		Country:               item.LocationDetails.Country,
		Cost:                  formatAverageCost(item.CostData),
		CostPerMeter:          item.CostPerMeterRange,
		CostRange:             item.CostRange,
		Minerals:              item.SelectedMinerals,
		CreatedDate:           time.Now(),
		Status:                entities.StatusInProgress,
		FromDrillingEstimator: true,
	}

	if _, err := s.repo.Append(ctx, project); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("project_id", project.ID).
		Str("history_id", historyID).
		Msg("Project saved from estimator")

	return project, nil
}

// Delete removes a project and its financial metrics side record, returning
// the remaining portfolio.
func (s *ProjectService) Delete(ctx context.Context, id string) ([]*entities.ProjectData, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	remaining, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.metricsRepo.DeleteByProjectID(ctx, id); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("project_id", id).Msg("Failed to delete financial metrics record")
	}

	return remaining, nil
}

// randomNPVRange draws a plausible "$lowM - $highM" band.
func (s *ProjectService) randomNPVRange() string {
	low := 20 + s.rng.Intn(60)
	high := low + 10 + s.rng.Intn(40)
	return fmt.Sprintf("$%dM - $%dM", low, high)
}

// seedDemoProjects writes the showcase portfolio returned on a fresh install.
func (s *ProjectService) seedDemoProjects(ctx context.Context) ([]*entities.ProjectData, error) {
	demos := []*entities.ProjectData{
		{
			ID: entities.DemoIDPrefix + "1", Name: "Copper Mountain",
			Location: "Atacama Belt", Country: "Chile",
			NPVRange: "$230M - $260M",
			Minerals: []entities.MineralType{entities.MineralCopper},
			Status:   entities.StatusInProgress,
		},
		{
			ID: entities.DemoIDPrefix + "2", Name: "Golden Valley",
			Location: "Carlin Trend", Country: "United States",
			NPVRange: "$170M - $195M",
			Minerals: []entities.MineralType{entities.MineralGold, entities.MineralSilver},
			Status:   entities.StatusPlanning,
		},
		{
			ID: entities.DemoIDPrefix + "3", Name: "Iron Ridge",
			Location: "Pilbara Craton", Country: "Australia",
			NPVRange: "$95M - $120M",
			Minerals: []entities.MineralType{entities.MineralIron},
			Status:   entities.StatusCompleted,
		},
		{
			ID: entities.DemoIDPrefix + "4", Name: "Cobalt Creek",
			Location: "Copperbelt Province", Country: "Zambia",
			NPVRange: "$55M - $80M",
			Minerals: []entities.MineralType{entities.MineralCobalt, entities.MineralManganese},
			Status:   entities.StatusPlanning,
		},
	}

	var projects []*entities.ProjectData
	for i, demo := range demos {
		demo.CreatedDate = time.Now().AddDate(0, 0, -(len(demos)-i)*30)
		updated, err := s.repo.Append(ctx, demo)
		if err != nil {
			return nil, err
		}
		projects = updated
	}

	log.Ctx(ctx).Info().Int("count", len(projects)).Msg("Seeded demo projects")
	return projects, nil
}

// formatAverageCost renders the average scenario cost as a dollar figure.
func formatAverageCost(costData []entities.CostPoint) string {
	for _, point := range costData {
		if point.Name == entities.ScenarioAverage {
			return fmt.Sprintf("$%.0f", point.Cost)
		}
	}
	return ""
}
