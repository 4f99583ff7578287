package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/repositories"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// HistoryService owns the search history lifecycle: submission, listing with
// demo seeding, renaming, reloading, recalculation, and deletion.
type HistoryService struct {
	repo      repositories.SearchHistoryRepository
	estimator *EstimationService
	seedDemo  bool
}

// SubmitInput carries one estimator form submission. All coordinate and depth
// fields arrive as raw strings; depth falls back during estimation, but
// presence is validated here.
type SubmitInput struct {
	Name      string   `json:"name"`
	Latitude  string   `json:"latitude"`
	Longitude string   `json:"longitude"`
	Depth     string   `json:"depth"`
	Budget    string   `json:"budget"`
	Minerals  []string `json:"minerals"`
}

// NewHistoryService creates a new history service
func NewHistoryService(repo repositories.SearchHistoryRepository, estimator *EstimationService, seedDemo bool) *HistoryService {
	return &HistoryService{
		repo:      repo,
		estimator: estimator,
		seedDemo:  seedDemo,
	}
}

// Submit validates the form, runs one estimation, and appends the resulting
// item to the history. The original raw inputs are stored alongside the
// derived fields.
func (s *HistoryService) Submit(ctx context.Context, input SubmitInput) (*entities.SearchHistoryItem, error) {
	if strings.TrimSpace(input.Latitude) == "" ||
		strings.TrimSpace(input.Longitude) == "" ||
		strings.TrimSpace(input.Depth) == "" {
		return nil, apperrors.NewValidationError("please enter coordinates and drilling depth")
	}

	minerals, err := parseMinerals(input.Minerals)
	if err != nil {
		return nil, err
	}

	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = fmt.Sprintf("Site %d", len(existing)+1)
	}

	estimate := s.estimator.Estimate(ctx, input.Depth, input.Budget, minerals)

	item := &entities.SearchHistoryItem{
		// Nanosecond resolution keeps ids unique across rapid submissions.
		ID:               fmt.Sprintf("%d", now.UnixNano()),
		Name:             name,
		Latitude:         strings.TrimSpace(input.Latitude),
		Longitude:        strings.TrimSpace(input.Longitude),
		Depth:            strings.TrimSpace(input.Depth),
		Budget:           strings.TrimSpace(input.Budget),
		Timestamp:        now,
		SelectedMinerals: minerals,
	}
	applyEstimate(item, estimate)

	if _, err := s.repo.Append(ctx, item); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("item_id", item.ID).
		Str("depth", item.Depth).
		Int("minerals", len(minerals)).
		Msg("Search submitted")

	return item, nil
}

// List returns the history, seeding demo records on first load. Seeding only
// happens while the store is empty, so genuine submissions are never mixed
// with late-arriving demo data.
func (s *HistoryService) List(ctx context.Context) ([]*entities.SearchHistoryItem, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 && s.seedDemo {
		return s.seedDemoItems(ctx)
	}

	return items, nil
}

// LoadSite returns a stored item as-is. Loading never recomputes the
// estimate; the derived fields stay exactly as persisted.
func (s *HistoryService) LoadSite(ctx context.Context, id string) (*entities.SearchHistoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

// Rename updates only the display name of an item. Every other field,
// including the derived estimate, is preserved.
func (s *HistoryService) Rename(ctx context.Context, id, newName string) (*entities.SearchHistoryItem, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, apperrors.NewValidationError("name must not be empty")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = newName
	if _, err := s.repo.UpdateByID(ctx, id, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Recalculate re-runs the estimation for a stored item using its original
// inputs and replaces the derived fields wholesale.
func (s *HistoryService) Recalculate(ctx context.Context, id string) (*entities.SearchHistoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	estimate := s.estimator.Estimate(ctx, item.Depth, item.Budget, item.SelectedMinerals)
	applyEstimate(item, estimate)
	item.Timestamp = time.Now()

	if _, err := s.repo.UpdateByID(ctx, id, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item and returns the remaining history.
func (s *HistoryService) Delete(ctx context.Context, id string) ([]*entities.SearchHistoryItem, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.DeleteByID(ctx, id)
}

// seedDemoItems writes the two showcase records returned on a fresh install.
func (s *HistoryService) seedDemoItems(ctx context.Context) ([]*entities.SearchHistoryItem, error) {
	demos := []struct {
		id       string
		name     string
		lat      string
		lon      string
		depth    string
		budget   string
		minerals []entities.MineralType
		age      time.Duration
	}{
		{
			id: "1", name: "Northern Ridge Survey",
			lat: "51.0447", lon: "-114.0719", depth: "350", budget: "500000",
			minerals: []entities.MineralType{entities.MineralGold, entities.MineralCopper},
			age:      72 * time.Hour,
		},
		{
			id: "2", name: "Eastern Basin Probe",
			lat: "-23.6980", lon: "133.8807", depth: "180", budget: "",
			minerals: []entities.MineralType{entities.MineralIron, entities.MineralManganese},
			age:      24 * time.Hour,
		},
	}

	var items []*entities.SearchHistoryItem
	for _, demo := range demos {
		estimate := s.estimator.Estimate(ctx, demo.depth, demo.budget, demo.minerals)
		item := &entities.SearchHistoryItem{
			ID:               entities.DemoIDPrefix + demo.id,
			Name:             demo.name,
			Latitude:         demo.lat,
			Longitude:        demo.lon,
			Depth:            demo.depth,
			Budget:           demo.budget,
			Timestamp:        time.Now().Add(-demo.age),
			SelectedMinerals: demo.minerals,
		}
		applyEstimate(item, estimate)

		updated, err := s.repo.Append(ctx, item)
		if err != nil {
			return nil, err
		}
		items = updated
	}

	log.Ctx(ctx).Info().Int("count", len(items)).Msg("Seeded demo search history")
	return items, nil
}

// applyEstimate copies the derived fields of one estimation run onto an item.
func applyEstimate(item *entities.SearchHistoryItem, estimate *entities.EstimateResult) {
	item.LocationDetails = estimate.LocationDetails
	item.CostData = estimate.CostData
	item.CostPerMeterData = estimate.CostPerMeterData
	item.CostRange = estimate.CostRange
	item.CostPerMeterRange = estimate.CostPerMeterRange
	item.CostBreakdown = estimate.CostBreakdown
	item.DrillingMethod = estimate.DrillingMethod
	item.Terrain = estimate.Terrain
	item.TimeEstimation = estimate.TimeEstimation
	item.BudgetAnalysis = estimate.BudgetAnalysis
}

// parseMinerals canonicalizes the submitted mineral tags.
func parseMinerals(raw []string) ([]entities.MineralType, error) {
	var minerals []entities.MineralType
	for _, value := range raw {
		mineral, ok := entities.ParseMineral(value)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown mineral: %s", value))
		}
		minerals = append(minerals, mineral)
	}
	if len(minerals) == 0 {
		return nil, apperrors.NewValidationError("select at least one mineral")
	}
	return minerals, nil
}
