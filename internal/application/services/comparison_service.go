package services

import (
	"context"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/repositories"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// MaxComparisonSelection caps how many history items can be compared side by
// side.
const MaxComparisonSelection = 3

// ComparisonService serves the site comparison page: substring search over
// the history and bounded side-by-side selection.
type ComparisonService struct {
	history repositories.SearchHistoryRepository
}

// NewComparisonService creates a new comparison service
func NewComparisonService(history repositories.SearchHistoryRepository) *ComparisonService {
	return &ComparisonService{history: history}
}

// Search filters the history by a case-insensitive term matched against the
// item name, location, and country. An empty term returns everything.
func (s *ComparisonService) Search(ctx context.Context, term string) ([]*entities.SearchHistoryItem, error) {
	items, err := s.history.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*entities.SearchHistoryItem
	for _, item := range items {
		if item.Matches(term) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Select resolves the chosen ids for side-by-side display, preserving the
// selection order. Ids that no longer resolve are dropped silently since the
// history may have changed underneath the selection.
func (s *ComparisonService) Select(ctx context.Context, ids []string) ([]*entities.SearchHistoryItem, error) {
	if len(ids) > MaxComparisonSelection {
		return nil, apperrors.NewValidationError("at most 3 sites can be compared")
	}

	items, err := s.history.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.SearchHistoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var selected []*entities.SearchHistoryItem
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			selected = append(selected, item)
		}
	}
	return selected, nil
}
