package storage

import (
	"context"
	"fmt"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/repositories"
	"github.com/geognosis/orecast/internal/infrastructure/clients/localstore"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// HistoryAdapter implements SearchHistoryRepository over the local store.
type HistoryAdapter struct {
	list *keyedList[*entities.SearchHistoryItem]
}

// NewHistoryAdapter creates a new search history adapter
func NewHistoryAdapter(client *localstore.Client) repositories.SearchHistoryRepository {
	return &HistoryAdapter{
		list: newKeyedList(client, KeySearchHistory, func(item *entities.SearchHistoryItem) string {
			return item.ID
		}),
	}
}

// LoadAll returns every stored history item
func (a *HistoryAdapter) LoadAll(ctx context.Context) ([]*entities.SearchHistoryItem, error) {
	return a.list.load(ctx)
}

// Append adds an item to the end of the list and persists it
func (a *HistoryAdapter) Append(ctx context.Context, item *entities.SearchHistoryItem) ([]*entities.SearchHistoryItem, error) {
	return a.list.append(ctx, item)
}

// UpdateByID replaces the matching item's fields and persists
func (a *HistoryAdapter) UpdateByID(ctx context.Context, id string, item *entities.SearchHistoryItem) ([]*entities.SearchHistoryItem, error) {
	return a.list.updateByID(ctx, id, item)
}

// DeleteByID removes the matching item and persists
func (a *HistoryAdapter) DeleteByID(ctx context.Context, id string) ([]*entities.SearchHistoryItem, error) {
	return a.list.deleteByID(ctx, id)
}

// FindByID returns the matching item
func (a *HistoryAdapter) FindByID(ctx context.Context, id string) (*entities.SearchHistoryItem, error) {
	item, found, err := a.list.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("history item with id %s not found", id))
	}
	return item, nil
}
