package repositories

import (
	"context"

	"github.com/geognosis/orecast/internal/domain/entities"
)

// SearchHistoryRepository defines the keyed-list persistence contract for
// search history items. Persistence is last-writer-wins on a single key; the
// runtime model assumes a single active reader/writer.
type SearchHistoryRepository interface {
	// LoadAll returns every stored item. Absent or malformed payloads are
	// treated as an empty list, never an error.
	LoadAll(ctx context.Context) ([]*entities.SearchHistoryItem, error)

	// Append adds an item to the end of the list, persists it, and returns
	// the updated list.
	Append(ctx context.Context, item *entities.SearchHistoryItem) ([]*entities.SearchHistoryItem, error)

	// UpdateByID replaces the matching item's fields and persists. No-op if
	// the id is not found.
	UpdateByID(ctx context.Context, id string, item *entities.SearchHistoryItem) ([]*entities.SearchHistoryItem, error)

	// DeleteByID removes the matching item and persists.
	DeleteByID(ctx context.Context, id string) ([]*entities.SearchHistoryItem, error)

	// FindByID returns the matching item, or a not-found error.
	FindByID(ctx context.Context, id string) (*entities.SearchHistoryItem, error)
}
