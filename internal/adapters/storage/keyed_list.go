package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/infrastructure/clients/localstore"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// keyedList persists one list of records under a single logical key, the way
// the dashboard kept each list in one localStorage entry. Writes always
// rewrite the whole payload; the last writer wins.
type keyedList[T any] struct {
	client *localstore.Client
	key    string
	idOf   func(T) string
}

func newKeyedList[T any](client *localstore.Client, key string, idOf func(T) string) *keyedList[T] {
	return &keyedList[T]{client: client, key: key, idOf: idOf}
}

// load deserializes the stored list. An absent key or a malformed payload
// reads as an empty list: the fallback-to-empty policy of the store
// contract, never surfaced to the caller.
func (l *keyedList[T]) load(ctx context.Context) ([]T, error) {
	payload, found, err := l.client.Get(ctx, l.key)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read "+l.key, err)
	}
	if !found {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		log.Warn().Str("key", l.key).Err(err).Msg("malformed stored payload, treating as empty")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (l *keyedList[T]) save(ctx context.Context, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize "+l.key, err)
	}
	if err := l.client.Set(ctx, l.key, string(payload)); err != nil {
		return apperrors.NewInternalError("failed to write "+l.key, err)
	}
	return nil
}

func (l *keyedList[T]) append(ctx context.Context, item T) ([]T, error) {
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := l.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// updateByID replaces the matching record. No-op when the id is not found.
func (l *keyedList[T]) updateByID(ctx context.Context, id string, item T) ([]T, error) {
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range items {
		if l.idOf(items[i]) == id {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		return items, nil
	}

	if err := l.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *keyedList[T]) deleteByID(ctx context.Context, id string) ([]T, error) {
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if l.idOf(item) == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return items, nil
	}

	if err := l.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (l *keyedList[T]) findByID(ctx context.Context, id string) (T, bool, error) {
	var zero T

	items, err := l.load(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if l.idOf(item) == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}
