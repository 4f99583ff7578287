package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/testutil"
)

func seedComparisonHistory(t *testing.T, repo *testutil.MemoryHistoryRepository) {
	t.Helper()
	items := []*entities.SearchHistoryItem{
		{ID: "a", Name: "Northern Ridge", LocationDetails: entities.LocationDetails{Name: "Red Lake District", Country: "Canada"}},
		{ID: "b", Name: "Desert Probe", LocationDetails: entities.LocationDetails{Name: "Atacama Belt", Country: "Chile"}},
		{ID: "c", Name: "Basin Survey", LocationDetails: entities.LocationDetails{Name: "Witwatersrand Basin", Country: "South Africa"}},
		{ID: "d", Name: "Ridge Follow-up", LocationDetails: entities.LocationDetails{Name: "Yukon Plateau", Country: "Canada"}},
	}
	for _, item := range items {
		_, err := repo.Append(context.Background(), item)
		require.NoError(t, err)
	}
}

func TestComparisonService_Search(t *testing.T) {
	repo := testutil.NewMemoryHistoryRepository()
	seedComparisonHistory(t, repo)
	service := services.NewComparisonService(repo)

	tests := []struct {
		name string
		term string
		ids  []string
	}{
		{"empty term returns all", "", []string{"a", "b", "c", "d"}},
		{"matches name case-insensitively", "ridge", []string{"a", "d"}},
		{"matches location", "atacama", []string{"b"}},
		{"matches country", "CANADA", []string{"a", "d"}},
		{"no match", "zinc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := service.Search(context.Background(), tt.term)
			require.NoError(t, err)

			var ids []string
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestComparisonService_Select(t *testing.T) {
	repo := testutil.NewMemoryHistoryRepository()
	seedComparisonHistory(t, repo)
	service := services.NewComparisonService(repo)

	// Selection order is preserved regardless of storage order.
	items, err := service.Select(context.Background(), []string{"c", "a"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestComparisonService_Select_DropsMissingIDs(t *testing.T) {
	repo := testutil.NewMemoryHistoryRepository()
	seedComparisonHistory(t, repo)
	service := services.NewComparisonService(repo)

	items, err := service.Select(context.Background(), []string{"a", "gone", "b"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}

func TestComparisonService_Select_TooMany(t *testing.T) {
	repo := testutil.NewMemoryHistoryRepository()
	seedComparisonHistory(t, repo)
	service := services.NewComparisonService(repo)

	_, err := service.Select(context.Background(), []string{"a", "b", "c", "d"})
	require.Error(t, err)
}
