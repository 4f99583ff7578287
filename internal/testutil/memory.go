// Package testutil provides in-memory repository fakes shared by unit tests.
package testutil

import (
	"context"
	"sync"

	"github.com/geognosis/orecast/internal/domain/entities"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// MemoryHistoryRepository is an in-memory SearchHistoryRepository.
type MemoryHistoryRepository struct {
	mu    sync.Mutex
	Items []*entities.SearchHistoryItem
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{}
}

func (r *MemoryHistoryRepository) LoadAll(ctx context.Context) ([]*entities.SearchHistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entities.SearchHistoryItem(nil), r.Items...), nil
}

func (r *MemoryHistoryRepository) Append(ctx context.Context, item *entities.SearchHistoryItem) ([]*entities.SearchHistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Items = append(r.Items, item)
	return append([]*entities.SearchHistoryItem(nil), r.Items...), nil
}

func (r *MemoryHistoryRepository) UpdateByID(ctx context.Context, id string, item *entities.SearchHistoryItem) ([]*entities.SearchHistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.Items {
		if existing.ID == id {
			r.Items[i] = item
			break
		}
	}
	return append([]*entities.SearchHistoryItem(nil), r.Items...), nil
}

func (r *MemoryHistoryRepository) DeleteByID(ctx context.Context, id string) ([]*entities.SearchHistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.Items[:0]
	for _, existing := range r.Items {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	r.Items = kept
	return append([]*entities.SearchHistoryItem(nil), r.Items...), nil
}

func (r *MemoryHistoryRepository) FindByID(ctx context.Context, id string) (*entities.SearchHistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Items {
		if existing.ID == id {
			return existing, nil
		}
	}
	return nil, apperrors.NewNotFoundError("search history item not found: " + id)
}

// MemoryProjectRepository is an in-memory ProjectRepository.
type MemoryProjectRepository struct {
	mu       sync.Mutex
	Projects []*entities.ProjectData
}

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{}
}

func (r *MemoryProjectRepository) LoadAll(ctx context.Context) ([]*entities.ProjectData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entities.ProjectData(nil), r.Projects...), nil
}

func (r *MemoryProjectRepository) Append(ctx context.Context, project *entities.ProjectData) ([]*entities.ProjectData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Projects = append(r.Projects, project)
	return append([]*entities.ProjectData(nil), r.Projects...), nil
}

func (r *MemoryProjectRepository) UpdateByID(ctx context.Context, id string, project *entities.ProjectData) ([]*entities.ProjectData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.Projects {
		if existing.ID == id {
			r.Projects[i] = project
			break
		}
	}
	return append([]*entities.ProjectData(nil), r.Projects...), nil
}

func (r *MemoryProjectRepository) DeleteByID(ctx context.Context, id string) ([]*entities.ProjectData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.Projects[:0]
	for _, existing := range r.Projects {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	r.Projects = kept
	return append([]*entities.ProjectData(nil), r.Projects...), nil
}

func (r *MemoryProjectRepository) FindByID(ctx context.Context, id string) (*entities.ProjectData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Projects {
		if existing.ID == id {
			return existing, nil
		}
	}
	return nil, apperrors.NewNotFoundError("project not found: " + id)
}

// MemoryMetricsRepository is an in-memory FinancialMetricsRepository.
type MemoryMetricsRepository struct {
	mu      sync.Mutex
	Records map[string]*entities.FinancialMetrics
}

func NewMemoryMetricsRepository() *MemoryMetricsRepository {
	return &MemoryMetricsRepository{Records: make(map[string]*entities.FinancialMetrics)}
}

func (r *MemoryMetricsRepository) GetByProjectID(ctx context.Context, projectID string) (*entities.FinancialMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if metrics, ok := r.Records[projectID]; ok {
		return metrics, nil
	}
	return nil, apperrors.NewNotFoundError("financial metrics not found: " + projectID)
}

func (r *MemoryMetricsRepository) Save(ctx context.Context, metrics *entities.FinancialMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records[metrics.ProjectID] = metrics
	return nil
}

func (r *MemoryMetricsRepository) DeleteByProjectID(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Records, projectID)
	return nil
}

// MemorySessionRepository is an in-memory SessionRepository.
type MemorySessionRepository struct {
	mu       sync.Mutex
	LoggedIn bool
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{}
}

func (r *MemorySessionRepository) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LoggedIn = loggedIn
	return nil
}

func (r *MemorySessionRepository) IsLoggedIn(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.LoggedIn, nil
}
