package repositories

import (
	"context"

	"github.com/geognosis/orecast/internal/domain/entities"
)

// ProjectRepository defines the keyed-list persistence contract for
// exploration projects.
type ProjectRepository interface {
	// LoadAll returns every stored project. Absent or malformed payloads are
	// treated as an empty list, never an error.
	LoadAll(ctx context.Context) ([]*entities.ProjectData, error)

	// Append adds a project to the end of the list and persists it.
	Append(ctx context.Context, project *entities.ProjectData) ([]*entities.ProjectData, error)

	// UpdateByID replaces the matching project's fields and persists. No-op
	// if the id is not found.
	UpdateByID(ctx context.Context, id string, project *entities.ProjectData) ([]*entities.ProjectData, error)

	// DeleteByID removes the matching project and persists.
	DeleteByID(ctx context.Context, id string) ([]*entities.ProjectData, error)

	// FindByID returns the matching project, or a not-found error.
	FindByID(ctx context.Context, id string) (*entities.ProjectData, error)
}
