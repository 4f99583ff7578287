package storage

import (
	"context"
	"fmt"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/repositories"
	"github.com/geognosis/orecast/internal/infrastructure/clients/localstore"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// ProjectAdapter implements ProjectRepository over the local store.
type ProjectAdapter struct {
	list *keyedList[*entities.ProjectData]
}

// NewProjectAdapter creates a new project adapter
func NewProjectAdapter(client *localstore.Client) repositories.ProjectRepository {
	return &ProjectAdapter{
		list: newKeyedList(client, KeyProjects, func(project *entities.ProjectData) string {
			return project.ID
		}),
	}
}

// LoadAll returns every stored project
func (a *ProjectAdapter) LoadAll(ctx context.Context) ([]*entities.ProjectData, error) {
	return a.list.load(ctx)
}

// Append adds a project to the end of the list and persists it
func (a *ProjectAdapter) Append(ctx context.Context, project *entities.ProjectData) ([]*entities.ProjectData, error) {
	return a.list.append(ctx, project)
}

// UpdateByID replaces the matching project's fields and persists
func (a *ProjectAdapter) UpdateByID(ctx context.Context, id string, project *entities.ProjectData) ([]*entities.ProjectData, error) {
	return a.list.updateByID(ctx, id, project)
}

// DeleteByID removes the matching project and persists
func (a *ProjectAdapter) DeleteByID(ctx context.Context, id string) ([]*entities.ProjectData, error) {
	return a.list.deleteByID(ctx, id)
}

// FindByID returns the matching project
func (a *ProjectAdapter) FindByID(ctx context.Context, id string) (*entities.ProjectData, error) {
	project, found, err := a.list.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("project with id %s not found", id))
	}
	return project, nil
}
