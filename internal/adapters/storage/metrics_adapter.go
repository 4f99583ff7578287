package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/repositories"
	"github.com/geognosis/orecast/internal/infrastructure/clients/localstore"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

// MetricsAdapter implements FinancialMetricsRepository over the local store.
// Each project gets its own key, the side record never touches the project
// list payload.
type MetricsAdapter struct {
	client *localstore.Client
}

// NewMetricsAdapter creates a new financial metrics adapter
func NewMetricsAdapter(client *localstore.Client) repositories.FinancialMetricsRepository {
	return &MetricsAdapter{client: client}
}

func metricsKey(projectID string) string {
	return KeyMetricsPrefix + projectID
}

// GetByProjectID returns the metrics record for a project
func (a *MetricsAdapter) GetByProjectID(ctx context.Context, projectID string) (*entities.FinancialMetrics, error) {
	payload, found, err := a.client.Get(ctx, metricsKey(projectID))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read financial metrics", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("financial metrics for project %s not found", projectID))
	}

	var metrics entities.FinancialMetrics
	if err := json.Unmarshal([]byte(payload), &metrics); err != nil {
		// Fallback-to-empty policy: a corrupt side record reads as absent.
		log.Warn().Str("project_id", projectID).Err(err).Msg("malformed financial metrics payload")
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("financial metrics for project %s not found", projectID))
	}

	return &metrics, nil
}

// Save persists the metrics record for its project id
func (a *MetricsAdapter) Save(ctx context.Context, metrics *entities.FinancialMetrics) error {
	if metrics.ProjectID == "" {
		return apperrors.NewValidationError("financial metrics require a project id")
	}

	payload, err := json.Marshal(metrics)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize financial metrics", err)
	}
	if err := a.client.Set(ctx, metricsKey(metrics.ProjectID), string(payload)); err != nil {
		return apperrors.NewInternalError("failed to write financial metrics", err)
	}

	return nil
}

// DeleteByProjectID removes the metrics record for a project
func (a *MetricsAdapter) DeleteByProjectID(ctx context.Context, projectID string) error {
	if err := a.client.Delete(ctx, metricsKey(projectID)); err != nil {
		return apperrors.NewInternalError("failed to delete financial metrics", err)
	}
	return nil
}
