package repositories

import (
	"context"

	"github.com/geognosis/orecast/internal/domain/entities"
)

// FinancialMetricsRepository stores one FinancialMetrics side record per
// project id.
type FinancialMetricsRepository interface {
	// GetByProjectID returns the metrics record for a project, or a
	// not-found error when none was saved.
	GetByProjectID(ctx context.Context, projectID string) (*entities.FinancialMetrics, error)

	// Save persists the metrics record for its project id, replacing any
	// previous record.
	Save(ctx context.Context, metrics *entities.FinancialMetrics) error

	// DeleteByProjectID removes the metrics record for a project. No-op when
	// none exists.
	DeleteByProjectID(ctx context.Context, projectID string) error
}
