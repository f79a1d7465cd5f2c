package ports

import (
	"context"

	"github.com/solcrm/pipeline-api/internal/domains/analytics/application/types"
)

// Service exposes the dashboard read model.
type Service interface {
	// Dashboard aggregates the current project snapshot into chart-ready
	// series, summary statistics, and a display-ordered record list.
	Dashboard(ctx context.Context) (*types.DashboardView, error)
}
