package types

import (
	"github.com/solcrm/pipeline-api/internal/domains/analytics/aggregate"
	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
)

// DashboardView bundles every derived series the dashboard renders,
// recomputed in full from the current project snapshot on each call.
type DashboardView struct {
	Stats        aggregate.SummaryStats
	StageSlices  []aggregate.StageSlice
	ClientSlices []aggregate.ClientSlice
	Timeline     []aggregate.MonthPoint
	StageColumns []aggregate.StageColumn
	Projects     []*projecttypes.ProjectProjection
}
