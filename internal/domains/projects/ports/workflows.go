package ports

import (
	"context"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
)

// WorkflowOrchestrator starts the durable creation flow for a project record.
type WorkflowOrchestrator interface {
	CreateProject(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error)
}
