package ports

import (
	"context"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
)

// Service defines the projects use cases exposed to adapters (inbound port).
type Service interface {
	Create(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error)
	Update(ctx context.Context, input projecttypes.UpdateProjectInput) (*projecttypes.ProjectProjection, error)
	GetByID(ctx context.Context, input projecttypes.ProjectIdentifier) (*projecttypes.ProjectProjection, error)
	Delete(ctx context.Context, input projecttypes.ProjectIdentifier) error
	List(ctx context.Context, input projecttypes.ListProjectsInput) ([]*projecttypes.ProjectProjection, error)
}
