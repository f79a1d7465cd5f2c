package projects

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	projectports "github.com/solcrm/pipeline-api/internal/domains/projects/ports"
)

// PersistProjectActivityName persists a project aggregate through the application service.
const PersistProjectActivityName = "projects.activities.PersistProject"

// Activities groups activities that operate on the projects bounded context.
type Activities struct {
	persistService projectports.Service
}

// NewActivities wires the projects service into the Temporal activities bundle.
func NewActivities(persistService projectports.Service) *Activities {
	return &Activities{persistService: persistService}
}

// PersistProject stores a new project aggregate and returns its projection.
func (a *Activities) PersistProject(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("project persist activity not initialized")
		return nil, errors.New("project persist activity not initialized")
	}
	logger.Info("PersistProject activity started")
	projection, err := a.persistService.Create(ctx, input)
	if err != nil {
		logger.Error("PersistProject activity failed", "error", err)
		return nil, err
	}
	if projection != nil && projection.Entity != nil {
		logger.Info("PersistProject activity completed", "projectId", projection.Entity.ID)
	} else {
		logger.Info("PersistProject activity completed")
	}
	return projection, nil
}
