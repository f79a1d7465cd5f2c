package projects

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	projectactivities "github.com/solcrm/pipeline-api/internal/platform/temporal/activities/projects"
)

const (
	// ProjectCreationWorkflowName is the public identifier for registering the workflow.
	ProjectCreationWorkflowName = "projects.workflows.Creation"
	// ProjectCreationTaskQueue is the queue consumed by the worker processing project workflows.
	ProjectCreationTaskQueue = "PROJECT_CREATION"
)

// ProjectCreationWorkflowInput captures the payload required to provision a new project.
type ProjectCreationWorkflowInput struct {
	Command projecttypes.CreateProjectInput
	TraceID string
}

// ProjectCreationWorkflow orchestrates the activities needed to persist a project aggregate.
func ProjectCreationWorkflow(ctx workflow.Context, input ProjectCreationWorkflowInput) (*projecttypes.ProjectProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ProjectCreationWorkflow started", withTraceID(input.TraceID)...)

	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var projection projecttypes.ProjectProjection
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, persistOptions),
		projectactivities.PersistProjectActivityName,
		input.Command,
	).Get(ctx, &projection)
	if err != nil {
		logger.Error("ProjectCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	if projection.Entity != nil {
		logger.Info("ProjectCreationWorkflow completed", withTraceID(input.TraceID, "projectId", projection.Entity.ID)...)
	} else {
		logger.Info("ProjectCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return &projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
