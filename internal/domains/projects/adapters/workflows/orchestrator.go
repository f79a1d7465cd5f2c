package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/projects/ports"
	projectworkflows "github.com/solcrm/pipeline-api/internal/platform/temporal/workflows/projects"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalProjectWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineProjectWorkflows)(nil)
)

// TemporalProjectWorkflows starts project workflows on a Temporal cluster.
type TemporalProjectWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalProjectWorkflows wires a Temporal client into the orchestrator.
func NewTemporalProjectWorkflows(c client.Client) *TemporalProjectWorkflows {
	return &TemporalProjectWorkflows{client: c, taskQueue: projectworkflows.ProjectCreationTaskQueue}
}

// CreateProject starts the Temporal workflow that persists a project aggregate.
func (o *TemporalProjectWorkflows) CreateProject(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal project workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("project-creation-%s", traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		projectworkflows.ProjectCreationWorkflow,
		projectworkflows.ProjectCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		// A retried request within the same trace carries the same workflow ID,
		// so attach to the run that is already in flight.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var projection projecttypes.ProjectProjection
			if err := existingRun.Get(ctx, &projection); err != nil {
				return nil, err
			}
			return &projection, nil
		}
		return nil, err
	}
	var projection projecttypes.ProjectProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, err
	}
	return &projection, nil
}

// InlineProjectWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineProjectWorkflows struct {
	service ports.Service
}

// NewInlineProjectWorkflows wraps the projects service for synchronous execution.
func NewInlineProjectWorkflows(service ports.Service) *InlineProjectWorkflows {
	return &InlineProjectWorkflows{service: service}
}

// CreateProject delegates to the application service without durable orchestration.
func (o *InlineProjectWorkflows) CreateProject(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline project workflows not configured")
	}
	return o.service.Create(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
