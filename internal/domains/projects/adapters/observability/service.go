package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	"github.com/solcrm/pipeline-api/internal/domains/projects/ports"
)

const tracerName = "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/observability/service"

// Service decorates a projects application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create persists a new project with instrumentation.
func (s *Service) Create(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Create")
	defer span.End()

	s.logInfo(ctx, "creating project")
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create project")
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCreated(ctx, result.Entity.Stage)
		s.logInfo(ctx, "project created",
			slog.String("project.id", result.Entity.ID),
			slog.String("stage", string(result.Entity.Stage)))
	}
	return result, nil
}

// Update applies a partial mutation to an existing project.
func (s *Service) Update(ctx context.Context, input projecttypes.UpdateProjectInput) (*projecttypes.ProjectProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.String("project.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "updating project", slog.String("project.id", input.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update project", slog.String("project.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordUpdated(ctx, result.Entity.Stage)
		s.logInfo(ctx, "project updated",
			slog.String("project.id", result.Entity.ID),
			slog.String("stage", string(result.Entity.Stage)))
	}
	return result, nil
}

// GetByID loads a single project aggregate.
func (s *Service) GetByID(ctx context.Context, input projecttypes.ProjectIdentifier) (*projecttypes.ProjectProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.String("project.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load project", slog.String("project.id", input.ID))
	}
	return result, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, input projecttypes.ProjectIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.String("project.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting project", slog.String("project.id", input.ID))
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete project", slog.String("project.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "project deleted", slog.String("project.id", input.ID))
	return nil
}

// List exposes the current snapshot for the record table and the dashboard.
func (s *Service) List(ctx context.Context, input projecttypes.ListProjectsInput) ([]*projecttypes.ProjectProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List", attribute.StringSlice("project.stages.requested", input.Stages))
	defer span.End()

	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list projects")
	}
	span.SetAttributes(attribute.Int("project.result.count", len(result)))
	s.logInfo(ctx, "listed projects", slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	projectsCreated metric.Int64Counter
	projectsUpdated metric.Int64Counter
	projectsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("projects.service.created", metric.WithDescription("Number of projects created"))
	updated, _ := m.Int64Counter("projects.service.updated", metric.WithDescription("Number of projects updated"))
	deleted, _ := m.Int64Counter("projects.service.deleted", metric.WithDescription("Number of projects deleted"))
	return serviceMetrics{
		projectsCreated: created,
		projectsUpdated: updated,
		projectsDeleted: deleted,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, stage domain.Stage) {
	addCounter(ctx, m.projectsCreated, 1, attribute.String("project.stage", string(stage)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, stage domain.Stage) {
	addCounter(ctx, m.projectsUpdated, 1, attribute.String("project.stage", string(stage)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.projectsDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
