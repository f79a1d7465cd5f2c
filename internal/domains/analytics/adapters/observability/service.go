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

	"github.com/solcrm/pipeline-api/internal/domains/analytics/application/types"
	"github.com/solcrm/pipeline-api/internal/domains/analytics/ports"
)

const tracerName = "github.com/solcrm/pipeline-api/internal/domains/analytics/adapters/observability/service"

// Service decorates the analytics port with tracing, logging, and metrics.
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

// Dashboard computes the dashboard read model with instrumentation.
func (s *Service) Dashboard(ctx context.Context) (*types.DashboardView, error) {
	ctx, span := s.startSpan(ctx, "Service.Dashboard")
	defer span.End()

	view, err := s.inner.Dashboard(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build dashboard")
	}
	if view != nil {
		span.SetAttributes(attribute.Int("dashboard.project.count", len(view.Projects)))
		s.metrics.recordComputed(ctx, len(view.Projects))
		s.logInfo(ctx, "dashboard computed", slog.Int("projects", len(view.Projects)))
	}
	return view, nil
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

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	dashboardsComputed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	computed, _ := m.Int64Counter("analytics.service.dashboards", metric.WithDescription("Number of dashboard computations"))
	return serviceMetrics{dashboardsComputed: computed}
}

func (m serviceMetrics) recordComputed(ctx context.Context, projectCount int) {
	if m.dashboardsComputed == nil {
		return
	}
	m.dashboardsComputed.Add(ctx, 1, metric.WithAttributes(attribute.Int("dashboard.project.count", projectCount)))
}

var _ ports.Service = (*Service)(nil)
