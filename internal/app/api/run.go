package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	pipelineserver "github.com/solcrm/pipeline-api/server"

	adminmemory "github.com/solcrm/pipeline-api/internal/domains/admin/adapters/memory"
	adminpostgres "github.com/solcrm/pipeline-api/internal/domains/admin/adapters/persistence/postgres"
	adminapp "github.com/solcrm/pipeline-api/internal/domains/admin/application"
	adminports "github.com/solcrm/pipeline-api/internal/domains/admin/ports"
	analyticsobs "github.com/solcrm/pipeline-api/internal/domains/analytics/adapters/observability"
	analyticsapp "github.com/solcrm/pipeline-api/internal/domains/analytics/application"
	projectmemory "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/memory"
	projectobs "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/observability"
	projectpostgres "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/persistence/postgres"
	projectworkflows "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/workflows"
	projectsapp "github.com/solcrm/pipeline-api/internal/domains/projects/application"
	projectports "github.com/solcrm/pipeline-api/internal/domains/projects/ports"
	platformobservability "github.com/solcrm/pipeline-api/internal/platform/observability"
	platformpostgres "github.com/solcrm/pipeline-api/internal/platform/postgres"
)

// Run boots the pipeline HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "pipeline-api"

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectPostgres(ctx, cfg, logger)
	defer cleanupDB()

	projectRepo := buildProjectRepository(db, logger)
	coreProjectService := projectsapp.NewService(projectRepo)
	projectService := projectobs.New(
		coreProjectService,
		projectobs.WithLogger(logger),
		projectobs.WithTracer(instruments.Tracer("internal.projects.application")),
		projectobs.WithMeter(instruments.Meter("internal.projects.application")),
	)

	var orchestrator projectports.WorkflowOrchestrator = projectworkflows.NewInlineProjectWorkflows(projectService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, creating projects inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = projectworkflows.NewTemporalProjectWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	analyticsService := analyticsobs.New(
		analyticsapp.NewService(projectRepo),
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
		analyticsobs.WithMeter(instruments.Meter("internal.analytics.application")),
	)

	adminService := buildAdminService(cfg, db, logger)

	handlers := pipelineserver.ApiHandleFunctions{
		ProjectAPI:   pipelineserver.NewProjectAPI(projectService, orchestrator),
		DashboardAPI: pipelineserver.NewDashboardAPI(analyticsService),
		AdminAPI:     pipelineserver.NewAdminAPI(adminService),
	}

	router := pipelineserver.NewRouter(
		handlers,
		pipelineserver.WithAllowedOrigins(cfg.AllowedOrigins),
		pipelineserver.WithAdminGuard(adminService),
	)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("pipeline API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("pipeline API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory stores")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory stores", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory stores", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func buildProjectRepository(db *gorm.DB, logger *slog.Logger) projectports.Repository {
	if db == nil {
		return projectmemory.NewRepository()
	}
	logger.Info("project repository configured with postgres")
	return projectpostgres.NewRepository(db)
}

func buildAdminService(cfg Config, db *gorm.DB, logger *slog.Logger) adminports.Service {
	var store adminports.SessionStore
	if db != nil {
		logger.Info("admin sessions configured with postgres")
		store = adminpostgres.NewSessionStore(db)
	} else {
		store = adminmemory.NewSessionStore()
	}
	opts := []adminapp.Option{adminapp.WithTTL(cfg.SessionTTL)}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		opts = append(opts, adminapp.WithCredential(adminapp.Credential{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}))
	}
	return adminapp.NewService(store, opts...)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
