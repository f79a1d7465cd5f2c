package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	projectmemory "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/memory"
	projectpostgres "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/persistence/postgres"
	projectsapp "github.com/solcrm/pipeline-api/internal/domains/projects/application"
	projectports "github.com/solcrm/pipeline-api/internal/domains/projects/ports"
	platformobservability "github.com/solcrm/pipeline-api/internal/platform/observability"
	platformpostgres "github.com/solcrm/pipeline-api/internal/platform/postgres"
	projectactivities "github.com/solcrm/pipeline-api/internal/platform/temporal/activities/projects"
	projectworkflows "github.com/solcrm/pipeline-api/internal/platform/temporal/workflows/projects"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	const serviceName = "pipeline-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	projectRepo, cleanupRepo := buildProjectRepository(ctx, logger)
	defer cleanupRepo()
	projectService := projectsapp.NewService(projectRepo)
	activities := projectactivities.NewActivities(projectService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, projectworkflows.ProjectCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(projectworkflows.ProjectCreationWorkflow, workflow.RegisterOptions{Name: projectworkflows.ProjectCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistProject, activity.RegisterOptions{Name: projectactivities.PersistProjectActivityName})

	logger.Info("worker listening", slog.String("taskQueue", projectworkflows.ProjectCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildProjectRepository(ctx context.Context, logger *slog.Logger) (projectports.Repository, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory project repository")
		return projectmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return projectmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return projectmemory.NewRepository(), func() {}
	}
	logger.Info("worker project repository configured with postgres")
	return projectpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
