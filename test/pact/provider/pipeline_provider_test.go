//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/solcrm/pipeline-api/test/pact"

	adminmemory "github.com/solcrm/pipeline-api/internal/domains/admin/adapters/memory"
	adminapp "github.com/solcrm/pipeline-api/internal/domains/admin/application"
	analyticsobs "github.com/solcrm/pipeline-api/internal/domains/analytics/adapters/observability"
	analyticsapp "github.com/solcrm/pipeline-api/internal/domains/analytics/application"
	projectmemory "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/memory"
	projectobs "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/observability"
	projectworkflows "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/workflows"
	projectsapp "github.com/solcrm/pipeline-api/internal/domains/projects/application"
	projectdomain "github.com/solcrm/pipeline-api/internal/domains/projects/domain"
	pipelineserver "github.com/solcrm/pipeline-api/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestPipelineProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateProjectsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProjects(t)
			return nil, nil
		},
		pacttest.StateProjectExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProjects(t)
			if setup {
				app.seedProject(t, pacttest.ExistingProjectID)
			}
			return nil, nil
		},
		pacttest.StateProjectMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProjects(t)
			return nil, nil
		},
		pacttest.StateAdminConfigured: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetProjects(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *projectmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	projectRepo := projectmemory.NewRepository()
	projectService := projectobs.New(projectsapp.NewService(projectRepo))
	workflows := projectworkflows.NewInlineProjectWorkflows(projectService)

	analyticsService := analyticsobs.New(analyticsapp.NewService(projectRepo))
	adminService := adminapp.NewService(adminmemory.NewSessionStore(), adminapp.WithCredential(adminapp.Credential{
		Email:    pacttest.AdminEmail,
		Password: pacttest.AdminPassword,
	}))

	handlers := pipelineserver.ApiHandleFunctions{
		ProjectAPI:   pipelineserver.NewProjectAPI(projectService, workflows),
		DashboardAPI: pipelineserver.NewDashboardAPI(analyticsService),
		AdminAPI:     pipelineserver.NewAdminAPI(adminService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = pipelineserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   projectRepo,
		server: server,
	}
}

func (a *contractProviderApp) resetProjects(t testing.TB) {
	t.Helper()
	projects, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, projection := range projects {
		_ = a.repo.Delete(context.Background(), projection.Entity.ID)
	}
}

func (a *contractProviderApp) seedProject(t testing.TB, id string) {
	t.Helper()
	deadline := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	project, err := projectdomain.NewProject(id, "Pact Warehouse Retrofit", "Acme Co", 2500, deadline, "quoted")
	require.NoError(t, err)
	require.NoError(t, project.UpdateProbability(70))
	_, err = a.repo.Save(context.Background(), project)
	require.NoError(t, err)
}
