package pipelineserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adminmemory "github.com/solcrm/pipeline-api/internal/domains/admin/adapters/memory"
	adminapp "github.com/solcrm/pipeline-api/internal/domains/admin/application"
	analyticsapp "github.com/solcrm/pipeline-api/internal/domains/analytics/application"
	projectmemory "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/memory"
	projectsapp "github.com/solcrm/pipeline-api/internal/domains/projects/application"
)

const (
	testAdminEmail    = "admin@sol.com"
	testAdminPassword = "987654"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	projectRepo := projectmemory.NewRepository()
	projectService := projectsapp.NewService(projectRepo)
	analyticsService := analyticsapp.NewService(projectRepo)
	adminService := adminapp.NewService(adminmemory.NewSessionStore())

	handlers := ApiHandleFunctions{
		ProjectAPI:   NewProjectAPI(projectService, nil),
		DashboardAPI: NewDashboardAPI(analyticsService),
		AdminAPI:     NewAdminAPI(adminService),
	}
	engine := gin.New()
	return NewRouterWithGinEngine(engine, handlers, WithAdminGuard(adminService))
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func loginAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/v1/admin/login", "", gin.H{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	resp := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestProjectLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := loginAdmin(t, router)

	create := gin.H{
		"project_name": "Warehouse Retrofit",
		"client":       "Acme Co",
		"amount":       2500,
		"deadline":     "2024-06-15",
		"stage":        "quoted",
		"probability":  70,
	}
	resp := doJSON(t, router, http.MethodPost, "/v1/projects", token, create)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		ID    string `json:"id"`
		Stage string `json:"stage"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "quoted", created.Stage)

	resp = doJSON(t, router, http.MethodGet, "/v1/projects/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	update := gin.H{"stage": "won", "current_progress": 40}
	resp = doJSON(t, router, http.MethodPut, "/v1/projects/"+created.ID, token, update)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated struct {
		Stage           string `json:"stage"`
		CurrentProgress int    `json:"current_progress"`
		Name            string `json:"project_name"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	require.Equal(t, "won", updated.Stage)
	require.Equal(t, 40, updated.CurrentProgress)
	require.Equal(t, "Warehouse Retrofit", updated.Name)

	resp = doJSON(t, router, http.MethodDelete, "/v1/projects/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/v1/projects/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "application/problem+json")
}

func TestCreateProject_ValidationProblem(t *testing.T) {
	router := newTestRouter(t)
	token := loginAdmin(t, router)

	resp := doJSON(t, router, http.MethodPost, "/v1/projects", token, gin.H{
		"project_name": "No client or deadline",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var problem struct {
		Type  string `json:"type"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
	require.Equal(t, "/problems/validation-error", problem.Type)
}

func TestCreateProject_MalformedDeadline(t *testing.T) {
	router := newTestRouter(t)
	token := loginAdmin(t, router)

	resp := doJSON(t, router, http.MethodPost, "/v1/projects", token, gin.H{
		"project_name": "Bad date",
		"client":       "Acme Co",
		"deadline":     "15/06/2024",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListProjects_StageFilter(t *testing.T) {
	router := newTestRouter(t)
	token := loginAdmin(t, router)

	for i, stage := range []string{"arrival", "won", "won"} {
		resp := doJSON(t, router, http.MethodPost, "/v1/projects", token, gin.H{
			"project_name": fmt.Sprintf("Project %d", i),
			"client":       "Acme Co",
			"deadline":     "2024-06-15",
			"stage":        stage,
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doJSON(t, router, http.MethodGet, "/v1/projects?stage=won", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 2)

	resp = doJSON(t, router, http.MethodGet, "/v1/projects?stage=bogus", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWriteRoutes_RequireAdminSession(t *testing.T) {
	router := newTestRouter(t)

	body := gin.H{
		"project_name": "Guarded",
		"client":       "Acme Co",
		"deadline":     "2024-06-15",
	}

	resp := doJSON(t, router, http.MethodPost, "/v1/projects", "", body)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/v1/projects", "bogus-token", body)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	token := loginAdmin(t, router)
	resp = doJSON(t, router, http.MethodPost, "/v1/projects", token, body)
	require.Equal(t, http.StatusCreated, resp.Code)
}

func TestAdminSessionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/v1/admin/login", "", gin.H{
		"email":    testAdminEmail,
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	token := loginAdmin(t, router)

	resp = doJSON(t, router, http.MethodGet, "/v1/admin/session", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var session struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	require.Equal(t, testAdminEmail, session.Email)
	require.True(t, session.IsAdmin)

	resp = doJSON(t, router, http.MethodPost, "/v1/admin/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/v1/admin/session", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetDashboard(t *testing.T) {
	router := newTestRouter(t)
	token := loginAdmin(t, router)

	seeds := []gin.H{
		{"project_name": "Alpha", "client": "Acme Co", "amount": 500, "deadline": "2024-06-15", "stage": "arrival", "probability": 80},
		{"project_name": "Beta", "client": "Globex", "amount": 600, "deadline": "2024-05-01", "stage": "won", "probability": 90},
	}
	for _, seed := range seeds {
		resp := doJSON(t, router, http.MethodPost, "/v1/projects", token, seed)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doJSON(t, router, http.MethodGet, "/v1/dashboard", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var dashboard struct {
		Stats struct {
			TotalPipelineValue          float64 `json:"total_pipeline_value"`
			TotalWonValue               float64 `json:"total_won_value"`
			TotalWonValueFormatted      string  `json:"total_won_value_formatted"`
			TotalPipelineValueFormatted string  `json:"total_pipeline_value_formatted"`
		} `json:"stats"`
		StageSlices  []map[string]any `json:"stage_slices"`
		ClientSlices []map[string]any `json:"client_slices"`
		Timeline     []map[string]any `json:"timeline"`
		StageColumns []map[string]any `json:"stage_columns"`
		Projects     []struct {
			Name string `json:"project_name"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dashboard))

	require.Equal(t, float64(1100), dashboard.Stats.TotalPipelineValue)
	require.Equal(t, float64(600), dashboard.Stats.TotalWonValue)
	require.Equal(t, "₹600", dashboard.Stats.TotalWonValueFormatted)
	require.Len(t, dashboard.StageSlices, 2)
	require.Len(t, dashboard.ClientSlices, 2)
	require.Len(t, dashboard.StageColumns, 3)
	require.NotEmpty(t, dashboard.Timeline)

	// Won projects sort after active ones in the display list.
	require.Len(t, dashboard.Projects, 2)
	require.Equal(t, "Alpha", dashboard.Projects[0].Name)
	require.Equal(t, "Beta", dashboard.Projects[1].Name)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/projects", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}
