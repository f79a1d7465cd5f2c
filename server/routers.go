package pipelineserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	adminports "github.com/solcrm/pipeline-api/internal/domains/admin/ports"
)

// ApiHandleFunctions groups the per-context HTTP APIs mounted on the router.
type ApiHandleFunctions struct {
	ProjectAPI   ProjectAPI
	DashboardAPI DashboardAPI
	AdminAPI     AdminAPI
}

type routerConfig struct {
	allowedOrigins string
	adminGuard     adminports.Service
}

// RouterOption customizes router construction.
type RouterOption func(*routerConfig)

// WithAllowedOrigins sets the comma-separated CORS origin allowlist.
func WithAllowedOrigins(origins string) RouterOption {
	return func(cfg *routerConfig) {
		cfg.allowedOrigins = origins
	}
}

// WithAdminGuard protects mutating project routes behind verified admin
// sessions. Without it the write endpoints are open, mirroring
// deployments where an upstream gateway owns authentication.
func WithAdminGuard(service adminports.Service) RouterOption {
	return func(cfg *routerConfig) {
		cfg.adminGuard = service
	}
}

// NewRouter returns a gin engine with default middleware and all routes mounted.
func NewRouter(handlers ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	return NewRouterWithGinEngine(engine, handlers, opts...)
}

// NewRouterWithGinEngine mounts all routes on a caller-provided engine.
func NewRouterWithGinEngine(router *gin.Engine, handlers ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	cfg := routerConfig{allowedOrigins: "*"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	router.Use(corsMiddleware(cfg.allowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/projects", handlers.ProjectAPI.ListProjects)
		v1.GET("/projects/:projectId", handlers.ProjectAPI.GetProjectById)
		v1.GET("/dashboard", handlers.DashboardAPI.GetDashboard)

		v1.POST("/admin/login", handlers.AdminAPI.Login)
		v1.POST("/admin/logout", handlers.AdminAPI.Logout)
		v1.GET("/admin/session", handlers.AdminAPI.GetSession)

		writes := v1.Group("")
		if cfg.adminGuard != nil {
			writes.Use(RequireAdmin(cfg.adminGuard))
		}
		writes.POST("/projects", handlers.ProjectAPI.CreateProject)
		writes.PUT("/projects/:projectId", handlers.ProjectAPI.UpdateProject)
		writes.DELETE("/projects/:projectId", handlers.ProjectAPI.DeleteProject)
	}

	return router
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	origins := strings.Split(allowedOrigins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := ""
		for _, o := range trimmed {
			if o == "*" {
				allowed = "*"
				break
			}
			if o == origin {
				allowed = origin
				break
			}
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}
