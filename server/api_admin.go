package pipelineserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	adminports "github.com/solcrm/pipeline-api/internal/domains/admin/ports"
)

// AdminAPI exposes the admin session endpoints.
type AdminAPI struct {
	service adminports.Service
}

// NewAdminAPI creates an AdminAPI backed by the session service.
func NewAdminAPI(service adminports.Service) AdminAPI {
	return AdminAPI{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Post /v1/admin/login
// Validate credentials and issue a session token
func (api *AdminAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondAdminServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		Email:     session.Email,
		IsAdmin:   session.IsAdmin,
		IssuedAt:  session.IssuedAt,
		ExpiresAt: session.ExpiresAt,
	})
}

// Post /v1/admin/logout
// Discard the bearer session
func (api *AdminAPI) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("missing bearer token"))
		return
	}
	if err := api.service.Logout(c.Request.Context(), token); err != nil {
		respondAdminServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/admin/session
// Resolve the bearer token to its live session
func (api *AdminAPI) GetSession(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("missing bearer token"))
		return
	}
	session, err := api.service.Verify(c.Request.Context(), token)
	if err != nil {
		respondAdminServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		Email:     session.Email,
		IsAdmin:   session.IsAdmin,
		IssuedAt:  session.IssuedAt,
		ExpiresAt: session.ExpiresAt,
	})
}

// RequireAdmin guards mutating routes behind a verified admin session.
func RequireAdmin(service adminports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, errors.New("missing bearer token"))
			c.Abort()
			return
		}
		session, err := service.Verify(c.Request.Context(), token)
		if err != nil {
			respondAdminServiceError(c, err)
			c.Abort()
			return
		}
		if !session.IsAdmin {
			respondError(c, http.StatusForbidden, errors.New("admin session required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
