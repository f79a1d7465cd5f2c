package pipelineserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adminports "github.com/solcrm/pipeline-api/internal/domains/admin/ports"
	projectsapp "github.com/solcrm/pipeline-api/internal/domains/projects/application"
	projectports "github.com/solcrm/pipeline-api/internal/domains/projects/ports"
	apierrors "github.com/solcrm/pipeline-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves plain status call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondProjectServiceError translates projects application errors to HTTP.
func respondProjectServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, projectports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, projectsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

// respondAdminServiceError translates admin session errors to HTTP.
func respondAdminServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, adminports.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, adminports.ErrSessionNotFound), errors.Is(err, adminports.ErrSessionExpired):
		respondError(c, http.StatusUnauthorized, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
