package pipelineserver

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/solcrm/pipeline-api/internal/domains/analytics/aggregate"
	projecthttpmapper "github.com/solcrm/pipeline-api/internal/domains/projects/adapters/http/mapper"
	projecttypes "github.com/solcrm/pipeline-api/internal/domains/projects/application/types"
	projectports "github.com/solcrm/pipeline-api/internal/domains/projects/ports"
)

// ProjectAPI wires HTTP transport with the projects bounded context
// service and workflows.
type ProjectAPI struct {
	service   projectports.Service
	workflows projectports.WorkflowOrchestrator
}

// NewProjectAPI creates a ProjectAPI backed by the provided service.
func NewProjectAPI(service projectports.Service, workflows projectports.WorkflowOrchestrator) ProjectAPI {
	return ProjectAPI{service: service, workflows: workflows}
}

// Post /v1/projects
// Create a new sales project
func (api *ProjectAPI) CreateProject(c *gin.Context) {
	var payload projecthttpmapper.MutationProject
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	mutation, err := projecthttpmapper.ToMutationInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := projecttypes.CreateProjectInput{ProjectMutationInput: mutation}
	saved, err := api.createProject(c.Request.Context(), input)
	if err != nil {
		respondProjectServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projecthttpmapper.FromProjection(saved))
}

func (api *ProjectAPI) createProject(ctx context.Context, input projecttypes.CreateProjectInput) (*projecttypes.ProjectProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreateProject(ctx, input)
	}
	return api.service.Create(ctx, input)
}

// Get /v1/projects/:projectId
// Find project by ID
func (api *ProjectAPI) GetProjectById(c *gin.Context) {
	id := c.Param("projectId")
	project, err := api.service.GetByID(c.Request.Context(), projecttypes.ProjectIdentifier{ID: id})
	if err != nil {
		respondProjectServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projecthttpmapper.FromProjection(project))
}

// Put /v1/projects/:projectId
// Update an existing project
func (api *ProjectAPI) UpdateProject(c *gin.Context) {
	var payload projecthttpmapper.MutationProject
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	mutation, err := projecthttpmapper.ToMutationInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := projecttypes.UpdateProjectInput{
		ID:                   c.Param("projectId"),
		ProjectMutationInput: mutation,
	}
	updated, err := api.service.Update(c.Request.Context(), input)
	if err != nil {
		respondProjectServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projecthttpmapper.FromProjection(updated))
}

// Delete /v1/projects/:projectId
// Deletes a project
func (api *ProjectAPI) DeleteProject(c *gin.Context) {
	id := c.Param("projectId")
	if err := api.service.Delete(c.Request.Context(), projecttypes.ProjectIdentifier{ID: id}); err != nil {
		respondProjectServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/projects
// List projects, optionally filtered by stage
func (api *ProjectAPI) ListProjects(c *gin.Context) {
	stages := c.QueryArray("stage")
	result, err := api.service.List(c.Request.Context(), projecttypes.ListProjectsInput{Stages: stages})
	if err != nil {
		respondProjectServiceError(c, err)
		return
	}
	sortForDisplay(result)
	c.JSON(http.StatusOK, projecthttpmapper.FromProjectionList(result))
}

// sortForDisplay orders the record table: active projects by nearest
// deadline first, won projects last.
func sortForDisplay(list []*projecttypes.ProjectProjection) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a == nil || a.Entity == nil || b == nil || b.Entity == nil {
			return false
		}
		return aggregate.DisplayLess(
			aggregate.Record{Stage: string(a.Entity.Stage), Deadline: a.Entity.Deadline},
			aggregate.Record{Stage: string(b.Entity.Stage), Deadline: b.Entity.Deadline},
		)
	})
}
