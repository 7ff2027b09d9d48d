package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	projectapp "github.com/timetracker/backend/internal/application/project"
)

// ProjectService is the lookup API used by ProjectHandler
type ProjectService interface {
	ListOpenProjects(ctx context.Context) ([]projectapp.ProjectResponse, error)
	ListActiveTasks(ctx context.Context, projectName string) ([]projectapp.TaskResponse, error)
}

// ProjectHandler serves the project and task pickers of the desktop client
type ProjectHandler struct {
	BaseHandler
	service ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects godoc
// @ID           listProjects
// @Summary      List open projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[[]projectapp.ProjectResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListOpenProjects(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, projects)
}

// ListTasks godoc
// @ID           listProjectTasks
// @Summary      List active tasks of a project
// @Description  Tasks whose status is neither Completed nor Cancelled
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        project path string true "Project name"
// @Success      200 {object} APIResponse[[]projectapp.TaskResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /projects/{project}/tasks [get]
func (h *ProjectHandler) ListTasks(c *gin.Context) {
	tasks, err := h.service.ListActiveTasks(c.Request.Context(), c.Param("project"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tasks)
}
