package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamflow/core/internal/application/services"
	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// ProjectHandler handles project and section requests
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ProjectResponse bundles a project with its sections for detail views.
type ProjectResponse struct {
	*entities.Project
	Sections []*entities.Section `json:"sections"`
}

// CreateProject godoc
// @Summary Create a project
// @Description Create a project with its default sections
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Workspace ID"
// @Param request body ports.CreateProjectRequest true "Project data"
// @Success 201 {object} entities.Project
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	userID := getUserIDFromContext(c)
	project, err := h.projectService.CreateProject(c.Request().Context(), userID, workspaceID, req)
	if err != nil {
		h.logger.Warnw("Create project failed", "error", err, "user_id", userID, "workspace_id", workspaceID)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
// @Summary List workspace projects
// @Description List non-archived projects of a workspace
// @Tags projects
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {array} entities.Project
// @Security BearerAuth
// @Router /workspaces/{id}/projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), getUserIDFromContext(c), workspaceID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a project
// @Description Get a project with its sections
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	project, sections, err := h.projectService.GetProject(c.Request().Context(), getUserIDFromContext(c), projectID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, ProjectResponse{Project: project, Sections: sections})
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} entities.Project
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), getUserIDFromContext(c), projectID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, project)
}

// ArchiveProject godoc
// @Summary Archive a project
// @Description Soft-archive a project; its tasks remain
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) ArchiveProject(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.ArchiveProject(c.Request().Context(), getUserIDFromContext(c), projectID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Project archived"})
}

// CreateSection godoc
// @Summary Create a section
// @Description Append a section at the end of the project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.CreateSectionRequest true "Section data"
// @Success 201 {object} entities.Section
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/sections [post]
func (h *ProjectHandler) CreateSection(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.CreateSectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	section, err := h.projectService.CreateSection(c.Request().Context(), getUserIDFromContext(c), projectID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, section)
}

// ListSections godoc
// @Summary List project sections
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} entities.Section
// @Security BearerAuth
// @Router /projects/{id}/sections [get]
func (h *ProjectHandler) ListSections(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	sections, err := h.projectService.ListSections(c.Request().Context(), getUserIDFromContext(c), projectID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, sections)
}
