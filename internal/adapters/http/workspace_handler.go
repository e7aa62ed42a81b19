package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamflow/core/internal/application/services"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// WorkspaceHandler handles workspace, team and membership requests
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
	logger           *logger.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *services.WorkspaceService, logger *logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           logger,
	}
}

// CreateWorkspace godoc
// @Summary Create a workspace
// @Description Create a workspace; the caller becomes its owner
// @Tags workspaces
// @Accept json
// @Produce json
// @Param request body ports.CreateWorkspaceRequest true "Workspace data"
// @Success 201 {object} entities.Workspace
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Warnw("Create workspace failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, workspace)
}

// ListWorkspaces godoc
// @Summary List my workspaces
// @Tags workspaces
// @Produce json
// @Success 200 {array} entities.Workspace
// @Security BearerAuth
// @Router /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c echo.Context) error {
	workspaces, err := h.workspaceService.ListWorkspaces(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, workspaces)
}

// GetWorkspace godoc
// @Summary Get a workspace
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {object} entities.Workspace
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id} [get]
func (h *WorkspaceHandler) GetWorkspace(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Request().Context(), getUserIDFromContext(c), workspaceID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, workspace)
}

// CreateTeam godoc
// @Summary Create a team
// @Tags workspaces
// @Accept json
// @Produce json
// @Param id path string true "Workspace ID"
// @Param request body ports.CreateTeamRequest true "Team data"
// @Success 201 {object} entities.Team
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/teams [post]
func (h *WorkspaceHandler) CreateTeam(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	team, err := h.workspaceService.CreateTeam(c.Request().Context(), getUserIDFromContext(c), workspaceID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, team)
}

// ListTeams godoc
// @Summary List workspace teams
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {array} entities.Team
// @Security BearerAuth
// @Router /workspaces/{id}/teams [get]
func (h *WorkspaceHandler) ListTeams(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	teams, err := h.workspaceService.ListTeams(c.Request().Context(), getUserIDFromContext(c), workspaceID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, teams)
}

// ListMembers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {array} entities.Membership
// @Security BearerAuth
// @Router /workspaces/{id}/members [get]
func (h *WorkspaceHandler) ListMembers(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	members, err := h.workspaceService.ListMembers(c.Request().Context(), getUserIDFromContext(c), workspaceID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, members)
}

// ListEvents godoc
// @Summary List workspace activity
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID"
// @Success 200 {array} entities.EventLog
// @Security BearerAuth
// @Router /workspaces/{id}/events [get]
func (h *WorkspaceHandler) ListEvents(c echo.Context) error {
	workspaceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	events, err := h.workspaceService.ListEvents(c.Request().Context(), getUserIDFromContext(c), workspaceID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, events)
}
