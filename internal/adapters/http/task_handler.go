package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/teamflow/core/internal/application/services"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// TaskHandler handles task and comment requests
type TaskHandler struct {
	taskService    *services.TaskService
	commentService *services.CommentService
	logger         *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, commentService *services.CommentService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		commentService: commentService,
		logger:         logger,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Description Create a task at the end of its section or project
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	userID := getUserIDFromContext(c)
	task, err := h.taskService.CreateTask(c.Request().Context(), userID, projectID, req)
	if err != nil {
		h.logger.Warnw("Create task failed", "error", err, "user_id", userID, "project_id", projectID)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// ListTasks godoc
// @Summary List project tasks
// @Description List top-level tasks, optionally narrowed to one section
// @Tags tasks
// @Produce json
// @Param id path string true "Project ID"
// @Param section_id query string false "Section ID"
// @Success 200 {array} entities.Task
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var sectionID *uuid.UUID
	if raw := c.QueryParam("section_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid section_id")
		}
		sectionID = &id
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), getUserIDFromContext(c), projectID, sectionID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get a task
// @Description Get a task with its assignees, subtasks and comments
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), getUserIDFromContext(c), taskID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Apply a partial update; assignee_ids, when present, replaces the set
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), getUserIDFromContext(c), taskID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), getUserIDFromContext(c), taskID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// ReorderTask godoc
// @Summary Reorder a task
// @Description Move a task to a new position, optionally across sections
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.ReorderTaskRequest true "Destination position"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/reorder [post]
func (h *TaskHandler) ReorderTask(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.ReorderTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.taskService.ReorderTask(c.Request().Context(), getUserIDFromContext(c), taskID, req); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task reordered"})
}

// CreateComment godoc
// @Summary Comment on a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.CreateCommentRequest true "Comment data"
// @Success 201 {object} entities.Comment
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/comments [post]
func (h *TaskHandler) CreateComment(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), getUserIDFromContext(c), taskID, req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List task comments
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} entities.Comment
// @Security BearerAuth
// @Router /tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListComments(c.Request().Context(), getUserIDFromContext(c), taskID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, comments)
}
