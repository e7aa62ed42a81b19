package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// TaskService handles task lifecycle, assignment and ordering.
type TaskService struct {
	uow         ports.UnitOfWork
	access      *AccessResolver
	coordinator *MutationCoordinator
	logger      *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(uow ports.UnitOfWork, access *AccessResolver, coordinator *MutationCoordinator, logger *logger.Logger) *TaskService {
	return &TaskService{
		uow:         uow,
		access:      access,
		coordinator: coordinator,
		logger:      logger,
	}
}

// checkSection verifies that a section belongs to the given project.
func (s *TaskService) checkSection(ctx context.Context, sectionID, projectID uuid.UUID) error {
	section, err := s.uow.Sections().GetByID(ctx, sectionID)
	if err != nil {
		return err
	}
	if section.ProjectID != projectID {
		return entities.ErrSectionProjectMismatch
	}
	return nil
}

// CreateTask creates a task at the end of its sibling scope and notifies the
// initial assignees. The sibling order is read inside the transaction; two
// concurrent creates can still both observe the same maximum, which is
// accepted and broken by created_at on listing.
func (s *TaskService) CreateTask(ctx context.Context, callerID, projectID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	scope := s.access.Scope(callerID)
	_, project, err := scope.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.SectionID != nil {
		if err := s.checkSection(ctx, *req.SectionID, projectID); err != nil {
			return nil, err
		}
	}

	if req.ParentID != nil {
		parent, err := s.uow.Tasks().GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ProjectID != projectID {
			return nil, entities.ErrTaskNotFound
		}
		if parent.IsSubtask() {
			return nil, entities.ErrSubtaskDepth
		}
	}

	task := &entities.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      entities.TaskStatusTodo,
		Priority:    entities.PriorityMedium,
		DueDate:     req.DueDate,
		StartDate:   req.StartDate,
		ProjectID:   projectID,
		SectionID:   req.SectionID,
		ParentID:    req.ParentID,
		CreatedByID: callerID,
	}
	if req.Status != nil {
		if err := task.SetStatus(*req.Status, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("invalid priority %q: %w", *req.Priority, entities.ErrValidation)
		}
		task.Priority = *req.Priority
	}

	primary := func(ctx context.Context, repos ports.Repositories) error {
		order, err := repos.Tasks().NextOrder(ctx, ports.TaskScope{ProjectID: projectID, SectionID: req.SectionID})
		if err != nil {
			return err
		}
		task.SortOrder = order
		if err := repos.Tasks().Create(ctx, task); err != nil {
			return err
		}
		if len(req.AssigneeIDs) > 0 {
			if err := repos.Tasks().AddAssignees(ctx, task.ID, req.AssigneeIDs); err != nil {
				return err
			}
		}
		return nil
	}

	notifications := assignmentNotifications(task, req.AssigneeIDs, callerID)
	event := newEvent(entities.EventTaskCreated,
		fmt.Sprintf("Task %q created", task.Title),
		callerID, project.WorkspaceID, &task.ProjectID, &task.ID)

	err = s.coordinator.Execute(ctx, primary,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Notifications().CreateBatch(ctx, notifications)
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return nil, err
	}

	task.AssigneeIDs = req.AssigneeIDs
	s.logger.Infow("Task created", "task_id", task.ID, "project_id", projectID, "user_id", callerID)
	return task, nil
}

// GetTask returns a task with its assignees, subtasks and comments.
func (s *TaskService) GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*entities.Task, error) {
	scope := s.access.Scope(callerID)
	_, task, _, err := scope.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssigneeIDs, err = s.uow.Tasks().ListAssignees(ctx, taskID); err != nil {
		return nil, err
	}
	if task.Subtasks, err = s.uow.Tasks().ListSubtasks(ctx, taskID); err != nil {
		return nil, err
	}
	if task.Comments, err = s.uow.Comments().ListForTask(ctx, taskID); err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks returns the top-level tasks of a project, optionally narrowed to
// one section, in display order.
func (s *TaskService) ListTasks(ctx context.Context, callerID, projectID uuid.UUID, sectionID *uuid.UUID) ([]*entities.Task, error) {
	scope := s.access.Scope(callerID)
	if _, _, err := scope.Project(ctx, projectID); err != nil {
		return nil, err
	}

	if sectionID != nil {
		if err := s.checkSection(ctx, *sectionID, projectID); err != nil {
			return nil, err
		}
	}

	return s.uow.Tasks().ListForScope(ctx, ports.TaskScope{ProjectID: projectID, SectionID: sectionID})
}

// UpdateTask applies a partial update. A non-nil AssigneeIDs replaces the
// whole assignee set and notifies the new assignees.
func (s *TaskService) UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	scope := s.access.Scope(callerID)
	_, task, project, err := scope.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		if err := task.SetStatus(*req.Status, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("invalid priority %q: %w", *req.Priority, entities.ErrValidation)
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.SectionID != nil {
		if err := s.checkSection(ctx, *req.SectionID, task.ProjectID); err != nil {
			return nil, err
		}
		task.SectionID = req.SectionID
	}

	primary := func(ctx context.Context, repos ports.Repositories) error {
		if err := repos.Tasks().Update(ctx, task); err != nil {
			return err
		}
		if req.AssigneeIDs != nil {
			return repos.Tasks().ReplaceAssignees(ctx, task.ID, req.AssigneeIDs)
		}
		return nil
	}

	var notifications []*entities.Notification
	if req.AssigneeIDs != nil {
		notifications = assignmentNotifications(task, req.AssigneeIDs, callerID)
	}
	event := newEvent(entities.EventTaskUpdated,
		fmt.Sprintf("Task %q updated", task.Title),
		callerID, project.WorkspaceID, &task.ProjectID, &task.ID)

	err = s.coordinator.Execute(ctx, primary,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Notifications().CreateBatch(ctx, notifications)
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return nil, err
	}

	if req.AssigneeIDs != nil {
		task.AssigneeIDs = req.AssigneeIDs
	}
	return task, nil
}

// DeleteTask removes a task and its dependents. The audit entry survives the
// task, so it references only the project.
func (s *TaskService) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	scope := s.access.Scope(callerID)
	_, task, project, err := scope.Task(ctx, taskID)
	if err != nil {
		return err
	}

	event := newEvent(entities.EventTaskDeleted,
		fmt.Sprintf("Task %q deleted", task.Title),
		callerID, project.WorkspaceID, &task.ProjectID, nil)

	err = s.coordinator.Execute(ctx,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Tasks().Delete(ctx, taskID)
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", taskID, "user_id", callerID)
	return nil
}

// ReorderTask moves a task to a caller-chosen position, optionally across
// sections. Siblings are never renumbered and no audit entry is produced;
// reordering is presentation, not content.
func (s *TaskService) ReorderTask(ctx context.Context, callerID, taskID uuid.UUID, req ports.ReorderTaskRequest) error {
	scope := s.access.Scope(callerID)
	_, task, _, err := scope.Task(ctx, taskID)
	if err != nil {
		return err
	}

	if req.SectionID != nil {
		if err := s.checkSection(ctx, *req.SectionID, task.ProjectID); err != nil {
			return err
		}
	}

	return s.coordinator.Execute(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Tasks().Reorder(ctx, taskID, req.Order, req.SectionID)
	})
}
