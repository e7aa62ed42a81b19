package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// CommentService handles task comments.
type CommentService struct {
	uow         ports.UnitOfWork
	access      *AccessResolver
	coordinator *MutationCoordinator
	logger      *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(uow ports.UnitOfWork, access *AccessResolver, coordinator *MutationCoordinator, logger *logger.Logger) *CommentService {
	return &CommentService{
		uow:         uow,
		access:      access,
		coordinator: coordinator,
		logger:      logger,
	}
}

// CreateComment adds a comment to a task and notifies the task's assignees,
// except the author. The assignee set is read inside the transaction so the
// notification batch matches the state the comment was committed against.
func (s *CommentService) CreateComment(ctx context.Context, callerID, taskID uuid.UUID, req ports.CreateCommentRequest) (*entities.Comment, error) {
	scope := s.access.Scope(callerID)
	_, task, project, err := scope.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	actor, err := s.uow.Users().GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{
		ID:      uuid.New(),
		Content: req.Content,
		TaskID:  taskID,
		UserID:  callerID,
	}

	event := newEvent(entities.EventCommentAdded,
		fmt.Sprintf("Comment added on %q", task.Title),
		callerID, project.WorkspaceID, &task.ProjectID, &task.ID)

	err = s.coordinator.Execute(ctx,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Comments().Create(ctx, comment)
		},
		func(ctx context.Context, repos ports.Repositories) error {
			assigneeIDs, err := repos.Tasks().ListAssignees(ctx, taskID)
			if err != nil {
				return err
			}
			return repos.Notifications().CreateBatch(ctx, commentNotifications(task, assigneeIDs, actor))
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Comment created", "comment_id", comment.ID, "task_id", taskID, "user_id", callerID)
	return comment, nil
}

// ListComments returns a task's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, callerID, taskID uuid.UUID) ([]*entities.Comment, error) {
	scope := s.access.Scope(callerID)
	if _, _, _, err := scope.Task(ctx, taskID); err != nil {
		return nil, err
	}
	return s.uow.Comments().ListForTask(ctx, taskID)
}
