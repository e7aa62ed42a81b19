package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teamflow/core/internal/domain/entities"
)

type commentRepository struct {
	q sqlx.ExtContext
}

func (r *commentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	query := `
		INSERT INTO comments (id, content, task_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		comment.ID, comment.Content, comment.TaskID, comment.UserID,
	).Scan(&comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) ListForTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Comment, error) {
	query := `
		SELECT id, content, task_id, user_id, created_at
		FROM comments
		WHERE task_id = $1
		ORDER BY created_at ASC`

	var comments []*entities.Comment
	err := sqlx.SelectContext(ctx, r.q, &comments, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

type notificationRepository struct {
	q sqlx.ExtContext
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*entities.Notification) error {
	query := `
		INSERT INTO notifications (id, type, title, message, read, user_id, task_id, project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	for _, n := range notifications {
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}

		err := r.q.QueryRowxContext(ctx, query,
			n.ID, n.Type, n.Title, n.Message, n.Read, n.UserID, n.TaskID, n.ProjectID,
		).Scan(&n.CreatedAt)

		if err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
	}

	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error) {
	query := `
		SELECT id, type, title, message, read, user_id, task_id, project_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var notifications []*entities.Notification
	err := sqlx.SelectContext(ctx, r.q, &notifications, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`

	var count int
	err := sqlx.GetContext(ctx, r.q, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

type eventLogRepository struct {
	q sqlx.ExtContext
}

func (r *eventLogRepository) Append(ctx context.Context, event *entities.EventLog) error {
	query := `
		INSERT INTO event_logs (id, type, description, user_id, workspace_id, project_id, task_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		event.ID, event.Type, event.Description, event.UserID,
		event.WorkspaceID, event.ProjectID, event.TaskID,
	).Scan(&event.CreatedAt)

	if err != nil {
		return fmt.Errorf("append event log: %w", err)
	}

	return nil
}

func (r *eventLogRepository) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.EventLog, error) {
	query := `
		SELECT id, type, description, user_id, workspace_id, project_id, task_id, created_at
		FROM event_logs
		WHERE workspace_id = $1
		ORDER BY created_at DESC`

	var events []*entities.EventLog
	err := sqlx.SelectContext(ctx, r.q, &events, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list event logs: %w", err)
	}

	return events, nil
}
