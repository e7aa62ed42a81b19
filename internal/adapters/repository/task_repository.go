package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/ports"
)

type taskRepository struct {
	q sqlx.ExtContext
}

func (r *taskRepository) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date,
			start_date, project_id, section_id, parent_id, created_by_id,
			sort_order, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.StartDate, task.ProjectID, task.SectionID,
		task.ParentID, task.CreatedByID, task.SortOrder, task.CompletedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, start_date,
			project_id, section_id, parent_id, created_by_id, sort_order,
			completed_at, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := sqlx.GetContext(ctx, r.q, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
			due_date = $6, start_date = $7, section_id = $8,
			completed_at = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.q.QueryRowxContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.StartDate, task.SectionID, task.CompletedAt,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// ListForScope returns the top-level tasks of one sibling scope. Ties on
// sort_order are broken by creation time so duplicate order values from
// concurrent inserts still render stably.
func (r *taskRepository) ListForScope(ctx context.Context, scope ports.TaskScope) ([]*entities.Task, error) {
	var (
		tasks []*entities.Task
		err   error
	)

	if scope.SectionID == nil {
		query := `
			SELECT id, title, description, status, priority, due_date, start_date,
				project_id, section_id, parent_id, created_by_id, sort_order,
				completed_at, created_at, updated_at
			FROM tasks
			WHERE project_id = $1 AND section_id IS NULL AND parent_id IS NULL
			ORDER BY sort_order ASC, created_at ASC`
		err = sqlx.SelectContext(ctx, r.q, &tasks, query, scope.ProjectID)
	} else {
		query := `
			SELECT id, title, description, status, priority, due_date, start_date,
				project_id, section_id, parent_id, created_by_id, sort_order,
				completed_at, created_at, updated_at
			FROM tasks
			WHERE project_id = $1 AND section_id = $2 AND parent_id IS NULL
			ORDER BY sort_order ASC, created_at ASC`
		err = sqlx.SelectContext(ctx, r.q, &tasks, query, scope.ProjectID, *scope.SectionID)
	}

	if err != nil {
		return nil, fmt.Errorf("list tasks for scope: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) ListSubtasks(ctx context.Context, parentID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, start_date,
			project_id, section_id, parent_id, created_by_id, sort_order,
			completed_at, created_at, updated_at
		FROM tasks
		WHERE parent_id = $1
		ORDER BY sort_order ASC, created_at ASC`

	var tasks []*entities.Task
	err := sqlx.SelectContext(ctx, r.q, &tasks, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	return tasks, nil
}

// NextOrder computes max+1 within the scope without locking. Two concurrent
// inserts may read the same value; the duplicate is tolerated and broken by
// created_at in listing queries.
func (r *taskRepository) NextOrder(ctx context.Context, scope ports.TaskScope) (int, error) {
	var (
		next int
		err  error
	)

	if scope.SectionID == nil {
		query := `
			SELECT COALESCE(MAX(sort_order), -1) + 1
			FROM tasks
			WHERE project_id = $1 AND section_id IS NULL`
		err = sqlx.GetContext(ctx, r.q, &next, query, scope.ProjectID)
	} else {
		query := `
			SELECT COALESCE(MAX(sort_order), -1) + 1
			FROM tasks
			WHERE project_id = $1 AND section_id = $2`
		err = sqlx.GetContext(ctx, r.q, &next, query, scope.ProjectID, *scope.SectionID)
	}

	if err != nil {
		return 0, fmt.Errorf("next task order: %w", err)
	}

	return next, nil
}

func (r *taskRepository) Reorder(ctx context.Context, taskID uuid.UUID, order int, sectionID *uuid.UUID) error {
	query := `
		UPDATE tasks
		SET sort_order = $2, section_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, taskID, order, sectionID)
	if err != nil {
		return fmt.Errorf("reorder task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) AddAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	query := `
		INSERT INTO task_assignees (id, task_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (task_id, user_id) DO NOTHING`

	for _, userID := range userIDs {
		if _, err := r.q.ExecContext(ctx, query, uuid.New(), taskID, userID); err != nil {
			return fmt.Errorf("add assignee: %w", err)
		}
	}

	return nil
}

func (r *taskRepository) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("clear assignees: %w", err)
	}

	return r.AddAssignees(ctx, taskID, userIDs)
}

func (r *taskRepository) ListAssignees(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM task_assignees
		WHERE task_id = $1
		ORDER BY created_at ASC`

	var userIDs []uuid.UUID
	err := sqlx.SelectContext(ctx, r.q, &userIDs, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}

	return userIDs, nil
}
