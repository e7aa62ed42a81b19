package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teamflow/core/internal/domain/entities"
)

type projectRepository struct {
	q sqlx.ExtContext
}

func (r *projectRepository) Create(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (id, name, description, color, workspace_id, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		project.ID, project.Name, project.Description, project.Color,
		project.WorkspaceID, project.TeamID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	query := `
		SELECT id, name, description, color, workspace_id, team_id, archived_at,
			created_at, updated_at
		FROM projects
		WHERE id = $1`

	var project entities.Project
	err := sqlx.GetContext(ctx, r.q, &project, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}

	return &project, nil
}

func (r *projectRepository) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Project, error) {
	query := `
		SELECT id, name, description, color, workspace_id, team_id, archived_at,
			created_at, updated_at
		FROM projects
		WHERE workspace_id = $1 AND archived_at IS NULL
		ORDER BY updated_at DESC`

	var projects []*entities.Project
	err := sqlx.SelectContext(ctx, r.q, &projects, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *entities.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, color = $4, team_id = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.q.QueryRowxContext(ctx, query,
		project.ID, project.Name, project.Description, project.Color, project.TeamID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrProjectNotFound
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

func (r *projectRepository) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE projects
		SET archived_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND archived_at IS NULL`

	result, err := r.q.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("archive project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrProjectNotFound
	}

	return nil
}

type sectionRepository struct {
	q sqlx.ExtContext
}

func (r *sectionRepository) Create(ctx context.Context, section *entities.Section) error {
	query := `
		INSERT INTO sections (id, name, project_id, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		section.ID, section.Name, section.ProjectID, section.SortOrder,
	).Scan(&section.CreatedAt)

	if err != nil {
		return fmt.Errorf("create section: %w", err)
	}

	return nil
}

func (r *sectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Section, error) {
	query := `
		SELECT id, name, project_id, sort_order, created_at
		FROM sections
		WHERE id = $1`

	var section entities.Section
	err := sqlx.GetContext(ctx, r.q, &section, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrSectionNotFound
		}
		return nil, fmt.Errorf("get section by id: %w", err)
	}

	return &section, nil
}

func (r *sectionRepository) ListForProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Section, error) {
	query := `
		SELECT id, name, project_id, sort_order, created_at
		FROM sections
		WHERE project_id = $1
		ORDER BY sort_order ASC, created_at ASC`

	var sections []*entities.Section
	err := sqlx.SelectContext(ctx, r.q, &sections, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	return sections, nil
}

func (r *sectionRepository) NextOrder(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order), -1) + 1 FROM sections WHERE project_id = $1`

	var next int
	err := sqlx.GetContext(ctx, r.q, &next, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("next section order: %w", err)
	}

	return next, nil
}
