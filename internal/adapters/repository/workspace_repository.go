package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teamflow/core/internal/domain/entities"
)

type workspaceRepository struct {
	q sqlx.ExtContext
}

func (r *workspaceRepository) Create(ctx context.Context, workspace *entities.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		workspace.ID, workspace.Name, workspace.Slug, workspace.Description,
	).Scan(&workspace.CreatedAt, &workspace.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrSlugTaken
		}
		return fmt.Errorf("create workspace: %w", err)
	}

	return nil
}

func (r *workspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM workspaces
		WHERE id = $1`

	var workspace entities.Workspace
	err := sqlx.GetContext(ctx, r.q, &workspace, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by id: %w", err)
	}

	return &workspace, nil
}

func (r *workspaceRepository) GetBySlug(ctx context.Context, slug string) (*entities.Workspace, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM workspaces
		WHERE slug = $1`

	var workspace entities.Workspace
	err := sqlx.GetContext(ctx, r.q, &workspace, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by slug: %w", err)
	}

	return &workspace, nil
}

func (r *workspaceRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.slug, w.description, w.created_at, w.updated_at
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC`

	var workspaces []*entities.Workspace
	err := sqlx.SelectContext(ctx, r.q, &workspaces, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces for user: %w", err)
	}

	return workspaces, nil
}

type membershipRepository struct {
	q sqlx.ExtContext
}

func (r *membershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, workspace_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		membership.ID, membership.UserID, membership.WorkspaceID, membership.Role,
	).Scan(&membership.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("membership already exists: %w", entities.ErrConflict)
		}
		return fmt.Errorf("create membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) Get(ctx context.Context, userID, workspaceID uuid.UUID) (*entities.Membership, error) {
	query := `
		SELECT id, user_id, workspace_id, role, created_at
		FROM memberships
		WHERE user_id = $1 AND workspace_id = $2`

	var membership entities.Membership
	err := sqlx.GetContext(ctx, r.q, &membership, query, userID, workspaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("membership %w", entities.ErrNotFound)
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}

	return &membership, nil
}

func (r *membershipRepository) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Membership, error) {
	query := `
		SELECT id, user_id, workspace_id, role, created_at
		FROM memberships
		WHERE workspace_id = $1
		ORDER BY created_at ASC`

	var memberships []*entities.Membership
	err := sqlx.SelectContext(ctx, r.q, &memberships, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	return memberships, nil
}

type teamRepository struct {
	q sqlx.ExtContext
}

func (r *teamRepository) Create(ctx context.Context, team *entities.Team) error {
	query := `
		INSERT INTO teams (id, name, description, workspace_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	err := r.q.QueryRowxContext(ctx, query,
		team.ID, team.Name, team.Description, team.WorkspaceID,
	).Scan(&team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	query := `
		SELECT id, name, description, workspace_id, created_at, updated_at
		FROM teams
		WHERE id = $1`

	var team entities.Team
	err := sqlx.GetContext(ctx, r.q, &team, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team by id: %w", err)
	}

	return &team, nil
}

func (r *teamRepository) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Team, error) {
	query := `
		SELECT id, name, description, workspace_id, created_at, updated_at
		FROM teams
		WHERE workspace_id = $1
		ORDER BY created_at DESC`

	var teams []*entities.Team
	err := sqlx.SelectContext(ctx, r.q, &teams, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}
