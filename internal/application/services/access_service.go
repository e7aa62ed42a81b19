package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// AccessResolver walks the workspace → project → task containment hierarchy
// and decides whether a caller may touch the target. A missing target is
// NotFound; an existing target without a membership row for the caller is
// AccessDenied. The two stay distinct internally for logging even though the
// HTTP layer presents them identically.
type AccessResolver struct {
	repos  ports.Repositories
	logger *logger.Logger
}

// NewAccessResolver creates a new access resolver
func NewAccessResolver(repos ports.Repositories, logger *logger.Logger) *AccessResolver {
	return &AccessResolver{
		repos:  repos,
		logger: logger,
	}
}

// Scope opens one logical operation for a caller. Resolved memberships are
// memoized inside the scope so nested reads do not repeat the lookup, but a
// scope never outlives its operation: every top-level request re-validates.
func (r *AccessResolver) Scope(callerID uuid.UUID) *AccessScope {
	return &AccessScope{
		resolver:    r,
		callerID:    callerID,
		memberships: make(map[uuid.UUID]*entities.Membership),
	}
}

// AccessScope carries the caller identity and the memberships already
// resolved during the current operation. Not safe for concurrent use; each
// request builds its own.
type AccessScope struct {
	resolver    *AccessResolver
	callerID    uuid.UUID
	memberships map[uuid.UUID]*entities.Membership
}

// CallerID returns the identity the scope was opened for.
func (s *AccessScope) CallerID() uuid.UUID {
	return s.callerID
}

// Workspace resolves the caller's membership in a workspace. No membership
// row means AccessDenied regardless of whether the workspace exists.
func (s *AccessScope) Workspace(ctx context.Context, workspaceID uuid.UUID) (*entities.Membership, error) {
	if s.callerID == uuid.Nil {
		return nil, entities.ErrUnauthenticated
	}

	if membership, ok := s.memberships[workspaceID]; ok {
		return membership, nil
	}

	membership, err := s.resolver.repos.Memberships().Get(ctx, s.callerID, workspaceID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			s.resolver.logger.Warnw("Workspace access denied",
				"user_id", s.callerID,
				"workspace_id", workspaceID,
			)
			return nil, entities.ErrAccessDenied
		}
		return nil, err
	}

	s.memberships[workspaceID] = membership
	return membership, nil
}

// Project resolves access to a project through its workspace.
func (s *AccessScope) Project(ctx context.Context, projectID uuid.UUID) (*entities.Membership, *entities.Project, error) {
	if s.callerID == uuid.Nil {
		return nil, nil, entities.ErrUnauthenticated
	}

	project, err := s.resolver.repos.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	membership, err := s.Workspace(ctx, project.WorkspaceID)
	if err != nil {
		return nil, nil, err
	}

	return membership, project, nil
}

// Task resolves access to a task through its project and workspace.
func (s *AccessScope) Task(ctx context.Context, taskID uuid.UUID) (*entities.Membership, *entities.Task, *entities.Project, error) {
	if s.callerID == uuid.Nil {
		return nil, nil, nil, entities.ErrUnauthenticated
	}

	task, err := s.resolver.repos.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, nil, err
	}

	membership, project, err := s.Project(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, nil, err
	}

	return membership, task, project, nil
}
