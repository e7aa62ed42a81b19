package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// WorkspaceService handles workspace, team and membership operations.
type WorkspaceService struct {
	uow         ports.UnitOfWork
	access      *AccessResolver
	coordinator *MutationCoordinator
	logger      *logger.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(uow ports.UnitOfWork, access *AccessResolver, coordinator *MutationCoordinator, logger *logger.Logger) *WorkspaceService {
	return &WorkspaceService{
		uow:         uow,
		access:      access,
		coordinator: coordinator,
		logger:      logger,
	}
}

// CreateWorkspace creates a workspace and makes the caller its OWNER in the
// same transaction. A workspace without at least one member would be
// unreachable, so the two rows commit together.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, callerID uuid.UUID, req ports.CreateWorkspaceRequest) (*entities.Workspace, error) {
	if callerID == uuid.Nil {
		return nil, entities.ErrUnauthenticated
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	_, err := s.uow.Workspaces().GetBySlug(ctx, req.Slug)
	if err == nil {
		return nil, entities.ErrSlugTaken
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, err
	}

	workspace := &entities.Workspace{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}

	primary := func(ctx context.Context, repos ports.Repositories) error {
		if err := repos.Workspaces().Create(ctx, workspace); err != nil {
			return err
		}
		return repos.Memberships().Create(ctx, &entities.Membership{
			ID:          uuid.New(),
			UserID:      callerID,
			WorkspaceID: workspace.ID,
			Role:        entities.MembershipRoleOwner,
		})
	}

	event := newEvent(entities.EventMemberAdded,
		fmt.Sprintf("Workspace %q created", workspace.Name),
		callerID, workspace.ID, nil, nil)

	err = s.coordinator.Execute(ctx, primary, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Events().Append(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Workspace created", "workspace_id", workspace.ID, "slug", workspace.Slug, "user_id", callerID)
	return workspace, nil
}

// ListWorkspaces returns the workspaces the caller belongs to.
func (s *WorkspaceService) ListWorkspaces(ctx context.Context, callerID uuid.UUID) ([]*entities.Workspace, error) {
	if callerID == uuid.Nil {
		return nil, entities.ErrUnauthenticated
	}
	return s.uow.Workspaces().ListForUser(ctx, callerID)
}

// GetWorkspace returns a workspace the caller is a member of.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, callerID, workspaceID uuid.UUID) (*entities.Workspace, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.uow.Workspaces().GetByID(ctx, workspaceID)
}

// CreateTeam creates a team inside a workspace the caller belongs to.
func (s *WorkspaceService) CreateTeam(ctx context.Context, callerID, workspaceID uuid.UUID, req ports.CreateTeamRequest) (*entities.Team, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	team := &entities.Team{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		WorkspaceID: workspaceID,
	}

	event := newEvent(entities.EventTeamCreated,
		fmt.Sprintf("Team %q created", team.Name),
		callerID, workspaceID, nil, nil)

	err := s.coordinator.Execute(ctx,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Teams().Create(ctx, team)
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Team created", "team_id", team.ID, "workspace_id", workspaceID)
	return team, nil
}

// ListTeams returns the teams of a workspace the caller belongs to.
func (s *WorkspaceService) ListTeams(ctx context.Context, callerID, workspaceID uuid.UUID) ([]*entities.Team, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.uow.Teams().ListForWorkspace(ctx, workspaceID)
}

// ListMembers returns the membership rows of a workspace the caller belongs to.
func (s *WorkspaceService) ListMembers(ctx context.Context, callerID, workspaceID uuid.UUID) ([]*entities.Membership, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.uow.Memberships().ListForWorkspace(ctx, workspaceID)
}

// ListEvents returns the workspace audit log, newest first.
func (s *WorkspaceService) ListEvents(ctx context.Context, callerID, workspaceID uuid.UUID) ([]*entities.EventLog, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.uow.Events().ListForWorkspace(ctx, workspaceID)
}
