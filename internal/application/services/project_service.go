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

// Every new project starts with the same three sections.
var defaultSectionNames = []string{"To do", "In progress", "Done"}

// ProjectService handles project and section operations.
type ProjectService struct {
	uow         ports.UnitOfWork
	access      *AccessResolver
	coordinator *MutationCoordinator
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(uow ports.UnitOfWork, access *AccessResolver, coordinator *MutationCoordinator, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		uow:         uow,
		access:      access,
		coordinator: coordinator,
		logger:      logger,
	}
}

// CreateProject creates a project with its default sections. A team, if
// given, must belong to the same workspace.
func (s *ProjectService) CreateProject(ctx context.Context, callerID, workspaceID uuid.UUID, req ports.CreateProjectRequest) (*entities.Project, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		team, err := s.uow.Teams().GetByID(ctx, *req.TeamID)
		if err != nil {
			return nil, err
		}
		if team.WorkspaceID != workspaceID {
			return nil, entities.ErrTeamNotFound
		}
	}

	project := &entities.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		WorkspaceID: workspaceID,
		TeamID:      req.TeamID,
	}

	primary := func(ctx context.Context, repos ports.Repositories) error {
		if err := repos.Projects().Create(ctx, project); err != nil {
			return err
		}
		for i, name := range defaultSectionNames {
			section := &entities.Section{
				ID:        uuid.New(),
				Name:      name,
				ProjectID: project.ID,
				SortOrder: i,
			}
			if err := repos.Sections().Create(ctx, section); err != nil {
				return err
			}
		}
		return nil
	}

	event := newEvent(entities.EventProjectCreated,
		fmt.Sprintf("Project %q created", project.Name),
		callerID, workspaceID, &project.ID, nil)

	err := s.coordinator.Execute(ctx, primary, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Events().Append(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Project created", "project_id", project.ID, "workspace_id", workspaceID)
	return project, nil
}

// ListProjects returns the workspace's non-archived projects.
func (s *ProjectService) ListProjects(ctx context.Context, callerID, workspaceID uuid.UUID) ([]*entities.Project, error) {
	scope := s.access.Scope(callerID)
	if _, err := scope.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.uow.Projects().ListForWorkspace(ctx, workspaceID)
}

// GetProject returns a project together with its sections.
func (s *ProjectService) GetProject(ctx context.Context, callerID, projectID uuid.UUID) (*entities.Project, []*entities.Section, error) {
	scope := s.access.Scope(callerID)
	_, project, err := scope.Project(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	sections, err := s.uow.Sections().ListForProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	return project, sections, nil
}

// UpdateProject applies a partial update to a project.
func (s *ProjectService) UpdateProject(ctx context.Context, callerID, projectID uuid.UUID, req ports.UpdateProjectRequest) (*entities.Project, error) {
	scope := s.access.Scope(callerID)
	_, project, err := scope.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Color != nil {
		project.Color = req.Color
	}
	if req.TeamID != nil {
		team, err := s.uow.Teams().GetByID(ctx, *req.TeamID)
		if err != nil {
			return nil, err
		}
		if team.WorkspaceID != project.WorkspaceID {
			return nil, entities.ErrTeamNotFound
		}
		project.TeamID = req.TeamID
	}

	event := newEvent(entities.EventProjectUpdated,
		fmt.Sprintf("Project %q updated", project.Name),
		callerID, project.WorkspaceID, &project.ID, nil)

	err = s.coordinator.Execute(ctx,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Projects().Update(ctx, project)
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// ArchiveProject soft-archives a project. Its tasks and sections remain but
// the project disappears from default listings.
func (s *ProjectService) ArchiveProject(ctx context.Context, callerID, projectID uuid.UUID) error {
	scope := s.access.Scope(callerID)
	_, project, err := scope.Project(ctx, projectID)
	if err != nil {
		return err
	}

	event := newEvent(entities.EventProjectDeleted,
		fmt.Sprintf("Project %q archived", project.Name),
		callerID, project.WorkspaceID, &project.ID, nil)

	err = s.coordinator.Execute(ctx,
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Projects().Archive(ctx, projectID, time.Now().UTC())
		},
		func(ctx context.Context, repos ports.Repositories) error {
			return repos.Events().Append(ctx, event)
		},
	)
	if err != nil {
		return err
	}

	s.logger.Infow("Project archived", "project_id", projectID, "user_id", callerID)
	return nil
}

// CreateSection appends a section at the end of the project's section list.
func (s *ProjectService) CreateSection(ctx context.Context, callerID, projectID uuid.UUID, req ports.CreateSectionRequest) (*entities.Section, error) {
	scope := s.access.Scope(callerID)
	if _, _, err := scope.Project(ctx, projectID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	section := &entities.Section{
		ID:        uuid.New(),
		Name:      req.Name,
		ProjectID: projectID,
	}

	// Order is read inside the transaction so concurrent creates at worst
	// produce duplicate orders, which listing breaks by created_at.
	err := s.coordinator.Execute(ctx, func(ctx context.Context, repos ports.Repositories) error {
		order, err := repos.Sections().NextOrder(ctx, projectID)
		if err != nil {
			return err
		}
		section.SortOrder = order
		return repos.Sections().Create(ctx, section)
	})
	if err != nil {
		return nil, err
	}

	return section, nil
}

// ListSections returns the project's sections in display order.
func (s *ProjectService) ListSections(ctx context.Context, callerID, projectID uuid.UUID) ([]*entities.Section, error) {
	scope := s.access.Scope(callerID)
	if _, _, err := scope.Project(ctx, projectID); err != nil {
		return nil, err
	}
	return s.uow.Sections().ListForProject(ctx, projectID)
}
