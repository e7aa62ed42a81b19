package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// WorkspaceRepository defines the interface for workspace data operations
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entities.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Workspace, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error)
}

// MembershipRepository defines the interface for membership data operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *entities.Membership) error
	// Get returns the membership row for (userID, workspaceID), or
	// entities.ErrNotFound when none exists.
	Get(ctx context.Context, userID, workspaceID uuid.UUID) (*entities.Membership, error)
	ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Membership, error)
}

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Team, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	// ListForWorkspace excludes archived projects.
	ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	Archive(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SectionRepository defines the interface for section data operations
type SectionRepository interface {
	Create(ctx context.Context, section *entities.Section) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Section, error)
	ListForProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Section, error)
	// NextOrder returns one greater than the current maximum order among the
	// project's sections, or 0 when the project has none.
	NextOrder(ctx context.Context, projectID uuid.UUID) (int, error)
}

// TaskScope identifies a sibling group of tasks: a project plus an optional
// section. Order values are only meaningful within one scope.
type TaskScope struct {
	ProjectID uuid.UUID
	SectionID *uuid.UUID
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListForScope returns the top-level tasks of a sibling scope ordered by
	// sort_order with creation time as the tie-break.
	ListForScope(ctx context.Context, scope TaskScope) ([]*entities.Task, error)
	ListSubtasks(ctx context.Context, parentID uuid.UUID) ([]*entities.Task, error)
	// NextOrder returns one greater than the current maximum order within the
	// scope, or 0 when the scope is empty.
	NextOrder(ctx context.Context, scope TaskScope) (int, error)
	// Reorder unconditionally reassigns a task's order and section. It never
	// renumbers siblings.
	Reorder(ctx context.Context, taskID uuid.UUID, order int, sectionID *uuid.UUID) error
	AddAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error
	ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error
	ListAssignees(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	ListForTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Comment, error)
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*entities.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// EventLogRepository defines the interface for the append-only audit log
type EventLogRepository interface {
	Append(ctx context.Context, event *entities.EventLog) error
	ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.EventLog, error)
}

// Repositories aggregates every repository behind one accessor set so a
// caller holding it cannot tell whether it is bound to the pool or to an
// open transaction.
type Repositories interface {
	Users() UserRepository
	Workspaces() WorkspaceRepository
	Memberships() MembershipRepository
	Teams() TeamRepository
	Projects() ProjectRepository
	Sections() SectionRepository
	Tasks() TaskRepository
	Comments() CommentRepository
	Notifications() NotificationRepository
	Events() EventLogRepository
}

// UnitOfWork is the transactional boundary for mutations. Atomic runs fn
// against transaction-bound repositories and commits only if fn returns nil;
// any error rolls back every write made inside fn.
type UnitOfWork interface {
	Repositories
	Atomic(ctx context.Context, fn func(Repositories) error) error
}
