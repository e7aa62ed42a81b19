package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/teamflow/core/internal/infrastructure/database"
	"github.com/teamflow/core/internal/ports"
)

// Store implements ports.UnitOfWork on top of sqlx. The same repository code
// serves both pooled and transactional access: Atomic rebinds every
// repository onto one transaction, so a mutation and its derived effects
// commit or roll back together.
type Store struct {
	db *database.DB

	users         *userRepository
	workspaces    *workspaceRepository
	memberships   *membershipRepository
	teams         *teamRepository
	projects      *projectRepository
	sections      *sectionRepository
	tasks         *taskRepository
	comments      *commentRepository
	notifications *notificationRepository
	events        *eventLogRepository
}

// NewStore creates a store bound to the connection pool
func NewStore(db *database.DB) *Store {
	return newStore(db, db.DB)
}

func newStore(db *database.DB, q sqlx.ExtContext) *Store {
	return &Store{
		db:            db,
		users:         &userRepository{q: q},
		workspaces:    &workspaceRepository{q: q},
		memberships:   &membershipRepository{q: q},
		teams:         &teamRepository{q: q},
		projects:      &projectRepository{q: q},
		sections:      &sectionRepository{q: q},
		tasks:         &taskRepository{q: q},
		comments:      &commentRepository{q: q},
		notifications: &notificationRepository{q: q},
		events:        &eventLogRepository{q: q},
	}
}

// Atomic runs fn against transaction-bound repositories. fn returning an
// error rolls back everything it wrote.
func (s *Store) Atomic(ctx context.Context, fn func(ports.Repositories) error) error {
	return s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return fn(newStore(s.db, tx))
	})
}

func (s *Store) Users() ports.UserRepository                 { return s.users }
func (s *Store) Workspaces() ports.WorkspaceRepository       { return s.workspaces }
func (s *Store) Memberships() ports.MembershipRepository     { return s.memberships }
func (s *Store) Teams() ports.TeamRepository                 { return s.teams }
func (s *Store) Projects() ports.ProjectRepository           { return s.projects }
func (s *Store) Sections() ports.SectionRepository           { return s.sections }
func (s *Store) Tasks() ports.TaskRepository                 { return s.tasks }
func (s *Store) Comments() ports.CommentRepository           { return s.comments }
func (s *Store) Notifications() ports.NotificationRepository { return s.notifications }
func (s *Store) Events() ports.EventLogRepository            { return s.events }
