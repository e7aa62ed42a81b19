package entities

import (
	"time"

	"github.com/google/uuid"
)

// Enums and types
type MembershipRole string

const (
	MembershipRoleOwner  MembershipRole = "OWNER"
	MembershipRoleMember MembershipRole = "MEMBER"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "TASK_ASSIGNED"
	NotificationCommentAdded NotificationType = "COMMENT_ADDED"
)

type EventType string

const (
	EventMemberAdded    EventType = "MEMBER_ADDED"
	EventTeamCreated    EventType = "TEAM_CREATED"
	EventProjectCreated EventType = "PROJECT_CREATED"
	EventProjectUpdated EventType = "PROJECT_UPDATED"
	EventProjectDeleted EventType = "PROJECT_DELETED"
	EventTaskCreated    EventType = "TASK_CREATED"
	EventTaskUpdated    EventType = "TASK_UPDATED"
	EventTaskDeleted    EventType = "TASK_DELETED"
	EventCommentAdded   EventType = "COMMENT_ADDED"
)

// User represents a registered account. The password hash never leaves the
// auth service.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Workspace is the root of a tenancy boundary.
type Workspace struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Membership is the sole proof that a user may see or act on a workspace's
// data. The role is stored but nothing gates on it yet.
type Membership struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	WorkspaceID uuid.UUID      `json:"workspace_id" db:"workspace_id"`
	Role        MembershipRole `json:"role" db:"role"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// Team is an optional grouping for projects inside a workspace.
type Team struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	WorkspaceID uuid.UUID `json:"workspace_id" db:"workspace_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Project belongs to exactly one workspace and optionally one team.
// Archiving sets ArchivedAt and hides the project from default listings
// without touching its tasks or sections.
type Project struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	Color       *string    `json:"color" db:"color"`
	WorkspaceID uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	TeamID      *uuid.UUID `json:"team_id" db:"team_id"`
	ArchivedAt  *time.Time `json:"archived_at" db:"archived_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsArchived reports whether the project has been soft-archived.
func (p *Project) IsArchived() bool {
	return p.ArchivedAt != nil
}

// Section is a named bucket of tasks within a project. SortOrder expresses
// relative position among sibling sections; duplicate values are tolerated
// and broken by creation time.
type Section struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	SortOrder int       `json:"order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Task belongs to exactly one project, optionally one section of the same
// project, and optionally one parent task (a single level of subtasks).
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    Priority   `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	StartDate   *time.Time `json:"start_date" db:"start_date"`
	ProjectID   uuid.UUID  `json:"project_id" db:"project_id"`
	SectionID   *uuid.UUID `json:"section_id" db:"section_id"`
	ParentID    *uuid.UUID `json:"parent_id" db:"parent_id"`
	CreatedByID uuid.UUID  `json:"created_by_id" db:"created_by_id"`
	SortOrder   int        `json:"order" db:"sort_order"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	AssigneeIDs []uuid.UUID `json:"assignee_ids,omitempty" db:"-"`
	Subtasks    []*Task     `json:"subtasks,omitempty" db:"-"`
	Comments    []*Comment  `json:"comments,omitempty" db:"-"`
}

// SetStatus applies a status transition. Any status may move to any other.
// Entering DONE stamps CompletedAt; leaving DONE clears it.
func (t *Task) SetStatus(status TaskStatus, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if status == TaskStatusDone {
		if t.Status != TaskStatusDone {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
	return nil
}

// IsSubtask reports whether the task has a parent.
func (t *Task) IsSubtask() bool {
	return t.ParentID != nil
}

// TaskAssignee links a task to an assigned user.
type TaskAssignee struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Comment is an immutable remark on a task, listed by creation time.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Notification is a per-recipient record produced by effect fan-out.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Read      bool             `json:"read" db:"read"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	TaskID    *uuid.UUID       `json:"task_id" db:"task_id"`
	ProjectID *uuid.UUID       `json:"project_id" db:"project_id"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// EventLog is an append-only audit record. Never mutated or deleted.
type EventLog struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Type        EventType  `json:"type" db:"type"`
	Description string     `json:"description" db:"description"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	WorkspaceID uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	ProjectID   *uuid.UUID `json:"project_id" db:"project_id"`
	TaskID      *uuid.UUID `json:"task_id" db:"task_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Utility methods
func (r MembershipRole) IsValid() bool {
	switch r {
	case MembershipRoleOwner, MembershipRoleMember:
		return true
	default:
		return false
	}
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}
