package ports

import (
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/core/internal/domain/entities"
)

// Request types carry validator tags; services reject invalid requests
// before any write begins.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful register or login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

// Claims are the verified fields extracted from an access token.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type CreateWorkspaceRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Slug        string  `json:"slug" validate:"required,min=1,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type CreateTeamRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Color       *string    `json:"color" validate:"omitempty,max=50"`
	TeamID      *uuid.UUID `json:"team_id"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Color       *string    `json:"color" validate:"omitempty,max=50"`
	TeamID      *uuid.UUID `json:"team_id"`
}

type CreateSectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type CreateTaskRequest struct {
	Title       string               `json:"title" validate:"required,min=1,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=10000"`
	Status      *entities.TaskStatus `json:"status"`
	Priority    *entities.Priority   `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	StartDate   *time.Time           `json:"start_date"`
	SectionID   *uuid.UUID           `json:"section_id"`
	ParentID    *uuid.UUID           `json:"parent_id"`
	AssigneeIDs []uuid.UUID          `json:"assignee_ids"`
}

// UpdateTaskRequest applies a partial update; nil fields are left untouched.
// A non-nil AssigneeIDs replaces the whole assignee set.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=10000"`
	Status      *entities.TaskStatus `json:"status"`
	Priority    *entities.Priority   `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	StartDate   *time.Time           `json:"start_date"`
	SectionID   *uuid.UUID           `json:"section_id"`
	AssigneeIDs []uuid.UUID          `json:"assignee_ids"`
}

// ReorderTaskRequest carries the destination position computed by the
// caller. Order is not required to be unique within the destination scope.
type ReorderTaskRequest struct {
	Order     int        `json:"order"`
	SectionID *uuid.UUID `json:"section_id"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}
