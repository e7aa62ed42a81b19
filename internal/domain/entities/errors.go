package entities

import (
	"errors"
	"fmt"
)

// Error kinds. AccessDenied and NotFound stay distinct internally so logging
// can tell them apart; the HTTP layer collapses both into one generic message
// so callers cannot probe for existence.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrStore           = errors.New("store failure")
)

// Entity-specific errors
var (
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrWorkspaceNotFound = fmt.Errorf("workspace %w", ErrNotFound)
	ErrTeamNotFound      = fmt.Errorf("team %w", ErrNotFound)
	ErrProjectNotFound   = fmt.Errorf("project %w", ErrNotFound)
	ErrSectionNotFound   = fmt.Errorf("section %w", ErrNotFound)
	ErrTaskNotFound      = fmt.Errorf("task %w", ErrNotFound)

	ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrSlugTaken  = fmt.Errorf("workspace slug already taken: %w", ErrConflict)

	ErrInvalidStatus          = fmt.Errorf("invalid task status: %w", ErrValidation)
	ErrSectionProjectMismatch = fmt.Errorf("section belongs to a different project: %w", ErrValidation)
	ErrSubtaskDepth           = fmt.Errorf("subtasks cannot have their own subtasks: %w", ErrValidation)

	ErrInvalidCredentials = errors.New("invalid email or password")
)
