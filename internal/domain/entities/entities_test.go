package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskSetStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{Status: TaskStatusTodo}

	require.NoError(t, task.SetStatus(TaskStatusDone, now))
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)

	// Staying DONE keeps the original completion stamp.
	later := now.Add(time.Hour)
	require.NoError(t, task.SetStatus(TaskStatusDone, later))
	assert.Equal(t, now, *task.CompletedAt)

	// Leaving DONE clears it.
	require.NoError(t, task.SetStatus(TaskStatusInProgress, later))
	assert.Nil(t, task.CompletedAt)

	err := task.SetStatus(TaskStatus("SHIPPED"), later)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, TaskStatusInProgress, task.Status)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, TaskStatusBlocked.IsValid())
	assert.False(t, TaskStatus("").IsValid())

	assert.True(t, PriorityUrgent.IsValid())
	assert.False(t, Priority("CRITICAL").IsValid())

	assert.True(t, MembershipRoleOwner.IsValid())
	assert.False(t, MembershipRole("ADMIN").IsValid())
}

func TestProjectIsArchived(t *testing.T) {
	project := &Project{}
	assert.False(t, project.IsArchived())

	at := time.Now()
	project.ArchivedAt = &at
	assert.True(t, project.IsArchived())
}
