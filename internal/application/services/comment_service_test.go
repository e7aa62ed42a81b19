package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/ports"
)

func TestCreateComment_NotifiesAssigneesExceptAuthor(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	req := createTaskRequest("Discussed")
	req.AssigneeIDs = []uuid.UUID{f.alice.ID, f.bob.ID}
	task, err := f.tasks.CreateTask(ctx, f.alice.ID, f.project.ID, req)
	require.NoError(t, err)

	comment, err := f.comments.CreateComment(ctx, f.alice.ID, task.ID, ports.CreateCommentRequest{
		Content: "Any progress?",
	})
	require.NoError(t, err)
	assert.Equal(t, task.ID, comment.TaskID)
	assert.Equal(t, f.alice.ID, comment.UserID)

	bobNotifications, err := f.notifications.ListNotifications(ctx, f.bob.ID)
	require.NoError(t, err)

	var commentNotes []*entities.Notification
	for _, n := range bobNotifications {
		if n.Type == entities.NotificationCommentAdded {
			commentNotes = append(commentNotes, n)
		}
	}
	require.Len(t, commentNotes, 1)
	assert.Equal(t, `Alice commented on "Discussed"`, commentNotes[0].Message)

	// Alice is assigned too but authored the comment.
	aliceNotifications, err := f.notifications.ListNotifications(ctx, f.alice.ID)
	require.NoError(t, err)
	for _, n := range aliceNotifications {
		assert.NotEqual(t, entities.NotificationCommentAdded, n.Type)
	}

	events := f.eventsOfType(f.workspace.ID, entities.EventCommentAdded)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].TaskID)
	assert.Equal(t, task.ID, *events[0].TaskID)
}

func TestCreateComment_FallsBackToAnonymousName(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	ghost := f.addUser("", "ghost@example.com")
	f.addMember(ghost.ID, f.workspace.ID)

	req := createTaskRequest("Haunted")
	req.AssigneeIDs = []uuid.UUID{f.bob.ID}
	task, err := f.tasks.CreateTask(ctx, f.alice.ID, f.project.ID, req)
	require.NoError(t, err)

	_, err = f.comments.CreateComment(ctx, ghost.ID, task.ID, ports.CreateCommentRequest{Content: "boo"})
	require.NoError(t, err)

	notifications, err := f.notifications.ListNotifications(ctx, f.bob.ID)
	require.NoError(t, err)

	found := false
	for _, n := range notifications {
		if n.Type == entities.NotificationCommentAdded {
			assert.Equal(t, `Someone commented on "Haunted"`, n.Message)
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreateComment_RollsBackWithEventFailure(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, f.alice.ID, f.project.ID, createTaskRequest("Quiet"))
	require.NoError(t, err)

	f.store.eventErr = errBoom
	_, err = f.comments.CreateComment(ctx, f.alice.ID, task.ID, ports.CreateCommentRequest{Content: "lost"})
	require.ErrorIs(t, err, errBoom)
	f.store.eventErr = nil

	comments, err := f.comments.ListComments(ctx, f.alice.ID, task.ID)
	require.NoError(t, err)
	assert.Empty(t, comments, "comment must not exist without its audit entry")
}

func TestListComments_OrderedOldestFirst(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, f.alice.ID, f.project.ID, createTaskRequest("Thread"))
	require.NoError(t, err)

	for _, content := range []string{"first", "second", "third"} {
		_, err := f.comments.CreateComment(ctx, f.alice.ID, task.ID, ports.CreateCommentRequest{Content: content})
		require.NoError(t, err)
	}

	comments, err := f.comments.ListComments(ctx, f.bob.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)
}

func TestNotifications_RequireAuthentication(t *testing.T) {
	f := newFixture()

	_, err := f.notifications.ListNotifications(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, entities.ErrUnauthenticated)

	_, err = f.notifications.UnreadCount(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, entities.ErrUnauthenticated)
}
