package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
)

// Effect fan-out: every mutating operation derives its notification batch
// and exactly one event-log entry from these builders, then hands them to
// the coordinator alongside the primary write.

// assignmentNotifications builds one TASK_ASSIGNED notification per
// assignee. The actor is excluded even when they assigned themselves.
func assignmentNotifications(task *entities.Task, assigneeIDs []uuid.UUID, actorID uuid.UUID) []*entities.Notification {
	notifications := make([]*entities.Notification, 0, len(assigneeIDs))
	for _, userID := range assigneeIDs {
		if userID == actorID {
			continue
		}
		notifications = append(notifications, &entities.Notification{
			Type:      entities.NotificationTaskAssigned,
			Title:     "Task assigned",
			Message:   fmt.Sprintf("You've been assigned to %q", task.Title),
			UserID:    userID,
			TaskID:    &task.ID,
			ProjectID: &task.ProjectID,
		})
	}
	return notifications
}

// commentNotifications targets the task's current assignees, minus the
// actor. The task creator is not notified unless they happen to be assigned;
// assignees are treated as the stakeholders of record.
func commentNotifications(task *entities.Task, assigneeIDs []uuid.UUID, actor *entities.User) []*entities.Notification {
	actorName := actor.Name
	if actorName == "" {
		actorName = "Someone"
	}

	notifications := make([]*entities.Notification, 0, len(assigneeIDs))
	for _, userID := range assigneeIDs {
		if userID == actor.ID {
			continue
		}
		notifications = append(notifications, &entities.Notification{
			Type:      entities.NotificationCommentAdded,
			Title:     "New comment",
			Message:   fmt.Sprintf("%s commented on %q", actorName, task.Title),
			UserID:    userID,
			TaskID:    &task.ID,
			ProjectID: &task.ProjectID,
		})
	}
	return notifications
}

// newEvent builds the single audit record a mutation appends.
func newEvent(eventType entities.EventType, description string, actorID, workspaceID uuid.UUID, projectID, taskID *uuid.UUID) *entities.EventLog {
	return &entities.EventLog{
		Type:        eventType,
		Description: description,
		UserID:      actorID,
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		TaskID:      taskID,
	}
}
