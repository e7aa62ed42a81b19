package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/ports"
)

func TestCreateProject_CreatesDefaultSections(t *testing.T) {
	f := newFixture()
	user := f.addUser("Alice", "alice@example.com")
	workspace := f.addWorkspace(user.ID, "acme")

	project, err := f.projects.CreateProject(context.Background(), user.ID, workspace.ID, ports.CreateProjectRequest{
		Name: "Website Redesign",
	})
	require.NoError(t, err)

	sections, err := f.store.Sections().ListForProject(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "To do", sections[0].Name)
	assert.Equal(t, "In progress", sections[1].Name)
	assert.Equal(t, "Done", sections[2].Name)
	for i, section := range sections {
		assert.Equal(t, i, section.SortOrder)
	}

	events := f.eventsOfType(workspace.ID, entities.EventProjectCreated)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].ProjectID)
	assert.Equal(t, project.ID, *events[0].ProjectID)
}

func TestCreateProject_RejectsForeignTeam(t *testing.T) {
	f := newFixture()
	user := f.addUser("Alice", "alice@example.com")
	workspace := f.addWorkspace(user.ID, "acme")
	other := f.addWorkspace(user.ID, "other")

	team, err := f.workspaces.CreateTeam(context.Background(), user.ID, other.ID, ports.CreateTeamRequest{Name: "Elsewhere"})
	require.NoError(t, err)

	_, err = f.projects.CreateProject(context.Background(), user.ID, workspace.ID, ports.CreateProjectRequest{
		Name:   "Bad",
		TeamID: &team.ID,
	})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestArchiveProject_HidesFromListing(t *testing.T) {
	f := newFixture()
	user := f.addUser("Alice", "alice@example.com")
	workspace := f.addWorkspace(user.ID, "acme")
	keep := f.addProject(user.ID, workspace.ID, "Keep")
	archive := f.addProject(user.ID, workspace.ID, "Archive")

	require.NoError(t, f.projects.ArchiveProject(context.Background(), user.ID, archive.ID))

	projects, err := f.projects.ListProjects(context.Background(), user.ID, workspace.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, keep.ID, projects[0].ID)

	// Archived projects remain reachable by id and keep their tasks.
	got, _, err := f.projects.GetProject(context.Background(), user.ID, archive.ID)
	require.NoError(t, err)
	assert.True(t, got.IsArchived())

	events := f.eventsOfType(workspace.ID, entities.EventProjectDeleted)
	require.Len(t, events, 1)
	assert.Equal(t, `Project "Archive" archived`, events[0].Description)
}

func TestUpdateProject_PartialUpdate(t *testing.T) {
	f := newFixture()
	user := f.addUser("Alice", "alice@example.com")
	workspace := f.addWorkspace(user.ID, "acme")
	project := f.addProject(user.ID, workspace.ID, "Old Name")

	newName := "New Name"
	updated, err := f.projects.UpdateProject(context.Background(), user.ID, project.ID, ports.UpdateProjectRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, project.WorkspaceID, updated.WorkspaceID)

	events := f.eventsOfType(workspace.ID, entities.EventProjectUpdated)
	assert.Len(t, events, 1)
}

func TestCreateSection_AppendsAtEnd(t *testing.T) {
	f := newFixture()
	user := f.addUser("Alice", "alice@example.com")
	workspace := f.addWorkspace(user.ID, "acme")
	project := f.addProject(user.ID, workspace.ID, "Website")

	section, err := f.projects.CreateSection(context.Background(), user.ID, project.ID, ports.CreateSectionRequest{
		Name: "Review",
	})
	require.NoError(t, err)

	// The three default sections occupy 0..2.
	assert.Equal(t, 3, section.SortOrder)

	sections, err := f.projects.ListSections(context.Background(), user.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, sections, 4)
	assert.Equal(t, "Review", sections[3].Name)
}

func TestGetProject_DeniedForNonMembers(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Alice", "alice@example.com")
	outsider := f.addUser("Mallory", "mallory@example.com")
	workspace := f.addWorkspace(owner.ID, "acme")
	project := f.addProject(owner.ID, workspace.ID, "Secret")

	_, _, err := f.projects.GetProject(context.Background(), outsider.ID, project.ID)
	assert.ErrorIs(t, err, entities.ErrAccessDenied)
}
