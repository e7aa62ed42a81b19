package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/config"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// In-memory store used by the service tests. It implements ports.UnitOfWork
// with copy-on-begin snapshots so Atomic rolls back exactly like the real
// store, and it counts membership lookups so memoization is observable.

type fakeData struct {
	users         map[uuid.UUID]*entities.User
	workspaces    map[uuid.UUID]*entities.Workspace
	memberships   []*entities.Membership
	teams         map[uuid.UUID]*entities.Team
	projects      map[uuid.UUID]*entities.Project
	sections      map[uuid.UUID]*entities.Section
	tasks         map[uuid.UUID]*entities.Task
	assignees     []*entities.TaskAssignee
	comments      []*entities.Comment
	notifications []*entities.Notification
	events        []*entities.EventLog

	seq int
}

func newFakeData() *fakeData {
	return &fakeData{
		users:      make(map[uuid.UUID]*entities.User),
		workspaces: make(map[uuid.UUID]*entities.Workspace),
		teams:      make(map[uuid.UUID]*entities.Team),
		projects:   make(map[uuid.UUID]*entities.Project),
		sections:   make(map[uuid.UUID]*entities.Section),
		tasks:      make(map[uuid.UUID]*entities.Task),
	}
}

// tick returns a strictly increasing timestamp so created_at tie-breaks are
// deterministic.
func (d *fakeData) tick() time.Time {
	d.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(d.seq) * time.Millisecond)
}

func (d *fakeData) clone() *fakeData {
	c := newFakeData()
	c.seq = d.seq
	for id, u := range d.users {
		v := *u
		c.users[id] = &v
	}
	for id, w := range d.workspaces {
		v := *w
		c.workspaces[id] = &v
	}
	for _, m := range d.memberships {
		v := *m
		c.memberships = append(c.memberships, &v)
	}
	for id, t := range d.teams {
		v := *t
		c.teams[id] = &v
	}
	for id, p := range d.projects {
		v := *p
		c.projects[id] = &v
	}
	for id, s := range d.sections {
		v := *s
		c.sections[id] = &v
	}
	for id, t := range d.tasks {
		v := *t
		c.tasks[id] = &v
	}
	for _, a := range d.assignees {
		v := *a
		c.assignees = append(c.assignees, &v)
	}
	for _, cm := range d.comments {
		v := *cm
		c.comments = append(c.comments, &v)
	}
	for _, n := range d.notifications {
		v := *n
		c.notifications = append(c.notifications, &v)
	}
	for _, e := range d.events {
		v := *e
		c.events = append(c.events, &v)
	}
	return c
}

type fakeStore struct {
	d *fakeData

	// injectable failures for rollback tests
	notifyErr error
	eventErr  error

	membershipLookups int
}

func newFakeStore() *fakeStore {
	return &fakeStore{d: newFakeData()}
}

func (s *fakeStore) Atomic(ctx context.Context, fn func(ports.Repositories) error) error {
	snapshot := s.d.clone()
	if err := fn(s); err != nil {
		*s.d = *snapshot
		return err
	}
	return nil
}

func (s *fakeStore) Users() ports.UserRepository                 { return &fakeUsers{s} }
func (s *fakeStore) Workspaces() ports.WorkspaceRepository       { return &fakeWorkspaces{s} }
func (s *fakeStore) Memberships() ports.MembershipRepository     { return &fakeMemberships{s} }
func (s *fakeStore) Teams() ports.TeamRepository                 { return &fakeTeams{s} }
func (s *fakeStore) Projects() ports.ProjectRepository           { return &fakeProjects{s} }
func (s *fakeStore) Sections() ports.SectionRepository           { return &fakeSections{s} }
func (s *fakeStore) Tasks() ports.TaskRepository                 { return &fakeTasks{s} }
func (s *fakeStore) Comments() ports.CommentRepository           { return &fakeComments{s} }
func (s *fakeStore) Notifications() ports.NotificationRepository { return &fakeNotifications{s} }
func (s *fakeStore) Events() ports.EventLogRepository            { return &fakeEvents{s} }

type fakeUsers struct{ s *fakeStore }

func (r *fakeUsers) Create(ctx context.Context, user *entities.User) error {
	for _, u := range r.s.d.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.d.tick()
	user.UpdatedAt = user.CreatedAt
	v := *user
	r.s.d.users[user.ID] = &v
	return nil
}

func (r *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	v := *u
	return &v, nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.s.d.users {
		if u.Email == email {
			v := *u
			return &v, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

type fakeWorkspaces struct{ s *fakeStore }

func (r *fakeWorkspaces) Create(ctx context.Context, workspace *entities.Workspace) error {
	for _, w := range r.s.d.workspaces {
		if w.Slug == workspace.Slug {
			return entities.ErrSlugTaken
		}
	}
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}
	workspace.CreatedAt = r.s.d.tick()
	workspace.UpdatedAt = workspace.CreatedAt
	v := *workspace
	r.s.d.workspaces[workspace.ID] = &v
	return nil
}

func (r *fakeWorkspaces) GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error) {
	w, ok := r.s.d.workspaces[id]
	if !ok {
		return nil, entities.ErrWorkspaceNotFound
	}
	v := *w
	return &v, nil
}

func (r *fakeWorkspaces) GetBySlug(ctx context.Context, slug string) (*entities.Workspace, error) {
	for _, w := range r.s.d.workspaces {
		if w.Slug == slug {
			v := *w
			return &v, nil
		}
	}
	return nil, entities.ErrWorkspaceNotFound
}

func (r *fakeWorkspaces) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error) {
	var out []*entities.Workspace
	for _, m := range r.s.d.memberships {
		if m.UserID != userID {
			continue
		}
		if w, ok := r.s.d.workspaces[m.WorkspaceID]; ok {
			v := *w
			out = append(out, &v)
		}
	}
	return out, nil
}

type fakeMemberships struct{ s *fakeStore }

func (r *fakeMemberships) Create(ctx context.Context, membership *entities.Membership) error {
	for _, m := range r.s.d.memberships {
		if m.UserID == membership.UserID && m.WorkspaceID == membership.WorkspaceID {
			return entities.ErrConflict
		}
	}
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	membership.CreatedAt = r.s.d.tick()
	v := *membership
	r.s.d.memberships = append(r.s.d.memberships, &v)
	return nil
}

func (r *fakeMemberships) Get(ctx context.Context, userID, workspaceID uuid.UUID) (*entities.Membership, error) {
	r.s.membershipLookups++
	for _, m := range r.s.d.memberships {
		if m.UserID == userID && m.WorkspaceID == workspaceID {
			v := *m
			return &v, nil
		}
	}
	return nil, entities.ErrNotFound
}

func (r *fakeMemberships) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Membership, error) {
	var out []*entities.Membership
	for _, m := range r.s.d.memberships {
		if m.WorkspaceID == workspaceID {
			v := *m
			out = append(out, &v)
		}
	}
	return out, nil
}

type fakeTeams struct{ s *fakeStore }

func (r *fakeTeams) Create(ctx context.Context, team *entities.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.CreatedAt = r.s.d.tick()
	team.UpdatedAt = team.CreatedAt
	v := *team
	r.s.d.teams[team.ID] = &v
	return nil
}

func (r *fakeTeams) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	t, ok := r.s.d.teams[id]
	if !ok {
		return nil, entities.ErrTeamNotFound
	}
	v := *t
	return &v, nil
}

func (r *fakeTeams) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Team, error) {
	var out []*entities.Team
	for _, t := range r.s.d.teams {
		if t.WorkspaceID == workspaceID {
			v := *t
			out = append(out, &v)
		}
	}
	return out, nil
}

type fakeProjects struct{ s *fakeStore }

func (r *fakeProjects) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = r.s.d.tick()
	project.UpdatedAt = project.CreatedAt
	v := *project
	r.s.d.projects[project.ID] = &v
	return nil
}

func (r *fakeProjects) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	p, ok := r.s.d.projects[id]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	v := *p
	return &v, nil
}

func (r *fakeProjects) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Project, error) {
	var out []*entities.Project
	for _, p := range r.s.d.projects {
		if p.WorkspaceID == workspaceID && p.ArchivedAt == nil {
			v := *p
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r *fakeProjects) Update(ctx context.Context, project *entities.Project) error {
	if _, ok := r.s.d.projects[project.ID]; !ok {
		return entities.ErrProjectNotFound
	}
	project.UpdatedAt = r.s.d.tick()
	v := *project
	r.s.d.projects[project.ID] = &v
	return nil
}

func (r *fakeProjects) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	p, ok := r.s.d.projects[id]
	if !ok || p.ArchivedAt != nil {
		return entities.ErrProjectNotFound
	}
	p.ArchivedAt = &at
	return nil
}

type fakeSections struct{ s *fakeStore }

func (r *fakeSections) Create(ctx context.Context, section *entities.Section) error {
	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}
	section.CreatedAt = r.s.d.tick()
	v := *section
	r.s.d.sections[section.ID] = &v
	return nil
}

func (r *fakeSections) GetByID(ctx context.Context, id uuid.UUID) (*entities.Section, error) {
	s, ok := r.s.d.sections[id]
	if !ok {
		return nil, entities.ErrSectionNotFound
	}
	v := *s
	return &v, nil
}

func (r *fakeSections) ListForProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Section, error) {
	var out []*entities.Section
	for _, s := range r.s.d.sections {
		if s.ProjectID == projectID {
			v := *s
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeSections) NextOrder(ctx context.Context, projectID uuid.UUID) (int, error) {
	next := 0
	for _, s := range r.s.d.sections {
		if s.ProjectID == projectID && s.SortOrder+1 > next {
			next = s.SortOrder + 1
		}
	}
	return next, nil
}

type fakeTasks struct{ s *fakeStore }

func (r *fakeTasks) Create(ctx context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = r.s.d.tick()
	task.UpdatedAt = task.CreatedAt
	v := *task
	v.AssigneeIDs = nil
	v.Subtasks = nil
	v.Comments = nil
	r.s.d.tasks[task.ID] = &v
	return nil
}

func (r *fakeTasks) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	t, ok := r.s.d.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	v := *t
	return &v, nil
}

func (r *fakeTasks) Update(ctx context.Context, task *entities.Task) error {
	stored, ok := r.s.d.tasks[task.ID]
	if !ok {
		return entities.ErrTaskNotFound
	}
	task.UpdatedAt = r.s.d.tick()
	v := *task
	v.AssigneeIDs = nil
	v.Subtasks = nil
	v.Comments = nil
	v.CreatedAt = stored.CreatedAt
	r.s.d.tasks[task.ID] = &v
	return nil
}

func (r *fakeTasks) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.d.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.s.d.tasks, id)
	for tid, t := range r.s.d.tasks {
		if t.ParentID != nil && *t.ParentID == id {
			delete(r.s.d.tasks, tid)
		}
	}
	return nil
}

func sameSection(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortTasks(out []*entities.Task) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}

func (r *fakeTasks) ListForScope(ctx context.Context, scope ports.TaskScope) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range r.s.d.tasks {
		if t.ProjectID == scope.ProjectID && t.ParentID == nil && sameSection(t.SectionID, scope.SectionID) {
			v := *t
			out = append(out, &v)
		}
	}
	sortTasks(out)
	return out, nil
}

func (r *fakeTasks) ListSubtasks(ctx context.Context, parentID uuid.UUID) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range r.s.d.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			v := *t
			out = append(out, &v)
		}
	}
	sortTasks(out)
	return out, nil
}

func (r *fakeTasks) NextOrder(ctx context.Context, scope ports.TaskScope) (int, error) {
	next := 0
	for _, t := range r.s.d.tasks {
		if t.ProjectID == scope.ProjectID && sameSection(t.SectionID, scope.SectionID) && t.SortOrder+1 > next {
			next = t.SortOrder + 1
		}
	}
	return next, nil
}

func (r *fakeTasks) Reorder(ctx context.Context, taskID uuid.UUID, order int, sectionID *uuid.UUID) error {
	t, ok := r.s.d.tasks[taskID]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.SortOrder = order
	t.SectionID = sectionID
	t.UpdatedAt = r.s.d.tick()
	return nil
}

func (r *fakeTasks) AddAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	for _, userID := range userIDs {
		exists := false
		for _, a := range r.s.d.assignees {
			if a.TaskID == taskID && a.UserID == userID {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		r.s.d.assignees = append(r.s.d.assignees, &entities.TaskAssignee{
			ID:        uuid.New(),
			TaskID:    taskID,
			UserID:    userID,
			CreatedAt: r.s.d.tick(),
		})
	}
	return nil
}

func (r *fakeTasks) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	kept := r.s.d.assignees[:0]
	for _, a := range r.s.d.assignees {
		if a.TaskID != taskID {
			kept = append(kept, a)
		}
	}
	r.s.d.assignees = kept
	return r.AddAssignees(ctx, taskID, userIDs)
}

func (r *fakeTasks) ListAssignees(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, a := range r.s.d.assignees {
		if a.TaskID == taskID {
			out = append(out, a.UserID)
		}
	}
	return out, nil
}

type fakeComments struct{ s *fakeStore }

func (r *fakeComments) Create(ctx context.Context, comment *entities.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = r.s.d.tick()
	v := *comment
	r.s.d.comments = append(r.s.d.comments, &v)
	return nil
}

func (r *fakeComments) ListForTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Comment, error) {
	var out []*entities.Comment
	for _, c := range r.s.d.comments {
		if c.TaskID == taskID {
			v := *c
			out = append(out, &v)
		}
	}
	return out, nil
}

type fakeNotifications struct{ s *fakeStore }

func (r *fakeNotifications) CreateBatch(ctx context.Context, notifications []*entities.Notification) error {
	if r.s.notifyErr != nil {
		return r.s.notifyErr
	}
	for _, n := range notifications {
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		n.CreatedAt = r.s.d.tick()
		v := *n
		r.s.d.notifications = append(r.s.d.notifications, &v)
	}
	return nil
}

func (r *fakeNotifications) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error) {
	var out []*entities.Notification
	for _, n := range r.s.d.notifications {
		if n.UserID == userID {
			v := *n
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r *fakeNotifications) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range r.s.d.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

type fakeEvents struct{ s *fakeStore }

func (r *fakeEvents) Append(ctx context.Context, event *entities.EventLog) error {
	if r.s.eventErr != nil {
		return r.s.eventErr
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = r.s.d.tick()
	v := *event
	r.s.d.events = append(r.s.d.events, &v)
	return nil
}

func (r *fakeEvents) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.EventLog, error) {
	var out []*entities.EventLog
	for _, e := range r.s.d.events {
		if e.WorkspaceID == workspaceID {
			v := *e
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fixture wires the full service layer onto one fake store.
type fixture struct {
	store *fakeStore

	auth          *AuthService
	workspaces    *WorkspaceService
	projects      *ProjectService
	tasks         *TaskService
	comments      *CommentService
	notifications *NotificationService
}

func newFixture() *fixture {
	store := newFakeStore()
	log := logger.NewNop()
	access := NewAccessResolver(store, log)
	coordinator := NewMutationCoordinator(store, log)

	jwtConfig := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "teamflow-test",
	}

	return &fixture{
		store:         store,
		auth:          NewAuthService(store, jwtConfig, log),
		workspaces:    NewWorkspaceService(store, access, coordinator, log),
		projects:      NewProjectService(store, access, coordinator, log),
		tasks:         NewTaskService(store, access, coordinator, log),
		comments:      NewCommentService(store, access, coordinator, log),
		notifications: NewNotificationService(store),
	}
}

func (f *fixture) addUser(name, email string) *entities.User {
	user := &entities.User{Name: name, Email: email, PasswordHash: "x"}
	if err := f.store.Users().Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

// addWorkspace creates a workspace through the service so the owner
// membership and creation event are in place.
func (f *fixture) addWorkspace(owner uuid.UUID, slug string) *entities.Workspace {
	workspace, err := f.workspaces.CreateWorkspace(context.Background(), owner, ports.CreateWorkspaceRequest{
		Name: slug,
		Slug: slug,
	})
	if err != nil {
		panic(err)
	}
	return workspace
}

func (f *fixture) addMember(userID, workspaceID uuid.UUID) {
	err := f.store.Memberships().Create(context.Background(), &entities.Membership{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        entities.MembershipRoleMember,
	})
	if err != nil {
		panic(err)
	}
}

func (f *fixture) addProject(owner, workspaceID uuid.UUID, name string) *entities.Project {
	project, err := f.projects.CreateProject(context.Background(), owner, workspaceID, ports.CreateProjectRequest{Name: name})
	if err != nil {
		panic(err)
	}
	return project
}

func (f *fixture) eventsOfType(workspaceID uuid.UUID, eventType entities.EventType) []*entities.EventLog {
	events, err := f.store.Events().ListForWorkspace(context.Background(), workspaceID)
	if err != nil {
		panic(err)
	}
	var out []*entities.EventLog
	for _, e := range events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func createTaskRequest(title string) ports.CreateTaskRequest {
	return ports.CreateTaskRequest{Title: title}
}

var errBoom = errors.New("boom")
