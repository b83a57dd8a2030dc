package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"taskify/internal/domain"
	"taskify/internal/logger"
	"taskify/internal/service"
)

func setup(t *testing.T) (*service.Coordinator, *memStore, *recordingDispatcher) {
	t.Helper()
	store := newMemStore()
	disp := &recordingDispatcher{}
	c := service.NewCoordinator(store, logger.Nop(),
		service.WithDispatcher(disp),
		service.WithPasswordHasher(plainHasher{}),
	)
	return c, store, disp
}

func invite(t *testing.T, c *service.Coordinator, name, email string) *domain.User {
	t.Helper()
	u, err := c.InviteMember(context.Background(), service.InviteMemberInput{
		Name: name, Email: email, Role: domain.RoleMember, Position: domain.PositionTeamMember,
	})
	require.NoError(t, err)
	return u
}

func createProject(t *testing.T, c *service.Coordinator, name string, members ...uuid.UUID) *domain.Project {
	t.Helper()
	p, err := c.CreateProject(context.Background(), service.CreateProjectInput{
		Name: name, Color: "#6366F1", MemberIDs: members,
	})
	require.NoError(t, err)
	return p
}

func createTask(t *testing.T, c *service.Coordinator, title string, projectID int, assignee *uuid.UUID) *domain.Task {
	t.Helper()
	task, err := c.CreateTask(context.Background(), service.CreateTaskInput{
		Title: title, Priority: domain.PriorityMedium, Status: domain.StatusTodo,
		ProjectID: projectID, AssigneeID: assignee,
	})
	require.NoError(t, err)
	return task
}

func TestLifecycle_AssignCompleteAndRemoveMember(t *testing.T) {
	ctx := context.Background()
	c, _, disp := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website", u.ID())
	task := createTask(t, c, "Landing page", p.ID(), nil)
	disp.reset()

	res, err := c.AssignTask(ctx, task.ID(), u.ID())
	require.NoError(t, err)
	assert.True(t, res.Task.IsAssignedTo(u.ID()))
	assert.Equal(t, "Successfully assigned task 'Landing page' to Ann", res.Message)

	_, err = c.ChangeTaskStatus(ctx, task.ID(), domain.StatusInProgress)
	require.NoError(t, err)
	done, err := c.ChangeTaskStatus(ctx, task.ID(), domain.StatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, done.CompletedAt())

	require.NoError(t, c.RemoveTeamMember(ctx, u.ID()))

	assert.Equal(t, []string{
		"TaskAssigned", "TaskStatusChanged", "TaskStatusChanged", "TaskCompleted", "TeamMemberRemoved",
	}, disp.names())
	_, err = c.GetMember(ctx, u.ID())
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	got, err := c.GetTask(ctx, task.ID())
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID(), "completed task keeps history without the removed assignee")
}

func TestAssignTask_RequiresProjectMembership(t *testing.T) {
	ctx := context.Background()
	c, _, disp := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website")
	task := createTask(t, c, "Landing page", p.ID(), nil)
	disp.reset()

	_, err := c.AssignTask(ctx, task.ID(), u.ID())

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidOperation))
	assert.Empty(t, disp.events)
	got, err := c.GetTask(ctx, task.ID())
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID())
}

func TestAssignTask_AfterAssignProject(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website")
	task := createTask(t, c, "Landing page", p.ID(), nil)

	res, err := c.AssignProject(ctx, u.ID(), p.ID())
	require.NoError(t, err)
	assert.True(t, res.Project.HasMember(u.ID()))

	_, err = c.AssignTask(ctx, task.ID(), u.ID())
	assert.NoError(t, err)
}

func TestAssignTask_NotFound(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website", u.ID())
	task := createTask(t, c, "Landing page", p.ID(), nil)

	_, err := c.AssignTask(ctx, uuid.New(), u.ID())
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	_, err = c.AssignTask(ctx, task.ID(), uuid.New())
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestRemoveTeamMember_BlockedByIncompleteTask(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website", u.ID())
	id := u.ID()
	createTask(t, c, "Landing page", p.ID(), &id)

	err := c.RemoveTeamMember(ctx, u.ID())

	assert.True(t, domain.IsCode(err, domain.CodeInvalidOperation))
	_, err = c.GetMember(ctx, u.ID())
	assert.NoError(t, err)
}

func TestUnassignProject_OnlyBlockedByTasksInThatProject(t *testing.T) {
	ctx := context.Background()
	c, _, disp := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	busy := createProject(t, c, "Busy", u.ID())
	idle := createProject(t, c, "Idle", u.ID())
	id := u.ID()
	createTask(t, c, "Open work", busy.ID(), &id)
	disp.reset()

	_, err := c.UnassignProject(ctx, u.ID(), busy.ID())
	assert.True(t, domain.IsCode(err, domain.CodeInvalidOperation))

	updated, err := c.UnassignProject(ctx, u.ID(), idle.ID())
	require.NoError(t, err)
	assert.Equal(t, []int{busy.ID()}, updated.ProjectIDs())
	assert.Equal(t, []string{"TeamMemberProjectUnassigned"}, disp.names())
}

func TestCreateTask_Rules(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)
	p := createProject(t, c, "Website")
	other := createProject(t, c, "Mobile")
	createTask(t, c, "Landing Page", p.ID(), nil)
	ghost := uuid.New()
	past := time.Now().UTC().Add(-48 * time.Hour)

	cases := []struct {
		name string
		in   service.CreateTaskInput
		code domain.ErrorCode
	}{
		{"unknown project", service.CreateTaskInput{Title: "x", ProjectID: 99}, domain.CodeNotFound},
		{"unknown assignee", service.CreateTaskInput{Title: "x", ProjectID: p.ID(), AssigneeID: &ghost}, domain.CodeNotFound},
		{"duplicate title ignores case", service.CreateTaskInput{Title: "landing page", ProjectID: p.ID()}, domain.CodeValidation},
		{"past due date", service.CreateTaskInput{Title: "late", ProjectID: p.ID(), DueDate: &past}, domain.CodeValidation},
		{"empty title", service.CreateTaskInput{Title: " ", ProjectID: p.ID()}, domain.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.CreateTask(ctx, tc.in)
			assert.Equal(t, tc.code, domain.CodeOf(err), "got %v", err)
		})
	}

	_, err := c.CreateTask(ctx, service.CreateTaskInput{Title: "Landing Page", ProjectID: other.ID()})
	assert.NoError(t, err, "same title in another project is allowed")
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	c, store, disp := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website", u.ID())
	createTask(t, c, "Existing", p.ID(), nil)
	uid := u.ID()
	task := createTask(t, c, "Draft", p.ID(), &uid)
	disp.reset()

	t.Run("duplicate title", func(t *testing.T) {
		title := "EXISTING"
		_, err := c.UpdateTask(ctx, task.ID(), service.UpdateTaskInput{Title: &title})
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("own title is not a duplicate", func(t *testing.T) {
		title, prio := "Draft", domain.PriorityUrgent
		got, err := c.UpdateTask(ctx, task.ID(), service.UpdateTaskInput{Title: &title, Priority: &prio})
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityUrgent, got.Priority())
	})

	t.Run("failure rolls back every change", func(t *testing.T) {
		status := domain.StatusInProgress
		past := time.Now().UTC().Add(-72 * time.Hour)
		_, err := c.UpdateTask(ctx, task.ID(), service.UpdateTaskInput{Status: &status, DueDate: &past})
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
		assert.Equal(t, domain.StatusTodo, store.tasks[task.ID()].Status)
	})

	t.Run("clear assignee", func(t *testing.T) {
		disp.reset()
		got, err := c.UpdateTask(ctx, task.ID(), service.UpdateTaskInput{ClearAssignee: true})
		require.NoError(t, err)
		assert.Nil(t, got.AssigneeID())
		assert.Equal(t, []string{"TaskUnassigned"}, disp.names())
	})

	t.Run("unknown project", func(t *testing.T) {
		pid := 404
		_, err := c.UpdateTask(ctx, task.ID(), service.UpdateTaskInput{ProjectID: &pid})
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := c.UpdateTask(ctx, uuid.New(), service.UpdateTaskInput{})
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})
}

func TestChangeTaskStatus_InvalidTransitionDispatchesNothing(t *testing.T) {
	c, _, disp := setup(t)
	p := createProject(t, c, "Website")
	task := createTask(t, c, "Draft", p.ID(), nil)
	disp.reset()

	_, err := c.ChangeTaskStatus(context.Background(), task.ID(), domain.StatusReview)

	assert.True(t, domain.IsCode(err, domain.CodeInvalidTransition))
	assert.Empty(t, disp.events)
}

func TestCommitFailure_DispatchesNothing(t *testing.T) {
	c, store, disp := setup(t)
	p := createProject(t, c, "Website")
	disp.reset()
	store.failCommit = errors.New("connection reset")

	_, err := c.CreateTask(context.Background(), service.CreateTaskInput{Title: "x", ProjectID: p.ID()})

	assert.EqualError(t, err, "connection reset")
	assert.Empty(t, disp.events)
	assert.Empty(t, store.tasks)
}

func TestDispatchFailure_DoesNotFailCommand(t *testing.T) {
	c, store, disp := setup(t)
	p := createProject(t, c, "Website")
	disp.err = errors.New("redis down")

	task, err := c.CreateTask(context.Background(), service.CreateTaskInput{Title: "x", ProjectID: p.ID()})

	require.NoError(t, err)
	assert.Contains(t, store.tasks, task.ID())
}

func TestUnassignTask(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website", u.ID())
	task := createTask(t, c, "Draft", p.ID(), nil)

	_, err := c.UnassignTask(ctx, task.ID())
	assert.True(t, domain.IsCode(err, domain.CodeInvalidOperation))

	_, err = c.AssignTask(ctx, task.ID(), u.ID())
	require.NoError(t, err)
	res, err := c.UnassignTask(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, "Successfully unassigned task 'Draft' from Ann", res.Message)
	assert.Nil(t, res.Task.AssigneeID())
}

func TestInviteMember_DuplicateEmail(t *testing.T) {
	c, _, _ := setup(t)
	invite(t, c, "Ann", "ann@example.com")

	_, err := c.InviteMember(context.Background(), service.InviteMemberInput{Name: "Other", Email: "ANN@example.com"})

	assert.True(t, domain.IsCode(err, domain.CodeAlreadyExists))
}

func TestUpdateMember_EmitsEveryChange(t *testing.T) {
	c, _, disp := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	disp.reset()
	dept := "Platform"

	got, err := c.UpdateMember(context.Background(), u.ID(), service.UpdateMemberInput{
		Name: "Ann", Role: domain.RoleAdmin, Position: domain.PositionTeamMember, Department: &dept,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role())
	assert.Equal(t, []string{
		"TeamMemberProfileUpdated", "TeamMemberRoleChanged", "TeamMemberPositionChanged", "TeamMemberDepartmentChanged",
	}, disp.names())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)

	u, err := c.RegisterMember(ctx, service.RegisterInput{Name: "Bob", Email: "Bob@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret1", u.PasswordHash())

	got, err := c.Authenticate(ctx, "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())

	_, err = c.Authenticate(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = c.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = c.RegisterMember(ctx, service.RegisterInput{Name: "Bob", Email: "x@example.com", Password: "123"})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestCreateProject_SkipsUnknownMembers(t *testing.T) {
	c, store, _ := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")

	p := createProject(t, c, "Website", u.ID(), uuid.New(), u.ID())

	assert.Equal(t, []uuid.UUID{u.ID()}, p.MemberIDs())
	require.Len(t, store.activities, 1)
	assert.Equal(t, domain.ActivityProjectCreated, store.activities[0].Type)
}

func TestCreateProject_DefaultsColor(t *testing.T) {
	c, _, _ := setup(t)

	p, err := c.CreateProject(context.Background(), service.CreateProjectInput{Name: "NoColor"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProjectColor, p.Color())

	_, err = c.CreateProject(context.Background(), service.CreateProjectInput{Name: "BadColor", Color: "red"})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestUpdateProject_RosterReplacement(t *testing.T) {
	ctx := context.Background()
	c, _, _ := setup(t)
	ann := invite(t, c, "Ann", "ann@example.com")
	bob := invite(t, c, "Bob", "bob@example.com")
	p := createProject(t, c, "Website", ann.ID(), bob.ID())
	annID := ann.ID()
	createTask(t, c, "Open work", p.ID(), &annID)

	onlyBob := []uuid.UUID{bob.ID()}
	_, err := c.UpdateProject(ctx, p.ID(), service.UpdateProjectInput{
		Name: "Website", Color: "#fff", MemberIDs: &onlyBob,
	})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidOperation))

	onlyAnn := []uuid.UUID{ann.ID()}
	status := domain.ProjectOnHold
	got, err := c.UpdateProject(ctx, p.ID(), service.UpdateProjectInput{
		Name: "Website v2", Color: "#fff", Status: &status, MemberIDs: &onlyAnn,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ann.ID()}, got.MemberIDs())
	assert.Equal(t, domain.ProjectOnHold, got.Status())

	member, err := c.GetMember(ctx, bob.ID())
	require.NoError(t, err)
	assert.False(t, member.IsMemberOf(p.ID()))
}

func TestDeleteProject_CascadesTasks(t *testing.T) {
	ctx := context.Background()
	c, store, disp := setup(t)
	p := createProject(t, c, "Website")
	createTask(t, c, "One", p.ID(), nil)
	createTask(t, c, "Two", p.ID(), nil)
	disp.reset()

	require.NoError(t, c.DeleteProject(ctx, p.ID(), nil))

	assert.Equal(t, []string{"TaskDeleted", "TaskDeleted"}, disp.names())
	assert.Empty(t, store.tasks)
	_, err := c.GetProject(ctx, p.ID())
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestArchiveProject(t *testing.T) {
	c, _, _ := setup(t)
	p := createProject(t, c, "Website")

	got, err := c.ArchiveProject(context.Background(), p.ID())

	require.NoError(t, err)
	assert.Equal(t, domain.ProjectArchived, got.Status())
}

func TestListTasks_Paginates(t *testing.T) {
	c, _, _ := setup(t)
	p := createProject(t, c, "Website")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		createTask(t, c, title, p.ID(), nil)
	}

	page, err := c.ListTasks(context.Background(), domain.NewTaskFilters(domain.WithProject(p.ID())),
		service.Page{Number: 2, Size: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].Title())
}

func TestPage_Normalize(t *testing.T) {
	p := service.Page{Number: 0, Size: 1000, SortBy: "bogus"}.Normalize()

	assert.Equal(t, service.Page{Number: 1, Size: service.MaxPageSize, SortBy: service.SortCreatedAt, Desc: true}, p)
	assert.Equal(t, 40, service.Page{Number: 3, Size: 20}.Offset())
}

func TestRecentActivity(t *testing.T) {
	c, _, _ := setup(t)
	createProject(t, c, "One")
	createProject(t, c, "Two")

	got, err := c.RecentActivity(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Project 'Two' was created", got[0].Description)
}

func TestCommandSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	c, _, _ := setup(t)
	u := invite(t, c, "Ann", "ann@example.com")
	p := createProject(t, c, "Website")
	task := createTask(t, c, "Draft", p.ID(), nil)
	exporter.Reset()

	_, err := c.AssignTask(context.Background(), task.ID(), u.ID())
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "coordinator.AssignTask", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}
