package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taskify/internal/domain"
	"taskify/internal/service"
)

// Моки сервисов координатора

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, in)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id uuid.UUID, in service.UpdateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, id, in)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *MockTaskService) ChangeTaskStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	args := m.Called(ctx, id, status)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID) error {
	return m.Called(ctx, id, deletedBy).Error(0)
}

func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	return taskArg(args.Get(0)), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, filters domain.TaskFilters, page service.Page) (service.TaskPage, error) {
	args := m.Called(ctx, filters, page)
	return args.Get(0).(service.TaskPage), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, in service.CreateProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, in)
	return projectArg(args.Get(0)), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, id int, in service.UpdateProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, id, in)
	return projectArg(args.Get(0)), args.Error(1)
}

func (m *MockProjectService) ArchiveProject(ctx context.Context, id int) (*domain.Project, error) {
	args := m.Called(ctx, id)
	return projectArg(args.Get(0)), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, id int, deletedBy *uuid.UUID) error {
	return m.Called(ctx, id, deletedBy).Error(0)
}

func (m *MockProjectService) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	args := m.Called(ctx, id)
	return projectArg(args.Get(0)), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Project), args.Error(1)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) InviteMember(ctx context.Context, in service.InviteMemberInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamService) UpdateMember(ctx context.Context, id uuid.UUID, in service.UpdateMemberInput) (*domain.User, error) {
	args := m.Called(ctx, id, in)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamService) RemoveTeamMember(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTeamService) AssignProject(ctx context.Context, userID uuid.UUID, projectID int) (service.ProjectAssignment, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Get(0).(service.ProjectAssignment), args.Error(1)
}

func (m *MockTeamService) UnassignProject(ctx context.Context, userID uuid.UUID, projectID int) (*domain.User, error) {
	args := m.Called(ctx, userID, projectID)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamService) AssignTask(ctx context.Context, taskID, userID uuid.UUID) (service.TaskAssignment, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(service.TaskAssignment), args.Error(1)
}

func (m *MockTeamService) UnassignTask(ctx context.Context, taskID uuid.UUID) (service.TaskAssignment, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(service.TaskAssignment), args.Error(1)
}

func (m *MockTeamService) GetMember(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamService) ListMembers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.User), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterMember(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	return userArg(args.Get(0)), args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func taskArg(v interface{}) *domain.Task {
	if v == nil {
		return nil
	}
	return v.(*domain.Task)
}

func projectArg(v interface{}) *domain.Project {
	if v == nil {
		return nil
	}
	return v.(*domain.Project)
}

func userArg(v interface{}) *domain.User {
	if v == nil {
		return nil
	}
	return v.(*domain.User)
}
