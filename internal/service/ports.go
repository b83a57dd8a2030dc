package service

import (
	"context"

	"github.com/google/uuid"

	"taskify/internal/domain"
)

// Repositories return (nil, nil) when a row does not exist.

type TaskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	// TitleExists compares titles case-insensitively within one project.
	// excludeID skips the task being renamed.
	TitleExists(ctx context.Context, projectID int, title string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, filters domain.TaskFilters, page Page) ([]*domain.Task, int64, error)
	ListByProject(ctx context.Context, projectID int) ([]*domain.Task, error)
	// CountIncomplete counts tasks assigned to userID whose status is not
	// Completed, optionally limited to one project.
	CountIncomplete(ctx context.Context, userID uuid.UUID, projectID *int) (int64, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectRepository interface {
	// FindByID loads the project with its tasks and roster.
	FindByID(ctx context.Context, id int) (*domain.Project, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Create inserts the project and assigns its id.
	Create(ctx context.Context, project *domain.Project) error
	// Update persists fields and replaces the roster.
	Update(ctx context.Context, project *domain.Project) error
	// Delete removes the project, its tasks and its roster rows.
	Delete(ctx context.Context, id int) error
}

type UserRepository interface {
	// FindByID loads the user with its project roster.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Update persists fields and replaces the user's project roster.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}

// UnitOfWork groups repositories that share one transaction.
type UnitOfWork interface {
	Tasks() TaskRepository
	Projects() ProjectRepository
	Users() UserRepository
	Activities() ActivityRepository
}

// Store is the persistence port. Reads may go through the embedded
// UnitOfWork directly; writes run inside InTx and commit or roll back as one.
type Store interface {
	UnitOfWork
	InTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// EventDispatcher receives the events drained from aggregates after commit.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []domain.Event) error
}

// PasswordHasher hides the hashing scheme from the coordinator.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
