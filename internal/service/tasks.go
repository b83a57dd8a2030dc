package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskify/internal/domain"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	ProjectID   int
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// UpdateTaskInput is a partial update: nil fields are left as they are.
// ClearAssignee removes the assignee when AssigneeID is nil.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *domain.TaskPriority
	Status        *domain.TaskStatus
	ProjectID     *int
	AssigneeID    *uuid.UUID
	ClearAssignee bool
	DueDate       *time.Time
}

func duplicateTitle() error {
	return domain.ValidationError("title", "a task with this title already exists in the project")
}

func loadTask(ctx context.Context, uow UnitOfWork, id uuid.UUID) (*domain.Task, error) {
	task, err := uow.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NotFound("Task", id)
	}
	return task, nil
}

func requireProject(ctx context.Context, uow UnitOfWork, id int) error {
	ok, err := uow.Projects().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("Project", id)
	}
	return nil
}

func requireUser(ctx context.Context, uow UnitOfWork, id uuid.UUID) error {
	ok, err := uow.Users().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("User", id)
	}
	return nil
}

func (c *Coordinator) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	var task *domain.Task
	err := c.execute(ctx, "CreateTask", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		if err := requireProject(ctx, uow, in.ProjectID); err != nil {
			return err
		}
		if in.AssigneeID != nil {
			if err := requireUser(ctx, uow, *in.AssigneeID); err != nil {
				return err
			}
		}
		dup, err := uow.Tasks().TitleExists(ctx, in.ProjectID, strings.TrimSpace(in.Title), nil)
		if err != nil {
			return err
		}
		if dup {
			return duplicateTitle()
		}

		task, err = domain.NewTask(in.Title, in.Description, in.Priority, in.Status, in.ProjectID, in.AssigneeID, in.DueDate)
		if err != nil {
			return err
		}
		if err := uow.Tasks().Create(ctx, task); err != nil {
			return err
		}
		cs.track(task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("task created", "task_id", task.ID(), "project_id", task.ProjectID())
	return task, nil
}

// UpdateTask applies the changes in the order project, assignee, status,
// due date, details, so the queued events follow that order too.
func (c *Coordinator) UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (*domain.Task, error) {
	var task *domain.Task
	err := c.execute(ctx, "UpdateTask", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		task, err = loadTask(ctx, uow, id)
		if err != nil {
			return err
		}

		targetProject := task.ProjectID()
		if in.ProjectID != nil {
			if err := requireProject(ctx, uow, *in.ProjectID); err != nil {
				return err
			}
			targetProject = *in.ProjectID
		}
		if in.AssigneeID != nil {
			if err := requireUser(ctx, uow, *in.AssigneeID); err != nil {
				return err
			}
		}

		title := task.Title()
		if in.Title != nil {
			title = strings.TrimSpace(*in.Title)
		}
		if title != task.Title() || targetProject != task.ProjectID() {
			dup, err := uow.Tasks().TitleExists(ctx, targetProject, title, &id)
			if err != nil {
				return err
			}
			if dup {
				return duplicateTitle()
			}
		}

		if targetProject != task.ProjectID() {
			if err := task.ChangeProject(targetProject); err != nil {
				return err
			}
		}
		switch {
		case in.AssigneeID != nil:
			if err := task.AssignTo(*in.AssigneeID); err != nil {
				return err
			}
		case in.ClearAssignee:
			task.UnassignTask()
		}
		if in.Status != nil {
			if err := task.UpdateStatus(*in.Status); err != nil {
				return err
			}
		}
		if in.DueDate != nil {
			if err := task.SetDueDate(*in.DueDate); err != nil {
				return err
			}
		}
		if in.Title != nil || in.Description != nil || in.Priority != nil {
			desc, prio := task.Description(), task.Priority()
			if in.Description != nil {
				desc = *in.Description
			}
			if in.Priority != nil {
				prio = *in.Priority
			}
			if err := task.UpdateDetails(title, desc, prio); err != nil {
				return err
			}
		}

		if err := uow.Tasks().Update(ctx, task); err != nil {
			return err
		}
		cs.track(task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("task updated", "task_id", id)
	return task, nil
}

func (c *Coordinator) ChangeTaskStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	var task *domain.Task
	err := c.execute(ctx, "ChangeTaskStatus", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		if task, err = loadTask(ctx, uow, id); err != nil {
			return err
		}
		if err := task.UpdateStatus(status); err != nil {
			return err
		}
		if err := uow.Tasks().Update(ctx, task); err != nil {
			return err
		}
		cs.track(task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("task status changed", "task_id", id, "status", status.String())
	return task, nil
}

func (c *Coordinator) DeleteTask(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID) error {
	err := c.execute(ctx, "DeleteTask", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		task, err := loadTask(ctx, uow, id)
		if err != nil {
			return err
		}
		task.Delete(deletedBy)
		if err := uow.Tasks().Delete(ctx, id); err != nil {
			return err
		}
		cs.track(task)
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info("task deleted", "task_id", id)
	return nil
}

// AssignTask requires the user to already be on the roster of the task's project.
func (c *Coordinator) AssignTask(ctx context.Context, taskID, userID uuid.UUID) (TaskAssignment, error) {
	var res TaskAssignment
	err := c.execute(ctx, "AssignTask", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		task, err := loadTask(ctx, uow, taskID)
		if err != nil {
			return err
		}
		user, err := loadUser(ctx, uow, userID)
		if err != nil {
			return err
		}
		if !user.IsMemberOf(task.ProjectID()) {
			return domain.InvalidOperation(
				"user %s is not assigned to project %d; users must be assigned to a project before being assigned to its tasks",
				user.Name(), task.ProjectID())
		}
		if err := task.AssignTo(user.ID()); err != nil {
			return err
		}
		if err := uow.Tasks().Update(ctx, task); err != nil {
			return err
		}
		cs.track(task)
		res = TaskAssignment{
			Task:    task,
			Member:  user,
			Message: "Successfully assigned task '" + task.Title() + "' to " + user.Name(),
		}
		return nil
	})
	if err != nil {
		return TaskAssignment{}, err
	}
	c.log.Info("task assigned", "task_id", taskID, "user_id", userID)
	return res, nil
}

func (c *Coordinator) UnassignTask(ctx context.Context, taskID uuid.UUID) (TaskAssignment, error) {
	var res TaskAssignment
	err := c.execute(ctx, "UnassignTask", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		task, err := loadTask(ctx, uow, taskID)
		if err != nil {
			return err
		}
		prev := task.AssigneeID()
		if prev == nil {
			return domain.InvalidOperation("task is not currently assigned to anyone")
		}
		name := "Unknown"
		if u, err := uow.Users().FindByID(ctx, *prev); err != nil {
			return err
		} else if u != nil {
			name = u.Name()
		}

		task.UnassignTask()
		if err := uow.Tasks().Update(ctx, task); err != nil {
			return err
		}
		cs.track(task)
		res = TaskAssignment{
			Task:    task,
			Message: "Successfully unassigned task '" + task.Title() + "' from " + name,
		}
		return nil
	})
	if err != nil {
		return TaskAssignment{}, err
	}
	c.log.Info("task unassigned", "task_id", taskID)
	return res, nil
}

type TaskAssignment struct {
	Task    *domain.Task
	Member  *domain.User
	Message string
}

func (c *Coordinator) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task *domain.Task
	err := c.query(ctx, "GetTask", func(ctx context.Context, uow UnitOfWork) error {
		var err error
		task, err = loadTask(ctx, uow, id)
		return err
	})
	return task, err
}

func (c *Coordinator) ListTasks(ctx context.Context, filters domain.TaskFilters, page Page) (TaskPage, error) {
	page = page.Normalize()
	var out TaskPage
	err := c.query(ctx, "ListTasks", func(ctx context.Context, uow UnitOfWork) error {
		items, total, err := uow.Tasks().List(ctx, filters, page)
		if err != nil {
			return err
		}
		out = newTaskPage(items, total, page)
		return nil
	})
	return out, err
}
