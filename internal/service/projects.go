package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskify/internal/domain"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Color       string
	MemberIDs   []uuid.UUID
}

// UpdateProjectInput replaces the project details. Status and MemberIDs are
// optional; a non-nil MemberIDs replaces the whole roster.
type UpdateProjectInput struct {
	Name        string
	Description string
	Color       string
	Status      *domain.ProjectStatus
	MemberIDs   *[]uuid.UUID
}

func loadProject(ctx context.Context, uow UnitOfWork, id int) (*domain.Project, error) {
	p, err := uow.Projects().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("Project", id)
	}
	return p, nil
}

// CreateProject skips member ids that do not resolve to a user. An empty
// color falls back to domain.DefaultProjectColor.
func (c *Coordinator) CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	if strings.TrimSpace(in.Color) == "" {
		in.Color = domain.DefaultProjectColor
	}
	var project *domain.Project
	err := c.execute(ctx, "CreateProject", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		project, err = domain.NewProject(in.Name, in.Description, in.Color)
		if err != nil {
			return err
		}
		for _, id := range in.MemberIDs {
			u, err := uow.Users().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				c.log.Debug("skipping unknown project member", "user_id", id)
				continue
			}
			if err := project.AssignUser(u); err != nil {
				return err
			}
		}
		if err := uow.Projects().Create(ctx, project); err != nil {
			return err
		}
		cs.track(project)
		return c.recordActivity(ctx, uow, domain.ActivityProjectCreated, "Project created",
			"Project '"+project.Name()+"' was created")
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("project created", "project_id", project.ID(), "members", len(project.MemberIDs()))
	return project, nil
}

func (c *Coordinator) UpdateProject(ctx context.Context, id int, in UpdateProjectInput) (*domain.Project, error) {
	var project *domain.Project
	err := c.execute(ctx, "UpdateProject", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		if project, err = loadProject(ctx, uow, id); err != nil {
			return err
		}
		if err := project.UpdateDetails(in.Name, in.Description, in.Color); err != nil {
			return err
		}
		if in.Status != nil {
			if err := project.ChangeStatus(*in.Status); err != nil {
				return err
			}
		}
		if in.MemberIDs != nil {
			if err := c.replaceRoster(ctx, uow, project, *in.MemberIDs); err != nil {
				return err
			}
		}
		if err := uow.Projects().Update(ctx, project); err != nil {
			return err
		}
		cs.track(project)
		return c.recordActivity(ctx, uow, domain.ActivityProjectUpdated, "Project updated",
			"Project '"+project.Name()+"' was updated")
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("project updated", "project_id", id)
	return project, nil
}

// replaceRoster swaps the roster for ids. Dropping a member who still has
// incomplete tasks in the project is refused; unknown ids are skipped.
func (c *Coordinator) replaceRoster(ctx context.Context, uow UnitOfWork, project *domain.Project, ids []uuid.UUID) error {
	keep := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	pid := project.ID()
	for _, member := range project.MemberIDs() {
		if keep[member] {
			continue
		}
		n, err := uow.Tasks().CountIncomplete(ctx, member, &pid)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.InvalidOperation("cannot remove user %s from project %d while they have incomplete tasks", member, pid)
		}
	}

	project.ClearAssignedUsers()
	for _, id := range ids {
		u, err := uow.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			continue
		}
		if err := project.AssignUser(u); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) ArchiveProject(ctx context.Context, id int) (*domain.Project, error) {
	var project *domain.Project
	err := c.execute(ctx, "ArchiveProject", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		if project, err = loadProject(ctx, uow, id); err != nil {
			return err
		}
		project.Archive()
		if err := uow.Projects().Update(ctx, project); err != nil {
			return err
		}
		cs.track(project)
		return c.recordActivity(ctx, uow, domain.ActivityProjectUpdated, "Project archived",
			"Project '"+project.Name()+"' was archived")
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("project archived", "project_id", id)
	return project, nil
}

// DeleteProject removes the project together with its tasks. Each cascaded
// task queues TaskDeleted.
func (c *Coordinator) DeleteProject(ctx context.Context, id int, deletedBy *uuid.UUID) error {
	var removed int
	err := c.execute(ctx, "DeleteProject", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		project, err := loadProject(ctx, uow, id)
		if err != nil {
			return err
		}
		for _, t := range project.Tasks() {
			t.Delete(deletedBy)
			cs.track(t)
		}
		removed = len(project.Tasks())
		if err := uow.Projects().Delete(ctx, id); err != nil {
			return err
		}
		return c.recordActivity(ctx, uow, domain.ActivityProjectDeleted, "Project deleted",
			"Project '"+project.Name()+"' was deleted")
	})
	if err != nil {
		return err
	}
	c.log.Info("project deleted", "project_id", id, "tasks_removed", removed)
	return nil
}

func (c *Coordinator) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	var project *domain.Project
	err := c.query(ctx, "GetProject", func(ctx context.Context, uow UnitOfWork) error {
		var err error
		project, err = loadProject(ctx, uow, id)
		return err
	})
	return project, err
}

func (c *Coordinator) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	err := c.query(ctx, "ListProjects", func(ctx context.Context, uow UnitOfWork) error {
		var err error
		out, err = uow.Projects().List(ctx)
		return err
	})
	return out, err
}
