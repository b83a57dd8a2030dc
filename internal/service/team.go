package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"taskify/internal/domain"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type InviteMemberInput struct {
	Name       string
	Email      string
	Role       domain.UserRole
	Position   domain.Position
	Department *string
	Avatar     *string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateMemberInput replaces every editable field. Each one queues its own
// change event even when the value is unchanged.
type UpdateMemberInput struct {
	Name       string
	Avatar     *string
	Role       domain.UserRole
	Position   domain.Position
	Department *string
}

type ProjectAssignment struct {
	Member  *domain.User
	Project *domain.Project
	Message string
}

func loadUser(ctx context.Context, uow UnitOfWork, id uuid.UUID) (*domain.User, error) {
	u, err := uow.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User", id)
	}
	return u, nil
}

func ensureEmailFree(ctx context.Context, uow UnitOfWork, email string) error {
	existing, err := uow.Users().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.AlreadyExists("user with email", email)
	}
	return nil
}

func (c *Coordinator) InviteMember(ctx context.Context, in InviteMemberInput) (*domain.User, error) {
	var user *domain.User
	err := c.execute(ctx, "InviteMember", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		if err := ensureEmailFree(ctx, uow, in.Email); err != nil {
			return err
		}
		var err error
		user, err = domain.NewUser(in.Name, in.Email, in.Role, in.Position, in.Department, in.Avatar)
		if err != nil {
			return err
		}
		if err := uow.Users().Create(ctx, user); err != nil {
			return err
		}
		cs.track(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("team member invited", "user_id", user.ID())
	return user, nil
}

// RegisterMember creates a self-registered member with a password.
func (c *Coordinator) RegisterMember(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if c.hasher == nil {
		return nil, errors.New("password hasher not configured")
	}
	if len(in.Password) < 6 {
		return nil, domain.ValidationError("password", "must be at least 6 characters")
	}
	var user *domain.User
	err := c.execute(ctx, "RegisterMember", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		if err := ensureEmailFree(ctx, uow, in.Email); err != nil {
			return err
		}
		hash, err := c.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		user, err = domain.NewUserWithPassword(in.Name, in.Email, hash, domain.RoleMember, domain.PositionTeamMember)
		if err != nil {
			return err
		}
		if err := uow.Users().Create(ctx, user); err != nil {
			return err
		}
		cs.track(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("team member registered", "user_id", user.ID())
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email, a member
// without a password, or a wrong password alike.
func (c *Coordinator) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if c.hasher == nil {
		return nil, errors.New("password hasher not configured")
	}
	var user *domain.User
	err := c.query(ctx, "Authenticate", func(ctx context.Context, uow UnitOfWork) error {
		u, err := uow.Users().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			return err
		}
		if u == nil || u.PasswordHash() == "" || !c.hasher.Compare(u.PasswordHash(), password) {
			return ErrInvalidCredentials
		}
		user = u
		return nil
	})
	return user, err
}

func (c *Coordinator) UpdateMember(ctx context.Context, id uuid.UUID, in UpdateMemberInput) (*domain.User, error) {
	var user *domain.User
	err := c.execute(ctx, "UpdateMember", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		if user, err = loadUser(ctx, uow, id); err != nil {
			return err
		}
		if err := user.UpdateProfile(in.Name, in.Avatar); err != nil {
			return err
		}
		if err := user.ChangeRole(in.Role); err != nil {
			return err
		}
		if err := user.UpdatePosition(in.Position); err != nil {
			return err
		}
		if err := user.UpdateDepartment(in.Department); err != nil {
			return err
		}
		if err := uow.Users().Update(ctx, user); err != nil {
			return err
		}
		cs.track(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("team member updated", "user_id", id)
	return user, nil
}

// RemoveTeamMember refuses while the user has any incomplete task assigned.
// Completed tasks keep their history and lose the assignee.
func (c *Coordinator) RemoveTeamMember(ctx context.Context, id uuid.UUID) error {
	err := c.execute(ctx, "RemoveTeamMember", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		user, err := loadUser(ctx, uow, id)
		if err != nil {
			return err
		}
		n, err := uow.Tasks().CountIncomplete(ctx, id, nil)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.InvalidOperation("cannot remove team member with assigned incomplete tasks")
		}
		user.MarkRemoved()
		if err := uow.Users().Delete(ctx, id); err != nil {
			return err
		}
		cs.track(user)
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info("team member removed", "user_id", id)
	return nil
}

func (c *Coordinator) AssignProject(ctx context.Context, userID uuid.UUID, projectID int) (ProjectAssignment, error) {
	var res ProjectAssignment
	err := c.execute(ctx, "AssignProject", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		user, err := loadUser(ctx, uow, userID)
		if err != nil {
			return err
		}
		project, err := loadProject(ctx, uow, projectID)
		if err != nil {
			return err
		}
		if err := user.AssignToProject(project); err != nil {
			return err
		}
		if err := project.AssignUser(user); err != nil {
			return err
		}
		if err := uow.Users().Update(ctx, user); err != nil {
			return err
		}
		cs.track(user)
		res = ProjectAssignment{
			Member:  user,
			Project: project,
			Message: "Successfully assigned " + user.Name() + " to " + project.Name(),
		}
		return nil
	})
	if err != nil {
		return ProjectAssignment{}, err
	}
	c.log.Info("member assigned to project", "user_id", userID, "project_id", projectID)
	return res, nil
}

// UnassignProject refuses while the user has incomplete tasks in that project.
func (c *Coordinator) UnassignProject(ctx context.Context, userID uuid.UUID, projectID int) (*domain.User, error) {
	var user *domain.User
	err := c.execute(ctx, "UnassignProject", func(ctx context.Context, uow UnitOfWork, cs *changeSet) error {
		var err error
		if user, err = loadUser(ctx, uow, userID); err != nil {
			return err
		}
		project, err := loadProject(ctx, uow, projectID)
		if err != nil {
			return err
		}
		n, err := uow.Tasks().CountIncomplete(ctx, userID, &projectID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.InvalidOperation("cannot unassign user from project while they have incomplete tasks")
		}
		if err := user.UnassignFromProject(project); err != nil {
			return err
		}
		if err := uow.Users().Update(ctx, user); err != nil {
			return err
		}
		cs.track(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("member unassigned from project", "user_id", userID, "project_id", projectID)
	return user, nil
}

func (c *Coordinator) GetMember(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := c.query(ctx, "GetMember", func(ctx context.Context, uow UnitOfWork) error {
		var err error
		user, err = loadUser(ctx, uow, id)
		return err
	})
	return user, err
}

func (c *Coordinator) ListMembers(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	err := c.query(ctx, "ListMembers", func(ctx context.Context, uow UnitOfWork) error {
		var err error
		out, err = uow.Users().List(ctx)
		return err
	})
	return out, err
}
