package repository

import (
	"time"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/model"
)

func taskRecord(t *domain.Task) model.Task {
	s := t.Snapshot()
	return model.Task{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Status:      int(s.Status),
		Priority:    int(s.Priority),
		ProjectID:   s.ProjectID,
		AssigneeID:  s.AssigneeID,
		DueDate:     s.DueDate,
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func taskFromRecord(m model.Task) *domain.Task {
	return domain.RestoreTask(domain.TaskSnapshot{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.TaskStatus(m.Status),
		Priority:    domain.TaskPriority(m.Priority),
		ProjectID:   m.ProjectID,
		AssigneeID:  m.AssigneeID,
		DueDate:     utcPtr(m.DueDate),
		CompletedAt: utcPtr(m.CompletedAt),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	})
}

func tasksFromRecords(rows []model.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, taskFromRecord(m))
	}
	return out
}

func projectRecord(p *domain.Project) model.Project {
	s := p.Snapshot()
	return model.Project{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		Status:      int(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func projectFromRecord(m model.Project, members []uuid.UUID, tasks []*domain.Task) *domain.Project {
	return domain.RestoreProject(domain.ProjectSnapshot{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		Status:      domain.ProjectStatus(m.Status),
		MemberIDs:   members,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, tasks)
}

func userRecord(u *domain.User) model.User {
	s := u.Snapshot()
	return model.User{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		HashedPassword: s.PasswordHash,
		Role:           int(s.Role),
		Position:       int(s.Position),
		Department:     s.Department,
		Avatar:         s.Avatar,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func userFromRecord(m model.User, projectIDs []int) *domain.User {
	return domain.RestoreUser(domain.UserSnapshot{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         domain.UserRole(m.Role),
		Position:     domain.Position(m.Position),
		Department:   m.Department,
		Avatar:       m.Avatar,
		PasswordHash: m.HashedPassword,
		ProjectIDs:   projectIDs,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	})
}

func activityRecord(a domain.Activity) model.ActivityLog {
	return model.ActivityLog{
		Title:       a.Title,
		Description: a.Description,
		Type:        int(a.Type),
		UserID:      a.UserID,
		OccurredAt:  a.Timestamp,
	}
}

func activityFromRecord(m model.ActivityLog) domain.Activity {
	return domain.Activity{
		Title:       m.Title,
		Description: m.Description,
		Type:        domain.ActivityType(m.Type),
		UserID:      m.UserID,
		Timestamp:   m.OccurredAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
