package handler

import (
	"time"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/service"
)

// TaskResponse представляет задачу в ответах API
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      int        `json:"status"`
	Priority    int        `json:"priority"`
	ProjectID   int        `json:"projectId"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	IsOverdue   bool       `json:"isOverdue"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskPageResponse struct {
	Items      []TaskResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type ProgressResponse struct {
	Total                int     `json:"total"`
	Todo                 int     `json:"todo"`
	InProgress           int     `json:"inProgress"`
	Review               int     `json:"review"`
	Completed            int     `json:"completed"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

// ProjectResponse представляет проект с участниками и прогрессом
type ProjectResponse struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
	Status      int              `json:"status"`
	MemberIDs   []string         `json:"memberIds"`
	Progress    ProgressResponse `json:"progress"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// MemberResponse представляет участника команды
type MemberResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       int       `json:"role"`
	Position   int       `json:"position"`
	Department *string   `json:"department,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
	ProjectIDs []int     `json:"projectIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ActivityResponse struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        int       `json:"type"`
	UserID      *string   `json:"userId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// MessageResponse сопровождает результат команды текстом для пользователя
type MessageResponse struct {
	Message string `json:"message"`
}

type TaskAssignmentResponse struct {
	Message string          `json:"message"`
	Task    TaskResponse    `json:"task"`
	Member  *MemberResponse `json:"member,omitempty"`
}

type ProjectAssignmentResponse struct {
	Message string          `json:"message"`
	Member  MemberResponse  `json:"member"`
	Project ProjectResponse `json:"project"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  MemberResponse `json:"user"`
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toTaskResponse(t *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:          t.ID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      int(t.Status()),
		Priority:    int(t.Priority()),
		ProjectID:   t.ProjectID(),
		AssigneeID:  idString(t.AssigneeID()),
		DueDate:     t.DueDate(),
		CompletedAt: t.CompletedAt(),
		IsOverdue:   t.IsOverdue(now),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toTaskPageResponse(p service.TaskPage, now time.Time) TaskPageResponse {
	items := make([]TaskResponse, 0, len(p.Items))
	for _, t := range p.Items {
		items = append(items, toTaskResponse(t, now))
	}
	return TaskPageResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	members := make([]string, 0, len(p.MemberIDs()))
	for _, id := range p.MemberIDs() {
		members = append(members, id.String())
	}
	progress := p.Progress()
	return ProjectResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Color:       p.Color(),
		Status:      int(p.Status()),
		MemberIDs:   members,
		Progress: ProgressResponse{
			Total:                progress.Total,
			Todo:                 progress.Todo,
			InProgress:           progress.InProgress,
			Review:               progress.Review,
			Completed:            progress.Completed,
			CompletionPercentage: progress.CompletionPercentage,
		},
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toMemberResponse(u *domain.User) MemberResponse {
	projects := u.ProjectIDs()
	if projects == nil {
		projects = []int{}
	}
	return MemberResponse{
		ID:         u.ID().String(),
		Name:       u.Name(),
		Email:      u.Email(),
		Role:       int(u.Role()),
		Position:   int(u.Position()),
		Department: u.Department(),
		Avatar:     u.Avatar(),
		ProjectIDs: projects,
		CreatedAt:  u.CreatedAt(),
	}
}

func toActivityResponse(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		Title:       a.Title,
		Description: a.Description,
		Type:        int(a.Type),
		UserID:      idString(a.UserID),
		Timestamp:   a.Timestamp,
	}
}
