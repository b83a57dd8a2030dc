package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/service"
)

type TeamService interface {
	InviteMember(ctx context.Context, in service.InviteMemberInput) (*domain.User, error)
	UpdateMember(ctx context.Context, id uuid.UUID, in service.UpdateMemberInput) (*domain.User, error)
	RemoveTeamMember(ctx context.Context, id uuid.UUID) error
	AssignProject(ctx context.Context, userID uuid.UUID, projectID int) (service.ProjectAssignment, error)
	UnassignProject(ctx context.Context, userID uuid.UUID, projectID int) (*domain.User, error)
	AssignTask(ctx context.Context, taskID, userID uuid.UUID) (service.TaskAssignment, error)
	UnassignTask(ctx context.Context, taskID uuid.UUID) (service.TaskAssignment, error)
	GetMember(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListMembers(ctx context.Context) ([]*domain.User, error)
}

type TeamHandler struct {
	team TeamService
}

func NewTeamHandler(team TeamService) *TeamHandler {
	return &TeamHandler{team: team}
}

// InviteMemberRequest представляет приглашение нового участника
type InviteMemberRequest struct {
	Name       string          `json:"name" binding:"required"`
	Email      string          `json:"email" binding:"required,email"`
	Role       domain.UserRole `json:"role"`
	Position   domain.Position `json:"position"`
	Department *string         `json:"department"`
	Avatar     *string         `json:"avatar"`
}

// UpdateMemberRequest заменяет редактируемые поля участника
type UpdateMemberRequest struct {
	Name       string          `json:"name" binding:"required"`
	Avatar     *string         `json:"avatar"`
	Role       domain.UserRole `json:"role"`
	Position   domain.Position `json:"position"`
	Department *string         `json:"department"`
}

// GetAll godoc
// @Summary      List team members
// @Tags         team
// @Produce      json
// @Success      200  {array}  MemberResponse
// @Security     BearerAuth
// @Router       /api/team/members [get]
func (h *TeamHandler) GetAll(c *gin.Context) {
	members, err := h.team.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Get a team member
// @Tags         team
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  MemberResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/members/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	member, err := h.team.GetMember(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Invite godoc
// @Summary      Invite a team member
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        request  body      InviteMemberRequest  true  "Member"
// @Success      201      {object}  MemberResponse
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/invite [post]
func (h *TeamHandler) Invite(c *gin.Context) {
	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	member, err := h.team.InviteMember(c.Request.Context(), service.InviteMemberInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Position:   req.Position,
		Department: req.Department,
		Avatar:     req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMemberResponse(member))
}

// Update godoc
// @Summary      Update a team member
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "User id"
// @Param        request  body      UpdateMemberRequest  true  "Member"
// @Success      200      {object}  MemberResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/members/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	member, err := h.team.UpdateMember(c.Request.Context(), id, service.UpdateMemberInput{
		Name:       req.Name,
		Avatar:     req.Avatar,
		Role:       req.Role,
		Position:   req.Position,
		Department: req.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Remove godoc
// @Summary      Remove a team member
// @Tags         team
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/members/{id} [delete]
func (h *TeamHandler) Remove(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.team.RemoveTeamMember(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignProject godoc
// @Summary      Add a member to a project
// @Tags         team
// @Produce      json
// @Param        id         path      string  true  "User id"
// @Param        projectId  path      int     true  "Project id"
// @Success      200        {object}  ProjectAssignmentResponse
// @Failure      404        {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/members/{id}/projects/{projectId} [post]
func (h *TeamHandler) AssignProject(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	projectID, ok := intParam(c, "projectId")
	if !ok {
		return
	}

	res, err := h.team.AssignProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProjectAssignmentResponse{
		Message: res.Message,
		Member:  toMemberResponse(res.Member),
		Project: toProjectResponse(res.Project),
	})
}

// UnassignProject godoc
// @Summary      Remove a member from a project
// @Tags         team
// @Produce      json
// @Param        id         path      string  true  "User id"
// @Param        projectId  path      int     true  "Project id"
// @Success      200        {object}  MemberResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/members/{id}/projects/{projectId} [delete]
func (h *TeamHandler) UnassignProject(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	projectID, ok := intParam(c, "projectId")
	if !ok {
		return
	}

	member, err := h.team.UnassignProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// AssignTask godoc
// @Summary      Assign a task to a project member
// @Tags         team
// @Produce      json
// @Param        taskId  path      string  true  "Task id"
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  TaskAssignmentResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/tasks/{taskId}/assign/{userId} [post]
func (h *TeamHandler) AssignTask(c *gin.Context) {
	taskID, ok := uuidParam(c, "taskId")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	res, err := h.team.AssignTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAssignmentResponse(res))
}

// UnassignTask godoc
// @Summary      Clear a task's assignee
// @Tags         team
// @Produce      json
// @Param        taskId  path      string  true  "Task id"
// @Success      200     {object}  TaskAssignmentResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/team/tasks/{taskId}/unassign [post]
func (h *TeamHandler) UnassignTask(c *gin.Context) {
	taskID, ok := uuidParam(c, "taskId")
	if !ok {
		return
	}

	res, err := h.team.UnassignTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAssignmentResponse(res))
}

func toAssignmentResponse(res service.TaskAssignment) TaskAssignmentResponse {
	out := TaskAssignmentResponse{Message: res.Message, Task: toTaskResponse(res.Task, res.Task.UpdatedAt())}
	if res.Member != nil {
		m := toMemberResponse(res.Member)
		out.Member = &m
	}
	return out
}
