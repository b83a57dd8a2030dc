package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/middleware"
	"taskify/internal/service"
)

type ProjectService interface {
	CreateProject(ctx context.Context, in service.CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int, in service.UpdateProjectInput) (*domain.Project, error)
	ArchiveProject(ctx context.Context, id int) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int, deletedBy *uuid.UUID) error
	GetProject(ctx context.Context, id int) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}

type ProjectHandler struct {
	projects ProjectService
}

func NewProjectHandler(projects ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectRequest представляет запрос на создание проекта
type CreateProjectRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	MemberIDs   []uuid.UUID `json:"memberIds"`
}

// UpdateProjectRequest заменяет данные проекта; memberIds заменяет состав целиком
type UpdateProjectRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Color       string                `json:"color"`
	Status      *domain.ProjectStatus `json:"status"`
	MemberIDs   *[]uuid.UUID          `json:"memberIds"`
}

// GetAll godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  ProjectResponse
// @Security     BearerAuth
// @Router       /api/projects [get]
func (h *ProjectHandler) GetAll(c *gin.Context) {
	projects, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  ProjectResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Create godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request  body      CreateProjectRequest  true  "Project"
// @Success      201      {object}  ProjectResponse
// @Failure      400      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Update godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Project id"
// @Param        request  body      UpdateProjectRequest  true  "Project"
// @Success      200      {object}  ProjectResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), id, service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Status:      req.Status,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Archive godoc
// @Summary      Archive a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  ProjectResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/projects/{id}/archive [post]
func (h *ProjectHandler) Archive(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.ArchiveProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete godoc
// @Summary      Delete a project and its tasks
// @Tags         projects
// @Param        id  path  int  true  "Project id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var deletedBy *uuid.UUID
	if userID, ok := middleware.CurrentUserID(c); ok {
		deletedBy = &userID
	}

	if err := h.projects.DeleteProject(c.Request.Context(), id, deletedBy); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
