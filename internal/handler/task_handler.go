package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/middleware"
	"taskify/internal/service"
)

// TaskService is the part of the coordinator the task endpoints use.
type TaskService interface {
	CreateTask(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in service.UpdateTaskInput) (*domain.Task, error)
	ChangeTaskStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID) error
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, filters domain.TaskFilters, page service.Page) (service.TaskPage, error)
}

type TaskHandler struct {
	tasks TaskService
	now   func() time.Time
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks, now: time.Now}
}

// CreateTaskRequest представляет запрос на создание задачи
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Priority    domain.TaskPriority `json:"priority"`
	Status      domain.TaskStatus   `json:"status"`
	ProjectID   int                 `json:"projectId" binding:"required,min=1"`
	AssigneeID  *uuid.UUID          `json:"assigneeId"`
	DueDate     *time.Time          `json:"dueDate"`
}

// UpdateTaskRequest представляет частичное обновление задачи
type UpdateTaskRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Priority      *domain.TaskPriority `json:"priority"`
	Status        *domain.TaskStatus   `json:"status"`
	ProjectID     *int                 `json:"projectId" binding:"omitempty,min=1"`
	AssigneeID    *uuid.UUID           `json:"assigneeId"`
	ClearAssignee bool                 `json:"clearAssignee"`
	DueDate       *time.Time           `json:"dueDate"`
}

type ChangeStatusRequest struct {
	Status *domain.TaskStatus `json:"status" binding:"required"`
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        status      query  string  false  "Statuses, comma separated (ordinal or name)"
// @Param        priority    query  string  false  "Priorities, comma separated (ordinal or name)"
// @Param        projectId   query  int     false  "Project id"
// @Param        assigneeId  query  string  false  "Assignee id"
// @Param        search      query  string  false  "Substring of title or description"
// @Param        dueFrom     query  string  false  "Earliest due date (YYYY-MM-DD)"
// @Param        dueTo       query  string  false  "Latest due date (YYYY-MM-DD)"
// @Param        page        query  int     false  "Page number"
// @Param        pageSize    query  int     false  "Page size"
// @Param        sortBy      query  string  false  "createdAt, title, priority, dueDate or status"
// @Param        desc        query  bool    false  "Descending order"
// @Success      200  {object}  TaskPageResponse
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	filters, page, err := taskQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.tasks.ListTasks(c.Request.Context(), filters, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskPageResponse(result, h.now()))
}

// GetByID godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  TaskResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, h.now()))
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTaskRequest  true  "Task"
// @Success      201      {object}  TaskResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task, h.now()))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Task id"
// @Param        request  body      UpdateTaskRequest  true  "Changed fields"
// @Success      200      {object}  TaskResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), id, service.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		ProjectID:     req.ProjectID,
		AssigneeID:    req.AssigneeID,
		ClearAssignee: req.ClearAssignee,
		DueDate:       req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, h.now()))
}

// ChangeStatus godoc
// @Summary      Move a task to another status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Task id"
// @Param        request  body      ChangeStatusRequest  true  "New status"
// @Success      200      {object}  TaskResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/tasks/{id}/status [patch]
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.ChangeTaskStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, h.now()))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var deletedBy *uuid.UUID
	if userID, ok := middleware.CurrentUserID(c); ok {
		deletedBy = &userID
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), id, deletedBy); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
