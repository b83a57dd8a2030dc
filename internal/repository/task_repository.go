package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskify/internal/domain"
	"taskify/internal/model"
	"taskify/internal/service"
)

var sortColumns = map[service.SortField]string{
	service.SortCreatedAt: "created_at",
	service.SortTitle:     "title",
	service.SortPriority:  "priority",
	service.SortDueDate:   "due_date",
	service.SortStatus:    "status",
}

type TaskRepository struct {
	db *gorm.DB
}

var _ service.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var rec model.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return taskFromRecord(rec), nil
}

// TitleExists сравнивает заголовки без учёта регистра в пределах проекта
func (r *TaskRepository) TitleExists(ctx context.Context, projectID int, title string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ? AND LOWER(title) = ?", projectID, strings.ToLower(strings.TrimSpace(title)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// likeEscaper делает % и _ в поисковой строке обычными символами
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func applyTaskFilters(q *gorm.DB, f domain.TaskFilters) *gorm.DB {
	if s := f.Statuses(); len(s) > 0 {
		vals := make([]int, 0, len(s))
		for _, v := range s {
			vals = append(vals, int(v))
		}
		q = q.Where("status IN ?", vals)
	}
	if p := f.Priorities(); len(p) > 0 {
		vals := make([]int, 0, len(p))
		for _, v := range p {
			vals = append(vals, int(v))
		}
		q = q.Where("priority IN ?", vals)
	}
	if id, ok := f.ProjectID(); ok {
		q = q.Where("project_id = ?", id)
	}
	if id, ok := f.AssigneeID(); ok {
		q = q.Where("assignee_id = ?", id)
	}
	if term := strings.ToLower(f.Search()); term != "" {
		like := "%" + likeEscaper.Replace(term) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}
	if from := f.DueFrom(); from != nil {
		q = q.Where("due_date >= ?", domain.DateOnly(*from))
	}
	if to := f.DueTo(); to != nil {
		q = q.Where("due_date < ?", domain.DateOnly(*to).AddDate(0, 0, 1))
	}
	return q
}

// List возвращает страницу задач и общее количество по фильтру
func (r *TaskRepository) List(ctx context.Context, f domain.TaskFilters, page service.Page) ([]*domain.Task, int64, error) {
	page = page.Normalize()
	q := applyTaskFilters(r.db.WithContext(ctx).Model(&model.Task{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := sortColumns[page.SortBy]
	if page.Desc {
		order += " DESC"
	}
	var rows []model.Task
	err := q.Order(order).Order("id").Offset(page.Offset()).Limit(page.Size).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return tasksFromRecords(rows), total, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int) ([]*domain.Task, error) {
	var rows []model.Task
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return tasksFromRecords(rows), nil
}

// CountIncomplete считает незавершённые задачи пользователя, опционально в одном проекте
func (r *TaskRepository) CountIncomplete(ctx context.Context, userID uuid.UUID, projectID *int) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assignee_id = ? AND status <> ?", userID, int(domain.StatusCompleted))
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	rec := taskRecord(t)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	rec := taskRecord(t)
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
		"title":        rec.Title,
		"description":  rec.Description,
		"status":       rec.Status,
		"priority":     rec.Priority,
		"project_id":   rec.ProjectID,
		"assignee_id":  rec.AssigneeID,
		"due_date":     rec.DueDate,
		"completed_at": rec.CompletedAt,
		"updated_at":   rec.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}
