package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskify/internal/domain"
	"taskify/internal/model"
	"taskify/internal/service"
)

type ProjectRepository struct {
	db      *gorm.DB
	members *MemberRepository
	tasks   *TaskRepository
}

var _ service.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db:      db,
		members: NewMemberRepository(db),
		tasks:   NewTaskRepository(db),
	}
}

// load собирает агрегат проекта вместе с участниками и задачами
func (r *ProjectRepository) load(ctx context.Context, rec model.Project) (*domain.Project, error) {
	members, err := r.members.MemberIDs(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := r.tasks.ListByProject(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return projectFromRecord(rec, members, tasks), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*domain.Project, error) {
	var rec model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.load(ctx, rec)
}

func (r *ProjectRepository) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	var rows []model.Project
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Project, 0, len(rows))
	for _, rec := range rows {
		p, err := r.load(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Create сохраняет проект и присваивает ему идентификатор из БД
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	rec := projectRecord(p)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	p.SetID(rec.ID)
	return r.members.ReplaceForProject(ctx, rec.ID, p.MemberIDs())
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	rec := projectRecord(p)
	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
		"name":        rec.Name,
		"description": rec.Description,
		"color":       rec.Color,
		"status":      rec.Status,
		"updated_at":  rec.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return r.members.ReplaceForProject(ctx, rec.ID, p.MemberIDs())
}

// Delete удаляет проект вместе с задачами и участниками
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return err
	}
	if err := r.members.RemoveProject(ctx, id); err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Project{}).Error
}
