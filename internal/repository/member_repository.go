package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskify/internal/model"
)

// MemberRepository хранит связи пользователей и проектов.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// MemberIDs возвращает участников проекта
func (r *MemberRepository) MemberIDs(ctx context.Context, projectID int) ([]uuid.UUID, error) {
	var rows []model.ProjectMember
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("assigned_at, user_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// ProjectIDs возвращает проекты, в которых состоит пользователь
func (r *MemberRepository) ProjectIDs(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	sort.Ints(ids)
	return ids, nil
}

// ReplaceForProject заменяет состав участников проекта
func (r *MemberRepository) ReplaceForProject(ctx context.Context, projectID int, userIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("project_id = ?", projectID).Delete(&model.ProjectMember{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.ProjectMember, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.ProjectMember{ProjectID: projectID, UserID: id})
	}
	return db.Create(&rows).Error
}

// ReplaceForUser заменяет список проектов пользователя
func (r *MemberRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, projectIDs []int) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&model.ProjectMember{}).Error; err != nil {
		return err
	}
	if len(projectIDs) == 0 {
		return nil
	}
	rows := make([]model.ProjectMember, 0, len(projectIDs))
	for _, id := range projectIDs {
		rows = append(rows, model.ProjectMember{ProjectID: id, UserID: userID})
	}
	return db.Create(&rows).Error
}

func (r *MemberRepository) RemoveProject(ctx context.Context, projectID int) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.ProjectMember{}).Error
}

func (r *MemberRepository) RemoveUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ProjectMember{}).Error
}
