package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskify/internal/domain"
	"taskify/internal/model"
	"taskify/internal/service"
)

type UserRepository struct {
	db      *gorm.DB
	members *MemberRepository
}

var _ service.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, members: NewMemberRepository(db)}
}

func (r *UserRepository) load(ctx context.Context, rec model.User) (*domain.User, error) {
	projectIDs, err := r.members.ProjectIDs(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec, projectIDs), nil
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var rec model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.load(ctx, rec)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []model.User
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(rows))
	for _, rec := range rows {
		u, err := r.load(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	rec := userRecord(u)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	if ids := u.ProjectIDs(); len(ids) > 0 {
		return r.members.ReplaceForUser(ctx, rec.ID, ids)
	}
	return nil
}

// Update сохраняет профиль и заменяет список проектов пользователя
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	rec := userRecord(u)
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
		"name":            rec.Name,
		"email":           rec.Email,
		"hashed_password": rec.HashedPassword,
		"role":            rec.Role,
		"position":        rec.Position,
		"department":      rec.Department,
		"avatar":          rec.Avatar,
		"updated_at":      rec.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return r.members.ReplaceForUser(ctx, rec.ID, u.ProjectIDs())
}

// Delete снимает пользователя с задач и из проектов, затем удаляет его
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Task{}).Where("assignee_id = ?", id).Update("assignee_id", nil).Error; err != nil {
		return err
	}
	if err := r.members.RemoveUser(ctx, id); err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.User{}).Error
}
