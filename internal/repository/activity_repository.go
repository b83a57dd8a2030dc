package repository

import (
	"context"

	"gorm.io/gorm"

	"taskify/internal/domain"
	"taskify/internal/model"
	"taskify/internal/service"
)

type ActivityRepository struct {
	db *gorm.DB
}

var _ service.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a domain.Activity) error {
	rec := activityRecord(a)
	return r.db.WithContext(ctx).Create(&rec).Error
}

// Recent возвращает последние записи ленты, новые первыми
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	var rows []model.ActivityLog
	err := r.db.WithContext(ctx).Order("occurred_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(rows))
	for _, rec := range rows {
		out = append(out, activityFromRecord(rec))
	}
	return out, nil
}
