package repository

import (
	"context"

	"gorm.io/gorm"

	"taskify/internal/service"
)

// Store отдаёт репозитории поверх одного *gorm.DB. Внутри InTx это транзакция.
type Store struct {
	db *gorm.DB
}

var _ service.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Tasks() service.TaskRepository          { return NewTaskRepository(s.db) }
func (s *Store) Projects() service.ProjectRepository    { return NewProjectRepository(s.db) }
func (s *Store) Users() service.UserRepository          { return NewUserRepository(s.db) }
func (s *Store) Activities() service.ActivityRepository { return NewActivityRepository(s.db) }

// InTx откатывает транзакцию, если fn вернула ошибку
func (s *Store) InTx(ctx context.Context, fn func(uow service.UnitOfWork) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
