package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"size:200;not null"`
	Description string     `gorm:"size:1000"`
	Status      int        `gorm:"not null;index"`
	Priority    int        `gorm:"not null"`
	ProjectID   int        `gorm:"not null;index"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}
