package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMember связывает пользователя с проектом (ростер проекта)
type ProjectMember struct {
	ProjectID  int       `gorm:"primaryKey;autoIncrement:false"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AssignedAt time.Time `gorm:"autoCreateTime"`
}
