package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	ID          int        `gorm:"primaryKey;autoIncrement"`
	Title       string     `gorm:"size:200;not null"`
	Description string     `gorm:"size:1000"`
	Type        int        `gorm:"not null"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt  time.Time  `gorm:"not null;index"`
}
