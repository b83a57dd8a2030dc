package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:100;not null"`
	Email          string    `gorm:"size:255;uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           int       `gorm:"not null"`
	Position       int       `gorm:"not null"`
	Department     *string   `gorm:"size:100"`
	Avatar         *string
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}
