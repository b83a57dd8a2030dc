package model

import "time"

type Project struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000"`
	Color       string    `gorm:"size:7;not null"`
	Status      int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}
