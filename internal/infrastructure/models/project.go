package models

import (
	"time"
)

// ProjectLink is stored inside projects.links as a JSON array.
type ProjectLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Project struct {
	ID          uint          `gorm:"primaryKey"`
	ProfileID   uint          `gorm:"not null;index"`
	Title       string        `gorm:"type:varchar(100);not null"`
	Description string        `gorm:"type:text;not null"`
	Links       []ProjectLink `gorm:"type:text;serializer:json"`
	CreatedAt   time.Time
}

func (Project) TableName() string {
	return "projects"
}
