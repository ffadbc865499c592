package models

import (
	"time"
)

type WorkExperience struct {
	ID          uint      `gorm:"primaryKey"`
	ProfileID   uint      `gorm:"not null;index"`
	Company     string    `gorm:"type:varchar(100);not null"`
	Position    string    `gorm:"type:varchar(100);not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
	Description string `gorm:"type:text"`
}

func (WorkExperience) TableName() string {
	return "work_experiences"
}
