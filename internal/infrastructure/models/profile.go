package models

import (
	"time"
)

type Profile struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Education      string    `gorm:"type:varchar(500)"`
	GithubURL      *string   `gorm:"column:github_url;type:varchar(500)"`
	LinkedinURL    *string   `gorm:"column:linkedin_url;type:varchar(500)"`
	PortfolioURL   *string   `gorm:"column:portfolio_url;type:varchar(500)"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
	Skills         []Skill          `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Projects       []Project        `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	WorkExperience []WorkExperience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

func (Profile) TableName() string {
	return "profiles"
}
