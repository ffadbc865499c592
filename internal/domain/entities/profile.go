package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Profile is the top-level candidate record. It owns its skills, projects and
// work experience; deleting a profile removes all of them.
type Profile struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Education      string           `json:"education"`
	GithubURL      null.String      `json:"github_url"`
	LinkedinURL    null.String      `json:"linkedin_url"`
	PortfolioURL   null.String      `json:"portfolio_url"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
	WorkExperience []WorkExperience `json:"work_experience"`
}

// Skill belongs to exactly one profile. Duplicate names per profile are allowed.
type Skill struct {
	ID        uint   `json:"id"`
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
}

// ProjectLink is one named link of a project. Order is preserved.
type ProjectLink struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	URL  string `json:"url" binding:"required,url,max=500"`
}

type Project struct {
	ID          uint          `json:"id"`
	ProfileID   uint          `json:"profile_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Links       []ProjectLink `json:"links"`
	CreatedAt   time.Time     `json:"created_at"`
}

type WorkExperience struct {
	ID          uint      `json:"id"`
	ProfileID   uint      `json:"profile_id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	StartDate   time.Time `json:"start_date"`
	EndDate     null.Time `json:"end_date"`
	Description string    `json:"description"`
}

// SkillStat aggregates all skills sharing one name.
type SkillStat struct {
	Name         string  `json:"name"`
	Count        int64   `json:"count"`
	AverageLevel float64 `json:"average_level"`
}

// Stats summarises the whole store.
type Stats struct {
	TotalProfiles       int64       `json:"total_profiles"`
	TotalProjects       int64       `json:"total_projects"`
	TotalWorkExperience int64       `json:"total_work_experience"`
	UniqueSkills        int64       `json:"unique_skills"`
	TopSkills           []SkillStat `json:"top_skills"`
}
