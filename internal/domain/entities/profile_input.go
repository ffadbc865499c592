package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DefaultSkillLevel applies when a skill is submitted without a level.
const DefaultSkillLevel = 1

// DateLayouts lists the accepted date formats for work experience.
var DateLayouts = []string{"2006-01-02", time.RFC3339}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD or RFC3339 date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ProfileInput is the request body of profile create and replace.
// Collections absent from the body are treated as empty.
type ProfileInput struct {
	Name           string                `json:"name" binding:"required,min=1,max=100"`
	Email          string                `json:"email" binding:"required,email,max=255"`
	Education      string                `json:"education" binding:"omitempty,max=500"`
	GithubURL      string                `json:"github_url" binding:"omitempty,url,max=500"`
	LinkedinURL    string                `json:"linkedin_url" binding:"omitempty,url,max=500"`
	PortfolioURL   string                `json:"portfolio_url" binding:"omitempty,url,max=500"`
	Skills         []SkillInput          `json:"skills" binding:"omitempty,max=200,dive"`
	Projects       []ProjectInput        `json:"projects" binding:"omitempty,max=100,dive"`
	WorkExperience []WorkExperienceInput `json:"work_experience" binding:"omitempty,max=100,dive"`
}

// UnmarshalJSON also accepts the camelCase keys the frontend form sends.
func (in *ProfileInput) UnmarshalJSON(data []byte) error {
	type plain ProfileInput
	var aux struct {
		plain
		GithubURLCamel      *string               `json:"githubUrl"`
		LinkedinURLCamel    *string               `json:"linkedinUrl"`
		PortfolioURLCamel   *string               `json:"portfolioUrl"`
		WorkExperienceCamel []WorkExperienceInput `json:"workExperience"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*in = ProfileInput(aux.plain)
	if in.GithubURL == "" && aux.GithubURLCamel != nil {
		in.GithubURL = *aux.GithubURLCamel
	}
	if in.LinkedinURL == "" && aux.LinkedinURLCamel != nil {
		in.LinkedinURL = *aux.LinkedinURLCamel
	}
	if in.PortfolioURL == "" && aux.PortfolioURLCamel != nil {
		in.PortfolioURL = *aux.PortfolioURLCamel
	}
	if in.WorkExperience == nil && aux.WorkExperienceCamel != nil {
		in.WorkExperience = aux.WorkExperienceCamel
	}
	return nil
}

// SkillInput is either a bare string ("Go") or an object ({"name":"Go","level":4}).
type SkillInput struct {
	// Presence is checked by a struct-level rule so a malformed element
	// reports a single shape error.
	Name  string `json:"name" binding:"max=50"`
	Level *int   `json:"level" binding:"omitnil,min=1,max=5"`

	malformed bool
}

func (s *SkillInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		s.malformed = true
		return nil
	}

	switch trimmed[0] {
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*s = SkillInput{Name: strings.TrimSpace(name)}
	case '{':
		type plain SkillInput
		var p plain
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return err
		}
		*s = SkillInput(p)
		s.Name = strings.TrimSpace(s.Name)
	default:
		*s = SkillInput{malformed: true}
	}
	return nil
}

// Malformed reports whether the element was neither a string nor an object.
func (s SkillInput) Malformed() bool {
	return s.malformed
}

// LevelOrDefault returns the submitted level or DefaultSkillLevel.
func (s SkillInput) LevelOrDefault() int {
	if s.Level == nil {
		return DefaultSkillLevel
	}
	return *s.Level
}

type ProjectInput struct {
	Title       string        `json:"title" binding:"required,min=1,max=100"`
	Description string        `json:"description" binding:"required,min=1,max=1000"`
	Links       []ProjectLink `json:"links" binding:"omitempty,max=20,dive"`
}

type WorkExperienceInput struct {
	Company     string `json:"company" binding:"required,min=1,max=100"`
	Position    string `json:"position" binding:"required,min=1,max=100"`
	StartDate   string `json:"start_date" binding:"required,date"`
	EndDate     string `json:"end_date" binding:"omitempty,date"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UnmarshalJSON also accepts startDate / endDate.
func (w *WorkExperienceInput) UnmarshalJSON(data []byte) error {
	type plain WorkExperienceInput
	var aux struct {
		plain
		StartDateCamel string `json:"startDate"`
		EndDateCamel   string `json:"endDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*w = WorkExperienceInput(aux.plain)
	if w.StartDate == "" {
		w.StartDate = aux.StartDateCamel
	}
	if w.EndDate == "" {
		w.EndDate = aux.EndDateCamel
	}
	return nil
}
