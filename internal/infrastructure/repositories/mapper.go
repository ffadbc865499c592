package repositories

import (
	"strings"

	"github.com/volatiletech/null/v8"
	"profile-api.backend/internal/domain/entities"
	"profile-api.backend/internal/infrastructure/models"
)

func toProfileEntity(m *models.Profile) *entities.Profile {
	p := &entities.Profile{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Education:      m.Education,
		GithubURL:      null.StringFromPtr(m.GithubURL),
		LinkedinURL:    null.StringFromPtr(m.LinkedinURL),
		PortfolioURL:   null.StringFromPtr(m.PortfolioURL),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		Skills:         make([]entities.Skill, 0, len(m.Skills)),
		Projects:       make([]entities.Project, 0, len(m.Projects)),
		WorkExperience: make([]entities.WorkExperience, 0, len(m.WorkExperience)),
	}
	for i := range m.Skills {
		p.Skills = append(p.Skills, *toSkillEntity(&m.Skills[i]))
	}
	for i := range m.Projects {
		p.Projects = append(p.Projects, *toProjectEntity(&m.Projects[i]))
	}
	for i := range m.WorkExperience {
		p.WorkExperience = append(p.WorkExperience, *toWorkEntity(&m.WorkExperience[i]))
	}
	return p
}

func toProfileModel(e *entities.Profile) *models.Profile {
	m := &models.Profile{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Education:    e.Education,
		GithubURL:    e.GithubURL.Ptr(),
		LinkedinURL:  e.LinkedinURL.Ptr(),
		PortfolioURL: e.PortfolioURL.Ptr(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	m.Skills = toSkillModels(e.ID, e.Skills)
	m.Projects = toProjectModels(e.ID, e.Projects)
	m.WorkExperience = toWorkModels(e.ID, e.WorkExperience)
	return m
}

func toSkillEntity(m *models.Skill) *entities.Skill {
	return &entities.Skill{ID: m.ID, ProfileID: m.ProfileID, Name: m.Name, Level: m.Level}
}

func toSkillModels(profileID uint, skills []entities.Skill) []models.Skill {
	out := make([]models.Skill, 0, len(skills))
	for _, s := range skills {
		level := s.Level
		if level == 0 {
			level = entities.DefaultSkillLevel
		}
		out = append(out, models.Skill{ID: s.ID, ProfileID: profileID, Name: s.Name, Level: level})
	}
	return out
}

func toProjectEntity(m *models.Project) *entities.Project {
	links := make([]entities.ProjectLink, 0, len(m.Links))
	for _, l := range m.Links {
		links = append(links, entities.ProjectLink{Name: l.Name, URL: l.URL})
	}
	return &entities.Project{
		ID:          m.ID,
		ProfileID:   m.ProfileID,
		Title:       m.Title,
		Description: m.Description,
		Links:       links,
		CreatedAt:   m.CreatedAt,
	}
}

func toProjectModels(profileID uint, projects []entities.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		links := make([]models.ProjectLink, 0, len(p.Links))
		for _, l := range p.Links {
			links = append(links, models.ProjectLink{Name: l.Name, URL: l.URL})
		}
		out = append(out, models.Project{
			ID:          p.ID,
			ProfileID:   profileID,
			Title:       p.Title,
			Description: p.Description,
			Links:       links,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}

func toWorkEntity(m *models.WorkExperience) *entities.WorkExperience {
	return &entities.WorkExperience{
		ID:          m.ID,
		ProfileID:   m.ProfileID,
		Company:     m.Company,
		Position:    m.Position,
		StartDate:   m.StartDate,
		EndDate:     null.TimeFromPtr(m.EndDate),
		Description: m.Description,
	}
}

func toWorkModels(profileID uint, work []entities.WorkExperience) []models.WorkExperience {
	out := make([]models.WorkExperience, 0, len(work))
	for _, w := range work {
		out = append(out, models.WorkExperience{
			ID:          w.ID,
			ProfileID:   profileID,
			Company:     w.Company,
			Position:    w.Position,
			StartDate:   w.StartDate,
			EndDate:     w.EndDate.Ptr(),
			Description: w.Description,
		})
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for
// "LOWER(col) LIKE ? ESCAPE '\'".
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

const likeClause = ` LIKE ? ESCAPE '\'`
