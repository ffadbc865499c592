package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"profile-api.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, models.AutoMigrate(db), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedProfile inserts a profile with the given skills (name:level pairs use
// level 3) plus one project and one work entry.
func seedProfile(t *testing.T, db *gorm.DB, name, email string, createdAt time.Time, skills ...string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		Name:      name,
		Email:     email,
		Education: "BSc " + name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	for _, s := range skills {
		p.Skills = append(p.Skills, models.Skill{Name: s, Level: 3})
	}
	p.Projects = []models.Project{{
		Title:       name + " project",
		Description: "built by " + name,
		Links:       []models.ProjectLink{{Name: "repo", URL: "https://example.com/" + name}},
		CreatedAt:   createdAt,
	}}
	p.WorkExperience = []models.WorkExperience{{
		Company:   name + " Corp",
		Position:  "Engineer",
		StartDate: date(2020, time.January, 1),
	}}
	require.NoError(t, db.Create(p).Error, "seed profile")
	return p
}
