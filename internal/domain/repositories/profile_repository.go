package repositories

import (
	"context"

	"profile-api.backend/internal/domain/entities"
)

// ProfileRepository persists profiles together with their child collections.
type ProfileRepository interface {
	// Create inserts the profile and every nested child. Callers wrap it in a UnitOfWork.
	Create(ctx context.Context, profile *entities.Profile) error
	GetByID(ctx context.Context, id uint) (*entities.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
	// GetLatest returns the most recently created profile.
	GetLatest(ctx context.Context) (*entities.Profile, error)
	// List returns every profile newest first with children loaded.
	List(ctx context.Context) ([]*entities.Profile, error)
	UpdateFields(ctx context.Context, profile *entities.Profile) error
	// ReplaceChildren deletes all skills, projects and work experience of the
	// profile and inserts the supplied sets.
	ReplaceChildren(ctx context.Context, profileID uint, skills []entities.Skill, projects []entities.Project, work []entities.WorkExperience) error
	Delete(ctx context.Context, id uint) error
	// DeleteAll removes every profile and reports the ids removed.
	DeleteAll(ctx context.Context) ([]uint, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*entities.Profile, int64, error)
}
