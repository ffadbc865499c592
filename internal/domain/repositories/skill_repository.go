package repositories

import (
	"context"

	"profile-api.backend/internal/domain/entities"
)

type SkillRepository interface {
	// List returns skills alphabetically, optionally restricted to one profile.
	List(ctx context.Context, profileID *uint) ([]*entities.Skill, error)
	// Top groups skills by name ordered by frequency descending, name ascending.
	Top(ctx context.Context, limit int) ([]entities.SkillStat, error)
	CountDistinctNames(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*entities.Skill, int64, error)
}
