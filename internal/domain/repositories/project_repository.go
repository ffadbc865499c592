package repositories

import (
	"context"

	"profile-api.backend/internal/domain/entities"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id uint) (*entities.Project, error)
	Delete(ctx context.Context, id uint) error
	// ListBySkill pages projects whose owning profile has a skill matching
	// skill (case-insensitive substring). An empty skill matches everything.
	ListBySkill(ctx context.Context, skill string, limit, offset int) ([]*entities.Project, int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*entities.Project, int64, error)
	Count(ctx context.Context) (int64, error)
}
