package repositories

import (
	"context"

	"profile-api.backend/internal/domain/entities"
)

type WorkExperienceRepository interface {
	GetByID(ctx context.Context, id uint) (*entities.WorkExperience, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, term string, limit, offset int) ([]*entities.WorkExperience, int64, error)
	Count(ctx context.Context) (int64, error)
}
