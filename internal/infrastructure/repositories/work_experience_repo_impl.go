package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/infrastructure/models"
)

// WorkExperienceRepository implements repositories.WorkExperienceRepository
type WorkExperienceRepository struct {
	db *gorm.DB
}

// NewWorkExperienceRepository creates a new work experience repository
func NewWorkExperienceRepository(db *gorm.DB) *WorkExperienceRepository {
	return &WorkExperienceRepository{db: db}
}

func (r *WorkExperienceRepository) GetByID(ctx context.Context, id uint) (*entities.WorkExperience, error) {
	var m models.WorkExperience
	if err := GetDB(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWorkEntity(&m), nil
}

func (r *WorkExperienceRepository) Delete(ctx context.Context, id uint) error {
	result := GetDB(ctx, r.db).Delete(&models.WorkExperience{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Search matches company, position and description case-insensitively.
func (r *WorkExperienceRepository) Search(ctx context.Context, term string, limit, offset int) ([]*entities.WorkExperience, int64, error) {
	pattern := containsPattern(term)
	where := "LOWER(company)" + likeClause + " OR LOWER(position)" + likeClause + " OR LOWER(description)" + likeClause

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.WorkExperience{}).
		Where(where, pattern, pattern, pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WorkExperience
	if err := GetDB(ctx, r.db).
		Where(where, pattern, pattern, pattern).
		Order("start_date DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*entities.WorkExperience, 0, len(ms))
	for i := range ms {
		out = append(out, toWorkEntity(&ms[i]))
	}
	return out, total, nil
}

func (r *WorkExperienceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.WorkExperience{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
