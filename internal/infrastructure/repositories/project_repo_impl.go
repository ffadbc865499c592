package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/infrastructure/models"
)

// ProjectRepository implements repositories.ProjectRepository
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProjectEntity(&m), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	result := GetDB(ctx, r.db).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListBySkill pages projects owned by profiles having a matching skill.
func (r *ProjectRepository) ListBySkill(ctx context.Context, skill string, limit, offset int) ([]*entities.Project, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if skill == "" {
			return db
		}
		owners := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Skill{}).
			Select("profile_id").
			Where("LOWER(name)"+likeClause, containsPattern(skill))
		return db.Where("profile_id IN (?)", owners)
	}

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Project{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Project
	if err := GetDB(ctx, r.db).Scopes(scope).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toProjectEntities(ms), total, nil
}

// Search matches title and description case-insensitively.
func (r *ProjectRepository) Search(ctx context.Context, term string, limit, offset int) ([]*entities.Project, int64, error) {
	pattern := containsPattern(term)
	where := "LOWER(title)" + likeClause + " OR LOWER(description)" + likeClause

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Project{}).
		Where(where, pattern, pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Project
	if err := GetDB(ctx, r.db).
		Where(where, pattern, pattern).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toProjectEntities(ms), total, nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Project{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func toProjectEntities(ms []models.Project) []*entities.Project {
	out := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		out = append(out, toProjectEntity(&ms[i]))
	}
	return out
}
