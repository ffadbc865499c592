package repositories

import (
	"context"
	"math"

	"gorm.io/gorm"
	"profile-api.backend/internal/domain/entities"
	"profile-api.backend/internal/infrastructure/models"
)

// SkillRepository implements repositories.SkillRepository
type SkillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) List(ctx context.Context, profileID *uint) ([]*entities.Skill, error) {
	query := GetDB(ctx, r.db).Model(&models.Skill{})
	if profileID != nil {
		query = query.Where("profile_id = ?", *profileID)
	}

	var ms []models.Skill
	if err := query.Order("name ASC").Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toSkillEntities(ms), nil
}

type skillStatRow struct {
	Name         string
	UsageCount   int64
	AverageLevel float64
}

// Top groups by exact name. Average level is rounded to one decimal.
func (r *SkillRepository) Top(ctx context.Context, limit int) ([]entities.SkillStat, error) {
	var rows []skillStatRow
	if err := GetDB(ctx, r.db).Model(&models.Skill{}).
		Select("name, COUNT(*) AS usage_count, AVG(level) AS average_level").
		Group("name").
		Order("usage_count DESC").Order("name ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]entities.SkillStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, entities.SkillStat{
			Name:         row.Name,
			Count:        row.UsageCount,
			AverageLevel: math.Round(row.AverageLevel*10) / 10,
		})
	}
	return stats, nil
}

func (r *SkillRepository) CountDistinctNames(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Skill{}).Distinct("name").Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *SkillRepository) Search(ctx context.Context, term string, limit, offset int) ([]*entities.Skill, int64, error) {
	pattern := containsPattern(term)

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Skill{}).
		Where("LOWER(name)"+likeClause, pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Skill
	if err := GetDB(ctx, r.db).
		Where("LOWER(name)"+likeClause, pattern).
		Order("name ASC").Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toSkillEntities(ms), total, nil
}

func toSkillEntities(ms []models.Skill) []*entities.Skill {
	out := make([]*entities.Skill, 0, len(ms))
	for i := range ms {
		out = append(out, toSkillEntity(&ms[i]))
	}
	return out
}
