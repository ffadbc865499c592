package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/infrastructure/models"
)

// ProfileRepository implements repositories.ProfileRepository
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func withChildren(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Skills", func(db *gorm.DB) *gorm.DB { return db.Order("skills.id ASC") }).
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order("projects.id ASC") }).
		Preload("WorkExperience", func(db *gorm.DB) *gorm.DB {
			return db.Order("work_experiences.start_date DESC, work_experiences.id ASC")
		})
}

// Create inserts the profile and its children, then copies the generated ids
// back onto the entity.
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	m := toProfileModel(profile)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateError(err)
	}
	created := toProfileEntity(m)
	*profile = *created
	return nil
}

// GetByID gets a profile with children by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uint) (*entities.Profile, error) {
	var m models.Profile
	if err := withChildren(GetDB(ctx, r.db)).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// GetByEmail gets a profile by its unique email, without children. A miss is
// the normal path on create, so it is detected from RowsAffected rather than
// gorm.ErrRecordNotFound, which GORM's logger reports as an error.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var m models.Profile
	result := GetDB(ctx, r.db).Where("email = ?", email).Limit(1).Find(&m)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return toProfileEntity(&m), nil
}

func (r *ProfileRepository) GetLatest(ctx context.Context) (*entities.Profile, error) {
	var m models.Profile
	err := withChildren(GetDB(ctx, r.db)).
		Order("created_at DESC").Order("id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entities.Profile, error) {
	var ms []models.Profile
	if err := withChildren(GetDB(ctx, r.db)).
		Order("created_at DESC").Order("id DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toProfileEntities(ms), nil
}

// UpdateFields overwrites the scalar columns of an existing profile.
func (r *ProfileRepository) UpdateFields(ctx context.Context, profile *entities.Profile) error {
	result := GetDB(ctx, r.db).Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"name":          profile.Name,
			"email":         profile.Email,
			"education":     profile.Education,
			"github_url":    profile.GithubURL.Ptr(),
			"linkedin_url":  profile.LinkedinURL.Ptr(),
			"portfolio_url": profile.PortfolioURL.Ptr(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) ReplaceChildren(
	ctx context.Context,
	profileID uint,
	skills []entities.Skill,
	projects []entities.Project,
	work []entities.WorkExperience,
) error {
	db := GetDB(ctx, r.db)
	if err := deleteChildren(db, profileID); err != nil {
		return err
	}

	if ms := toSkillModels(profileID, clearIDs(skills, func(s *entities.Skill) { s.ID = 0 })); len(ms) > 0 {
		if err := db.Create(&ms).Error; err != nil {
			return err
		}
	}
	if ms := toProjectModels(profileID, clearIDs(projects, func(p *entities.Project) { p.ID = 0 })); len(ms) > 0 {
		if err := db.Create(&ms).Error; err != nil {
			return err
		}
	}
	if ms := toWorkModels(profileID, clearIDs(work, func(w *entities.WorkExperience) { w.ID = 0 })); len(ms) > 0 {
		if err := db.Create(&ms).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one profile and its children. Callers wrap it in a UnitOfWork.
func (r *ProfileRepository) Delete(ctx context.Context, id uint) error {
	db := GetDB(ctx, r.db)
	if err := deleteChildren(db, id); err != nil {
		return err
	}
	result := db.Delete(&models.Profile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) DeleteAll(ctx context.Context) ([]uint, error) {
	db := GetDB(ctx, r.db)
	var ids []uint
	if err := db.Model(&models.Profile{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	for _, child := range []interface{}{&models.Skill{}, &models.Project{}, &models.WorkExperience{}} {
		if err := db.Where("profile_id IN ?", ids).Delete(child).Error; err != nil {
			return nil, err
		}
	}
	if err := db.Where("id IN ?", ids).Delete(&models.Profile{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Profile{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Search matches name, email and education case-insensitively.
func (r *ProfileRepository) Search(ctx context.Context, term string, limit, offset int) ([]*entities.Profile, int64, error) {
	pattern := containsPattern(term)
	where := "LOWER(name)" + likeClause + " OR LOWER(email)" + likeClause + " OR LOWER(education)" + likeClause

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Profile{}).
		Where(where, pattern, pattern, pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Profile
	if err := withChildren(GetDB(ctx, r.db)).
		Where(where, pattern, pattern, pattern).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toProfileEntities(ms), total, nil
}

func deleteChildren(db *gorm.DB, profileID uint) error {
	for _, child := range []interface{}{&models.Skill{}, &models.Project{}, &models.WorkExperience{}} {
		if err := db.Where("profile_id = ?", profileID).Delete(child).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearIDs[T any](items []T, reset func(*T)) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		reset(&out[i])
	}
	return out
}

func toProfileEntities(ms []models.Profile) []*entities.Profile {
	out := make([]*entities.Profile, 0, len(ms))
	for i := range ms {
		out = append(out, toProfileEntity(&ms[i]))
	}
	return out
}
