package usecases

import (
	"context"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/domain/repositories"
	"profile-api.backend/pkg/utils"
)

const (
	DefaultProjectsLimit  = 10
	DefaultTopSkillsLimit = 10
	MaxTopSkillsLimit     = 50
	DefaultSearchLimit    = 20
	MaxPageLimit          = 100
	StatsTopSkills        = 5
)

// QueryUsecase serves the read-only listing, search and aggregate endpoints
type QueryUsecase struct {
	profileRepo repositories.ProfileRepository
	projectRepo repositories.ProjectRepository
	skillRepo   repositories.SkillRepository
	workRepo    repositories.WorkExperienceRepository
	cache       QueryCache
}

// NewQueryUsecase creates a new query usecase. cache may be nil.
func NewQueryUsecase(
	profileRepo repositories.ProfileRepository,
	projectRepo repositories.ProjectRepository,
	skillRepo repositories.SkillRepository,
	workRepo repositories.WorkExperienceRepository,
	cache QueryCache,
) *QueryUsecase {
	return &QueryUsecase{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
		workRepo:    workRepo,
		cache:       cache,
	}
}

// ProjectsBySkill pages projects whose owner has a skill containing skill.
func (u *QueryUsecase) ProjectsBySkill(ctx context.Context, skill string, page utils.Page) ([]*entities.Project, utils.PaginationMeta, error) {
	projects, total, err := u.projectRepo.ListBySkill(ctx, strings.TrimSpace(skill), page.Limit, page.Offset)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return projects, utils.CalculateMeta(total, page), nil
}

// TopSkills returns the most frequent skill names, at most MaxTopSkillsLimit.
func (u *QueryUsecase) TopSkills(ctx context.Context, limit int) ([]entities.SkillStat, error) {
	if limit <= 0 {
		limit = DefaultTopSkillsLimit
	}
	if limit > MaxTopSkillsLimit {
		limit = MaxTopSkillsLimit
	}

	key := cacheKeyTopSkills + strconv.Itoa(limit)
	gen := u.cacheGeneration()
	if cached, ok := u.cacheGet(key); ok {
		if stats, ok := cached.([]entities.SkillStat); ok {
			return stats, nil
		}
	}

	stats, err := u.skillRepo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	u.cacheSet(gen, key, stats)
	return stats, nil
}

// Search runs the selected categories with the same limit and offset each.
func (u *QueryUsecase) Search(ctx context.Context, q string, searchType entities.SearchType, page utils.Page) (*entities.SearchResults, *entities.SearchTotals, error) {
	term := strings.TrimSpace(q)
	if term == "" {
		return nil, nil, domainerrors.ErrInvalidInput
	}
	if searchType == "" {
		searchType = entities.SearchAll
	}

	results := entities.NewSearchResults()
	totals := &entities.SearchTotals{}

	if searchType.Includes(entities.SearchProfiles) {
		items, total, err := u.profileRepo.Search(ctx, term, page.Limit, page.Offset)
		if err != nil {
			return nil, nil, err
		}
		results.Profiles, totals.Profiles = items, total
	}
	if searchType.Includes(entities.SearchProjects) {
		items, total, err := u.projectRepo.Search(ctx, term, page.Limit, page.Offset)
		if err != nil {
			return nil, nil, err
		}
		results.Projects, totals.Projects = items, total
	}
	if searchType.Includes(entities.SearchSkills) {
		items, total, err := u.skillRepo.Search(ctx, term, page.Limit, page.Offset)
		if err != nil {
			return nil, nil, err
		}
		results.Skills, totals.Skills = items, total
	}
	if searchType.Includes(entities.SearchWorkExperience) {
		items, total, err := u.workRepo.Search(ctx, term, page.Limit, page.Offset)
		if err != nil {
			return nil, nil, err
		}
		results.WorkExperience, totals.WorkExperience = items, total
	}

	return results, totals, nil
}

// Skills lists skills alphabetically, optionally for one profile.
func (u *QueryUsecase) Skills(ctx context.Context, profileID *uint) ([]*entities.Skill, error) {
	return u.skillRepo.List(ctx, profileID)
}

// Stats aggregates store-wide counts and the top skills.
func (u *QueryUsecase) Stats(ctx context.Context) (*entities.Stats, error) {
	if cached, ok := u.cacheGet(cacheKeyStats); ok {
		if stats, ok := cached.(*entities.Stats); ok {
			return stats, nil
		}
	}
	return u.RefreshStats(ctx)
}

// RefreshStats recomputes the aggregates and stores them in the cache.
func (u *QueryUsecase) RefreshStats(ctx context.Context) (*entities.Stats, error) {
	gen := u.cacheGeneration()
	profiles, err := u.profileRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := u.projectRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	work, err := u.workRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	unique, err := u.skillRepo.CountDistinctNames(ctx)
	if err != nil {
		return nil, err
	}
	top, err := u.skillRepo.Top(ctx, StatsTopSkills)
	if err != nil {
		return nil, err
	}

	stats := &entities.Stats{
		TotalProfiles:       profiles,
		TotalProjects:       projects,
		TotalWorkExperience: work,
		UniqueSkills:        unique,
		TopSkills:           top,
	}
	u.cacheSet(gen, cacheKeyStats, stats)
	return stats, nil
}

func (u *QueryUsecase) cacheGet(key string) (interface{}, bool) {
	if u.cache == nil {
		return nil, false
	}
	return u.cache.Get(key)
}

func (u *QueryUsecase) cacheGeneration() uint64 {
	if u.cache == nil {
		return 0
	}
	return u.cache.Generation()
}

// cacheSet drops the value when a write flushed the cache during the read.
func (u *QueryUsecase) cacheSet(gen uint64, key string, value interface{}) {
	if u.cache == nil {
		return
	}
	u.cache.SetAt(gen, key, value, cache.DefaultExpiration)
}
