package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/usecases"
	"profile-api.backend/pkg/utils"
)

type queryFixture struct {
	profiles *MockProfileRepository
	projects *MockProjectRepository
	skills   *MockSkillRepository
	work     *MockWorkExperienceRepository
	cache    *mapCache
	uc       *usecases.QueryUsecase
}

func newQueryFixture() *queryFixture {
	f := &queryFixture{
		profiles: new(MockProfileRepository),
		projects: new(MockProjectRepository),
		skills:   new(MockSkillRepository),
		work:     new(MockWorkExperienceRepository),
		cache:    newMapCache(),
	}
	f.uc = usecases.NewQueryUsecase(f.profiles, f.projects, f.skills, f.work, f.cache)
	return f
}

func TestQueryUsecase_ProjectsBySkill(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	f.projects.On("ListBySkill", ctx, "Python", 1, 0).
		Return([]*entities.Project{{ID: 1}}, int64(3), nil).Once()

	projects, meta, err := f.uc.ProjectsBySkill(ctx, "  Python ", utils.Page{Limit: 1, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, utils.PaginationMeta{Limit: 1, Offset: 0, Total: 3, HasMore: true}, meta)

	f.projects.On("ListBySkill", ctx, "", 10, 0).Return(nil, int64(0), errors.New("db down")).Once()
	_, _, err = f.uc.ProjectsBySkill(ctx, "", utils.Page{Limit: 10})
	assert.Error(t, err)
}

func TestQueryUsecase_TopSkills_ClampsAndCaches(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	top := []entities.SkillStat{{Name: "Go", Count: 3, AverageLevel: 4.3}}
	f.skills.On("Top", ctx, usecases.MaxTopSkillsLimit).Return(top, nil).Once()

	got, err := f.uc.TopSkills(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, top, got)

	got, err = f.uc.TopSkills(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, top, got)
	f.skills.AssertNumberOfCalls(t, "Top", 1)

	f.skills.On("Top", ctx, usecases.DefaultTopSkillsLimit).Return([]entities.SkillStat{}, nil).Once()
	got, err = f.uc.TopSkills(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	f.cache.Flush()
	f.skills.On("Top", ctx, usecases.MaxTopSkillsLimit).Return(nil, errors.New("db down")).Once()
	_, err = f.uc.TopSkills(ctx, 50)
	assert.Error(t, err)
}

func TestQueryUsecase_Search_AllCategories(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	page := utils.Page{Limit: 20, Offset: 0}

	f.profiles.On("Search", ctx, "go", 20, 0).Return([]*entities.Profile{{ID: 1}}, int64(1), nil).Once()
	f.projects.On("Search", ctx, "go", 20, 0).Return([]*entities.Project{{ID: 2}, {ID: 3}}, int64(2), nil).Once()
	f.skills.On("Search", ctx, "go", 20, 0).Return([]*entities.Skill{}, int64(0), nil).Once()
	f.work.On("Search", ctx, "go", 20, 0).Return([]*entities.WorkExperience{{ID: 4}}, int64(1), nil).Once()

	results, totals, err := f.uc.Search(ctx, " go ", entities.SearchAll, page)
	require.NoError(t, err)
	assert.Len(t, results.Profiles, 1)
	assert.Len(t, results.Projects, 2)
	assert.Empty(t, results.Skills)
	assert.Len(t, results.WorkExperience, 1)
	assert.Equal(t, entities.SearchTotals{Profiles: 1, Projects: 2, WorkExperience: 1}, *totals)
}

func TestQueryUsecase_Search_SingleCategory(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	f.projects.On("Search", ctx, "JavaScript", 5, 10).Return([]*entities.Project{{ID: 2}}, int64(11), nil).Once()

	results, totals, err := f.uc.Search(ctx, "JavaScript", entities.SearchProjects, utils.Page{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, results.Projects, 1)
	assert.NotNil(t, results.Profiles)
	assert.Empty(t, results.Profiles)
	assert.Empty(t, results.Skills)
	assert.Empty(t, results.WorkExperience)
	assert.Equal(t, int64(11), totals.Projects)
	f.profiles.AssertNotCalled(t, "Search")
}

func TestQueryUsecase_Search_Errors(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	_, _, err := f.uc.Search(ctx, "   ", entities.SearchAll, utils.Page{Limit: 20})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.skills.On("Search", ctx, "x", 20, 0).Return(nil, int64(0), errors.New("db down")).Once()
	_, _, err = f.uc.Search(ctx, "x", entities.SearchSkills, utils.Page{Limit: 20})
	assert.EqualError(t, err, "db down")
}

func TestQueryUsecase_Skills(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	id := uint(3)

	f.skills.On("List", ctx, &id).Return([]*entities.Skill{{Name: "Go"}}, nil).Once()
	got, err := f.uc.Skills(ctx, &id)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestQueryUsecase_Stats(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	f.profiles.On("Count", ctx).Return(int64(2), nil).Once()
	f.projects.On("Count", ctx).Return(int64(5), nil).Once()
	f.work.On("Count", ctx).Return(int64(3), nil).Once()
	f.skills.On("CountDistinctNames", ctx).Return(int64(7), nil).Once()
	f.skills.On("Top", ctx, usecases.StatsTopSkills).Return([]entities.SkillStat{{Name: "Go", Count: 2, AverageLevel: 4}}, nil).Once()

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProfiles)
	assert.Equal(t, int64(5), stats.TotalProjects)
	assert.Equal(t, int64(3), stats.TotalWorkExperience)
	assert.Equal(t, int64(7), stats.UniqueSkills)
	assert.Len(t, stats.TopSkills, 1)

	again, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Same(t, stats, again)
	f.profiles.AssertNumberOfCalls(t, "Count", 1)
}

func TestQueryUsecase_Stats_Error(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	f.profiles.On("Count", ctx).Return(int64(0), nil).Once()
	f.projects.On("Count", ctx).Return(int64(0), errors.New("db down")).Once()

	_, err := f.uc.Stats(ctx)
	assert.EqualError(t, err, "db down")
	_, cached := f.cache.Get("stats")
	assert.False(t, cached)
}

func TestQueryUsecase_WithoutCache(t *testing.T) {
	ctx := context.Background()
	skills := new(MockSkillRepository)
	uc := usecases.NewQueryUsecase(nil, nil, skills, nil, nil)

	skills.On("Top", ctx, 2).Return([]entities.SkillStat{{Name: "Go"}, {Name: "SQL"}}, nil).Twice()
	for i := 0; i < 2; i++ {
		got, err := uc.TopSkills(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	skills.AssertExpectations(t)
}

func TestQueryUsecase_TopSkills_FlushDuringReadIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	stale := []entities.SkillStat{{Name: "Go", Count: 1, AverageLevel: 3}}
	fresh := []entities.SkillStat{{Name: "Go", Count: 2, AverageLevel: 4}}
	f.skills.On("Top", ctx, 5).Return(stale, nil).Run(func(mock.Arguments) {
		f.cache.Flush()
	}).Once()
	f.skills.On("Top", ctx, 5).Return(fresh, nil).Once()

	got, err := f.uc.TopSkills(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, stale, got)

	got, err = f.uc.TopSkills(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	f.skills.AssertNumberOfCalls(t, "Top", 2)
}

func TestQueryUsecase_RefreshStats_FlushDuringReadIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	f.profiles.On("Count", ctx).Return(int64(1), nil).Run(func(mock.Arguments) {
		f.cache.Flush()
	}).Once()
	f.projects.On("Count", ctx).Return(int64(0), nil)
	f.work.On("Count", ctx).Return(int64(0), nil)
	f.skills.On("CountDistinctNames", ctx).Return(int64(0), nil)
	f.skills.On("Top", ctx, usecases.StatsTopSkills).Return([]entities.SkillStat{}, nil)

	stats, err := f.uc.RefreshStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProfiles)

	_, cached := f.cache.Get("stats")
	assert.False(t, cached)

	f.profiles.On("Count", ctx).Return(int64(2), nil).Once()
	stats, err = f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProfiles)

	_, cached = f.cache.Get("stats")
	assert.True(t, cached)
}
