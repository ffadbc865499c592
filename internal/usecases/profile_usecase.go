package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/domain/repositories"
	"profile-api.backend/pkg/logger"
)

// ProfileUsecase handles profile writes and reads
type ProfileUsecase struct {
	profileRepo repositories.ProfileRepository
	projectRepo repositories.ProjectRepository
	workRepo    repositories.WorkExperienceRepository
	uow         repositories.UnitOfWork
	publisher   repositories.ProfileEventPublisher
	cache       QueryCache
	now         func() time.Time
}

// NewProfileUsecase creates a new profile usecase. publisher and cache may be nil.
func NewProfileUsecase(
	profileRepo repositories.ProfileRepository,
	projectRepo repositories.ProjectRepository,
	workRepo repositories.WorkExperienceRepository,
	uow repositories.UnitOfWork,
	publisher repositories.ProfileEventPublisher,
	cache QueryCache,
) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		workRepo:    workRepo,
		uow:         uow,
		publisher:   publisher,
		cache:       cache,
		now:         time.Now,
	}
}

// List returns every profile newest first. ErrNotFound when the store is empty.
func (u *ProfileUsecase) List(ctx context.Context) ([]*entities.Profile, error) {
	profiles, err := u.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return profiles, nil
}

func (u *ProfileUsecase) Get(ctx context.Context, id uint) (*entities.Profile, error) {
	return u.profileRepo.GetByID(ctx, id)
}

// Create stores the profile with all nested children in one transaction.
func (u *ProfileUsecase) Create(ctx context.Context, input *entities.ProfileInput) (*entities.Profile, error) {
	profile, err := profileFromInput(input)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.profileRepo.GetByEmail(txCtx, profile.Email); err == nil {
			return domainerrors.ErrAlreadyExists
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.profileRepo.Create(txCtx, profile)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrAlreadyExists
		}
		return nil, err
	}

	u.afterWrite(ctx, entities.ProfileCreated, profile.Email, profile.ID)
	return profile, nil
}

// Replace overwrites the scalar fields of a profile and discards and
// reinserts every child collection. A nil id targets the most recently
// created profile.
func (u *ProfileUsecase) Replace(ctx context.Context, id *uint, input *entities.ProfileInput) (*entities.Profile, error) {
	replacement, err := profileFromInput(input)
	if err != nil {
		return nil, err
	}

	var updated *entities.Profile
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		var current *entities.Profile
		var err error
		if id != nil {
			current, err = u.profileRepo.GetByID(txCtx, *id)
		} else {
			current, err = u.profileRepo.GetLatest(txCtx)
		}
		if err != nil {
			return err
		}

		if !strings.EqualFold(current.Email, replacement.Email) {
			owner, err := u.profileRepo.GetByEmail(txCtx, replacement.Email)
			if err == nil && owner.ID != current.ID {
				return domainerrors.ErrAlreadyExists
			}
			if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
				return err
			}
		}

		replacement.ID = current.ID
		if err := u.profileRepo.UpdateFields(txCtx, replacement); err != nil {
			return err
		}
		if err := u.profileRepo.ReplaceChildren(txCtx, current.ID,
			replacement.Skills, replacement.Projects, replacement.WorkExperience); err != nil {
			return err
		}

		updated, err = u.profileRepo.GetByID(txCtx, current.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrAlreadyExists
		}
		return nil, err
	}

	u.afterWrite(ctx, entities.ProfileUpdated, updated.Email, updated.ID)
	return updated, nil
}

// DeleteAll removes every profile and returns how many were removed.
// ErrNotFound when there was nothing to delete.
func (u *ProfileUsecase) DeleteAll(ctx context.Context) (int, error) {
	var ids []uint
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		ids, err = u.profileRepo.DeleteAll(txCtx)
		return err
	})
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, domainerrors.ErrNotFound
	}

	u.afterWrite(ctx, entities.ProfileDeleted, "", ids...)
	return len(ids), nil
}

func (u *ProfileUsecase) Delete(ctx context.Context, id uint) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.profileRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	u.afterWrite(ctx, entities.ProfileDeleted, "", id)
	return nil
}

func (u *ProfileUsecase) DeleteProject(ctx context.Context, id uint) error {
	var profileID uint
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		project, err := u.projectRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		profileID = project.ProfileID
		return u.projectRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	u.afterWrite(ctx, entities.ProfileUpdated, "", profileID)
	return nil
}

func (u *ProfileUsecase) DeleteWorkExperience(ctx context.Context, id uint) error {
	var profileID uint
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		work, err := u.workRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		profileID = work.ProfileID
		return u.workRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	u.afterWrite(ctx, entities.ProfileUpdated, "", profileID)
	return nil
}

// afterWrite drops cached aggregates and announces the change. Publish
// failures are logged only; the write has already committed.
func (u *ProfileUsecase) afterWrite(ctx context.Context, eventType entities.ProfileEventType, email string, ids ...uint) {
	if u.cache != nil {
		u.cache.Flush()
	}
	if u.publisher == nil {
		return
	}

	event := &entities.ProfileEvent{
		Type:       eventType,
		ProfileIDs: ids,
		Email:      email,
		OccurredAt: u.now().UTC(),
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "Failed to publish profile event",
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
	}
}

func profileFromInput(input *entities.ProfileInput) (*entities.Profile, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidInput
	}

	profile := &entities.Profile{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Education:      strings.TrimSpace(input.Education),
		GithubURL:      optionalString(input.GithubURL),
		LinkedinURL:    optionalString(input.LinkedinURL),
		PortfolioURL:   optionalString(input.PortfolioURL),
		Skills:         make([]entities.Skill, 0, len(input.Skills)),
		Projects:       make([]entities.Project, 0, len(input.Projects)),
		WorkExperience: make([]entities.WorkExperience, 0, len(input.WorkExperience)),
	}

	for _, s := range input.Skills {
		profile.Skills = append(profile.Skills, entities.Skill{
			Name:  strings.TrimSpace(s.Name),
			Level: s.LevelOrDefault(),
		})
	}

	for _, p := range input.Projects {
		links := make([]entities.ProjectLink, len(p.Links))
		copy(links, p.Links)
		profile.Projects = append(profile.Projects, entities.Project{
			Title:       strings.TrimSpace(p.Title),
			Description: strings.TrimSpace(p.Description),
			Links:       links,
		})
	}

	for i, w := range input.WorkExperience {
		start, err := entities.ParseDate(w.StartDate)
		if err != nil {
			return nil, fmt.Errorf("work_experience[%d].start_date: %w", i, domainerrors.ErrInvalidInput)
		}
		var end null.Time
		if strings.TrimSpace(w.EndDate) != "" {
			t, err := entities.ParseDate(w.EndDate)
			if err != nil {
				return nil, fmt.Errorf("work_experience[%d].end_date: %w", i, domainerrors.ErrInvalidInput)
			}
			end = null.TimeFrom(t)
		}
		profile.WorkExperience = append(profile.WorkExperience, entities.WorkExperience{
			Company:     strings.TrimSpace(w.Company),
			Position:    strings.TrimSpace(w.Position),
			StartDate:   start,
			EndDate:     end,
			Description: strings.TrimSpace(w.Description),
		})
	}

	return profile, nil
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
