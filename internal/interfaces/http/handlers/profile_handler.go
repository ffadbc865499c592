package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/interfaces/http/response"
	"profile-api.backend/internal/usecases"
)

type profileService interface {
	List(ctx context.Context) ([]*entities.Profile, error)
	Get(ctx context.Context, id uint) (*entities.Profile, error)
	Create(ctx context.Context, input *entities.ProfileInput) (*entities.Profile, error)
	Replace(ctx context.Context, id *uint, input *entities.ProfileInput) (*entities.Profile, error)
	DeleteAll(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uint) error
	DeleteProject(ctx context.Context, id uint) error
	DeleteWorkExperience(ctx context.Context, id uint) error
}

// ProfileHandler serves profile CRUD and child deletion
type ProfileHandler struct {
	profileUsecase profileService
}

func NewProfileHandler(profileUsecase *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

// List returns every profile, newest first
// GET /api/profile
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUsecase.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound(domainerrors.CodeProfilesNotFound, "No profiles found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

// Get returns one profile
// GET /api/profile/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id", domainerrors.CodeInvalidProfileID, "Invalid profile id")
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, profileError(err))
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Create stores a profile with its nested collections
// POST /api/profile
func (h *ProfileHandler) Create(c *gin.Context) {
	var input entities.ProfileInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, profileError(err))
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Profile created successfully",
		"id":      profile.ID,
	})
}

// Replace overwrites the most recently created profile
// PUT /api/profile
func (h *ProfileHandler) Replace(c *gin.Context) {
	h.replace(c, nil)
}

// ReplaceByID overwrites the profile named in the path
// PUT /api/profile/:id
func (h *ProfileHandler) ReplaceByID(c *gin.Context) {
	id, err := parseID(c, "id", domainerrors.CodeInvalidProfileID, "Invalid profile id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.replace(c, &id)
}

func (h *ProfileHandler) replace(c *gin.Context, id *uint) {
	var input entities.ProfileInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileUsecase.Replace(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, profileError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// DeleteAll removes every profile
// DELETE /api/profile
func (h *ProfileHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.profileUsecase.DeleteAll(c.Request.Context())
	if err != nil {
		response.Error(c, profileError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Profile deleted successfully",
		"deleted": deleted,
	})
}

// Delete removes one profile
// DELETE /api/profile/:id
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", domainerrors.CodeInvalidProfileID, "Invalid profile id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.profileUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, profileError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Profile deleted successfully",
		"deleted": 1,
	})
}

// DeleteProject removes one project
// DELETE /api/profile/projects/:id
func (h *ProfileHandler) DeleteProject(c *gin.Context) {
	id, err := parseID(c, "id", domainerrors.CodeInvalidProjectID, "Invalid project id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.profileUsecase.DeleteProject(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound(domainerrors.CodeNotFound, "Project not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// DeleteWorkExperience removes one work experience entry
// DELETE /api/profile/work-experience/:id
func (h *ProfileHandler) DeleteWorkExperience(c *gin.Context) {
	id, err := parseID(c, "id", domainerrors.CodeInvalidWorkID, "Invalid work experience id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.profileUsecase.DeleteWorkExperience(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound(domainerrors.CodeNotFound, "Work experience not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Work experience deleted successfully"})
}

func profileError(err error) error {
	if _, ok := domainerrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(domainerrors.CodeProfileNotFound, "Profile not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict(domainerrors.CodeProfileExists, "Profile with this email already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(domainerrors.CodeValidation, "Validation failed")
	}
	return err
}
