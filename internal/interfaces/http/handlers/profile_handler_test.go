package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
)

type profileServiceStub struct {
	profiles []*entities.Profile
	profile  *entities.Profile
	deleted  int
	err      error

	gotID    *uint
	gotInput *entities.ProfileInput
	calls    int
}

func (s *profileServiceStub) List(context.Context) ([]*entities.Profile, error) {
	s.calls++
	return s.profiles, s.err
}

func (s *profileServiceStub) Get(_ context.Context, id uint) (*entities.Profile, error) {
	s.calls++
	s.gotID = &id
	return s.profile, s.err
}

func (s *profileServiceStub) Create(_ context.Context, input *entities.ProfileInput) (*entities.Profile, error) {
	s.calls++
	s.gotInput = input
	return s.profile, s.err
}

func (s *profileServiceStub) Replace(_ context.Context, id *uint, input *entities.ProfileInput) (*entities.Profile, error) {
	s.calls++
	s.gotID = id
	s.gotInput = input
	return s.profile, s.err
}

func (s *profileServiceStub) DeleteAll(context.Context) (int, error) {
	s.calls++
	return s.deleted, s.err
}

func (s *profileServiceStub) Delete(_ context.Context, id uint) error {
	s.calls++
	s.gotID = &id
	return s.err
}

func (s *profileServiceStub) DeleteProject(_ context.Context, id uint) error {
	s.calls++
	s.gotID = &id
	return s.err
}

func (s *profileServiceStub) DeleteWorkExperience(_ context.Context, id uint) error {
	s.calls++
	s.gotID = &id
	return s.err
}

func newProfileRouter(stub *profileServiceStub) *gin.Engine {
	h := &ProfileHandler{profileUsecase: stub}
	r := newTestEngine()
	r.GET("/api/profile", h.List)
	r.POST("/api/profile", h.Create)
	r.PUT("/api/profile", h.Replace)
	r.DELETE("/api/profile", h.DeleteAll)
	r.DELETE("/api/profile/projects/:id", h.DeleteProject)
	r.DELETE("/api/profile/work-experience/:id", h.DeleteWorkExperience)
	r.GET("/api/profile/:id", h.Get)
	r.PUT("/api/profile/:id", h.ReplaceByID)
	r.DELETE("/api/profile/:id", h.Delete)
	return r
}

func TestProfileHandler_List(t *testing.T) {
	t.Run("returns profiles", func(t *testing.T) {
		stub := &profileServiceStub{profiles: []*entities.Profile{
			{ID: 2, Name: "B", Skills: []entities.Skill{}, Projects: []entities.Project{}, WorkExperience: []entities.WorkExperience{}},
			{ID: 1, Name: "A"},
		}}
		rec := doRequest(newProfileRouter(stub), http.MethodGet, "/api/profile", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"work_experience":[]`)
		assert.Contains(t, rec.Body.String(), `"github_url":null`)
	})

	t.Run("empty store", func(t *testing.T) {
		stub := &profileServiceStub{err: domainerrors.ErrNotFound}
		rec := doRequest(newProfileRouter(stub), http.MethodGet, "/api/profile", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PROFILES_NOT_FOUND", decodeJSON(t, rec)["code"])
	})
}

func TestProfileHandler_Get(t *testing.T) {
	stub := &profileServiceStub{profile: &entities.Profile{ID: 5, Name: "Ada"}}
	r := newProfileRouter(stub)

	rec := doRequest(r, http.MethodGet, "/api/profile/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.gotID)
	assert.Equal(t, uint(5), *stub.gotID)

	rec = doRequest(r, http.MethodGet, "/api/profile/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PROFILE_ID", decodeJSON(t, rec)["code"])

	stub.err = domainerrors.ErrNotFound
	rec = doRequest(r, http.MethodGet, "/api/profile/9", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROFILE_NOT_FOUND", decodeJSON(t, rec)["code"])
}

func TestProfileHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &profileServiceStub{profile: &entities.Profile{ID: 11}}
		rec := doRequest(newProfileRouter(stub), http.MethodPost, "/api/profile", validProfileJSON)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decodeJSON(t, rec)
		assert.Equal(t, float64(11), body["id"])
		assert.Equal(t, "Profile created successfully", body["message"])
		require.NotNil(t, stub.gotInput)
		assert.Equal(t, "ada@example.com", stub.gotInput.Email)
	})

	t.Run("validation failure never reaches the usecase", func(t *testing.T) {
		stub := &profileServiceStub{}
		rec := doRequest(newProfileRouter(stub), http.MethodPost, "/api/profile", `{"name":"A"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeJSON(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Contains(t, detailFields(t, body), "email")
		assert.Equal(t, 0, stub.calls)
	})

	t.Run("duplicate email", func(t *testing.T) {
		stub := &profileServiceStub{err: domainerrors.ErrAlreadyExists}
		rec := doRequest(newProfileRouter(stub), http.MethodPost, "/api/profile", validProfileJSON)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "PROFILE_EXISTS", decodeJSON(t, rec)["code"])
	})

	t.Run("unexpected failure", func(t *testing.T) {
		stub := &profileServiceStub{err: errors.New("boom")}
		rec := doRequest(newProfileRouter(stub), http.MethodPost, "/api/profile", validProfileJSON)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeJSON(t, rec)["code"])
	})
}

func TestProfileHandler_Replace(t *testing.T) {
	t.Run("latest profile", func(t *testing.T) {
		stub := &profileServiceStub{profile: &entities.Profile{ID: 3, Name: "Ada"}}
		rec := doRequest(newProfileRouter(stub), http.MethodPut, "/api/profile", validProfileJSON)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Nil(t, stub.gotID)
		body := decodeJSON(t, rec)
		assert.Equal(t, "Profile updated successfully", body["message"])
		assert.Equal(t, float64(3), body["profile"].(map[string]interface{})["id"])
	})

	t.Run("explicit id", func(t *testing.T) {
		stub := &profileServiceStub{profile: &entities.Profile{ID: 8}}
		rec := doRequest(newProfileRouter(stub), http.MethodPut, "/api/profile/8", validProfileJSON)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.gotID)
		assert.Equal(t, uint(8), *stub.gotID)
	})

	t.Run("no profile", func(t *testing.T) {
		stub := &profileServiceStub{err: domainerrors.ErrNotFound}
		rec := doRequest(newProfileRouter(stub), http.MethodPut, "/api/profile", validProfileJSON)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PROFILE_NOT_FOUND", decodeJSON(t, rec)["code"])
	})

	t.Run("email owned by another profile", func(t *testing.T) {
		stub := &profileServiceStub{err: domainerrors.ErrAlreadyExists}
		rec := doRequest(newProfileRouter(stub), http.MethodPut, "/api/profile/2", validProfileJSON)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "PROFILE_EXISTS", decodeJSON(t, rec)["code"])
	})
}

func TestProfileHandler_Delete(t *testing.T) {
	t.Run("delete all", func(t *testing.T) {
		stub := &profileServiceStub{deleted: 2}
		rec := doRequest(newProfileRouter(stub), http.MethodDelete, "/api/profile", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(2), decodeJSON(t, rec)["deleted"])
	})

	t.Run("delete all on empty store", func(t *testing.T) {
		stub := &profileServiceStub{err: domainerrors.ErrNotFound}
		rec := doRequest(newProfileRouter(stub), http.MethodDelete, "/api/profile", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "PROFILE_NOT_FOUND", decodeJSON(t, rec)["code"])
	})

	t.Run("delete one", func(t *testing.T) {
		stub := &profileServiceStub{}
		rec := doRequest(newProfileRouter(stub), http.MethodDelete, "/api/profile/4", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(4), *stub.gotID)
	})
}

func TestProfileHandler_DeleteChildren(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		badPath string
		badCode string
	}{
		{name: "project", path: "/api/profile/projects/7", badPath: "/api/profile/projects/x", badCode: "INVALID_PROJECT_ID"},
		{name: "work experience", path: "/api/profile/work-experience/7", badPath: "/api/profile/work-experience/0", badCode: "INVALID_WORK_ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &profileServiceStub{}
			r := newProfileRouter(stub)

			rec := doRequest(r, http.MethodDelete, tc.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, uint(7), *stub.gotID)

			rec = doRequest(r, http.MethodDelete, tc.badPath, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.badCode, decodeJSON(t, rec)["code"])

			stub.err = domainerrors.ErrNotFound
			rec = doRequest(r, http.MethodDelete, tc.path, "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "NOT_FOUND", decodeJSON(t, rec)["code"])
		})
	}
}
