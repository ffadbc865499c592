package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/interfaces/http/response"
	"profile-api.backend/internal/usecases"
	"profile-api.backend/pkg/utils"
)

type queryService interface {
	ProjectsBySkill(ctx context.Context, skill string, page utils.Page) ([]*entities.Project, utils.PaginationMeta, error)
	TopSkills(ctx context.Context, limit int) ([]entities.SkillStat, error)
	Search(ctx context.Context, q string, searchType entities.SearchType, page utils.Page) (*entities.SearchResults, *entities.SearchTotals, error)
	Skills(ctx context.Context, profileID *uint) ([]*entities.Skill, error)
	Stats(ctx context.Context) (*entities.Stats, error)
}

type projectsQuery struct {
	Skill  string `form:"skill" binding:"omitempty,max=50"`
	Limit  *int   `form:"limit" binding:"omitnil,min=1,max=100"`
	Offset *int   `form:"offset" binding:"omitnil,min=0"`
}

type topSkillsQuery struct {
	Limit *int `form:"limit" binding:"omitnil,min=1,max=100"`
}

type searchQuery struct {
	Q      string `form:"q" binding:"required,max=100"`
	Type   string `form:"type" binding:"omitempty,oneof=all profiles projects skills work"`
	Limit  *int   `form:"limit" binding:"omitnil,min=1,max=100"`
	Offset *int   `form:"offset" binding:"omitnil,min=0"`
}

// QueryHandler serves the read-only listing, search and aggregate endpoints
type QueryHandler struct {
	queryUsecase queryService
}

func NewQueryHandler(queryUsecase *usecases.QueryUsecase) *QueryHandler {
	return &QueryHandler{queryUsecase: queryUsecase}
}

// Projects lists projects whose owner has a matching skill
// GET /api/projects?skill=&limit=&offset=
func (h *QueryHandler) Projects(c *gin.Context) {
	var q projectsQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	page := utils.NewPage(q.Limit, q.Offset, usecases.DefaultProjectsLimit, usecases.MaxPageLimit)
	projects, meta, err := h.queryUsecase.ProjectsBySkill(c.Request.Context(), q.Skill, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	if projects == nil {
		projects = []*entities.Project{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"projects":   projects,
		"pagination": meta,
	})
}

// TopSkills ranks skill names by how many profiles list them
// GET /api/skills/top?limit=
func (h *QueryHandler) TopSkills(c *gin.Context) {
	var q topSkillsQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	limit := usecases.DefaultTopSkillsLimit
	if q.Limit != nil {
		limit = *q.Limit
	}

	skills, err := h.queryUsecase.TopSkills(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if skills == nil {
		skills = []entities.SkillStat{}
	}
	response.Success(c, http.StatusOK, gin.H{"skills": skills})
}

// Search matches q across the selected categories
// GET /api/search?q=&type=&limit=&offset=
func (h *QueryHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	searchType := entities.SearchType(q.Type)
	if searchType == "" {
		searchType = entities.SearchAll
	}
	term := strings.TrimSpace(q.Q)
	page := utils.NewPage(q.Limit, q.Offset, usecases.DefaultSearchLimit, usecases.MaxPageLimit)

	results, totals, err := h.queryUsecase.Search(c.Request.Context(), term, searchType, page)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidInput) {
			response.Error(c, domainerrors.Validation([]domainerrors.FieldError{{Field: "q", Message: "is required"}}))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"query":   term,
		"type":    searchType,
		"results": results,
		"totals":  totals,
		"pagination": gin.H{
			"limit":  page.Limit,
			"offset": page.Offset,
		},
	})
}

// Skills lists skills alphabetically, optionally for one profile
// GET /api/skills?profile_id=
func (h *QueryHandler) Skills(c *gin.Context) {
	var profileID *uint
	if raw := c.Query("profile_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.Error(c, domainerrors.BadRequest(domainerrors.CodeInvalidProfileID, "Invalid profile id"))
			return
		}
		v := uint(id)
		profileID = &v
	}

	skills, err := h.queryUsecase.Skills(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if skills == nil {
		skills = []*entities.Skill{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"skills": skills,
		"total":  len(skills),
	})
}

// Stats summarises the whole store
// GET /api/stats
func (h *QueryHandler) Stats(c *gin.Context) {
	stats, err := h.queryUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
