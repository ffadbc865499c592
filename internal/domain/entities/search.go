package entities

// SearchType selects which categories a search runs against.
type SearchType string

const (
	SearchAll            SearchType = "all"
	SearchProfiles       SearchType = "profiles"
	SearchProjects       SearchType = "projects"
	SearchSkills         SearchType = "skills"
	SearchWorkExperience SearchType = "work"
)

// Includes reports whether category t runs under the selected type.
func (s SearchType) Includes(t SearchType) bool {
	return s == SearchAll || s == t
}

// SearchResults holds one independently paginated bucket per category.
// Buckets of categories that did not run are empty, never null.
type SearchResults struct {
	Profiles       []*Profile        `json:"profiles"`
	Projects       []*Project        `json:"projects"`
	Skills         []*Skill          `json:"skills"`
	WorkExperience []*WorkExperience `json:"work_experience"`
}

// SearchTotals holds the unpaginated match count per category.
type SearchTotals struct {
	Profiles       int64 `json:"profiles"`
	Projects       int64 `json:"projects"`
	Skills         int64 `json:"skills"`
	WorkExperience int64 `json:"work_experience"`
}

// NewSearchResults returns results with every bucket initialised to an empty slice.
func NewSearchResults() *SearchResults {
	return &SearchResults{
		Profiles:       []*Profile{},
		Projects:       []*Project{},
		Skills:         []*Skill{},
		WorkExperience: []*WorkExperience{},
	}
}
