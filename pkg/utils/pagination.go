package utils

// Page holds limit/offset request parameters after defaults are applied
type Page struct {
	Limit  int
	Offset int
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// NewPage applies defaultLimit when limit is absent, clamps it to maxLimit and
// floors offset at zero.
func NewPage(limit, offset *int, defaultLimit, maxLimit int) Page {
	p := Page{Limit: defaultLimit}
	if limit != nil && *limit > 0 {
		p.Limit = *limit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if offset != nil && *offset > 0 {
		p.Offset = *offset
	}
	return p
}

// CalculateMeta generates pagination metadata
func CalculateMeta(total int64, p Page) PaginationMeta {
	return PaginationMeta{
		Limit:   p.Limit,
		Offset:  p.Offset,
		Total:   total,
		HasMore: int64(p.Offset+p.Limit) < total,
	}
}
