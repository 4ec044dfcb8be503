package query

// PaginationMeta accompanies every paginated result set.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Window resolves a (page, limit) pair to concrete values and the
// row offset. Page defaults to 1, limit to PostDefaultLimit, and the
// limit is clamped to PostMaxLimit.
func Window(page, limit int) (resolvedPage, resolvedLimit, offset int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = PostDefaultLimit
	}
	if limit > PostMaxLimit {
		limit = PostMaxLimit
	}
	return page, limit, (page - 1) * limit
}

// Meta computes pagination metadata for a total row count.
// TotalPages is ceil(total/limit) and 0 when total is 0. Page is not
// clamped: a page past the end is a valid, empty request.
func Meta(page, limit int, total int64) PaginationMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
