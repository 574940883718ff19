package dto

// ErrorResponse is the error envelope every failed request returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Pagination mirrors the list envelope the admin panel and mobile app page
// through.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	Count      int   `json:"count"`
	TotalItems int64 `json:"totalItems"`
}

// NewPagination derives page arithmetic from the raw query values.
func NewPagination(page, limit, count int, total int64) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Pagination{
		Current:    page,
		Total:      pages,
		Count:      count,
		TotalItems: total,
	}
}

// PageQuery normalizes page/limit query params with sane bounds.
func PageQuery(page, limit, defaultLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit
	return page, limit, offset
}
