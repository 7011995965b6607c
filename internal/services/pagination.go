package services

const (
	defaultLimit = 10
	maxLimit     = 100
)

// clampPage normalizes skip/limit so the page math never divides by zero
// and a single request cannot pull the whole table.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

// paginate derives the 1-based page number and total page count:
// total_pages = ceil(total/limit), page = skip/limit + 1.
func paginate(total, skip, limit int) (page, totalPages int) {
	totalPages = (total + limit - 1) / limit
	page = skip/limit + 1
	return page, totalPages
}
