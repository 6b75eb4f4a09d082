package domain

// Page is one slice of a paginated listing
type Page struct {
	Items       []Asset `json:"items"`
	TotalCount  int     `json:"totalCount"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
}

// TotalPages returns ceil(total/pageSize), 0 for an empty collection
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
