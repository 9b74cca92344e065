package utils

import (
	"netwatch/internal/shared/constants"
)

// Pagination holds normalized pagination parameters.
type Pagination struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ValidatePagination validates and normalizes pagination parameters.
// Page defaults to DefaultPage if less than 1.
// PerPage defaults to DefaultPageSize if less than 1, and is capped at MaxPageSize.
func ValidatePagination(page, perPage int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}

	if perPage < 1 {
		perPage = constants.DefaultPageSize
	}
	if perPage > constants.MaxPageSize {
		perPage = constants.MaxPageSize
	}

	return Pagination{
		Page:    page,
		PerPage: perPage,
	}
}

// TotalPages calculates total pages for a given total count. An empty
// result set has zero pages, not one.
func TotalPages(total int64, perPage int) int {
	if total == 0 || perPage == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
