package models

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// PageCount returns ceil(totalCount / pageSize). A non-positive pageSize yields 0.
func PageCount(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(pageSize)))
}

// ClampPage keeps page inside [1, totalPages] when totalPages > 0.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return page
}
