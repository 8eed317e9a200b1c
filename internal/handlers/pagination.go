package handlers

import (
	"errors"
	"strconv"
)

var errBadPagination = errors.New("invalid pagination params")

// parsePaginationParams reads page/limit query values, falling back to
// page 1 and limit 10 when absent. Non-numeric or non-positive values
// are rejected.
func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(10)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errBadPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errBadPagination
		}
		limit = l
	}

	return page, limit, nil
}
