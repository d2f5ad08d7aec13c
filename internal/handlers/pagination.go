package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errNotPositive = errors.New("value must be positive")

func parsePositiveInt(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errNotPositive
	}
	return n, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// parseListParams reads page/pageSize from the query string, clamping
// page to ≥1 and pageSize to [1,50]. Unparsable values fall back to
// the defaults.
func parseListParams(pageStr, pageSizeStr string) (int64, int64) {
	page := int64(1)
	pageSize := int64(defaultPageSize)

	if pageStr != "" {
		if p, err := strconv.ParseInt(pageStr, 10, 64); err == nil {
			page = p
		}
	}
	if pageSizeStr != "" {
		if s, err := strconv.ParseInt(pageSizeStr, 10, 64); err == nil {
			pageSize = s
		}
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// resolveSort maps the requested sort field through a whitelist,
// silently falling back to the default, and returns the bson field
// plus the mongo sort direction.
func resolveSort(requested string, whitelist map[string]string, fallback string, order string) (string, int) {
	field, ok := whitelist[requested]
	if !ok {
		field = whitelist[fallback]
	}

	direction := -1
	if order == "asc" {
		direction = 1
	}
	return field, direction
}

// paginationMeta builds the response pagination block. hasMore is the
// full-page approximation and total reflects the returned count, not
// the collection size; callers must not assume otherwise.
func paginationMeta(page, pageSize int64, count int) gin.H {
	return gin.H{
		"page":     page,
		"pageSize": pageSize,
		"total":    count,
		"hasMore":  int64(count) == pageSize,
	}
}
