package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizePagination clamps page/limit query values to sane bounds.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// NormalizeSort validates a sort field against the allowed set and maps
// sortOrder to the mongo sort direction.
func NormalizeSort(sortBy, sortOrder, defaultField string, allowed []string) (string, int) {
	field := defaultField
	for _, a := range allowed {
		if sortBy == a {
			field = sortBy
			break
		}
	}

	direction := -1
	if strings.EqualFold(sortOrder, "asc") {
		direction = 1
	}
	return field, direction
}
