package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(2, 10, 35)
	require.NotNil(t, p)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.TotalItems)
	assert.Equal(t, 10, p.ItemsPerPage)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)
}

func TestCreatePaginationBounds(t *testing.T) {
	first := CreatePagination(1, 10, 35)
	assert.False(t, first.HasPreviousPage)
	assert.True(t, first.HasNextPage)

	last := CreatePagination(4, 10, 35)
	assert.True(t, last.HasPreviousPage)
	assert.False(t, last.HasNextPage)

	empty := CreatePagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPreviousPage)
}

func TestGetServiceError(t *testing.T) {
	err := NewInvalidStateError("Only scheduled notifications can be cancelled")

	serviceErr, ok := GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_STATE", serviceErr.Code)
	assert.Equal(t, 400, serviceErr.StatusCode)

	_, ok = GetServiceError(ErrEmptyAudience)
	assert.False(t, ok)
}
