package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationInput struct {
	Title    string `validate:"required,min=3,max=200"`
	Type     string `validate:"required,notification_type"`
	Priority string `validate:"required,notification_priority"`
	Category string `validate:"required,notification_category"`
}

func TestValidateStructNotificationFields(t *testing.T) {
	vs := NewValidationService()

	valid := notificationInput{
		Title:    "Store closing early",
		Type:     "info",
		Priority: "low",
		Category: "general",
	}
	assert.Empty(t, vs.ValidateStruct(valid))

	invalid := notificationInput{
		Title:    "ok",
		Type:     "urgent",
		Priority: "critical",
		Category: "misc",
	}
	errs := vs.ValidateStruct(invalid)
	require.Len(t, errs, 4)

	assert.Equal(t, "min", errs[0].Tag)
	assert.Equal(t, "notification_type", errs[1].Tag)
	assert.Equal(t, "notification_priority", errs[2].Tag)
	assert.Equal(t, "notification_category", errs[3].Tag)
}

func TestValidateSlugAndLocationCode(t *testing.T) {
	vs := NewValidationService()

	type input struct {
		Slug string `validate:"omitempty,slug"`
		Code string `validate:"omitempty,location_code"`
	}

	assert.Empty(t, vs.ValidateStruct(input{Slug: "summer-sale-2026", Code: "NYC01"}))
	assert.NotEmpty(t, vs.ValidateStruct(input{Slug: "Summer Sale"}))
	assert.NotEmpty(t, vs.ValidateStruct(input{Code: "n"}))
}

func TestNormalizePagination(t *testing.T) {
	page, limit := NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = NormalizePagination(3, 50)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	_, limit = NormalizePagination(1, 500)
	assert.Equal(t, 20, limit)
}

func TestNormalizeSort(t *testing.T) {
	allowed := []string{"createdAt", "title", "priority"}

	field, direction := NormalizeSort("title", "asc", "createdAt", allowed)
	assert.Equal(t, "title", field)
	assert.Equal(t, 1, direction)

	field, direction = NormalizeSort("bogus", "desc", "createdAt", allowed)
	assert.Equal(t, "createdAt", field)
	assert.Equal(t, -1, direction)
}
