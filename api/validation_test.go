package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/search-server/model"
)

func intPtr(v int) *int { return &v }

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name             string
		page, pageSize   int
		expectedPage     int
		expectedPageSize int
		expectErrors     bool
	}{
		{"defaults", 0, 0, 1, defaultPageSize, false},
		{"explicit", 3, 20, 3, 20, false},
		{"capped page size", 1, 500, 1, maxPageSize, false},
		{"negative page", -1, 10, -1, 10, true},
		{"negative page size", 1, -5, 1, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize, result := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedPageSize, pageSize)
			assert.Equal(t, tt.expectErrors, result.HasErrors())
		})
	}
}

func TestValidateAddDocumentRequest(t *testing.T) {
	assert.False(t, ValidateAddDocumentRequest(AddDocumentRequest{ID: intPtr(0), Text: "cat"}).HasErrors())

	result := ValidateAddDocumentRequest(AddDocumentRequest{Text: "  "})
	assert.Len(t, result.Errors, 2)
	assert.False(t, result.Valid)

	result = ValidateAddDocumentRequest(AddDocumentRequest{ID: intPtr(-3), Text: "cat"})
	assert.Equal(t, "id", result.Errors[0].Field)
}

func TestValidateSearchRequest(t *testing.T) {
	assert.False(t, ValidateSearchRequest(SearchRequest{Query: "cat -dog", IDsParity: parityOdd}).HasErrors())
	assert.True(t, ValidateSearchRequest(SearchRequest{Query: "cat\tdog"}).HasErrors())
	assert.True(t, ValidateSearchRequest(SearchRequest{Query: "cat", IDsParity: "both"}).HasErrors())
}

func TestBuildPredicate(t *testing.T) {
	t.Run("defaults to actual", func(t *testing.T) {
		p := BuildPredicate(SearchRequest{})
		assert.True(t, p(1, model.StatusActual, -10))
		assert.False(t, p(1, model.StatusBanned, 10))
	})

	t.Run("combined filters", func(t *testing.T) {
		banned := model.StatusBanned
		p := BuildPredicate(SearchRequest{Status: &banned, MinRating: intPtr(3), IDsParity: parityEven})
		assert.True(t, p(4, model.StatusBanned, 3))
		assert.False(t, p(5, model.StatusBanned, 3))
		assert.False(t, p(4, model.StatusBanned, 2))
		assert.False(t, p(4, model.StatusActual, 9))
	})
}
