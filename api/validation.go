// Package api provides validation utilities for API request handling.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/search-server/internal/tokenizer"
	"github.com/gcbaptista/search-server/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	parityEven = "even"
	parityOdd  = "odd"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// AddDocumentRequest is the body of POST /documents.
type AddDocumentRequest struct {
	ID      *int                 `json:"id"`
	Text    string               `json:"text"`
	Status  model.DocumentStatus `json:"status"`
	Ratings []int                `json:"ratings"`
}

// SearchRequest is the body of POST /_search.
type SearchRequest struct {
	Query     string                `json:"query"`
	Status    *model.DocumentStatus `json:"status,omitempty"`
	MinRating *int                  `json:"min_rating,omitempty"`
	IDsParity string                `json:"ids_parity,omitempty"`
}

// MatchRequest is the body of POST /_match.
type MatchRequest struct {
	Query      string `json:"query"`
	DocumentID *int   `json:"document_id"`
}

// MatchAllRequest is the body of POST /_match_all.
type MatchAllRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// ValidateAddDocumentRequest checks the shape of a document. Engine-level
// rules (duplicates, control characters) are reported by the engine itself.
func ValidateAddDocumentRequest(req AddDocumentRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.ID == nil {
		result.AddError("id", "Document id is required")
	} else if *req.ID < 0 {
		result.AddError("id", "Document id must be non-negative")
	}

	if strings.TrimSpace(req.Text) == "" {
		result.AddError("text", "Document text is required")
	}

	return result
}

// ValidateSearchRequest validates the filter fields of a search request.
func ValidateSearchRequest(req SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := tokenizer.ValidateText(req.Query); err != nil {
		result.AddError("query", err.Error())
	}

	switch req.IDsParity {
	case "", parityEven, parityOdd:
	default:
		result.AddError("ids_parity", "ids_parity must be 'even' or 'odd'")
	}

	return result
}

// ValidateMatchRequest validates a single-document match request.
func ValidateMatchRequest(req MatchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.DocumentID == nil {
		result.AddError("document_id", "Document id is required")
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	// Set defaults
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	if pageSize > maxPageSize {
		pageSize = maxPageSize // Maximum page size
	}

	if page < 1 {
		result.AddError("page", "Page number must be greater than 0")
	}

	if pageSize < 1 {
		result.AddError("page_size", "Page size must be greater than 0")
	}

	return page, pageSize, result
}

// BuildPredicate combines the filters of a search request. Without an
// explicit status only ACTUAL documents are eligible.
func BuildPredicate(req SearchRequest) model.DocumentPredicate {
	status := model.StatusActual
	if req.Status != nil {
		status = *req.Status
	}

	return func(id int, s model.DocumentStatus, rating int) bool {
		if s != status {
			return false
		}
		if req.MinRating != nil && rating < *req.MinRating {
			return false
		}
		switch req.IDsParity {
		case parityEven:
			return id%2 == 0
		case parityOdd:
			return id%2 != 0
		}
		return true
	}
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
