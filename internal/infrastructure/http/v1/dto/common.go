// Package dto provides Data Transfer Objects for API requests and
// responses. The wire format is snake_case JSON.
package dto

import (
	"tokopos/internal/domain"
)

// --- Pagination ---

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPaginationResponse builds pagination metadata from a list result.
func NewPaginationResponse[T any](result domain.ListResult[T]) PaginationResponse {
	return PaginationResponse{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
		Pages: result.Pages,
	}
}

// OffsetPaginationResponse is the limit/offset flavor used by the POS
// terminal endpoints.
type OffsetPaginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Count  int64 `json:"count"`
}

// --- Success Response ---

// MessageResponse carries a localized message plus optional data.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response ---

// ErrorResponse mirrors the error middleware's body shape.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
