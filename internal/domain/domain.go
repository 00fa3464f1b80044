// Package domain provides shared types for domain services.
package domain

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs substring search on searchable fields
	Search string

	// IncludeDeleted includes soft-deleted records
	IncludeDeleted bool

	// OrderBy specifies sorting (e.g., "name", "-created_at")
	OrderBy string

	// Page is 1-based
	Page  int
	Limit int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Page:  1,
		Limit: 50,
	}
}

// Normalize clamps pagination to sane bounds.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
}

// Offset converts page/limit to a row offset.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewListResult computes the page count from total and limit.
func NewListResult[T any](items []T, filter ListFilter, total int64) ListResult[T] {
	pages := 0
	if filter.Limit > 0 {
		pages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	return ListResult[T]{
		Items: items,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: pages,
	}
}
