package models

import (
	"math"
	"strconv"
)

// Listing constants
const (
	// DefaultPageSize is used when the requested page size is missing or invalid
	DefaultPageSize = 50

	// MaxPageSize is the largest page size a client may request
	MaxPageSize = 100
)

// ValidationError represents a client-side validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// PageLimits bounds client-controlled page sizes
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPageLimits returns the standard listing limits
func DefaultPageLimits() PageLimits {
	return PageLimits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}
}

// normalized guards against misconfigured limits
func (l PageLimits) normalized() PageLimits {
	if l.MaxSize < 1 || l.MaxSize > MaxPageSize {
		l.MaxSize = MaxPageSize
	}
	if l.DefaultSize < 1 || l.DefaultSize > l.MaxSize {
		l.DefaultSize = DefaultPageSize
		if l.DefaultSize > l.MaxSize {
			l.DefaultSize = l.MaxSize
		}
	}
	return l
}

// PageRequest is a validated page window
type PageRequest struct {
	Page     int
	PageSize int
}

// ParsePageRequest turns raw query values into a page window. It never fails:
// anything missing, non-numeric or out of range falls back to the defaults.
func ParsePageRequest(page, pageSize string, limits PageLimits) PageRequest {
	limits = limits.normalized()

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = 1
	}

	size, err := strconv.Atoi(pageSize)
	if err != nil || size < 1 || size > limits.MaxSize {
		size = limits.DefaultSize
	}

	return PageRequest{Page: p, PageSize: size}
}

// Offset returns the zero-based row offset of the page
func (p PageRequest) Offset() int {
	if p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Pagination is the metadata returned alongside a page of tributes
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
}

// NewPagination computes pagination metadata for a page and a total row count
func NewPagination(p PageRequest, totalCount int64) Pagination {
	var totalPages int64
	if p.PageSize > 0 {
		size := int64(p.PageSize)
		totalPages = (totalCount + size - 1) / size
	}

	return Pagination{
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}
