package domain

// DefaultPageSize is used whenever a caller does not specify one.
const DefaultPageSize = 10

// PageParams holds offset-based pagination parameters.
type PageParams struct {
	Page     int // 1-indexed
	PageSize int
}

// Normalize corrects out-of-bounds values. This is bound correction, not
// validation; upper limits on page size are enforced at the HTTP boundary.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
}

// PaginatedResult holds one page of items plus derived pagination metadata.
type PaginatedResult[T any] struct {
	Items       []T  `json:"items"`
	Total       int  `json:"total"` // Filtered-but-unpaginated collection size
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// Paginate slices items at [(page-1)*pageSize, page*pageSize). An out-of-range
// page is not an error: it yields empty items with HasNextPage=false. Callers
// must sort before calling; the result is deterministic given stable input
// ordering.
func Paginate[T any](items []T, p PageParams) *PaginatedResult[T] {
	p.Normalize()

	total := len(items)
	totalPages := total / p.PageSize
	if total%p.PageSize > 0 {
		totalPages++
	}

	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &PaginatedResult[T]{
		Items:       items[start:end],
		Total:       total,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1 && total > 0,
	}
}

// CursorParams holds cursor-based pagination parameters for infinite scroll.
// Cursor is the identifier of the last entry the caller has already seen.
type CursorParams struct {
	PageSize int
	Cursor   string
}

// CursorResult holds one slice of an infinite scroll plus the cursor to
// resume from. NextCursor is empty when the scroll is exhausted.
type CursorResult[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// InfiniteScroll slices items starting after the entry whose key equals the
// cursor. A missing, stale or deleted cursor silently restarts from the
// beginning; that is an idempotent fallback, not an error. The key function
// extracts the stable identifier (id or slug) used as cursor.
func InfiniteScroll[T any](items []T, p CursorParams, key func(T) string) *CursorResult[T] {
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}

	start := 0
	if p.Cursor != "" {
		for i, item := range items {
			if key(item) == p.Cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}

	slice := items[start:end]
	result := &CursorResult[T]{
		Items:   slice,
		Total:   len(items),
		HasMore: end < len(items),
	}
	if len(slice) > 0 {
		result.NextCursor = key(slice[len(slice)-1])
	}

	return result
}
