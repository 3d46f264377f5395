package dto

import (
	"time"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/internal/domain"
)

// PaginationMeta holds offset pagination metadata.
type PaginationMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// PageResponse wraps one page of any collection.
type PageResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// FromPaginatedResult converts a domain page into the wire shape.
func FromPaginatedResult[T any](r *domain.PaginatedResult[T]) PageResponse[T] {
	return PageResponse[T]{
		Items: r.Items,
		Pagination: PaginationMeta{
			Total:       r.Total,
			Page:        r.Page,
			PageSize:    r.PageSize,
			TotalPages:  r.TotalPages,
			HasNextPage: r.HasNextPage,
			HasPrevPage: r.HasPrevPage,
		},
	}
}

// FeedResponse wraps one slice of an infinite scroll.
type FeedResponse[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// FromCursorResult converts a domain cursor slice into the wire shape.
func FromCursorResult[T any](r *domain.CursorResult[T]) FeedResponse[T] {
	return FeedResponse[T]{
		Items:      r.Items,
		Total:      r.Total,
		NextCursor: r.NextCursor,
		HasMore:    r.HasMore,
	}
}

// SyncResultResponse represents the outcome of syncing one collection.
type SyncResultResponse struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
	Duration   string `json:"duration"`
	Error      string `json:"error,omitempty"`
}

// SyncResponse represents the response for a full sync.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary aggregates a full sync run.
type SyncSummary struct {
	TotalSynced     int `json:"total_synced"`
	CollectionsOK   int `json:"collections_ok"`
	CollectionsFail int `json:"collections_fail"`
}

// FromSyncResults converts service.SyncResult slice to SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.CollectionsFail++
		} else {
			resp.Summary.TotalSynced += r.Count
			resp.Summary.CollectionsOK++
		}

		resp.Results[i] = SyncResultResponse{
			Collection: string(r.Collection),
			Count:      r.Count,
			Duration:   r.Duration.String(),
			Error:      errMsg,
		}
	}

	return resp
}

// StatsResponse describes the current snapshot for the dashboard API.
type StatsResponse struct {
	Counts   map[string]int `json:"counts"`
	LoadedAt string         `json:"loaded_at,omitempty"`
}

// FromStats converts service.Stats to StatsResponse.
func FromStats(s service.Stats) StatsResponse {
	counts := make(map[string]int, len(s.Counts))
	for c, n := range s.Counts {
		counts[string(c)] = n
	}

	resp := StatsResponse{Counts: counts}
	if !s.LoadedAt.IsZero() {
		resp.LoadedAt = s.LoadedAt.Format(time.RFC3339)
	}

	return resp
}

// PreviewEntryResponse is one draft entry in a preview listing.
type PreviewEntryResponse struct {
	DocumentID  string `json:"document_id"`
	Slug        string `json:"slug"`
	Attributes  any    `json:"attributes"`
	PublishedAt string `json:"published_at,omitempty"`
}

// PreviewResponse is a draft preview listing. Degraded marks a fallback
// empty result served while the CMS is unreachable.
type PreviewResponse struct {
	Entries  []PreviewEntryResponse `json:"entries"`
	Total    int                    `json:"total"`
	Degraded bool                   `json:"degraded,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
