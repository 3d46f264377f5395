// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strings"

	"jobnagringa-content-api/internal/domain"
)

// PageRequest carries the shared offset pagination query parameters.
type PageRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToPageParams converts PageRequest to domain.PageParams.
func (r *PageRequest) ToPageParams() domain.PageParams {
	return domain.PageParams{Page: r.Page, PageSize: r.PageSize}
}

// JobsRequest represents the query parameters for the job board.
type JobsRequest struct {
	PageRequest
	Position          string `query:"position" validate:"max=200"`
	Categories        string `query:"categories" validate:"max=500"` // Comma-separated
	Location          string `query:"location" validate:"max=200"`
	Level             string `query:"level" validate:"max=100"`
	SearchCategory    string `query:"search_category" validate:"max=100"`
	OpenForBrazilians string `query:"open_for_brazilians" validate:"omitempty,oneof=true false"`
	SponsorsVisa      string `query:"sponsors_visa" validate:"omitempty,oneof=true false"`
	Search            string `query:"q" validate:"max=200"`
	Cursor            string `query:"cursor" validate:"max=255"` // Infinite scroll mode
}

// ToFilters converts JobsRequest to domain.JobFilters. The boolean filters
// are tri-state: an absent parameter imposes no constraint, which is why they
// arrive as strings rather than bools.
func (r *JobsRequest) ToFilters() domain.JobFilters {
	return domain.JobFilters{
		Position:          r.Position,
		Categories:        splitCSV(r.Categories),
		Location:          r.Location,
		Level:             r.Level,
		SearchCategory:    r.SearchCategory,
		OpenForBrazilians: parseTriState(r.OpenForBrazilians),
		SponsorsVisa:      parseTriState(r.SponsorsVisa),
		Search:            r.Search,
	}
}

// ToCursorParams converts JobsRequest to domain.CursorParams.
func (r *JobsRequest) ToCursorParams() domain.CursorParams {
	return domain.CursorParams{PageSize: r.PageSize, Cursor: r.Cursor}
}

// PostsRequest represents the query parameters for the blog listing.
type PostsRequest struct {
	PageRequest
	Tags   string `query:"tags" validate:"max=500"` // Comma-separated
	Author string `query:"author" validate:"max=200"`
	Search string `query:"q" validate:"max=200"`
}

// ToFilters converts PostsRequest to domain.PostFilters.
func (r *PostsRequest) ToFilters() domain.PostFilters {
	return domain.PostFilters{
		Tags:   splitCSV(r.Tags),
		Author: r.Author,
		Search: r.Search,
	}
}

// QARequest represents the query parameters for the Q&A section.
type QARequest struct {
	PageRequest
	Tags   string `query:"tags" validate:"max=500"` // Comma-separated
	Search string `query:"q" validate:"max=200"`
}

// ToFilters converts QARequest to domain.QAFilters.
func (r *QARequest) ToFilters() domain.QAFilters {
	return domain.QAFilters{
		Tags:   splitCSV(r.Tags),
		Search: r.Search,
	}
}

// PreviewRequest represents the query parameters for draft previews.
type PreviewRequest struct {
	PageRequest
	Collection string `query:"collection" validate:"required,slug"`
}

// splitCSV splits a comma-separated parameter, trimming whitespace and
// dropping empty segments. Returns nil for an absent parameter so that
// "no filter" survives the conversion.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// parseTriState maps "" to nil and "true"/"false" to the matching bool.
func parseTriState(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
