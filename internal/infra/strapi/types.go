package strapi

import (
	"encoding/json"
	"fmt"
	"time"

	"jobnagringa-content-api/internal/domain"
)

// Response is the CMS collection envelope.
type Response struct {
	Data []json.RawMessage `json:"data"`
	Meta Meta              `json:"meta"`
}

// Meta carries the remote pagination metadata.
type Meta struct {
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta mirrors the CMS pagination block.
type PaginationMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// CollectionResult is one page of flattened entries plus remote pagination
// metadata. Degraded reports that the fetch failed and the empty result is a
// graceful fallback, so callers can tell "confirmed empty" from "backend
// down" when they care.
type CollectionResult struct {
	Entries    []domain.Entry `json:"entries"`
	Pagination PaginationMeta `json:"pagination"`
	Degraded   bool           `json:"degraded,omitempty"`
}

// emptyResult is the zero-valued fallback for failed fetches.
func emptyResult(degraded bool) *CollectionResult {
	return &CollectionResult{
		Entries:    []domain.Entry{},
		Pagination: PaginationMeta{Page: 1},
		Degraded:   degraded,
	}
}

// FetchError wraps a failed CMS request with its collection and HTTP status
// (0 for transport errors).
type FetchError struct {
	Collection domain.Collection
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetching %s: status %d", e.Collection, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// flattenDocument converts one raw CMS document into a domain.Entry. Older
// API versions nest the attribute bag under "attributes"; newer ones return
// it flat alongside id and documentId. Both shapes flatten to
// {id, documentId, createdAt, updatedAt, publishedAt, ...attributes}.
func flattenDocument(collection domain.Collection, raw json.RawMessage) (domain.Entry, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Entry{}, fmt.Errorf("decoding document: %w", err)
	}

	flat := make(map[string]json.RawMessage, len(doc))
	for k, v := range doc {
		if k == "attributes" {
			continue
		}
		flat[k] = v
	}
	if nested, ok := doc["attributes"]; ok {
		var attrs map[string]json.RawMessage
		if err := json.Unmarshal(nested, &attrs); err != nil {
			return domain.Entry{}, fmt.Errorf("decoding attributes: %w", err)
		}
		for k, v := range attrs {
			flat[k] = v
		}
	}

	entry := domain.Entry{Collection: collection}
	entry.DocumentID = stringField(flat, "documentId")
	if entry.DocumentID == "" {
		entry.DocumentID = stringField(flat, "id")
	}
	entry.Slug = stringField(flat, "slug")
	if t := timeField(flat, "publishedAt"); t != nil {
		entry.PublishedAt = t
	}
	if t := timeField(flat, "createdAt"); t != nil {
		entry.CreatedAt = *t
	}
	if t := timeField(flat, "updatedAt"); t != nil {
		entry.UpdatedAt = *t
	}

	attributes, err := json.Marshal(flat)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("re-encoding attributes: %w", err)
	}
	entry.Attributes = attributes

	return entry, nil
}

// stringField reads a string or numeric id field from the flattened map.
func stringField(doc map[string]json.RawMessage, key string) string {
	raw, ok := doc[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

func timeField(doc map[string]json.RawMessage, key string) *time.Time {
	raw, ok := doc[key]
	if !ok {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}

	return &t
}
