// Package strapi implements the headless CMS content client.
package strapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"jobnagringa-content-api/internal/domain"
)

// Query describes one CMS collection request. The zero value fetches the
// first default-sized page of published entries.
type Query struct {
	// Filters is a nested operator object, e.g. {"slug": {"$eq": "x"}}.
	Filters map[string]any `json:"filters,omitempty"`
	// Populate selects which relations to expand: a string, a []string, or
	// a nested map.
	Populate any `json:"populate,omitempty"`
	// Sort holds "field:direction" strings.
	Sort []string `json:"sort,omitempty"`
	// Fields projects the returned attributes.
	Fields []string `json:"fields,omitempty"`

	Pagination Pagination `json:"pagination,omitempty"`

	PublicationState string `json:"publication_state,omitempty"` // live, preview
	Locale           string `json:"locale,omitempty"`
}

// Pagination is either page-based (Page/PageSize) or offset-based
// (Start/Limit). Page-based wins when both are set.
type Pagination struct {
	Page     int  `json:"page,omitempty"`
	PageSize int  `json:"page_size,omitempty"`
	Start    *int `json:"start,omitempty"`
	Limit    *int `json:"limit,omitempty"`
}

// Eq builds a single-field equality filter.
func Eq(field string, value any) map[string]any {
	return map[string]any{field: map[string]any{"$eq": value}}
}

// Values encodes the query using the CMS bracket syntax, e.g.
// filters[level][$eq]=Senior&pagination[page]=2&sort[0]=publishedAt:desc.
func (q Query) Values() url.Values {
	values := url.Values{}

	encodeNested(values, "filters", q.Filters)
	encodeNested(values, "populate", q.Populate)
	for i, s := range q.Sort {
		values.Set(fmt.Sprintf("sort[%d]", i), s)
	}
	for i, f := range q.Fields {
		values.Set(fmt.Sprintf("fields[%d]", i), f)
	}

	switch {
	case q.Pagination.Page > 0:
		values.Set("pagination[page]", fmt.Sprint(q.Pagination.Page))
		if q.Pagination.PageSize > 0 {
			values.Set("pagination[pageSize]", fmt.Sprint(q.Pagination.PageSize))
		}
	case q.Pagination.Start != nil:
		values.Set("pagination[start]", fmt.Sprint(*q.Pagination.Start))
		if q.Pagination.Limit != nil {
			values.Set("pagination[limit]", fmt.Sprint(*q.Pagination.Limit))
		}
	}

	if q.PublicationState != "" {
		values.Set("publicationState", q.PublicationState)
	}
	if q.Locale != "" {
		values.Set("locale", q.Locale)
	}

	return values
}

// encodeNested flattens maps and slices into bracketed keys. Map keys are
// visited in sorted order so encoding is deterministic.
func encodeNested(values url.Values, prefix string, v any) {
	switch val := v.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			encodeNested(values, prefix+"["+k+"]", val[k])
		}
	case []any:
		for i, item := range val {
			encodeNested(values, fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	case []string:
		for i, item := range val {
			values.Set(fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	case string:
		if val != "" {
			values.Set(prefix, val)
		}
	default:
		values.Set(prefix, fmt.Sprint(val))
	}
}

// CacheKey returns a stable key for this query on the given collection:
// collection name plus the canonical JSON serialization of the parameters.
// encoding/json emits map keys in sorted order, so equal queries produce
// equal keys.
func CacheKey(collection domain.Collection, q Query) string {
	raw, err := json.Marshal(q)
	if err != nil {
		// Query fields are plain data; marshaling cannot realistically fail.
		return string(collection) + ":unkeyed"
	}

	return string(collection) + ":" + string(raw)
}
