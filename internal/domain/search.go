package domain

import "strings"

// SearchFields extracts the searchable text of an item. Array-valued fields
// should be appended as separate elements; they are joined with spaces before
// matching. Field lists are always explicit - there is no "search everything"
// default.
type SearchFields[T any] func(T) []string

// FullTextSearch keeps an item only if every whitespace-delimited term of the
// query appears as a substring within the concatenation of its search fields.
// Matching is case-insensitive. This is AND-of-terms semantics: no ranking,
// no stemming, no fuzzy matching. An empty query returns items unchanged.
func FullTextSearch[T any](items []T, query string, fields SearchFields[T]) []T {
	terms := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(terms) == 0 {
		return items
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(strings.Join(fields(item), " "))
		ok := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, item)
		}
	}

	return matched
}

// containsFold reports whether s contains substr, ignoring ASCII case.
// Used by per-collection substring filters (position, location).
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// intersects reports whether any requested value is present in the item's set.
func intersects(set, requested []string) bool {
	for _, want := range requested {
		for _, have := range set {
			if have == want {
				return true
			}
		}
	}

	return false
}
