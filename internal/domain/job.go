package domain

import (
	"sort"
	"time"
)

// Job is a single job listing.
type Job struct {
	Slug              string     `json:"slug" validate:"required,slug"`
	Position          string     `json:"position" validate:"required"`
	Company           string     `json:"company,omitempty"`
	Categories        []string   `json:"categories,omitempty"`
	Location          string     `json:"location,omitempty"`
	Level             string     `json:"level,omitempty"`
	SearchCategory    string     `json:"search_category,omitempty"`
	OpenForBrazilians bool       `json:"open_for_brazilians"`
	SponsorsVisa      bool       `json:"sponsors_visa"`
	Detail            string     `json:"detail,omitempty"` // Rich text body
	Featured          bool       `json:"featured"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
}

// JobFilters narrows the job collection. Omitted keys impose no constraint:
// empty strings and nil slices mean "no filter", and the booleans are
// pointers so that absent and false stay distinct.
type JobFilters struct {
	Position          string   // Case-insensitive substring match
	Categories        []string // Matches when any requested category is present
	Location          string   // Case-insensitive substring match
	Level             string   // Exact match
	SearchCategory    string   // Exact match
	OpenForBrazilians *bool
	SponsorsVisa      *bool
	Search            string // Full-text pass across position/company/location/categories/level
}

// jobSearchFields is the explicit field set for the full-text pass.
func jobSearchFields(j Job) []string {
	fields := []string{j.Position, j.Company, j.Location, j.Level, j.SearchCategory}
	return append(fields, j.Categories...)
}

// FilterJobs applies every provided filter key via sequential narrowing
// (logical AND), then the full-text search pass.
func FilterJobs(jobs []Job, f JobFilters) []Job {
	matched := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Position != "" && !containsFold(j.Position, f.Position) {
			continue
		}
		if f.Location != "" && !containsFold(j.Location, f.Location) {
			continue
		}
		if f.Level != "" && j.Level != f.Level {
			continue
		}
		if f.SearchCategory != "" && j.SearchCategory != f.SearchCategory {
			continue
		}
		if len(f.Categories) > 0 && !intersects(j.Categories, f.Categories) {
			continue
		}
		if f.OpenForBrazilians != nil && j.OpenForBrazilians != *f.OpenForBrazilians {
			continue
		}
		if f.SponsorsVisa != nil && j.SponsorsVisa != *f.SponsorsVisa {
			continue
		}
		matched = append(matched, j)
	}

	return FullTextSearch(matched, f.Search, jobSearchFields)
}

// SortJobs orders featured listings first, then newest first. The sort is
// stable so equal entries keep their snapshot order.
func SortJobs(jobs []Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		if jobs[i].Featured != jobs[k].Featured {
			return jobs[i].Featured
		}
		return publishedAfter(jobs[i].PublishedAt, jobs[k].PublishedAt)
	})
}

// publishedAfter reports whether a sorts before b under newest-first ordering.
// Entries without a timestamp sort last.
func publishedAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

// CategoryCount pairs a job category with its live listing count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CountJobCategories recomputes each category's job count by scanning the
// collection. This is a read-time join, not a stored counter: always
// consistent with the current job set at O(categories x jobs) cost.
func CountJobCategories(jobs []Job) []CategoryCount {
	counts := make(map[string]int)
	for _, j := range jobs {
		for _, c := range j.Categories {
			counts[c]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, k int) bool {
		if result[i].Count != result[k].Count {
			return result[i].Count > result[k].Count
		}
		return result[i].Category < result[k].Category
	})

	return result
}
