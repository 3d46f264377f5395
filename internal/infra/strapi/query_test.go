package strapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobnagringa-content-api/internal/domain"
)

func TestQuery_Values_BracketEncoding(t *testing.T) {
	q := Query{
		Filters: map[string]any{
			"level": map[string]any{"$eq": "Senior"},
			"open_for_brazilians": map[string]any{"$eq": true},
		},
		Sort:       []string{"publishedAt:desc", "slug:asc"},
		Fields:     []string{"slug", "position"},
		Pagination: Pagination{Page: 2, PageSize: 25},
	}

	values := q.Values()

	assert.Equal(t, "Senior", values.Get("filters[level][$eq]"))
	assert.Equal(t, "true", values.Get("filters[open_for_brazilians][$eq]"))
	assert.Equal(t, "publishedAt:desc", values.Get("sort[0]"))
	assert.Equal(t, "slug:asc", values.Get("sort[1]"))
	assert.Equal(t, "slug", values.Get("fields[0]"))
	assert.Equal(t, "position", values.Get("fields[1]"))
	assert.Equal(t, "2", values.Get("pagination[page]"))
	assert.Equal(t, "25", values.Get("pagination[pageSize]"))
}

func TestQuery_Values_ZeroValue(t *testing.T) {
	values := Query{}.Values()
	assert.Empty(t, values)
}

func TestQuery_Values_OffsetPagination(t *testing.T) {
	start, limit := 40, 20
	q := Query{Pagination: Pagination{Start: &start, Limit: &limit}}

	values := q.Values()
	assert.Equal(t, "40", values.Get("pagination[start]"))
	assert.Equal(t, "20", values.Get("pagination[limit]"))
	assert.Empty(t, values.Get("pagination[page]"))
}

func TestQuery_Values_PageBasedWinsOverOffset(t *testing.T) {
	start := 40
	q := Query{Pagination: Pagination{Page: 1, Start: &start}}

	values := q.Values()
	assert.Equal(t, "1", values.Get("pagination[page]"))
	assert.Empty(t, values.Get("pagination[start]"))
}

func TestQuery_Values_PublicationStateAndLocale(t *testing.T) {
	q := Query{PublicationState: "preview", Locale: "pt-BR"}

	values := q.Values()
	assert.Equal(t, "preview", values.Get("publicationState"))
	assert.Equal(t, "pt-BR", values.Get("locale"))
}

func TestQuery_Values_NestedPopulate(t *testing.T) {
	q := Query{
		Populate: map[string]any{
			"author": map[string]any{"fields": []string{"name", "avatar"}},
		},
	}

	values := q.Values()
	assert.Equal(t, "name", values.Get("populate[author][fields][0]"))
	assert.Equal(t, "avatar", values.Get("populate[author][fields][1]"))
}

func TestQuery_Values_StringPopulate(t *testing.T) {
	q := Query{Populate: "*"}

	values := q.Values()
	assert.Equal(t, "*", values.Get("populate"))
}

func TestEq(t *testing.T) {
	f := Eq("slug", "backend-engineer")
	assert.Equal(t, map[string]any{"slug": map[string]any{"$eq": "backend-engineer"}}, f)
}

func TestCacheKey_StableForEqualQueries(t *testing.T) {
	q1 := Query{
		Filters:    map[string]any{"level": map[string]any{"$eq": "Senior"}, "featured": map[string]any{"$eq": true}},
		Pagination: Pagination{Page: 1, PageSize: 10},
	}
	q2 := Query{
		Filters:    map[string]any{"featured": map[string]any{"$eq": true}, "level": map[string]any{"$eq": "Senior"}},
		Pagination: Pagination{Page: 1, PageSize: 10},
	}

	assert.Equal(t, CacheKey(domain.CollectionJobs, q1), CacheKey(domain.CollectionJobs, q2))
}

func TestCacheKey_DistinguishesQueries(t *testing.T) {
	base := Query{Pagination: Pagination{Page: 1}}
	other := Query{Pagination: Pagination{Page: 2}}

	assert.NotEqual(t, CacheKey(domain.CollectionJobs, base), CacheKey(domain.CollectionJobs, other))
	assert.NotEqual(t, CacheKey(domain.CollectionJobs, base), CacheKey(domain.CollectionPosts, base))
}
