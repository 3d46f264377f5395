package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/store"
	"jobnagringa-content-api/internal/validator"
)

// snapshotSource serves canned entries so tests control the snapshot exactly.
type snapshotSource struct {
	entries map[domain.Collection][]domain.Entry
}

func (f *snapshotSource) ListCollection(_ context.Context, c domain.Collection) ([]domain.Entry, error) {
	return f.entries[c], nil
}

func entryJSON(t *testing.T, collection domain.Collection, attrs map[string]any) domain.Entry {
	t.Helper()

	raw, err := json.Marshal(attrs)
	require.NoError(t, err)

	slug, _ := attrs["slug"].(string)

	return domain.Entry{Collection: collection, Slug: slug, Attributes: raw}
}

func newContentService(t *testing.T, entries map[domain.Collection][]domain.Entry) *ContentService {
	t.Helper()

	st := store.New(&snapshotSource{entries: entries}, validator.New(), zap.NewNop())
	require.NoError(t, st.Reload(context.Background()))

	return NewContentService(st, nil, zap.NewNop())
}

func jobEntry(t *testing.T, i int, attrs map[string]any) domain.Entry {
	base := map[string]any{
		"slug":     fmt.Sprintf("job-%03d", i),
		"position": fmt.Sprintf("Engineer %03d", i),
	}
	for k, v := range attrs {
		base[k] = v
	}

	return entryJSON(t, domain.CollectionJobs, base)
}

func TestJobs_FilterThenPaginate(t *testing.T) {
	entries := make([]domain.Entry, 0, 30)
	for i := 0; i < 30; i++ {
		level := "Mid"
		if i%2 == 0 {
			level = "Senior"
		}
		entries = append(entries, jobEntry(t, i, map[string]any{"level": level}))
	}

	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: entries,
	})

	result := svc.Jobs(domain.JobFilters{Level: "Senior"}, domain.PageParams{Page: 1, PageSize: 10})

	assert.Equal(t, 15, result.Total, "Total counts the filtered set, not the page")
	assert.Len(t, result.Items, 10)
	assert.Equal(t, 2, result.TotalPages)
	assert.True(t, result.HasNextPage)
	assert.False(t, result.HasPrevPage)
	for _, j := range result.Items {
		assert.Equal(t, "Senior", j.Level)
	}

	last := svc.Jobs(domain.JobFilters{Level: "Senior"}, domain.PageParams{Page: 2, PageSize: 10})
	assert.Len(t, last.Items, 5)
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPrevPage)
}

func TestJobs_ComposedFilters(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: {
			jobEntry(t, 1, map[string]any{
				"position": "Backend Engineer", "location": "Berlin, Germany",
				"level": "Senior", "sponsors_visa": true, "categories": []string{"backend"},
			}),
			jobEntry(t, 2, map[string]any{
				"position": "Backend Engineer", "location": "Austin, USA",
				"level": "Senior", "sponsors_visa": false, "categories": []string{"backend"},
			}),
			jobEntry(t, 3, map[string]any{
				"position": "Frontend Engineer", "location": "Berlin, Germany",
				"level": "Junior", "sponsors_visa": true, "categories": []string{"frontend"},
			}),
		},
	})

	sponsors := true
	result := svc.Jobs(domain.JobFilters{
		Location:     "germany",
		SponsorsVisa: &sponsors,
	}, domain.PageParams{})

	require.Equal(t, 2, result.Total)
	for _, j := range result.Items {
		assert.Contains(t, j.Location, "Germany")
		assert.True(t, j.SponsorsVisa)
	}
}

func TestJobsFeed_CursorWalk(t *testing.T) {
	entries := make([]domain.Entry, 0, 25)
	for i := 0; i < 25; i++ {
		entries = append(entries, jobEntry(t, i, nil))
	}

	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: entries,
	})

	var seen []string
	cursor := ""
	for {
		page := svc.JobsFeed(domain.JobFilters{}, domain.CursorParams{PageSize: 10, Cursor: cursor})
		for _, j := range page.Items {
			seen = append(seen, j.Slug)
		}
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	assert.Len(t, seen, 25, "Cursor walk must visit every job exactly once")
	unique := make(map[string]bool)
	for _, s := range seen {
		unique[s] = true
	}
	assert.Len(t, unique, 25)
}

func TestGetJobBySlug(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: {jobEntry(t, 1, nil)},
	})

	job := svc.GetJobBySlug("job-001")
	require.NotNil(t, job)
	assert.Equal(t, "Engineer 001", job.Position)

	assert.Nil(t, svc.GetJobBySlug("missing"))
}

func TestJobCategories(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: {
			jobEntry(t, 1, map[string]any{"categories": []string{"backend", "devops"}}),
			jobEntry(t, 2, map[string]any{"categories": []string{"backend"}}),
		},
	})

	counts := svc.JobCategories()
	require.Len(t, counts, 2)
	assert.Equal(t, domain.CategoryCount{Category: "backend", Count: 2}, counts[0])
	assert.Equal(t, domain.CategoryCount{Category: "devops", Count: 1}, counts[1])
}

func postEntry(t *testing.T, slug string, memberOnly bool, published string) domain.Entry {
	return entryJSON(t, domain.CollectionPosts, map[string]any{
		"slug":         slug,
		"title":        "Post " + slug,
		"author":       map[string]any{"name": "Ana"},
		"published_at": published,
		"member_only":  memberOnly,
	})
}

func TestPosts_MembershipGate(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionPosts: {
			postEntry(t, "public-post", false, "2026-01-01T00:00:00Z"),
			postEntry(t, "members-post", true, "2026-02-01T00:00:00Z"),
		},
	})

	free := svc.Posts(domain.PostFilters{}, domain.PageParams{}, false)
	require.Equal(t, 1, free.Total, "Gate must run before pagination so totals do not leak")
	assert.Equal(t, "public-post", free.Items[0].Slug)

	paid := svc.Posts(domain.PostFilters{}, domain.PageParams{}, true)
	assert.Equal(t, 2, paid.Total)
	assert.Equal(t, "members-post", paid.Items[0].Slug, "Posts sort newest first")
}

func TestGetPostBySlug_Gating(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionPosts: {
			postEntry(t, "members-post", true, "2026-02-01T00:00:00Z"),
		},
	})

	post, err := svc.GetPostBySlug("members-post", true)
	require.NoError(t, err)
	require.NotNil(t, post)

	_, err = svc.GetPostBySlug("members-post", false)
	assert.ErrorIs(t, err, domain.ErrMemberOnly)

	missing, err := svc.GetPostBySlug("nope", true)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCourseLessons(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionCourses: {
			entryJSON(t, domain.CollectionCourses, map[string]any{
				"slug": "interviews", "title": "Interviews", "order": 1,
			}),
		},
		domain.CollectionLessons: {
			entryJSON(t, domain.CollectionLessons, map[string]any{
				"slug": "lesson-two", "title": "Two", "course_id": "interviews", "order": 2,
			}),
			entryJSON(t, domain.CollectionLessons, map[string]any{
				"slug": "lesson-one", "title": "One", "course_id": "interviews", "order": 1,
			}),
			entryJSON(t, domain.CollectionLessons, map[string]any{
				"slug": "members-lesson", "title": "Secret", "course_id": "interviews",
				"order": 3, "member_only": true,
			}),
			entryJSON(t, domain.CollectionLessons, map[string]any{
				"slug": "other-lesson", "title": "Other", "course_id": "other-course", "order": 1,
			}),
		},
	})

	lessons, err := svc.CourseLessons("interviews", false)
	require.NoError(t, err)
	require.Len(t, lessons, 2, "Gated and foreign lessons are excluded")
	assert.Equal(t, "lesson-one", lessons[0].Slug, "Lessons follow their sequence order")
	assert.Equal(t, "lesson-two", lessons[1].Slug)

	all, err := svc.CourseLessons("interviews", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := svc.CourseLessons("unknown-course", true)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCourseLessons_EmptyCourseIsNotMissing(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionCourses: {
			entryJSON(t, domain.CollectionCourses, map[string]any{
				"slug": "brand-new-course", "title": "Brand New", "order": 1,
			}),
		},
	})

	// An existing course with no lessons yet must stay distinguishable from
	// an unknown course, for paying and free callers alike.
	paid, err := svc.CourseLessons("brand-new-course", true)
	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.Empty(t, paid)

	free, err := svc.CourseLessons("brand-new-course", false)
	require.NoError(t, err)
	require.NotNil(t, free)
	assert.Empty(t, free)
}

func TestDashboardCards_Ordering(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionDashboardCards: {
			entryJSON(t, domain.CollectionDashboardCards, map[string]any{
				"slug": "plain-card", "title": "Plain", "order": 1,
			}),
			entryJSON(t, domain.CollectionDashboardCards, map[string]any{
				"slug": "featured-card", "title": "Featured", "order": 5, "featured": true,
			}),
			entryJSON(t, domain.CollectionDashboardCards, map[string]any{
				"slug": "members-card", "title": "Members", "order": 0, "member_only": true,
			}),
		},
	})

	cards := svc.DashboardCards(false)
	require.Len(t, cards, 2)
	assert.Equal(t, "featured-card", cards[0].Slug, "Featured cards come first")

	assert.Len(t, svc.DashboardCards(true), 3)
}

func TestStats(t *testing.T) {
	svc := newContentService(t, map[domain.Collection][]domain.Entry{
		domain.CollectionJobs:  {jobEntry(t, 1, nil)},
		domain.CollectionPosts: {postEntry(t, "one-post", false, "2026-01-01T00:00:00Z")},
	})

	stats := svc.Stats()
	assert.Equal(t, 1, stats.Counts[domain.CollectionJobs])
	assert.Equal(t, 1, stats.Counts[domain.CollectionPosts])
	assert.Equal(t, 0, stats.Counts[domain.CollectionVideos])
	assert.False(t, stats.LoadedAt.IsZero())
}

func TestPreview_UnavailableWithoutCMS(t *testing.T) {
	svc := newContentService(t, nil)

	_, err := svc.Preview(context.Background(), domain.CollectionJobs, domain.PageParams{})
	assert.ErrorIs(t, err, ErrPreviewUnavailable)
}
