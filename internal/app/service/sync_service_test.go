package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/infra/strapi"
	"jobnagringa-content-api/internal/store"
	"jobnagringa-content-api/internal/validator"
)

// fakeCMS returns canned entries per collection and records fetch calls.
type fakeCMS struct {
	mu      sync.Mutex
	entries map[domain.Collection][]domain.Entry
	failOn  map[domain.Collection]bool
	calls   []domain.Collection
}

func (f *fakeCMS) FetchAll(_ context.Context, collection domain.Collection, _ strapi.Query) ([]domain.Entry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, collection)
	f.mu.Unlock()

	if f.failOn[collection] {
		return nil, errors.New("cms unavailable")
	}

	return f.entries[collection], nil
}

// memoryRepo is a map-backed EntryRepository for sync tests.
type memoryRepo struct {
	mu          sync.Mutex
	collections map[domain.Collection][]domain.Entry
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{collections: make(map[domain.Collection][]domain.Entry)}
}

func (r *memoryRepo) ListCollection(_ context.Context, c domain.Collection) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collections[c], nil
}

func (r *memoryRepo) ReplaceCollection(_ context.Context, c domain.Collection, entries []domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[c] = entries

	return nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, c domain.Collection, slug string) (*domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.collections[c] {
		if e.Slug == slug {
			return &e, nil
		}
	}

	return nil, nil
}

func (r *memoryRepo) CountByCollection(_ context.Context) (map[domain.Collection]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[domain.Collection]int64)
	for c, entries := range r.collections {
		counts[c] = int64(len(entries))
	}

	return counts, nil
}

func (r *memoryRepo) TagCounts(_ context.Context, c domain.Collection) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int64)
	for _, e := range r.collections[c] {
		for _, tag := range e.Tags {
			counts[tag]++
		}
	}

	return counts, nil
}

func cmsEntry(t *testing.T, collection domain.Collection, attrs map[string]any) domain.Entry {
	t.Helper()

	raw, err := json.Marshal(attrs)
	require.NoError(t, err)

	slug, _ := attrs["slug"].(string)

	return domain.Entry{Collection: collection, Slug: slug, Attributes: raw}
}

func newSyncFixture(cms *fakeCMS) (*SyncService, *memoryRepo, *store.Store) {
	repo := newMemoryRepo()
	st := store.New(repo, validator.New(), zap.NewNop())
	svc := NewSyncService(cms, repo, st, zap.NewNop())

	return svc, repo, st
}

func TestSyncAll_FetchesEveryCollection(t *testing.T) {
	cms := &fakeCMS{entries: map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: {
			cmsEntry(t, domain.CollectionJobs, map[string]any{"slug": "synced-job", "position": "Engineer"}),
		},
		domain.CollectionPosts: {
			cmsEntry(t, domain.CollectionPosts, map[string]any{
				"slug": "synced-post", "title": "Synced",
				"author": map[string]any{"name": "Ana"}, "published_at": "2026-01-01T00:00:00Z",
			}),
		},
	}}

	svc, repo, st := newSyncFixture(cms)
	results := svc.SyncAll(context.Background())

	require.Len(t, results, len(domain.Collections()))
	for _, r := range results {
		assert.NoError(t, r.Error, "collection %s", r.Collection)
	}

	stored, err := repo.ListCollection(context.Background(), domain.CollectionJobs)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	// The snapshot is rebuilt after the sync
	snap := st.Snapshot()
	require.Len(t, snap.Jobs, 1)
	assert.Equal(t, "synced-job", snap.Jobs[0].Slug)
	require.Len(t, snap.Posts, 1)
}

func TestSyncAll_PartialFailure(t *testing.T) {
	cms := &fakeCMS{
		entries: map[domain.Collection][]domain.Entry{
			domain.CollectionJobs: {
				cmsEntry(t, domain.CollectionJobs, map[string]any{"slug": "good-job", "position": "Engineer"}),
			},
		},
		failOn: map[domain.Collection]bool{domain.CollectionPosts: true},
	}

	svc, _, st := newSyncFixture(cms)
	results := svc.SyncAll(context.Background())

	var jobsResult, postsResult *SyncResult
	for i := range results {
		switch results[i].Collection {
		case domain.CollectionJobs:
			jobsResult = &results[i]
		case domain.CollectionPosts:
			postsResult = &results[i]
		}
	}

	require.NotNil(t, jobsResult)
	assert.NoError(t, jobsResult.Error)
	assert.Equal(t, 1, jobsResult.Count)

	require.NotNil(t, postsResult)
	assert.Error(t, postsResult.Error)

	// Successful collections still land in the snapshot
	assert.Len(t, st.Snapshot().Jobs, 1)
}

func TestSyncAll_FailedCollectionKeepsStoredEntries(t *testing.T) {
	cms := &fakeCMS{entries: map[domain.Collection][]domain.Entry{
		domain.CollectionPosts: {
			cmsEntry(t, domain.CollectionPosts, map[string]any{
				"slug": "existing-post", "title": "Existing",
				"author": map[string]any{"name": "Ana"}, "published_at": "2026-01-01T00:00:00Z",
			}),
		},
	}}

	svc, repo, st := newSyncFixture(cms)
	svc.SyncAll(context.Background())
	require.Len(t, st.Snapshot().Posts, 1)

	// Next sync fails for posts; the stored entries must survive
	cms.failOn = map[domain.Collection]bool{domain.CollectionPosts: true}
	svc.SyncAll(context.Background())

	stored, err := repo.ListCollection(context.Background(), domain.CollectionPosts)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Len(t, st.Snapshot().Posts, 1)
}

func TestSyncCollection_ByName(t *testing.T) {
	cms := &fakeCMS{entries: map[domain.Collection][]domain.Entry{
		domain.CollectionJobs: {
			cmsEntry(t, domain.CollectionJobs, map[string]any{"slug": "only-job", "position": "Engineer"}),
		},
	}}

	svc, _, st := newSyncFixture(cms)

	result, err := svc.SyncCollection(context.Background(), "jobs")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.CollectionJobs, result.Collection)
	assert.Equal(t, 1, result.Count)
	assert.Len(t, st.Snapshot().Jobs, 1)

	// Only the requested collection is fetched
	assert.Equal(t, []domain.Collection{domain.CollectionJobs}, cms.calls)
}

func TestSyncCollection_UnknownName(t *testing.T) {
	svc, _, _ := newSyncFixture(&fakeCMS{})

	result, err := svc.SyncCollection(context.Background(), "not-a-collection")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSync_DenormalizesTagsAndDropsSluglessEntries(t *testing.T) {
	cms := &fakeCMS{entries: map[domain.Collection][]domain.Entry{
		domain.CollectionQAItems: {
			cmsEntry(t, domain.CollectionQAItems, map[string]any{
				"slug": "visa-question", "question": "How do visas work?",
				"tags": []string{"visto", "europa"},
			}),
			cmsEntry(t, domain.CollectionQAItems, map[string]any{
				"question": "Orphaned question without slug",
			}),
		},
	}}

	svc, repo, _ := newSyncFixture(cms)

	result, err := svc.SyncCollection(context.Background(), "qa-items")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count, "Entries without slugs are dropped")

	stored, err := repo.ListCollection(context.Background(), domain.CollectionQAItems)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"visto", "europa"}, stored[0].Tags)

	tagCounts, err := repo.TagCounts(context.Background(), domain.CollectionQAItems)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tagCounts["visto"])
}

func TestTagStats_ByCollectionName(t *testing.T) {
	cms := &fakeCMS{entries: map[domain.Collection][]domain.Entry{
		domain.CollectionPosts: {
			cmsEntry(t, domain.CollectionPosts, map[string]any{
				"slug": "visto-alemanha", "title": "Visto na Alemanha",
				"author": map[string]any{"name": "Ana"}, "published_at": "2026-01-10T00:00:00Z",
				"tags": []string{"visto", "alemanha"},
			}),
			cmsEntry(t, domain.CollectionPosts, map[string]any{
				"slug": "visto-holanda", "title": "Visto na Holanda",
				"author": map[string]any{"name": "Ana"}, "published_at": "2026-01-12T00:00:00Z",
				"tags": []string{"visto"},
			}),
		},
	}}

	svc, _, _ := newSyncFixture(cms)

	_, err := svc.SyncCollection(context.Background(), "posts")
	require.NoError(t, err)

	counts, err := svc.TagStats(context.Background(), "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["visto"])
	assert.Equal(t, int64(1), counts["alemanha"])

	unknown, err := svc.TagStats(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestSyncService_Unavailable(t *testing.T) {
	st := store.New(newMemoryRepo(), validator.New(), zap.NewNop())
	svc := NewSyncService(nil, nil, st, zap.NewNop())

	assert.False(t, svc.Available())

	_, err := svc.TagStats(context.Background(), "posts")
	assert.Error(t, err)
}
