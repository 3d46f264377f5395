// Package store holds the in-memory content snapshot. All query endpoints
// read from the snapshot; storage is only touched when it is rebuilt.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/validator"
)

// Snapshot is one immutable view of every collection, decoded into typed
// structs and pre-sorted. A snapshot is never mutated after Reload publishes
// it; readers share it without locking.
type Snapshot struct {
	Jobs           []domain.Job
	Posts          []domain.Post
	Partners       []domain.Partner
	Products       []domain.Product
	Courses        []domain.Course
	Lessons        []domain.Lesson
	Videos         []domain.Video
	QAItems        []domain.QAItem
	QATags         []domain.QATag
	ResumeReviews  []domain.ResumeReview
	DashboardCards []domain.DashboardCard
	Affiliates     []domain.Affiliate

	LoadedAt time.Time
}

// Counts returns the entry count per collection.
func (s *Snapshot) Counts() map[domain.Collection]int {
	return map[domain.Collection]int{
		domain.CollectionJobs:           len(s.Jobs),
		domain.CollectionPosts:          len(s.Posts),
		domain.CollectionPartners:       len(s.Partners),
		domain.CollectionProducts:       len(s.Products),
		domain.CollectionCourses:        len(s.Courses),
		domain.CollectionLessons:        len(s.Lessons),
		domain.CollectionVideos:         len(s.Videos),
		domain.CollectionQAItems:        len(s.QAItems),
		domain.CollectionQATags:         len(s.QATags),
		domain.CollectionResumeReviews:  len(s.ResumeReviews),
		domain.CollectionDashboardCards: len(s.DashboardCards),
		domain.CollectionAffiliates:     len(s.Affiliates),
	}
}

// Store swaps snapshots atomically. Reload builds a complete new snapshot
// off to the side and publishes it under the write lock, so readers observe
// either the old view or the new one, never a half-built mix.
type Store struct {
	mu       sync.RWMutex
	snap     *Snapshot
	source   domain.EntrySource
	validate *validator.Validator
	logger   *zap.Logger
}

// New creates a Store backed by the given entry source. The snapshot starts
// empty; call Reload to populate it.
func New(source domain.EntrySource, validate *validator.Validator, logger *zap.Logger) *Store {
	return &Store{
		snap:     &Snapshot{},
		source:   source,
		validate: validate,
		logger:   logger,
	}
}

// Snapshot returns the current view. The returned value is shared and must
// be treated as read-only.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Reload rebuilds the snapshot from the entry source. Entries that fail to
// decode or validate are skipped with a warning; a source error aborts the
// reload and leaves the previous snapshot in place.
func (s *Store) Reload(ctx context.Context) error {
	snap := &Snapshot{LoadedAt: time.Now().UTC()}

	var err error
	if snap.Jobs, err = loadTyped[domain.Job](ctx, s, domain.CollectionJobs, fixJobTimestamp); err != nil {
		return err
	}
	if snap.Posts, err = loadTyped[domain.Post](ctx, s, domain.CollectionPosts, fixPostTimestamp); err != nil {
		return err
	}
	if snap.Partners, err = loadTyped[domain.Partner](ctx, s, domain.CollectionPartners, nil); err != nil {
		return err
	}
	if snap.Products, err = loadTyped[domain.Product](ctx, s, domain.CollectionProducts, nil); err != nil {
		return err
	}
	if snap.Courses, err = loadTyped[domain.Course](ctx, s, domain.CollectionCourses, nil); err != nil {
		return err
	}
	if snap.Lessons, err = loadTyped[domain.Lesson](ctx, s, domain.CollectionLessons, nil); err != nil {
		return err
	}
	if snap.Videos, err = loadTyped[domain.Video](ctx, s, domain.CollectionVideos, nil); err != nil {
		return err
	}
	if snap.QAItems, err = loadTyped[domain.QAItem](ctx, s, domain.CollectionQAItems, nil); err != nil {
		return err
	}
	if snap.QATags, err = loadTyped[domain.QATag](ctx, s, domain.CollectionQATags, nil); err != nil {
		return err
	}
	if snap.ResumeReviews, err = loadTyped[domain.ResumeReview](ctx, s, domain.CollectionResumeReviews, nil); err != nil {
		return err
	}
	if snap.DashboardCards, err = loadTyped[domain.DashboardCard](ctx, s, domain.CollectionDashboardCards, nil); err != nil {
		return err
	}
	if snap.Affiliates, err = loadTyped[domain.Affiliate](ctx, s, domain.CollectionAffiliates, nil); err != nil {
		return err
	}

	// Sort once at build time so accessors serve pre-ordered slices.
	domain.SortJobs(snap.Jobs)
	domain.SortPosts(snap.Posts)
	domain.SortPartners(snap.Partners)
	domain.SortProducts(snap.Products)
	domain.SortCourses(snap.Courses)
	domain.SortLessons(snap.Lessons)
	domain.SortDashboardCards(snap.DashboardCards)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("content snapshot reloaded",
			zap.Int("jobs", len(snap.Jobs)),
			zap.Int("posts", len(snap.Posts)),
			zap.Int("lessons", len(snap.Lessons)),
			zap.Time("loaded_at", snap.LoadedAt),
		)
	}

	return nil
}

// loadTyped lists one collection and decodes each attribute bag into T.
// fix, when set, patches decoded values with envelope fields the bag does
// not carry (publication timestamps).
func loadTyped[T any](ctx context.Context, s *Store, collection domain.Collection, fix func(*T, domain.Entry)) ([]T, error) {
	entries, err := s.source.ListCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		var v T
		if err := e.DecodeAttributes(&v); err != nil {
			s.warnSkip(collection, e.Slug, "undecodable attributes", err)
			continue
		}
		if fix != nil {
			fix(&v, e)
		}
		if err := s.validate.Validate(v); err != nil {
			s.warnSkip(collection, e.Slug, "validation failed", err)
			continue
		}
		out = append(out, v)
	}

	return out, nil
}

func (s *Store) warnSkip(collection domain.Collection, slug, reason string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("skipping entry",
		zap.String("collection", string(collection)),
		zap.String("slug", slug),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

func fixJobTimestamp(j *domain.Job, e domain.Entry) {
	if j.PublishedAt == nil {
		j.PublishedAt = e.PublishedAt
	}
}

func fixPostTimestamp(p *domain.Post, e domain.Entry) {
	if p.PublishedAt.IsZero() && e.PublishedAt != nil {
		p.PublishedAt = *e.PublishedAt
	}
}
