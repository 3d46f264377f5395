// Package service provides application use cases.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/infra/strapi"
	"jobnagringa-content-api/internal/store"
)

// ErrPreviewUnavailable is returned when preview is requested but no CMS
// client is configured (file-based deployments).
var ErrPreviewUnavailable = errors.New("preview requires a configured CMS")

// ContentService answers every content query from the in-memory snapshot.
// Filtering, gating and pagination all happen over the snapshot; no request
// ever waits on storage or the CMS except explicit draft previews.
type ContentService struct {
	store  *store.Store
	cms    *strapi.CachedClient // nil when the CMS is not configured
	logger *zap.Logger
}

// NewContentService creates a new ContentService. cms may be nil.
func NewContentService(st *store.Store, cms *strapi.CachedClient, logger *zap.Logger) *ContentService {
	return &ContentService{
		store:  st,
		cms:    cms,
		logger: logger,
	}
}

// Jobs returns one page of the job board, filtered then paginated.
func (s *ContentService) Jobs(filters domain.JobFilters, page domain.PageParams) *domain.PaginatedResult[domain.Job] {
	jobs := domain.FilterJobs(s.store.Snapshot().Jobs, filters)

	return domain.Paginate(jobs, page)
}

// JobsFeed returns the next slice of the job board for infinite scroll.
func (s *ContentService) JobsFeed(filters domain.JobFilters, cursor domain.CursorParams) *domain.CursorResult[domain.Job] {
	jobs := domain.FilterJobs(s.store.Snapshot().Jobs, filters)

	return domain.InfiniteScroll(jobs, cursor, func(j domain.Job) string { return j.Slug })
}

// GetJobBySlug returns a single job or nil when absent.
func (s *ContentService) GetJobBySlug(slug string) *domain.Job {
	for _, j := range s.store.Snapshot().Jobs {
		if j.Slug == slug {
			return &j
		}
	}

	return nil
}

// JobCategories returns every job category with its live listing count.
func (s *ContentService) JobCategories() []domain.CategoryCount {
	return domain.CountJobCategories(s.store.Snapshot().Jobs)
}

// Posts returns one page of the blog, gated by membership before filtering so
// pagination metadata never leaks hidden entries.
func (s *ContentService) Posts(filters domain.PostFilters, page domain.PageParams, paidMember bool) *domain.PaginatedResult[domain.Post] {
	posts := domain.FilterByMembership(s.store.Snapshot().Posts, paidMember)
	posts = domain.FilterPosts(posts, filters)

	return domain.Paginate(posts, page)
}

// GetPostBySlug returns a single post. Returns nil when absent and
// domain.ErrMemberOnly when the post exists but the caller is not a member.
func (s *ContentService) GetPostBySlug(slug string, paidMember bool) (*domain.Post, error) {
	for _, p := range s.store.Snapshot().Posts {
		if p.Slug != slug {
			continue
		}
		if p.MemberOnly && !paidMember {
			return nil, domain.ErrMemberOnly
		}

		return &p, nil
	}

	return nil, nil
}

// PostTags returns the distinct tags across visible posts.
func (s *ContentService) PostTags(paidMember bool) []string {
	posts := domain.FilterByMembership(s.store.Snapshot().Posts, paidMember)

	seen := make(map[string]bool)
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}

	return tags
}

// Partners returns one page of partner companies.
func (s *ContentService) Partners(page domain.PageParams) *domain.PaginatedResult[domain.Partner] {
	return domain.Paginate(s.store.Snapshot().Partners, page)
}

// GetPartnerBySlug returns a single partner or nil when absent.
func (s *ContentService) GetPartnerBySlug(slug string) *domain.Partner {
	for _, p := range s.store.Snapshot().Partners {
		if p.Slug == slug {
			return &p
		}
	}

	return nil
}

// Products returns one page of products.
func (s *ContentService) Products(page domain.PageParams) *domain.PaginatedResult[domain.Product] {
	return domain.Paginate(s.store.Snapshot().Products, page)
}

// Courses lists the courses visible to the caller, in course order.
func (s *ContentService) Courses(paidMember bool) []domain.Course {
	return domain.FilterByMembership(s.store.Snapshot().Courses, paidMember)
}

// GetCourseBySlug returns a single course. Returns nil when absent and
// domain.ErrMemberOnly when gated.
func (s *ContentService) GetCourseBySlug(slug string, paidMember bool) (*domain.Course, error) {
	for _, c := range s.store.Snapshot().Courses {
		if c.Slug != slug {
			continue
		}
		if c.MemberOnly && !paidMember {
			return nil, domain.ErrMemberOnly
		}

		return &c, nil
	}

	return nil, nil
}

// CourseLessons lists a course's lessons in sequence order, gated by
// membership. Returns nil lessons when the course itself does not exist.
func (s *ContentService) CourseLessons(courseSlug string, paidMember bool) ([]domain.Lesson, error) {
	course, err := s.GetCourseBySlug(courseSlug, paidMember)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	// Non-nil even when the course has no lessons yet, so callers can tell
	// an empty course apart from a missing one.
	lessons := make([]domain.Lesson, 0)
	for _, l := range s.store.Snapshot().Lessons {
		if l.CourseID == courseSlug {
			lessons = append(lessons, l)
		}
	}

	return domain.FilterByMembership(lessons, paidMember), nil
}

// GetLessonBySlug returns a single lesson. Returns nil when absent and
// domain.ErrMemberOnly when gated.
func (s *ContentService) GetLessonBySlug(slug string, paidMember bool) (*domain.Lesson, error) {
	for _, l := range s.store.Snapshot().Lessons {
		if l.Slug != slug {
			continue
		}
		if l.MemberOnly && !paidMember {
			return nil, domain.ErrMemberOnly
		}

		return &l, nil
	}

	return nil, nil
}

// Videos returns one page of standalone videos visible to the caller.
func (s *ContentService) Videos(page domain.PageParams, paidMember bool) *domain.PaginatedResult[domain.Video] {
	videos := domain.FilterByMembership(s.store.Snapshot().Videos, paidMember)

	return domain.Paginate(videos, page)
}

// QAItems returns one page of the Q&A section, filtered by tags and search.
func (s *ContentService) QAItems(filters domain.QAFilters, page domain.PageParams) *domain.PaginatedResult[domain.QAItem] {
	items := domain.FilterQAItems(s.store.Snapshot().QAItems, filters)

	return domain.Paginate(items, page)
}

// QATags lists every Q&A tag.
func (s *ContentService) QATags() []domain.QATag {
	return s.store.Snapshot().QATags
}

// ResumeReviews returns one page of recorded resume reviews visible to the
// caller.
func (s *ContentService) ResumeReviews(page domain.PageParams, paidMember bool) *domain.PaginatedResult[domain.ResumeReview] {
	reviews := domain.FilterByMembership(s.store.Snapshot().ResumeReviews, paidMember)

	return domain.Paginate(reviews, page)
}

// DashboardCards lists the members-dashboard tiles visible to the caller,
// featured first then by explicit order.
func (s *ContentService) DashboardCards(paidMember bool) []domain.DashboardCard {
	return domain.FilterByMembership(s.store.Snapshot().DashboardCards, paidMember)
}

// Affiliates lists every affiliate link.
func (s *ContentService) Affiliates() []domain.Affiliate {
	return s.store.Snapshot().Affiliates
}

// Stats describes the current snapshot for the operational dashboard.
type Stats struct {
	Counts   map[domain.Collection]int
	LoadedAt time.Time
}

// Stats returns entry counts per collection and the snapshot build time.
func (s *ContentService) Stats() Stats {
	snap := s.store.Snapshot()

	return Stats{
		Counts:   snap.Counts(),
		LoadedAt: snap.LoadedAt,
	}
}

// Preview fetches a collection straight from the CMS including unpublished
// drafts, bypassing the snapshot. Responses are cached by the CMS client.
func (s *ContentService) Preview(ctx context.Context, collection domain.Collection, page domain.PageParams) (*strapi.CollectionResult, error) {
	if s.cms == nil {
		return nil, ErrPreviewUnavailable
	}
	page.Normalize()

	q := strapi.Query{
		PublicationState: "preview",
		Sort:             []string{"publishedAt:desc"},
		Pagination:       strapi.Pagination{Page: page.Page, PageSize: page.PageSize},
	}

	result, err := s.cms.FetchCollection(ctx, collection, q)
	if err != nil {
		s.logger.Error("preview fetch failed",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)

		return nil, err
	}

	return result, nil
}
