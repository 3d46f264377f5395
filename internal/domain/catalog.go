package domain

import "sort"

// Partner is a partner company page.
type Partner struct {
	Slug        string `json:"slug" validate:"required,slug"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	URL         string `json:"url,omitempty"`
	Featured    bool   `json:"featured"`
}

// Product is a digital product or offer.
type Product struct {
	Slug        string `json:"slug" validate:"required,slug"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url,omitempty"`
	Available   bool   `json:"available"`
	Featured    bool   `json:"featured"`
}

// Course is a members-area course. Lessons reference it by slug.
type Course struct {
	Slug        string `json:"slug" validate:"required,slug"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
	Order       int    `json:"order"`
	MemberOnly  bool   `json:"member_only"`
}

// IsMemberOnly implements Gated.
func (c Course) IsMemberOnly() bool { return c.MemberOnly }

// Lesson belongs to exactly one course and is sequenced within it by Order.
type Lesson struct {
	Slug       string `json:"slug" validate:"required,slug"`
	Title      string `json:"title" validate:"required"`
	CourseID   string `json:"course_id" validate:"required"` // Owning course slug
	Order      int    `json:"order"`
	VideoURL   string `json:"video_url,omitempty"`
	Detail     string `json:"detail,omitempty"`
	MemberOnly bool   `json:"member_only"`
}

// IsMemberOnly implements Gated.
func (l Lesson) IsMemberOnly() bool { return l.MemberOnly }

// Video is a standalone members-area video.
type Video struct {
	Slug       string `json:"slug" validate:"required,slug"`
	Title      string `json:"title" validate:"required"`
	URL        string `json:"url,omitempty"`
	Duration   string `json:"duration,omitempty"`
	MemberOnly bool   `json:"member_only"`
}

// IsMemberOnly implements Gated.
func (v Video) IsMemberOnly() bool { return v.MemberOnly }

// QAItem is one question/answer entry.
type QAItem struct {
	Slug     string   `json:"slug" validate:"required,slug"`
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// QATag labels a group of Q&A entries.
type QATag struct {
	Slug string `json:"slug" validate:"required,slug"`
	Name string `json:"name" validate:"required"`
}

// ResumeReview is a recorded resume review session.
type ResumeReview struct {
	Slug       string `json:"slug" validate:"required,slug"`
	Title      string `json:"title" validate:"required"`
	VideoURL   string `json:"video_url,omitempty"`
	MemberOnly bool   `json:"member_only"`
}

// IsMemberOnly implements Gated.
func (r ResumeReview) IsMemberOnly() bool { return r.MemberOnly }

// DashboardCard is a tile on the members dashboard.
type DashboardCard struct {
	Slug        string `json:"slug" validate:"required,slug"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
	Featured    bool   `json:"featured"`
	MemberOnly  bool   `json:"member_only"`
}

// IsMemberOnly implements Gated.
func (d DashboardCard) IsMemberOnly() bool { return d.MemberOnly }

// Affiliate is an affiliate link entry.
type Affiliate struct {
	Slug        string `json:"slug" validate:"required,slug"`
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Description string `json:"description,omitempty"`
}

// QAFilters narrows the Q&A collection.
type QAFilters struct {
	Tags   []string
	Search string
}

func qaSearchFields(q QAItem) []string {
	fields := []string{q.Question, q.Answer}
	return append(fields, q.Tags...)
}

// FilterQAItems applies tag and full-text filters.
func FilterQAItems(items []QAItem, f QAFilters) []QAItem {
	matched := make([]QAItem, 0, len(items))
	for _, q := range items {
		if len(f.Tags) > 0 && !intersects(q.Tags, f.Tags) {
			continue
		}
		matched = append(matched, q)
	}

	return FullTextSearch(matched, f.Search, qaSearchFields)
}

// SortPartners orders featured partners first.
func SortPartners(partners []Partner) {
	sort.SliceStable(partners, func(i, k int) bool {
		return partners[i].Featured && !partners[k].Featured
	})
}

// SortProducts orders featured first, then available first.
func SortProducts(products []Product) {
	sort.SliceStable(products, func(i, k int) bool {
		if products[i].Featured != products[k].Featured {
			return products[i].Featured
		}
		return products[i].Available && !products[k].Available
	})
}

// SortCourses orders courses by their explicit order field.
func SortCourses(courses []Course) {
	sort.SliceStable(courses, func(i, k int) bool {
		return courses[i].Order < courses[k].Order
	})
}

// SortLessons orders lessons by their within-course sequence.
func SortLessons(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, k int) bool {
		return lessons[i].Order < lessons[k].Order
	})
}

// SortDashboardCards orders featured cards first, then by explicit order.
func SortDashboardCards(cards []DashboardCard) {
	sort.SliceStable(cards, func(i, k int) bool {
		if cards[i].Featured != cards[k].Featured {
			return cards[i].Featured
		}
		return cards[i].Order < cards[k].Order
	})
}
