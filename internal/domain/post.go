package domain

import (
	"sort"
	"time"
)

// Author is the embedded author block of a post.
type Author struct {
	Name   string `json:"name" validate:"required"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// Post is a blog post.
type Post struct {
	Slug          string    `json:"slug" validate:"required,slug"`
	Title         string    `json:"title" validate:"required"`
	Subheading    string    `json:"subheading,omitempty"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Author        Author    `json:"author"`
	Tags          []string  `json:"tags,omitempty"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	PublishedAt   time.Time `json:"published_at" validate:"required"`
	MemberOnly    bool      `json:"member_only"`
}

// IsMemberOnly implements Gated.
func (p Post) IsMemberOnly() bool { return p.MemberOnly }

// PostFilters narrows the post collection.
type PostFilters struct {
	Tags   []string // Matches when any requested tag is present
	Author string   // Case-insensitive substring match on author name
	Search string   // Full-text pass across title/subheading/excerpt/tags
}

func postSearchFields(p Post) []string {
	fields := []string{p.Title, p.Subheading, p.Excerpt, p.Author.Name}
	return append(fields, p.Tags...)
}

// FilterPosts applies every provided filter key, then the full-text pass.
func FilterPosts(posts []Post, f PostFilters) []Post {
	matched := make([]Post, 0, len(posts))
	for _, p := range posts {
		if len(f.Tags) > 0 && !intersects(p.Tags, f.Tags) {
			continue
		}
		if f.Author != "" && !containsFold(p.Author.Name, f.Author) {
			continue
		}
		matched = append(matched, p)
	}

	return FullTextSearch(matched, f.Search, postSearchFields)
}

// SortPosts orders posts newest first.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, k int) bool {
		return posts[i].PublishedAt.After(posts[k].PublishedAt)
	})
}
