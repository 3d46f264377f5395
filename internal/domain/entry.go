// Package domain contains the core content entities and query logic.
// This package has no external dependencies (only stdlib).
package domain

import (
	"encoding/json"
	"time"
)

// Collection identifies a set of content entries sharing one schema.
type Collection string

const (
	CollectionJobs           Collection = "jobs"
	CollectionPosts          Collection = "posts"
	CollectionPartners       Collection = "partners"
	CollectionProducts       Collection = "products"
	CollectionCourses        Collection = "courses"
	CollectionLessons        Collection = "lessons"
	CollectionVideos         Collection = "videos"
	CollectionQAItems        Collection = "qa-items"
	CollectionQATags         Collection = "qa-tags"
	CollectionResumeReviews  Collection = "resume-reviews"
	CollectionDashboardCards Collection = "dashboard-cards"
	CollectionAffiliates     Collection = "affiliates"
)

// Collections lists every known collection in sync order.
func Collections() []Collection {
	return []Collection{
		CollectionJobs,
		CollectionPosts,
		CollectionPartners,
		CollectionProducts,
		CollectionCourses,
		CollectionLessons,
		CollectionVideos,
		CollectionQAItems,
		CollectionQATags,
		CollectionResumeReviews,
		CollectionDashboardCards,
		CollectionAffiliates,
	}
}

// Entry is the raw envelope around one content record. The attribute bag is
// decoded into a typed struct (Job, Post, ...) when the snapshot is built;
// until then it travels as opaque JSON so the store and the CMS client do not
// need to know every schema.
type Entry struct {
	ID          string          `json:"id"`          // Internal UUID
	DocumentID  string          `json:"document_id"` // Stable document id from the CMS
	Collection  Collection      `json:"collection"`
	Slug        string          `json:"slug"` // Unique within the collection
	Attributes  json.RawMessage `json:"attributes"`
	Tags        []string        `json:"tags,omitempty"` // Denormalized for dashboard stats
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DecodeAttributes unmarshals the attribute bag into the given schema struct.
func (e *Entry) DecodeAttributes(v any) error {
	return json.Unmarshal(e.Attributes, v)
}
