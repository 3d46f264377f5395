package postgres

import (
	"time"

	"github.com/lib/pq"

	"jobnagringa-content-api/internal/domain"
)

// EntryModel is the GORM model for the entries table. One row per content
// entry; the schema-specific attributes live in a JSONB bag and are decoded
// into typed structs when the snapshot is built.
type EntryModel struct {
	ID         string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection string         `gorm:"type:varchar(50);not null;index:idx_collection_slug,unique"`
	Slug       string         `gorm:"type:varchar(255);not null;index:idx_collection_slug,unique"`
	DocumentID string         `gorm:"type:varchar(100)"`
	Attributes []byte         `gorm:"type:jsonb;not null"`
	Tags       pq.StringArray `gorm:"type:text[]"` // Denormalized for dashboard stats

	PublishedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

// TableName returns the table name for EntryModel.
func (EntryModel) TableName() string {
	return "entries"
}

// ToDomain converts EntryModel to domain.Entry.
func (m *EntryModel) ToDomain() domain.Entry {
	return domain.Entry{
		ID:          m.ID,
		DocumentID:  m.DocumentID,
		Collection:  domain.Collection(m.Collection),
		Slug:        m.Slug,
		Attributes:  m.Attributes,
		Tags:        m.Tags,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain creates an EntryModel from domain.Entry.
func FromDomain(e domain.Entry) *EntryModel {
	return &EntryModel{
		ID:          e.ID,
		Collection:  string(e.Collection),
		Slug:        e.Slug,
		DocumentID:  e.DocumentID,
		Attributes:  e.Attributes,
		Tags:        e.Tags,
		PublishedAt: e.PublishedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FromDomainSlice converts a slice of domain.Entry to EntryModels.
func FromDomainSlice(entries []domain.Entry) []*EntryModel {
	models := make([]*EntryModel, len(entries))
	for i, e := range entries {
		models[i] = FromDomain(e)
	}

	return models
}
