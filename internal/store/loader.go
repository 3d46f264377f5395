package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jobnagringa-content-api/internal/domain"
)

// FileSource reads collections from local JSON files, one file per
// collection (<dir>/<collection>.json holding an array of attribute
// objects). Used for local development and as a fallback when the CMS is
// not configured.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// ListCollection implements domain.EntrySource. A missing file means the
// collection has no entries, not an error.
func (f *FileSource) ListCollection(_ context.Context, collection domain.Collection) ([]domain.Entry, error) {
	path := filepath.Join(f.dir, string(collection)+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	entries := make([]domain.Entry, 0, len(docs))
	for i, doc := range docs {
		entry, err := entryFromDocument(collection, doc)
		if err != nil {
			return nil, fmt.Errorf("decoding %s[%d]: %w", path, i, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// entryFromDocument wraps one attribute object into an Entry envelope,
// pulling out the fields the store and dashboard need directly.
func entryFromDocument(collection domain.Collection, doc json.RawMessage) (domain.Entry, error) {
	var head struct {
		Slug        string   `json:"slug"`
		Tags        []string `json:"tags"`
		PublishedAt string   `json:"published_at"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return domain.Entry{}, err
	}

	entry := domain.Entry{
		Collection: collection,
		Slug:       head.Slug,
		Attributes: doc,
		Tags:       head.Tags,
	}
	if head.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, head.PublishedAt); err == nil {
			entry.PublishedAt = &t
		}
	}

	return entry, nil
}
