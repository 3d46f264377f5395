package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobnagringa-content-api/internal/domain"
)

// Repository implements domain.EntryRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCollection returns every entry of the collection, stable ordering by
// slug so snapshot builds are deterministic.
func (r *Repository) ListCollection(ctx context.Context, collection domain.Collection) ([]domain.Entry, error) {
	var models []EntryModel
	err := r.db.WithContext(ctx).
		Where("collection = ?", string(collection)).
		Order("slug ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}

	entries := make([]domain.Entry, len(models))
	for i, m := range models {
		entries[i] = m.ToDomain()
	}

	return entries, nil
}

// ReplaceCollection swaps the stored collection wholesale inside one
// transaction. Content is immutable between syncs, so a sync replaces the
// full set instead of reconciling row by row.
func (r *Repository) ReplaceCollection(ctx context.Context, collection domain.Collection, entries []domain.Entry) error {
	now := time.Now().UTC()
	models := FromDomainSlice(entries)
	for _, m := range models {
		m.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", string(collection)).Delete(&EntryModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}

		return tx.CreateInBatches(models, 100).Error
	})
	if err != nil {
		return fmt.Errorf("replacing %s: %w", collection, err)
	}

	return nil
}

// GetBySlug retrieves a single entry. Returns nil when absent; a missing
// entry is not an error.
func (r *Repository) GetBySlug(ctx context.Context, collection domain.Collection, slug string) (*domain.Entry, error) {
	var model EntryModel
	err := r.db.WithContext(ctx).
		Where("collection = ? AND slug = ?", string(collection), slug).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting %s/%s: %w", collection, slug, err)
	}

	entry := model.ToDomain()

	return &entry, nil
}

// CountByCollection returns the stored entry count per collection.
func (r *Repository) CountByCollection(ctx context.Context) (map[domain.Collection]int64, error) {
	var rows []struct {
		Collection string
		Count      int64
	}
	err := r.db.WithContext(ctx).
		Model(&EntryModel{}).
		Select("collection, COUNT(*) AS count").
		Group("collection").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting entries: %w", err)
	}

	counts := make(map[domain.Collection]int64, len(rows))
	for _, row := range rows {
		counts[domain.Collection(row.Collection)] = row.Count
	}

	return counts, nil
}

// TagCounts returns the distinct denormalized tags of a collection with
// their entry counts.
func (r *Repository) TagCounts(ctx context.Context, collection domain.Collection) (map[string]int64, error) {
	var rows []struct {
		Tag   string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT UNNEST(tags) AS tag, COUNT(*) AS count
		     FROM entries
		     WHERE collection = ?
		     GROUP BY tag`, string(collection)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting tags for %s: %w", collection, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Tag] = row.Count
	}

	return counts, nil
}
