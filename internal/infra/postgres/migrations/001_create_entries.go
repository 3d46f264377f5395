package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createEntriesTable creates the entries table with all indexes.
func createEntriesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_entries",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS entries (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					collection VARCHAR(50) NOT NULL,
					slug VARCHAR(255) NOT NULL,
					document_id VARCHAR(100),
					attributes JSONB NOT NULL,
					tags TEXT[],

					published_at TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Slugs are unique within a collection
					CONSTRAINT uq_collection_slug UNIQUE (collection, slug)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_entries_collection ON entries(collection);",
				"CREATE INDEX IF NOT EXISTS idx_entries_published_at ON entries(published_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_entries_tags ON entries USING GIN(tags);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS entries;").Error
		},
	}
}
