package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/infra/strapi"
	"jobnagringa-content-api/internal/store"
)

// Syncer fetches the full content of a CMS collection. Implemented by the
// strapi client; narrowed to an interface so tests can stub the CMS.
type Syncer interface {
	FetchAll(ctx context.Context, collection domain.Collection, q strapi.Query) ([]domain.Entry, error)
}

// SyncService pulls collections from the CMS into durable storage and
// rebuilds the in-memory snapshot afterwards.
type SyncService struct {
	cms    Syncer
	repo   domain.EntryRepository
	store  *store.Store
	logger *zap.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(cms Syncer, repo domain.EntryRepository, st *store.Store, logger *zap.Logger) *SyncService {
	return &SyncService{
		cms:    cms,
		repo:   repo,
		store:  st,
		logger: logger,
	}
}

// Available reports whether syncing is possible. Deployments serving content
// from local files have neither a CMS client nor a durable store.
func (s *SyncService) Available() bool {
	return s.cms != nil && s.repo != nil
}

// SyncResult holds the result of syncing one collection.
type SyncResult struct {
	Collection domain.Collection
	Count      int
	Duration   time.Duration
	Error      error
}

// SyncAll synchronizes every collection concurrently, then rebuilds the
// snapshot once. Partial failures are allowed: a collection that fails keeps
// its previously stored entries and the snapshot still reloads.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	collections := domain.Collections()
	results := make([]SyncResult, len(collections))
	var wg sync.WaitGroup

	s.logger.Info("starting content sync",
		zap.Int("collection_count", len(collections)),
	)

	for i, collection := range collections {
		wg.Add(1)
		go func(idx int, c domain.Collection) {
			defer wg.Done()
			results[idx] = s.syncCollection(ctx, c)
		}(i, collection)
	}

	wg.Wait()

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
		} else {
			totalSynced += r.Count
		}
	}

	if err := s.store.Reload(ctx); err != nil {
		s.logger.Error("snapshot reload failed after sync", zap.Error(err))
	}

	s.logger.Info("content sync completed",
		zap.Int("total_synced", totalSynced),
		zap.Int("collections_failed", totalErrors),
	)

	return results
}

// SyncCollection synchronizes one collection by name and rebuilds the
// snapshot. Returns nil when the name matches no known collection.
func (s *SyncService) SyncCollection(ctx context.Context, name string) (*SyncResult, error) {
	for _, c := range domain.Collections() {
		if string(c) != name {
			continue
		}

		result := s.syncCollection(ctx, c)
		if result.Error == nil {
			if err := s.store.Reload(ctx); err != nil {
				s.logger.Error("snapshot reload failed after sync", zap.Error(err))
			}
		}

		return &result, result.Error
	}

	return nil, nil
}

// TagStats returns the tag usage counts of one collection from durable
// storage. Returns nil counts when the name matches no known collection.
func (s *SyncService) TagStats(ctx context.Context, name string) (map[string]int64, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("tag stats require a durable store")
	}

	for _, c := range domain.Collections() {
		if string(c) == name {
			return s.repo.TagCounts(ctx, c)
		}
	}

	return nil, nil
}

// syncCollection fetches one collection wholesale and replaces its stored
// entries.
func (s *SyncService) syncCollection(ctx context.Context, collection domain.Collection) SyncResult {
	start := time.Now()
	result := SyncResult{Collection: collection}

	s.logger.Debug("syncing collection", zap.String("collection", string(collection)))

	entries, err := s.cms.FetchAll(ctx, collection, strapi.Query{})
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("collection fetch failed",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)

		return result
	}

	entries = s.prepare(collection, entries)

	if err := s.repo.ReplaceCollection(ctx, collection, entries); err != nil {
		result.Error = fmt.Errorf("storing %s: %w", collection, err)
		result.Duration = time.Since(start)
		s.logger.Error("collection store failed",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)

		return result
	}

	result.Count = len(entries)
	result.Duration = time.Since(start)

	s.logger.Info("collection sync completed",
		zap.String("collection", string(collection)),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// prepare drops entries without a slug and denormalizes the tag list out of
// the attribute bag so storage can aggregate tags without parsing JSON.
func (s *SyncService) prepare(collection domain.Collection, entries []domain.Entry) []domain.Entry {
	prepared := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Slug == "" {
			s.logger.Warn("dropping entry without slug",
				zap.String("collection", string(collection)),
				zap.String("document_id", e.DocumentID),
			)
			continue
		}

		var tagged struct {
			Tags []string `json:"tags"`
		}
		if err := json.Unmarshal(e.Attributes, &tagged); err == nil {
			e.Tags = tagged.Tags
		}

		prepared = append(prepared, e)
	}

	return prepared
}
