package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/transport/httpserver/dto"
	"jobnagringa-content-api/internal/validator"
)

// AdminHandler handles sync, preview and cache operations.
type AdminHandler struct {
	syncService    *service.SyncService
	contentService *service.ContentService
	cache          domain.Cache
	validator      *validator.Validator
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. cache may be nil when caching
// is disabled.
func NewAdminHandler(
	syncSvc *service.SyncService,
	contentSvc *service.ContentService,
	cache domain.Cache,
	v *validator.Validator,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		syncService:    syncSvc,
		contentService: contentSvc,
		cache:          cache,
		validator:      v,
		logger:         logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	if !h.syncService.Available() {
		return syncUnavailable(c)
	}

	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncCollection handles POST /api/v1/admin/sync/:collection
func (h *AdminHandler) SyncCollection(c *fiber.Ctx) error {
	if !h.syncService.Available() {
		return syncUnavailable(c)
	}

	name := c.Params("collection")

	h.logger.Info("manual collection sync triggered", zap.String("collection", name))

	result, err := h.syncService.SyncCollection(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "SYNC_FAILED",
		})
	}
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "unknown collection",
			Code:  "COLLECTION_NOT_FOUND",
		})
	}

	return c.JSON(dto.SyncResultResponse{
		Collection: string(result.Collection),
		Count:      result.Count,
		Duration:   result.Duration.String(),
	})
}

func syncUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Error: "content sync is not available in this deployment",
		Code:  "SYNC_UNAVAILABLE",
	})
}

// Collections handles GET /api/v1/admin/collections
func (h *AdminHandler) Collections(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"collections": domain.Collections(),
	})
}

// TagStats handles GET /api/v1/admin/tags/:collection
func (h *AdminHandler) TagStats(c *fiber.Ctx) error {
	name := c.Params("collection")

	counts, err := h.syncService.TagStats(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "TAG_STATS_UNAVAILABLE",
		})
	}
	if counts == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "unknown collection",
			Code:  "COLLECTION_NOT_FOUND",
		})
	}

	return c.JSON(fiber.Map{
		"collection": name,
		"tags":       counts,
	})
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.FromStats(h.contentService.Stats()))
}

// Preview handles GET /api/v1/admin/preview
//
// Serves drafts straight from the CMS, bypassing the snapshot. Intended for
// editors checking unpublished content.
func (h *AdminHandler) Preview(c *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	result, err := h.contentService.Preview(c.Context(), domain.Collection(req.Collection), req.ToPageParams())
	if err != nil {
		if errors.Is(err, service.ErrPreviewUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: err.Error(),
				Code:  "PREVIEW_UNAVAILABLE",
			})
		}

		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "preview fetch failed",
			Code:  "CMS_ERROR",
		})
	}

	resp := dto.PreviewResponse{
		Entries:  make([]dto.PreviewEntryResponse, len(result.Entries)),
		Total:    result.Pagination.Total,
		Degraded: result.Degraded,
	}
	for i, e := range result.Entries {
		entry := dto.PreviewEntryResponse{
			DocumentID: e.DocumentID,
			Slug:       e.Slug,
			Attributes: e.Attributes,
		}
		if e.PublishedAt != nil {
			entry.PublishedAt = e.PublishedAt.Format(time.RFC3339)
		}
		resp.Entries[i] = entry
	}

	return c.JSON(resp)
}

// ClearCache handles POST /api/v1/admin/cache/clear
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"cleared": false, "reason": "cache disabled"})
	}

	if err := h.cache.Clear(c.Context()); err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "cache clear failed",
			Code:  "CACHE_ERROR",
		})
	}

	h.logger.Info("cache cleared")

	return c.JSON(fiber.Map{"cleared": true})
}
