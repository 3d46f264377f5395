package handler

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/app/service"
)

// DashboardHandler renders the operational dashboard.
type DashboardHandler struct {
	contentService *service.ContentService
	logger         *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.ContentService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		contentService: svc,
		logger:         logger,
	}
}

// collectionStat is one row of the dashboard table.
type collectionStat struct {
	Collection string
	Count      int
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	stats := h.contentService.Stats()

	rows := make([]collectionStat, 0, len(stats.Counts))
	total := 0
	for collection, count := range stats.Counts {
		rows = append(rows, collectionStat{Collection: string(collection), Count: count})
		total += count
	}
	sort.Slice(rows, func(i, k int) bool {
		return rows[i].Collection < rows[k].Collection
	})

	loadedAt := "never"
	if !stats.LoadedAt.IsZero() {
		loadedAt = stats.LoadedAt.Format(time.RFC3339)
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":       "Content Dashboard",
		"Collections": rows,
		"Total":       total,
		"LoadedAt":    loadedAt,
	}, "layouts/base")
}
