// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/transport/httpserver/handler"
	"jobnagringa-content-api/internal/transport/httpserver/middleware"
	"jobnagringa-content-api/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured. db and
// cache may be nil (file-based deployment, caching disabled).
func NewServer(
	cfg ServerConfig,
	contentSvc *service.ContentService,
	syncSvc *service.SyncService,
	db *gorm.DB,
	cache domain.Cache,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "jobnagringa-content-api",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(middleware.Membership())
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	contentHandler := handler.NewContentHandler(contentSvc, v, logger)
	catalogHandler := handler.NewCatalogHandler(contentSvc, v, logger)
	adminHandler := handler.NewAdminHandler(syncSvc, contentSvc, cache, v, logger)
	dashboardHandler := handler.NewDashboardHandler(contentSvc, logger)

	registerRoutes(app, contentHandler, catalogHandler, adminHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	contentHandler *handler.ContentHandler,
	catalogHandler *handler.CatalogHandler,
	adminHandler *handler.AdminHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Job board
	jobs := v1.Group("/jobs")
	jobs.Get("/", contentHandler.Jobs)
	jobs.Get("/feed", contentHandler.JobsFeed)
	jobs.Get("/categories", contentHandler.JobCategories)
	jobs.Get("/:slug", contentHandler.GetJob)

	// Blog
	posts := v1.Group("/posts")
	posts.Get("/", contentHandler.Posts)
	posts.Get("/tags", contentHandler.PostTags)
	posts.Get("/:slug", contentHandler.GetPost)

	// Catalog collections
	partners := v1.Group("/partners")
	partners.Get("/", catalogHandler.Partners)
	partners.Get("/:slug", catalogHandler.GetPartner)

	v1.Get("/products", catalogHandler.Products)

	courses := v1.Group("/courses")
	courses.Get("/", catalogHandler.Courses)
	courses.Get("/:slug", catalogHandler.GetCourse)
	courses.Get("/:slug/lessons", catalogHandler.CourseLessons)

	v1.Get("/lessons/:slug", catalogHandler.GetLesson)
	v1.Get("/videos", catalogHandler.Videos)

	qa := v1.Group("/qa")
	qa.Get("/", catalogHandler.QAItems)
	qa.Get("/tags", catalogHandler.QATags)

	v1.Get("/resume-reviews", catalogHandler.ResumeReviews)
	v1.Get("/dashboard-cards", catalogHandler.DashboardCards)
	v1.Get("/affiliates", catalogHandler.Affiliates)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Post("/sync", adminHandler.SyncAll)
	admin.Post("/sync/:collection", adminHandler.SyncCollection)
	admin.Get("/collections", adminHandler.Collections)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/tags/:collection", adminHandler.TagStats)
	admin.Get("/preview", adminHandler.Preview)
	admin.Post("/cache/clear", adminHandler.ClearCache)
}

// errorHandler returns a custom error handler that logs based on HTTP status
// code. 404s are logged at DEBUG level (expected client behavior), 4xx at
// WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  errorCode(code),
		})
	}
}

// errorCode maps an HTTP status to a machine-readable code clients can
// dispatch on.
func errorCode(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return "NOT_FOUND"
	case status == fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case status >= 500:
		return "INTERNAL_ERROR"
	case status >= 400:
		return "BAD_REQUEST"
	default:
		return "UNHANDLED_ERROR"
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
