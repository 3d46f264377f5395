package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/internal/transport/httpserver/dto"
	"jobnagringa-content-api/internal/transport/httpserver/middleware"
	"jobnagringa-content-api/internal/validator"
)

// CatalogHandler serves the smaller collections: partners, products, courses,
// lessons, videos, Q&A, resume reviews, dashboard cards and affiliates.
type CatalogHandler struct {
	service   *service.ContentService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.ContentService, v *validator.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Partners handles GET /api/v1/partners
func (h *CatalogHandler) Partners(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	return c.JSON(dto.FromPaginatedResult(h.service.Partners(req.ToPageParams())))
}

// GetPartner handles GET /api/v1/partners/:slug
func (h *CatalogHandler) GetPartner(c *fiber.Ctx) error {
	partner := h.service.GetPartnerBySlug(c.Params("slug"))
	if partner == nil {
		return notFound(c, "partner not found")
	}

	return c.JSON(partner)
}

// Products handles GET /api/v1/products
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	return c.JSON(dto.FromPaginatedResult(h.service.Products(req.ToPageParams())))
}

// Courses handles GET /api/v1/courses
func (h *CatalogHandler) Courses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"courses": h.service.Courses(middleware.IsPaidMember(c)),
	})
}

// GetCourse handles GET /api/v1/courses/:slug
func (h *CatalogHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.service.GetCourseBySlug(c.Params("slug"), middleware.IsPaidMember(c))
	if err != nil {
		return memberOnlyOrError(c, err)
	}
	if course == nil {
		return notFound(c, "course not found")
	}

	return c.JSON(course)
}

// CourseLessons handles GET /api/v1/courses/:slug/lessons
func (h *CatalogHandler) CourseLessons(c *fiber.Ctx) error {
	slug := c.Params("slug")
	lessons, err := h.service.CourseLessons(slug, middleware.IsPaidMember(c))
	if err != nil {
		return memberOnlyOrError(c, err)
	}
	if lessons == nil {
		return notFound(c, "course not found")
	}

	return c.JSON(fiber.Map{
		"course":  slug,
		"lessons": lessons,
	})
}

// GetLesson handles GET /api/v1/lessons/:slug
func (h *CatalogHandler) GetLesson(c *fiber.Ctx) error {
	lesson, err := h.service.GetLessonBySlug(c.Params("slug"), middleware.IsPaidMember(c))
	if err != nil {
		return memberOnlyOrError(c, err)
	}
	if lesson == nil {
		return notFound(c, "lesson not found")
	}

	return c.JSON(lesson)
}

// Videos handles GET /api/v1/videos
func (h *CatalogHandler) Videos(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	result := h.service.Videos(req.ToPageParams(), middleware.IsPaidMember(c))

	return c.JSON(dto.FromPaginatedResult(result))
}

// QAItems handles GET /api/v1/qa
func (h *CatalogHandler) QAItems(c *fiber.Ctx) error {
	var req dto.QARequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	result := h.service.QAItems(req.ToFilters(), req.ToPageParams())

	return c.JSON(dto.FromPaginatedResult(result))
}

// QATags handles GET /api/v1/qa/tags
func (h *CatalogHandler) QATags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tags": h.service.QATags(),
	})
}

// ResumeReviews handles GET /api/v1/resume-reviews
func (h *CatalogHandler) ResumeReviews(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	result := h.service.ResumeReviews(req.ToPageParams(), middleware.IsPaidMember(c))

	return c.JSON(dto.FromPaginatedResult(result))
}

// DashboardCards handles GET /api/v1/dashboard-cards
func (h *CatalogHandler) DashboardCards(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cards": h.service.DashboardCards(middleware.IsPaidMember(c)),
	})
}

// Affiliates handles GET /api/v1/affiliates
func (h *CatalogHandler) Affiliates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"affiliates": h.service.Affiliates(),
	})
}
