// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/transport/httpserver/dto"
	"jobnagringa-content-api/internal/transport/httpserver/middleware"
	"jobnagringa-content-api/internal/validator"
)

// ContentHandler serves the job board and the blog.
type ContentHandler struct {
	service   *service.ContentService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc *service.ContentService, v *validator.Validator, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Jobs handles GET /api/v1/jobs
//
// With a cursor parameter the endpoint switches to infinite scroll; otherwise
// it returns classic numbered pages.
func (h *ContentHandler) Jobs(c *fiber.Ctx) error {
	var req dto.JobsRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	filters := req.ToFilters()
	if req.Cursor != "" {
		return c.JSON(dto.FromCursorResult(h.service.JobsFeed(filters, req.ToCursorParams())))
	}

	return c.JSON(dto.FromPaginatedResult(h.service.Jobs(filters, req.ToPageParams())))
}

// JobsFeed handles GET /api/v1/jobs/feed
func (h *ContentHandler) JobsFeed(c *fiber.Ctx) error {
	var req dto.JobsRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	result := h.service.JobsFeed(req.ToFilters(), req.ToCursorParams())

	return c.JSON(dto.FromCursorResult(result))
}

// GetJob handles GET /api/v1/jobs/:slug
func (h *ContentHandler) GetJob(c *fiber.Ctx) error {
	job := h.service.GetJobBySlug(c.Params("slug"))
	if job == nil {
		return notFound(c, "job not found")
	}

	return c.JSON(job)
}

// JobCategories handles GET /api/v1/jobs/categories
func (h *ContentHandler) JobCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": h.service.JobCategories(),
	})
}

// Posts handles GET /api/v1/posts
func (h *ContentHandler) Posts(c *fiber.Ctx) error {
	var req dto.PostsRequest
	if err := parseQuery(c, h.validator, &req); err != nil {
		return err
	}

	result := h.service.Posts(req.ToFilters(), req.ToPageParams(), middleware.IsPaidMember(c))

	return c.JSON(dto.FromPaginatedResult(result))
}

// GetPost handles GET /api/v1/posts/:slug
func (h *ContentHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.service.GetPostBySlug(c.Params("slug"), middleware.IsPaidMember(c))
	if err != nil {
		return memberOnlyOrError(c, err)
	}
	if post == nil {
		return notFound(c, "post not found")
	}

	return c.JSON(post)
}

// PostTags handles GET /api/v1/posts/tags
func (h *ContentHandler) PostTags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tags": h.service.PostTags(middleware.IsPaidMember(c)),
	})
}

// parseQuery binds and validates query parameters, answering 400 on failure.
func parseQuery(c *fiber.Ctx, v *validator.Validator, req any) error {
	if err := c.QueryParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := v.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	return nil
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "NOT_FOUND",
	})
}

// memberOnlyOrError maps the gating sentinel to 403 and anything else to 500.
func memberOnlyOrError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrMemberOnly) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "this content requires a membership",
			Code:  "MEMBER_ONLY",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "internal server error",
		Code:  "INTERNAL_ERROR",
	})
}
