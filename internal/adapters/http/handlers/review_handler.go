package handlers

import (
	"churchhub/internal/adapters/http/apperror"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles church review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
	errs          apperror.Mapper
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService, errs apperror.Mapper) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, errs: errs}
}

// RespondRequest represents a church response to a review
type RespondRequest struct {
	Content string `json:"content"`
}

// Submit posts a review for a church
// @Summary Submit review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Church ID"
// @Param body body services.SubmitReviewInput true "Review"
// @Success 201 {object} response.Response
// @Router /churches/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	var req services.SubmitReviewInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pending, err := h.reviewService.Submit(c.Context(), actorOf(c), c.Params("id"), req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Created(c, "Review submitted successfully", presentReview(pending))
}

// ListByChurch lists the reviews of a church
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Param id path string true "Church ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /churches/{id}/reviews [get]
func (h *ReviewHandler) ListByChurch(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	list, total, err := h.reviewService.ListByChurch(c.Context(), actorOf(c), c.Params("id"), params)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Reviews retrieved successfully", pagination.NewResponse(presentReviews(list), params, total))
}

// Moderate approves or rejects a pending review
// @Summary Moderate review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param body body services.ModerateInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reviews/{id}/moderate [post]
func (h *ReviewHandler) Moderate(c *fiber.Ctx) error {
	var req services.ModerateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	moderated, err := h.reviewService.Moderate(c.Context(), actorOf(c), c.Params("id"), req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Review moderated successfully", presentReview(moderated))
}

// Respond attaches the church response to a moderated review
// @Summary Respond to review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param body body RespondRequest true "Response"
// @Success 200 {object} response.Response
// @Router /reviews/{id}/respond [post]
func (h *ReviewHandler) Respond(c *fiber.Ctx) error {
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	responded, err := h.reviewService.Respond(c.Context(), actorOf(c), c.Params("id"), req.Content)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Review response saved successfully", presentReview(responded))
}
