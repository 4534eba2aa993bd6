package handlers

import (
	"churchhub/internal/adapters/http/apperror"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChurchHandler handles church directory endpoints
type ChurchHandler struct {
	churchService *services.ChurchService
	errs          apperror.Mapper
}

// NewChurchHandler creates a new church handler
func NewChurchHandler(churchService *services.ChurchService, errs apperror.Mapper) *ChurchHandler {
	return &ChurchHandler{churchService: churchService, errs: errs}
}

// CreateChurchRequest represents the create church body
type CreateChurchRequest struct {
	Name string `json:"name"`
}

// Create registers a draft church owned by the caller
// @Summary Create church
// @Tags Churches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateChurchRequest true "Church name"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /churches [post]
func (h *ChurchHandler) Create(c *fiber.Ctx) error {
	var req CreateChurchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	draft, err := h.churchService.Create(c.Context(), actorOf(c), req.Name)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Created(c, "Church created successfully", presentChurch(draft))
}

// Publish publishes a draft church
// @Summary Publish church
// @Tags Churches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Church ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /churches/{id}/publish [post]
func (h *ChurchHandler) Publish(c *fiber.Ctx) error {
	published, err := h.churchService.Publish(c.Context(), actorOf(c), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Church published successfully", presentChurch(published))
}

// Verify verifies a published church
// @Summary Verify church
// @Tags Churches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Church ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /churches/{id}/verify [post]
func (h *ChurchHandler) Verify(c *fiber.Ctx) error {
	verified, err := h.churchService.Verify(c.Context(), actorOf(c), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Church verified successfully", presentChurch(verified))
}

// UpdateProfile edits the contact profile of a church
// @Summary Update church profile
// @Tags Churches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Church ID"
// @Param body body services.ProfileInput true "Profile"
// @Success 200 {object} response.Response
// @Router /churches/{id}/profile [put]
func (h *ChurchHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.churchService.UpdateProfile(c.Context(), actorOf(c), c.Params("id"), req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Church profile updated successfully", presentChurch(updated))
}

// Get returns a church by ID
// @Summary Get church
// @Tags Churches
// @Produce json
// @Param id path string true "Church ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /churches/{id} [get]
func (h *ChurchHandler) Get(c *fiber.Ctx) error {
	found, err := h.churchService.Get(c.Context(), actorOf(c), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Church retrieved successfully", presentChurch(found))
}

// GetBySlug returns a public church by slug
// @Summary Get church by slug
// @Tags Churches
// @Produce json
// @Param slug path string true "Church slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /churches/slug/{slug} [get]
func (h *ChurchHandler) GetBySlug(c *fiber.Ctx) error {
	found, err := h.churchService.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Church retrieved successfully", presentChurch(found))
}

// List lists published and verified churches
// @Summary List churches
// @Tags Churches
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /churches [get]
func (h *ChurchHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	list, total, err := h.churchService.ListPublic(c.Context(), params)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Churches retrieved successfully", pagination.NewResponse(presentChurches(list), params, total))
}

// Delete removes a church
// @Summary Delete church
// @Tags Churches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Church ID"
// @Success 200 {object} response.Response
// @Router /churches/{id} [delete]
func (h *ChurchHandler) Delete(c *fiber.Ctx) error {
	if err := h.churchService.Delete(c.Context(), actorOf(c), c.Params("id")); err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Church deleted successfully", nil)
}
