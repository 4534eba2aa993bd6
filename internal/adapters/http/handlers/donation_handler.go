package handlers

import (
	"churchhub/internal/adapters/http/apperror"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
	errs            apperror.Mapper
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService, errs apperror.Mapper) *DonationHandler {
	return &DonationHandler{donationService: donationService, errs: errs}
}

// Create records a pending donation by the caller
// @Summary Create donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDonationInput true "Donation"
// @Success 201 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var req services.CreateDonationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pending, err := h.donationService.Create(c.Context(), actorOf(c), req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Created(c, "Donation created successfully", presentDonation(pending))
}

// ListMine lists the caller's donations
// @Summary List my donations
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donations/me [get]
func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	list, total, err := h.donationService.ListByUser(c.Context(), actorOf(c).UserID, params)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Donations retrieved successfully", pagination.NewResponse(presentDonations(list), params, total))
}

// Get returns one donation of the caller
// @Summary Get donation
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} response.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c *fiber.Ctx) error {
	d, err := h.donationService.Get(c.Context(), actorOf(c), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Donation retrieved successfully", presentDonation(d))
}

// Complete marks a pending donation as paid
// @Summary Complete donation
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} response.Response
// @Router /donations/{id}/complete [post]
func (h *DonationHandler) Complete(c *fiber.Ctx) error {
	completed, err := h.donationService.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Donation completed successfully", presentDonation(completed))
}

// CompleteByPaymentIntent completes the donation behind a payment intent
// @Summary Complete donation by payment intent
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param intentId path string true "Payment intent ID"
// @Success 200 {object} response.Response
// @Router /donations/payment-intents/{intentId}/complete [post]
func (h *DonationHandler) CompleteByPaymentIntent(c *fiber.Ctx) error {
	completed, err := h.donationService.CompleteByPaymentIntent(c.Context(), c.Params("intentId"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Donation completed successfully", presentDonation(completed))
}

// Fail records a failed payment
// @Summary Fail donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param body body services.FailInput true "Failure"
// @Success 200 {object} response.Response
// @Router /donations/{id}/fail [post]
func (h *DonationHandler) Fail(c *fiber.Ctx) error {
	var req services.FailInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	failed, err := h.donationService.Fail(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Donation marked as failed", presentDonation(failed))
}

// Refund refunds a completed donation
// @Summary Refund donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param body body services.RefundInput true "Refund"
// @Success 200 {object} response.Response
// @Router /donations/{id}/refund [post]
func (h *DonationHandler) Refund(c *fiber.Ctx) error {
	var req services.RefundInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	refunded, err := h.donationService.Refund(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Donation refunded successfully", presentDonation(refunded))
}
