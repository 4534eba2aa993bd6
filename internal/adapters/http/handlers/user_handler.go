package handlers

import (
	"errors"

	"churchhub/internal/adapters/http/apperror"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
	errs        apperror.Mapper
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, errs apperror.Mapper) *UserHandler {
	return &UserHandler{
		userService: userService,
		errs:        errs,
	}
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	users, total, err := h.userService.ListUsers(c.Context(), params)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(users, params, total))
}

// UpdateUser handles changing a user's role or active flag (Admin only)
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserByAdminInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req services.UpdateUserByAdminInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUserByAdmin(c.Context(), actorOf(c), c.Params("id"), &req)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user,
	})
}

// DeleteUser handles deleting a user (Admin only)
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Context(), actorOf(c), c.Params("id")); err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "User deleted successfully", nil)
}

// ChangePassword handles changing the signed-in user's password
// @Summary Change password
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req services.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old password and new password are required")
	}

	err := h.userService.ChangePassword(c.Context(), actorOf(c).UserID, &req)
	if errors.Is(err, services.ErrOldPasswordWrong) {
		return response.BadRequest(c, "Old password is incorrect")
	}
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Password changed successfully", nil)
}
