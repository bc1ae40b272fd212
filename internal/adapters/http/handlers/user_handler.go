package handlers

import (
	"errors"

	"spacefinders/internal/core/domain"
	"spacefinders/internal/core/services"
	"spacefinders/internal/pkg/clientip"
	"spacefinders/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile and complaint endpoints
type UserHandler struct {
	userService      *services.UserService
	complaintService *services.ComplaintService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, complaintService *services.ComplaintService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		complaintService: complaintService,
	}
}

// Me returns the current user's profile
// @Summary Get current user profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.ViewProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"user": user,
	})
}

// UpdateProfile updates the current user's contact details
// @Summary Update profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), userID, &input, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrPhoneTaken):
			return response.Conflict(c, "Phone number already registered")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user,
	})
}

// DeleteAccount soft-deletes the current user's account
// @Summary Delete account
// @Description Soft-delete the account. Deletion is terminal and cannot be repeated.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.userService.Delete(c.Context(), userID, clientip.FromCtx(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyDeleted):
			return response.BadRequest(c, "Account is already deleted")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to delete account")
		}
	}

	return response.Success(c, "Account deleted successfully", nil)
}

// FileComplaint files a new complaint
// @Summary File complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FileComplaintInput true "Complaint data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints [post]
func (h *UserHandler) FileComplaint(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.FileComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.File(c.Context(), userID, &input, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		default:
			return response.InternalServerError(c, "Failed to file complaint")
		}
	}

	return response.Created(c, "Complaint filed successfully", fiber.Map{
		"complaint": complaint,
	})
}

// MyComplaints lists the current user's complaints
// @Summary List own complaints
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /complaints [get]
func (h *UserHandler) MyComplaints(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	complaints, err := h.complaintService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list complaints")
	}

	return response.Success(c, "Complaints retrieved successfully", fiber.Map{
		"complaints": complaints,
	})
}
