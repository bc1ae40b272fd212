package handlers

import (
	"context"
	"errors"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/core/services"
	"spacefinders/internal/pkg/clientip"
	"spacefinders/internal/pkg/pagination"
	"spacefinders/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin-only endpoints
type AdminHandler struct {
	userService      *services.UserService
	complaintService *services.ComplaintService
	dashboardService *services.DashboardService
	auditService     *services.AuditService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userService *services.UserService,
	complaintService *services.ComplaintService,
	dashboardService *services.DashboardService,
	auditService *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		complaintService: complaintService,
		dashboardService: dashboardService,
		auditService:     auditService,
	}
}

// ListUsers lists all users with pagination
// @Summary List users
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.ListUsers(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// BlockUser blocks an active user
// @Summary Block user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/block [patch]
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.Block(c.Context(), userID, adminID, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrUserNotActive):
			return response.BadRequest(c, "Only active users can be blocked")
		default:
			return response.InternalServerError(c, "Failed to block user")
		}
	}

	return response.Success(c, "User blocked successfully", fiber.Map{
		"user": user,
	})
}

// UnblockUser unblocks a blocked user
// @Summary Unblock user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/unblock [patch]
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.Unblock(c.Context(), userID, adminID, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrUserNotBlocked):
			return response.BadRequest(c, "User is not blocked")
		default:
			return response.InternalServerError(c, "Failed to unblock user")
		}
	}

	return response.Success(c, "User unblocked successfully", fiber.Map{
		"user": user,
	})
}

// PendingComplaints lists all unhandled complaints
// @Summary List pending complaints
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/complaints [get]
func (h *AdminHandler) PendingComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaintService.ListPending(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list complaints")
	}

	return response.Success(c, "Complaints retrieved successfully", fiber.Map{
		"complaints": complaints,
	})
}

// ResolveComplaint resolves a pending complaint
// @Summary Resolve complaint
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/complaints/{id}/resolve [patch]
func (h *AdminHandler) ResolveComplaint(c *fiber.Ctx) error {
	return h.closeComplaint(c, h.complaintService.Resolve, "Complaint resolved successfully")
}

// RejectComplaint rejects a pending complaint
// @Summary Reject complaint
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/complaints/{id}/reject [patch]
func (h *AdminHandler) RejectComplaint(c *fiber.Ctx) error {
	return h.closeComplaint(c, h.complaintService.Reject, "Complaint rejected successfully")
}

func (h *AdminHandler) closeComplaint(
	c *fiber.Ctx,
	op func(ctx context.Context, complaintID, adminID uint, ip string) (*models.ComplaintResponse, error),
	successMessage string,
) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	complaintID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid complaint ID")
	}

	complaint, err := op(c.Context(), complaintID, adminID, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return response.NotFound(c, "Complaint not found")
		case errors.Is(err, services.ErrComplaintNotPending):
			return response.BadRequest(c, "Complaint has already been handled")
		default:
			return response.InternalServerError(c, "Failed to update complaint")
		}
	}

	return response.Success(c, successMessage, fiber.Map{
		"complaint": complaint,
	})
}

// Dashboard returns the admin overview counters
// @Summary Admin dashboard
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	overview, err := h.dashboardService.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", fiber.Map{
		"overview": overview,
	})
}

// UserAuditTrail returns a user's audit records
// @Summary User audit trail
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/users/{id}/audit [get]
func (h *AdminHandler) UserAuditTrail(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	params := pagination.GetParams(c)

	records, total, err := h.auditService.GetUserTrail(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load audit trail")
	}

	return response.Success(c, "Audit trail retrieved successfully", fiber.Map{
		"records":    records,
		"pagination": pagination.GetMeta(params, total),
	})
}
