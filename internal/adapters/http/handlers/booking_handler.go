package handlers

import (
	"context"
	"errors"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/core/services"
	"spacefinders/internal/pkg/clientip"
	"spacefinders/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Create places a new booking
// @Summary Create booking
// @Description Place a PENDING booking against an available property
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBookingInput true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.Create(c.Context(), userID, &input, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPropertyNotFound):
			return response.NotFound(c, "Property not found")
		case errors.Is(err, services.ErrPropertyUnavailable):
			return response.BadRequest(c, "Property is not available for booking")
		case errors.Is(err, services.ErrBookerNotActive):
			return response.Forbidden(c, "Account is not active")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking created successfully", fiber.Map{
		"booking": booking,
	})
}

// Confirm confirms a pending booking
// @Summary Confirm booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/confirm [patch]
func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.Confirm, "Booking confirmed successfully")
}

// Cancel cancels an active booking
// @Summary Cancel booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/cancel [patch]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.Cancel, "Booking cancelled successfully")
}

// Complete completes a confirmed booking
// @Summary Complete booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/complete [patch]
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.Complete, "Booking completed successfully")
}

// MarkPaid flags a booking payment as settled
// @Summary Mark booking paid
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/pay [patch]
func (h *BookingHandler) MarkPaid(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.MarkPaid, "Booking marked as paid")
}

// ListMine lists the current user's bookings
// @Summary List own bookings
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	bookings, err := h.bookingService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// transition shares the read-act-respond flow of all lifecycle endpoints
func (h *BookingHandler) transition(
	c *fiber.Ctx,
	op func(ctx context.Context, bookingID, actorID uint, ip string) (*models.BookingResponse, error),
	successMessage string,
) error {
	actorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := op(c.Context(), bookingID, actorID, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingParty):
			return response.Forbidden(c, "Booking belongs to another user")
		case errors.Is(err, domain.ErrInvalidOperation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update booking")
		}
	}

	return response.Success(c, successMessage, fiber.Map{
		"booking": booking,
	})
}
