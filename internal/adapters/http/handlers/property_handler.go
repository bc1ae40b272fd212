package handlers

import (
	"errors"
	"strconv"

	"spacefinders/internal/core/domain"
	"spacefinders/internal/core/services"
	"spacefinders/internal/pkg/clientip"
	"spacefinders/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PropertyHandler handles host property endpoints
type PropertyHandler struct {
	propertyService *services.PropertyService
	bookingService  *services.BookingService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *services.PropertyService, bookingService *services.BookingService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		bookingService:  bookingService,
	}
}

// Create lists a new property
// @Summary Create property
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PropertyInput true "Property data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	hostID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	property, err := h.propertyService.Create(c.Context(), hostID, &input, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNotHost):
			return response.Forbidden(c, "Only hosts can manage properties")
		case errors.Is(err, services.ErrHostNotFound):
			return response.NotFound(c, "Host not found")
		default:
			return response.InternalServerError(c, "Failed to create property")
		}
	}

	return response.Created(c, "Property created successfully", fiber.Map{
		"property": property,
	})
}

// Update updates a property
// @Summary Update property
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param body body services.UpdatePropertyInput true "Property data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /properties/{id} [put]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	hostID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property ID")
	}

	var input services.UpdatePropertyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	property, err := h.propertyService.Update(c.Context(), propertyID, hostID, &input, clientip.FromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPropertyNotFound):
			return response.NotFound(c, "Property not found")
		case errors.Is(err, services.ErrNotPropertyOwner):
			return response.Forbidden(c, "Property belongs to another host")
		default:
			return response.InternalServerError(c, "Failed to update property")
		}
	}

	return response.Success(c, "Property updated successfully", fiber.Map{
		"property": property,
	})
}

// Delete soft-deletes a property
// @Summary Delete property
// @Description Soft-delete a property. Fails when the property is not AVAILABLE or has active bookings.
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	hostID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property ID")
	}

	if err := h.propertyService.Delete(c.Context(), propertyID, hostID, clientip.FromCtx(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			return response.NotFound(c, "Property not found")
		case errors.Is(err, services.ErrNotPropertyOwner):
			return response.Forbidden(c, "Property belongs to another host")
		case errors.Is(err, services.ErrPropertyAlreadyDeleted):
			return response.BadRequest(c, "Property is already deleted")
		case errors.Is(err, services.ErrPropertyNotAvailable):
			return response.BadRequest(c, "Only available properties can be deleted")
		case errors.Is(err, services.ErrActiveBookingsExist):
			return response.BadRequest(c, "Cannot delete property with active bookings")
		default:
			return response.InternalServerError(c, "Failed to delete property")
		}
	}

	return response.Success(c, "Property deleted successfully", nil)
}

// ListMine lists the host's properties (DELETED hidden)
// @Summary List own properties
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /properties [get]
func (h *PropertyHandler) ListMine(c *fiber.Ctx) error {
	hostID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	properties, err := h.propertyService.ListByHost(c.Context(), hostID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list properties")
	}

	return response.Success(c, "Properties retrieved successfully", fiber.Map{
		"properties": properties,
	})
}

// ListDeleted lists the host's soft-deleted properties
// @Summary List deleted properties
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /properties/deleted [get]
func (h *PropertyHandler) ListDeleted(c *fiber.Ctx) error {
	hostID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	properties, err := h.propertyService.ListDeletedByHost(c.Context(), hostID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list deleted properties")
	}

	return response.Success(c, "Deleted properties retrieved successfully", fiber.Map{
		"properties": properties,
	})
}

// GetByID returns a property detail view
// @Summary Get property detail
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property ID")
	}

	property, err := h.propertyService.GetByID(c.Context(), propertyID)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return response.NotFound(c, "Property not found")
		}
		return response.InternalServerError(c, "Failed to get property")
	}

	return response.Success(c, "Property retrieved successfully", fiber.Map{
		"property": property,
	})
}

// HostBookings lists bookings against any of the host's properties
// @Summary List bookings on own properties
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /properties/bookings [get]
func (h *PropertyHandler) HostBookings(c *fiber.Ctx) error {
	hostID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	bookings, err := h.bookingService.ListByHost(c.Context(), hostID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// parseIDParam parses a positive integer route parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
