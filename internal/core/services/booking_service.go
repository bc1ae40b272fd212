package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/pkg/validate"

	"gorm.io/gorm"
)

// Booking lifecycle errors
var (
	ErrBookingNotFound     = fmt.Errorf("%w: booking not found", domain.ErrNotFound)
	ErrNotBookingParty     = fmt.Errorf("%w: booking belongs to another user", domain.ErrUnauthorized)
	ErrPropertyUnavailable = fmt.Errorf("%w: property is not available for booking", domain.ErrInvalidOperation)
	ErrInvalidDates        = fmt.Errorf("%w: checkout date must be after checkin date", domain.ErrValidation)
	ErrPastCheckin         = fmt.Errorf("%w: checkin date is in the past", domain.ErrValidation)
	ErrBookerNotActive     = fmt.Errorf("%w: account is not active", domain.ErrUnauthorized)
)

// BookingService handles the booking lifecycle state machine
type BookingService struct {
	bookingRepo  repositories.BookingRepository
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	audit        *AuditService
	now          func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	audit *AuditService,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		audit:        audit,
		now:          time.Now,
	}
}

// CreateBookingInput represents create booking input
type CreateBookingInput struct {
	PropertyID   uint      `json:"property_id" validate:"required"`
	CheckinDate  time.Time `json:"checkin_date" validate:"required"`
	CheckoutDate time.Time `json:"checkout_date" validate:"required"`
	HasExtraCot  bool      `json:"has_extra_cot"`
	HasDeepClean bool      `json:"has_deep_clean"`
}

// Create creates a new PENDING booking against an AVAILABLE property
func (s *BookingService) Create(ctx context.Context, userID uint, input *CreateBookingInput, ip string) (*models.BookingResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if !input.CheckoutDate.After(input.CheckinDate) {
		return nil, ErrInvalidDates
	}
	if input.CheckinDate.Before(s.now().Truncate(24 * time.Hour)) {
		return nil, ErrPastCheckin
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Status != domain.UserActive {
		return nil, ErrBookerNotActive
	}

	property, err := s.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if property.Status != domain.PropertyAvailable {
		return nil, ErrPropertyUnavailable
	}

	booking := &models.Booking{
		PropertyID:    input.PropertyID,
		UserID:        userID,
		CheckinDate:   input.CheckinDate,
		CheckoutDate:  input.CheckoutDate,
		Status:        domain.BookingPending,
		PaymentStatus: false,
		HasExtraCot:   input.HasExtraCot,
		HasDeepClean:  input.HasDeepClean,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, domain.ActionCreate, fmt.Sprintf("Booking %d placed for property %d", booking.ID, property.ID), ip)

	booking.Property = property
	return booking.ToResponse(), nil
}

// Confirm moves a PENDING booking to CONFIRMED (property host only)
func (s *BookingService) Confirm(ctx context.Context, bookingID, actorID uint, ip string) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, actorID, domain.BookingConfirmed, false, ip)
}

// Cancel cancels an active booking (booker or property host)
func (s *BookingService) Cancel(ctx context.Context, bookingID, actorID uint, ip string) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, actorID, domain.BookingCancelled, true, ip)
}

// Complete moves a CONFIRMED booking to COMPLETED (property host only)
func (s *BookingService) Complete(ctx context.Context, bookingID, actorID uint, ip string) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, actorID, domain.BookingCompleted, false, ip)
}

// transition applies one booking state transition. Checks run in order:
// existence, then authorization, then transition legality.
// bookerAllowed widens the host-only rule to include the booking owner.
func (s *BookingService) transition(ctx context.Context, bookingID, actorID uint, next domain.BookingStatus, bookerAllowed bool, ip string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	isHost := booking.Property != nil && booking.Property.HostID == actorID
	isBooker := booking.UserID == actorID
	if !isHost && !(bookerAllowed && isBooker) {
		return nil, ErrNotBookingParty
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move booking from %s to %s", domain.ErrInvalidOperation, booking.Status, next)
	}

	booking.Status = next
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, domain.ActionUpdate, fmt.Sprintf("Booking %d moved to %s", booking.ID, next), ip)

	return booking.ToResponse(), nil
}

// MarkPaid flags a booking's payment as settled (property host only)
func (s *BookingService) MarkPaid(ctx context.Context, bookingID, actorID uint, ip string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.Property == nil || booking.Property.HostID != actorID {
		return nil, ErrNotBookingParty
	}
	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking %d is already %s", domain.ErrInvalidOperation, booking.ID, booking.Status)
	}

	booking.PaymentStatus = true
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, domain.ActionUpdate, fmt.Sprintf("Booking %d marked paid", booking.ID), ip)

	return booking.ToResponse(), nil
}

// ListByUser lists a user's bookings
func (s *BookingService) ListByUser(ctx context.Context, userID uint) ([]*models.BookingResponse, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = booking.ToResponse()
	}

	return responses, nil
}

// ListByHost lists bookings against any of the host's properties
func (s *BookingService) ListByHost(ctx context.Context, hostID uint) ([]*models.BookingResponse, error) {
	bookings, err := s.bookingRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = booking.ToResponse()
	}

	return responses, nil
}
