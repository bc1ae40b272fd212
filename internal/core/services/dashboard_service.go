package services

import (
	"context"
	"time"

	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/core/domain"
)

// DashboardService aggregates counters for the admin overview
type DashboardService struct {
	userRepo      repositories.UserRepository
	propertyRepo  repositories.PropertyRepository
	bookingRepo   repositories.BookingRepository
	complaintRepo repositories.ComplaintRepository
	auditRepo     repositories.AuditRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	propertyRepo repositories.PropertyRepository,
	bookingRepo repositories.BookingRepository,
	complaintRepo repositories.ComplaintRepository,
	auditRepo repositories.AuditRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:      userRepo,
		propertyRepo:  propertyRepo,
		bookingRepo:   bookingRepo,
		complaintRepo: complaintRepo,
		auditRepo:     auditRepo,
	}
}

// Overview represents the admin dashboard counters
type Overview struct {
	ActiveUsers         int64 `json:"active_users"`
	BlockedUsers        int64 `json:"blocked_users"`
	DeletedUsers        int64 `json:"deleted_users"`
	AvailableProperties int64 `json:"available_properties"`
	BookedProperties    int64 `json:"booked_properties"`
	DeletedProperties   int64 `json:"deleted_properties"`
	PendingBookings     int64 `json:"pending_bookings"`
	ConfirmedBookings   int64 `json:"confirmed_bookings"`
	CompletedBookings   int64 `json:"completed_bookings"`
	CancelledBookings   int64 `json:"cancelled_bookings"`
	PendingComplaints   int64 `json:"pending_complaints"`
	AuditEventsToday    int64 `json:"audit_events_today"`
}

// GetOverview collects all counters
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}

	counts := []struct {
		dest  *int64
		count func() (int64, error)
	}{
		{&overview.ActiveUsers, func() (int64, error) { return s.userRepo.CountByStatus(ctx, domain.UserActive) }},
		{&overview.BlockedUsers, func() (int64, error) { return s.userRepo.CountByStatus(ctx, domain.UserBlocked) }},
		{&overview.DeletedUsers, func() (int64, error) { return s.userRepo.CountByStatus(ctx, domain.UserDeleted) }},
		{&overview.AvailableProperties, func() (int64, error) { return s.propertyRepo.CountByStatus(ctx, domain.PropertyAvailable) }},
		{&overview.BookedProperties, func() (int64, error) { return s.propertyRepo.CountByStatus(ctx, domain.PropertyBooked) }},
		{&overview.DeletedProperties, func() (int64, error) { return s.propertyRepo.CountByStatus(ctx, domain.PropertyDeleted) }},
		{&overview.PendingBookings, func() (int64, error) { return s.bookingRepo.CountByStatus(ctx, domain.BookingPending) }},
		{&overview.ConfirmedBookings, func() (int64, error) { return s.bookingRepo.CountByStatus(ctx, domain.BookingConfirmed) }},
		{&overview.CompletedBookings, func() (int64, error) { return s.bookingRepo.CountByStatus(ctx, domain.BookingCompleted) }},
		{&overview.CancelledBookings, func() (int64, error) { return s.bookingRepo.CountByStatus(ctx, domain.BookingCancelled) }},
		{&overview.PendingComplaints, func() (int64, error) { return s.complaintRepo.CountByStatus(ctx, domain.ComplaintPending) }},
	}

	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	auditToday, err := s.auditRepo.CountSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	overview.AuditEventsToday = auditToday

	return overview, nil
}
