package services

import (
	"context"
	"testing"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture() (*BookingService, *fakeUserRepo, *fakePropertyRepo, *fakeBookingRepo, *fakeAuditRepo) {
	userRepo := newFakeUserRepo()
	propertyRepo := newFakePropertyRepo()
	bookingRepo := newFakeBookingRepo()
	auditRepo := newFakeAuditRepo()
	svc := NewBookingService(bookingRepo, propertyRepo, userRepo, NewAuditService(auditRepo))
	return svc, userRepo, propertyRepo, bookingRepo, auditRepo
}

func seedBooking(bookingRepo *fakeBookingRepo, id, propertyID, userID, hostID uint, status domain.BookingStatus) *models.Booking {
	return bookingRepo.add(&models.Booking{
		ID:         id,
		PropertyID: propertyID,
		UserID:     userID,
		Status:     status,
		Property:   &models.Property{ID: propertyID, HostID: hostID},
	})
}

func TestCreateBookingStartsPending(t *testing.T) {
	svc, userRepo, propertyRepo, _, auditRepo := newBookingFixture()
	guest := seedUser(userRepo, "guest", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	seedProperty(propertyRepo, 7, 99, domain.PropertyAvailable)

	checkin := time.Now().Add(48 * time.Hour)
	result, err := svc.Create(context.Background(), guest.ID, &CreateBookingInput{
		PropertyID:   7,
		CheckinDate:  checkin,
		CheckoutDate: checkin.Add(72 * time.Hour),
	}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingPending), result.Status)
	assert.False(t, result.PaymentStatus)
	assert.Len(t, auditRepo.byAction(domain.ActionCreate), 1)
}

func TestCreateBookingDateValidation(t *testing.T) {
	svc, userRepo, propertyRepo, _, _ := newBookingFixture()
	guest := seedUser(userRepo, "guest", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	seedProperty(propertyRepo, 7, 99, domain.PropertyAvailable)

	future := time.Now().Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), guest.ID, &CreateBookingInput{
		PropertyID:   7,
		CheckinDate:  future,
		CheckoutDate: future,
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidDates)

	past := time.Now().Add(-72 * time.Hour)
	_, err = svc.Create(context.Background(), guest.ID, &CreateBookingInput{
		PropertyID:   7,
		CheckinDate:  past,
		CheckoutDate: past.Add(24 * time.Hour),
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrPastCheckin)
}

func TestCreateBookingRequiresAvailableProperty(t *testing.T) {
	svc, userRepo, propertyRepo, _, _ := newBookingFixture()
	guest := seedUser(userRepo, "guest", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	seedProperty(propertyRepo, 7, 99, domain.PropertyBooked)

	checkin := time.Now().Add(48 * time.Hour)
	_, err := svc.Create(context.Background(), guest.ID, &CreateBookingInput{
		PropertyID:   7,
		CheckinDate:  checkin,
		CheckoutDate: checkin.Add(24 * time.Hour),
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrPropertyUnavailable)
}

func TestCreateBookingRequiresActiveUser(t *testing.T) {
	svc, userRepo, propertyRepo, _, _ := newBookingFixture()
	blocked := seedUser(userRepo, "blocked", "pw-irrelevant-1", domain.RoleClient, domain.UserBlocked)
	seedProperty(propertyRepo, 7, 99, domain.PropertyAvailable)

	checkin := time.Now().Add(48 * time.Hour)
	_, err := svc.Create(context.Background(), blocked.ID, &CreateBookingInput{
		PropertyID:   7,
		CheckinDate:  checkin,
		CheckoutDate: checkin.Add(24 * time.Hour),
	}, "10.0.0.1")
	assert.ErrorIs(t, err, ErrBookerNotActive)
}

func TestBookingTransitionLegality(t *testing.T) {
	const hostID, guestID = 10, 20

	tests := []struct {
		name    string
		from    domain.BookingStatus
		op      func(*BookingService, context.Context, uint, uint) error
		actorID uint
		wantErr error
	}{
		{
			name: "host confirms pending",
			from: domain.BookingPending,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Confirm(ctx, id, actor, "ip")
				return err
			},
			actorID: hostID,
		},
		{
			name: "guest cannot confirm",
			from: domain.BookingPending,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Confirm(ctx, id, actor, "ip")
				return err
			},
			actorID: guestID,
			wantErr: ErrNotBookingParty,
		},
		{
			name: "guest cancels pending",
			from: domain.BookingPending,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Cancel(ctx, id, actor, "ip")
				return err
			},
			actorID: guestID,
		},
		{
			name: "host completes confirmed",
			from: domain.BookingConfirmed,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Complete(ctx, id, actor, "ip")
				return err
			},
			actorID: hostID,
		},
		{
			name: "cannot complete pending",
			from: domain.BookingPending,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Complete(ctx, id, actor, "ip")
				return err
			},
			actorID: hostID,
			wantErr: domain.ErrInvalidOperation,
		},
		{
			name: "cancelled is terminal",
			from: domain.BookingCancelled,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Confirm(ctx, id, actor, "ip")
				return err
			},
			actorID: hostID,
			wantErr: domain.ErrInvalidOperation,
		},
		{
			name: "completed is terminal",
			from: domain.BookingCompleted,
			op: func(s *BookingService, ctx context.Context, id, actor uint) error {
				_, err := s.Cancel(ctx, id, actor, "ip")
				return err
			},
			actorID: hostID,
			wantErr: domain.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, bookingRepo, _ := newBookingFixture()
			seedBooking(bookingRepo, 1, 7, guestID, hostID, tt.from)

			err := tt.op(svc, context.Background(), 1, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				// Failed transitions leave the booking untouched
				stored, _ := bookingRepo.GetByID(context.Background(), 1)
				assert.Equal(t, tt.from, stored.Status)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStrangerCannotCancel(t *testing.T) {
	svc, _, _, bookingRepo, _ := newBookingFixture()
	seedBooking(bookingRepo, 1, 7, 20, 10, domain.BookingPending)

	_, err := svc.Cancel(context.Background(), 1, 999, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNotBookingParty)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMarkPaidHostOnlyAndNonTerminal(t *testing.T) {
	svc, _, _, bookingRepo, _ := newBookingFixture()
	seedBooking(bookingRepo, 1, 7, 20, 10, domain.BookingConfirmed)
	seedBooking(bookingRepo, 2, 7, 20, 10, domain.BookingCompleted)

	// Booker cannot settle payment
	_, err := svc.MarkPaid(context.Background(), 1, 20, "10.0.0.1")
	assert.ErrorIs(t, err, ErrNotBookingParty)

	result, err := svc.MarkPaid(context.Background(), 1, 10, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.PaymentStatus)

	// Terminal bookings cannot be paid
	_, err = svc.MarkPaid(context.Background(), 2, 10, "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestTransitionWritesOneAuditRecord(t *testing.T) {
	svc, _, _, bookingRepo, auditRepo := newBookingFixture()
	seedBooking(bookingRepo, 1, 7, 20, 10, domain.BookingPending)

	_, err := svc.Confirm(context.Background(), 1, 10, "172.16.0.5")
	require.NoError(t, err)

	records := auditRepo.byAction(domain.ActionUpdate)
	require.Len(t, records, 1)
	assert.Equal(t, uint(10), records[0].UserID)
	assert.Equal(t, "172.16.0.5", records[0].IPAddress)
}
