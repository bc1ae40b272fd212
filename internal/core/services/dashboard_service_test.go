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

func TestDashboardOverviewCounts(t *testing.T) {
	userRepo := newFakeUserRepo()
	propertyRepo := newFakePropertyRepo()
	bookingRepo := newFakeBookingRepo()
	complaintRepo := newFakeComplaintRepo()
	auditRepo := newFakeAuditRepo()

	seedUser(userRepo, "a", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	seedUser(userRepo, "b", "pw-irrelevant-1", domain.RoleClient, domain.UserActive)
	seedUser(userRepo, "c", "pw-irrelevant-1", domain.RoleClient, domain.UserBlocked)

	seedProperty(propertyRepo, 1, 1, domain.PropertyAvailable)
	seedProperty(propertyRepo, 2, 1, domain.PropertyDeleted)

	bookingRepo.add(&models.Booking{ID: 1, PropertyID: 1, UserID: 1, Status: domain.BookingPending})
	bookingRepo.add(&models.Booking{ID: 2, PropertyID: 1, UserID: 2, Status: domain.BookingConfirmed})
	bookingRepo.add(&models.Booking{ID: 3, PropertyID: 1, UserID: 2, Status: domain.BookingConfirmed})

	complaintRepo.Create(context.Background(), &models.Complaint{
		UserID: 1, Type: domain.ComplaintOther, Description: "x",
		Status: domain.ComplaintPending, FiledAt: time.Now(),
	})

	auditRepo.Create(context.Background(), &models.Audit{
		UserID: 1, Action: domain.ActionLogin, Timestamp: time.Now(),
	})
	auditRepo.Create(context.Background(), &models.Audit{
		UserID: 1, Action: domain.ActionLogin, Timestamp: time.Now().Add(-48 * time.Hour),
	})

	svc := NewDashboardService(userRepo, propertyRepo, bookingRepo, complaintRepo, auditRepo)
	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), overview.ActiveUsers)
	assert.Equal(t, int64(1), overview.BlockedUsers)
	assert.Equal(t, int64(0), overview.DeletedUsers)
	assert.Equal(t, int64(1), overview.AvailableProperties)
	assert.Equal(t, int64(1), overview.DeletedProperties)
	assert.Equal(t, int64(1), overview.PendingBookings)
	assert.Equal(t, int64(2), overview.ConfirmedBookings)
	assert.Equal(t, int64(1), overview.PendingComplaints)
	assert.Equal(t, int64(1), overview.AuditEventsToday)
}

func TestCronMaintenancePasses(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	tokenRepo := newFakeRefreshTokenRepo()

	// Confirmed booking past checkout completes; future one does not
	bookingRepo.add(&models.Booking{
		ID: 1, PropertyID: 1, UserID: 1,
		Status:       domain.BookingConfirmed,
		CheckoutDate: time.Now().Add(-24 * time.Hour),
	})
	bookingRepo.add(&models.Booking{
		ID: 2, PropertyID: 1, UserID: 1,
		Status:       domain.BookingConfirmed,
		CheckoutDate: time.Now().Add(24 * time.Hour),
	})

	tokenRepo.Create(context.Background(), &models.RefreshToken{
		UserID: 1, TokenHash: "stale", ExpiresAt: time.Now().Add(-1 * time.Hour),
	})
	tokenRepo.Create(context.Background(), tokenFor(1))

	svc := NewCronService(bookingRepo, tokenRepo)
	svc.completeExpiredBookings()
	svc.purgeExpiredTokens()

	first, _ := bookingRepo.GetByID(context.Background(), 1)
	second, _ := bookingRepo.GetByID(context.Background(), 2)
	assert.Equal(t, domain.BookingCompleted, first.Status)
	assert.Equal(t, domain.BookingConfirmed, second.Status)

	assert.Equal(t, 1, tokenRepo.activeCount(1))
	_, err := tokenRepo.GetByTokenHash(context.Background(), "stale")
	assert.Error(t, err)
}
