package services

import (
	"context"
	"log"

	"spacefinders/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background maintenance:
// completing bookings whose checkout date has passed and
// purging expired refresh tokens.
type CronService struct {
	bookingRepo      repositories.BookingRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	bookingRepo repositories.BookingRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		bookingRepo:      bookingRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// Complete stale bookings daily at 03:00
	s.cron.AddFunc("0 3 * * *", s.completeExpiredBookings)

	// Purge expired refresh tokens daily at 03:30
	s.cron.AddFunc("30 3 * * *", s.purgeExpiredTokens)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop gracefully stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) completeExpiredBookings() {
	n, err := s.bookingRepo.CompleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Booking auto-complete error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Auto-completed %d bookings past checkout", n)
	}
}

func (s *CronService) purgeExpiredTokens() {
	n, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Token purge error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Purged %d expired refresh tokens", n)
	}
}
