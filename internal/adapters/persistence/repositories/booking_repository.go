package repositories

import (
	"context"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking by ID with property preloaded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Address").
		Preload("User").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Omit("Property", "User").Save(booking).Error
}

// ListByProperty lists all bookings referencing a property
func (r *bookingRepository) ListByProperty(ctx context.Context, propertyID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("checkin_date").
		Find(&bookings).Error
	return bookings, err
}

// ListByUser lists a user's bookings
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Address").
		Where("user_id = ?", userID).
		Order("checkin_date DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListByHost lists all bookings against any of the host's properties
func (r *bookingRepository) ListByHost(ctx context.Context, hostID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("User").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.host_id = ?", hostID).
		Order("bookings.checkin_date DESC").
		Find(&bookings).Error
	return bookings, err
}

// CountByStatus counts bookings in a given status
func (r *bookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CompleteExpired marks CONFIRMED bookings whose checkout date has passed as COMPLETED.
// Returns the number of rows changed.
func (r *bookingRepository) CompleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ? AND checkout_date < ?", domain.BookingConfirmed, time.Now()).
		Update("status", domain.BookingCompleted)
	return result.RowsAffected, result.Error
}
