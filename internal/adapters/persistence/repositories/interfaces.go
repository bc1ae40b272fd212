package repositories

import (
	"context"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PropertyRepository defines property repository interface
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uint) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	ListByHost(ctx context.Context, hostID uint) ([]*models.Property, error)
	ListByHostAndStatus(ctx context.Context, hostID uint, status domain.PropertyStatus) ([]*models.Property, error)
	CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error)
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	ListByProperty(ctx context.Context, propertyID uint) ([]*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Booking, error)
	ListByHost(ctx context.Context, hostID uint) ([]*models.Booking, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	CompleteExpired(ctx context.Context) (int64, error)
}

// ComplaintRepository defines complaint repository interface
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id uint) (*models.Complaint, error)
	Update(ctx context.Context, complaint *models.Complaint) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Complaint, error)
	ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*models.Complaint, error)
	CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error)
}

// AuditRepository defines the append-only audit log interface.
// There is deliberately no update or delete method.
type AuditRepository interface {
	Create(ctx context.Context, record *models.Audit) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Audit, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
