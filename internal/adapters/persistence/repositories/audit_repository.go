package repositories

import (
	"context"
	"time"

	"spacefinders/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// auditRepository implements AuditRepository interface
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create appends an audit record
func (r *auditRepository) Create(ctx context.Context, record *models.Audit) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByUser lists a user's audit trail, newest first
func (r *auditRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Audit, int64, error) {
	var records []*models.Audit
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Audit{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CountSince counts audit records stamped at or after the given time
func (r *auditRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Audit{}).Where("timestamp >= ?", since).Count(&count).Error
	return count, err
}
