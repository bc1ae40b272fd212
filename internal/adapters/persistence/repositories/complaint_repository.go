package repositories

import (
	"context"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"

	"gorm.io/gorm"
)

// complaintRepository implements ComplaintRepository interface
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// Create creates a new complaint
func (r *complaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// GetByID gets a complaint by ID
func (r *complaintRepository) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&complaint).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Update updates a complaint
func (r *complaintRepository) Update(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Omit("User", "Booking").Save(complaint).Error
}

// ListByUser lists a user's complaints
func (r *complaintRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("filed_at DESC").
		Find(&complaints).Error
	return complaints, err
}

// ListByStatus lists complaints in a given status
func (r *complaintRepository) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("filed_at").
		Find(&complaints).Error
	return complaints, err
}

// CountByStatus counts complaints in a given status
func (r *complaintRepository) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
