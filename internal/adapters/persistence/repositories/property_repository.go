package repositories

import (
	"context"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/core/domain"

	"gorm.io/gorm"
)

// propertyRepository implements PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a property together with its owned address row
func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if property.Address != nil {
			if err := tx.Create(property.Address).Error; err != nil {
				return err
			}
			property.AddressID = property.Address.ID
		}
		return tx.Create(property).Error
	})
}

// GetByID gets a property by ID with address and host preloaded
func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Host").
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Update updates a property and its address
func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if property.Address != nil {
			if err := tx.Save(property.Address).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Address", "Host").Save(property).Error
	})
}

// ListByHost lists all of a host's properties
func (r *propertyRepository) ListByHost(ctx context.Context, hostID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

// ListByHostAndStatus lists a host's properties in a given status
func (r *propertyRepository) ListByHostAndStatus(ctx context.Context, hostID uint, status domain.PropertyStatus) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("host_id = ? AND status = ?", hostID, status).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

// CountByStatus counts properties in a given status
func (r *propertyRepository) CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Property{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
