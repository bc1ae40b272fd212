package services

import (
	"context"
	"errors"
	"fmt"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/pkg/validate"

	"gorm.io/gorm"
)

// Property lifecycle errors
var (
	ErrPropertyNotFound       = fmt.Errorf("%w: property not found", domain.ErrNotFound)
	ErrHostNotFound           = fmt.Errorf("%w: host not found", domain.ErrNotFound)
	ErrNotHost                = fmt.Errorf("%w: only hosts can manage properties", domain.ErrUnauthorized)
	ErrNotPropertyOwner       = fmt.Errorf("%w: property belongs to another host", domain.ErrUnauthorized)
	ErrPropertyAlreadyDeleted = fmt.Errorf("%w: property is already deleted", domain.ErrInvalidOperation)
	ErrPropertyNotAvailable   = fmt.Errorf("%w: only available properties can be deleted", domain.ErrInvalidOperation)
	ErrActiveBookingsExist    = fmt.Errorf("%w: cannot delete property with active bookings", domain.ErrInvalidOperation)
)

// PropertyService handles host property management
type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	bookingRepo  repositories.BookingRepository
	userRepo     repositories.UserRepository
	audit        *AuditService
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
	audit *AuditService,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		audit:        audit,
	}
}

// PropertyInput represents create/update property input
type PropertyInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description,omitempty"`
	Rooms       int     `json:"rooms" validate:"required,gt=0"`
	Bathrooms   int     `json:"bathrooms" validate:"required,gt=0"`
	MaxGuests   int     `json:"max_guests" validate:"required,gt=0"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url,omitempty"`

	HasWifi        bool `json:"has_wifi"`
	HasParking     bool `json:"has_parking"`
	HasPool        bool `json:"has_pool"`
	HasAC          bool `json:"has_ac"`
	HasHeater      bool `json:"has_heater"`
	HasPetFriendly bool `json:"has_pet_friendly"`

	BuildingNo string `json:"building_no,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postal_code,omitempty"`
}

// UpdatePropertyInput adds the requested status to the base fields
type UpdatePropertyInput struct {
	PropertyInput
	Status string `json:"status" validate:"required"`
}

// Create creates a new property for a host. Only users with role HOST may
// create listings. The property starts AVAILABLE with a zero rating.
func (s *PropertyService) Create(ctx context.Context, hostID uint, input *PropertyInput, ip string) (*models.PropertyResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	host, err := s.userRepo.GetByID(ctx, hostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}

	if host.Role != domain.RoleHost {
		return nil, ErrNotHost
	}

	property := &models.Property{
		HostID:         hostID,
		Name:           input.Name,
		Description:    input.Description,
		Rooms:          input.Rooms,
		Bathrooms:      input.Bathrooms,
		MaxGuests:      input.MaxGuests,
		PricePerDay:    input.PricePerDay,
		ImageURL:       input.ImageURL,
		Status:         domain.PropertyAvailable,
		Rate:           0,
		RatingCount:    0,
		HasWifi:        input.HasWifi,
		HasParking:     input.HasParking,
		HasPool:        input.HasPool,
		HasAC:          input.HasAC,
		HasHeater:      input.HasHeater,
		HasPetFriendly: input.HasPetFriendly,
		Address: &models.Address{
			BuildingNo: input.BuildingNo,
			Street:     input.Street,
			City:       input.City,
			State:      input.State,
			Country:    input.Country,
			PostalCode: input.PostalCode,
		},
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, hostID, domain.ActionCreate, fmt.Sprintf("Property %d listed", property.ID), ip)

	return property.ToResponse(), nil
}

// Update updates a property and its address. Only the owning host may update.
// The requested status string goes through the closed decoder.
func (s *PropertyService) Update(ctx context.Context, propertyID, hostID uint, input *UpdatePropertyInput, ip string) (*models.PropertyResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	status, err := domain.ParsePropertyStatus(input.Status)
	if err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if property.HostID != hostID {
		return nil, ErrNotPropertyOwner
	}

	property.Name = input.Name
	property.Description = input.Description
	property.Rooms = input.Rooms
	property.Bathrooms = input.Bathrooms
	property.MaxGuests = input.MaxGuests
	property.PricePerDay = input.PricePerDay
	property.ImageURL = input.ImageURL
	property.Status = status
	property.HasWifi = input.HasWifi
	property.HasParking = input.HasParking
	property.HasPool = input.HasPool
	property.HasAC = input.HasAC
	property.HasHeater = input.HasHeater
	property.HasPetFriendly = input.HasPetFriendly

	if property.Address != nil {
		property.Address.BuildingNo = input.BuildingNo
		property.Address.Street = input.Street
		property.Address.City = input.City
		property.Address.State = input.State
		property.Address.Country = input.Country
		property.Address.PostalCode = input.PostalCode
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, hostID, domain.ActionUpdate, fmt.Sprintf("Property %d updated", property.ID), ip)

	return property.ToResponse(), nil
}

// ListByHost lists a host's properties, hiding DELETED ones
func (s *PropertyService) ListByHost(ctx context.Context, hostID uint) ([]*models.PropertyResponse, error) {
	properties, err := s.propertyRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PropertyResponse, 0, len(properties))
	for _, property := range properties {
		if property.Status == domain.PropertyDeleted {
			continue
		}
		responses = append(responses, property.ToResponse())
	}

	return responses, nil
}

// ListDeletedByHost lists a host's soft-deleted properties
func (s *PropertyService) ListDeletedByHost(ctx context.Context, hostID uint) ([]*models.PropertyResponse, error) {
	properties, err := s.propertyRepo.ListByHostAndStatus(ctx, hostID, domain.PropertyDeleted)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PropertyResponse, len(properties))
	for i, property := range properties {
		responses[i] = property.ToResponse()
	}

	return responses, nil
}

// GetByID returns a property detail view with address and host contact
func (s *PropertyService) GetByID(ctx context.Context, propertyID uint) (*models.PropertyDetailResponse, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	return property.ToDetailResponse(), nil
}

// Delete soft-deletes a property. Guards run in order; the first failure
// aborts the whole operation with nothing persisted:
//  1. property must exist
//  2. caller must be the owning host
//  3. already DELETED fails (terminal state is idempotency-guarded)
//  4. current status must be AVAILABLE
//  5. no booking referencing the property may be PENDING or CONFIRMED
func (s *PropertyService) Delete(ctx context.Context, propertyID, hostID uint, ip string) error {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}

	if property.HostID != hostID {
		return ErrNotPropertyOwner
	}

	if property.Status == domain.PropertyDeleted {
		return ErrPropertyAlreadyDeleted
	}

	if property.Status != domain.PropertyAvailable {
		return ErrPropertyNotAvailable
	}

	bookings, err := s.bookingRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	for _, booking := range bookings {
		if booking.Status.IsActive() {
			return ErrActiveBookingsExist
		}
	}

	property.Status = domain.PropertyDeleted
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return err
	}

	s.audit.Record(ctx, hostID, domain.ActionDelete, fmt.Sprintf("Property %d deleted", property.ID), ip)
	return nil
}
