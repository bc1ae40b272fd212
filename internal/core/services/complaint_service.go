package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/pkg/validate"

	"gorm.io/gorm"
)

// Complaint errors
var (
	ErrComplaintNotFound   = fmt.Errorf("%w: complaint not found", domain.ErrNotFound)
	ErrComplaintNotPending = fmt.Errorf("%w: complaint has already been handled", domain.ErrInvalidOperation)
)

// ComplaintService handles complaint filing and resolution
type ComplaintService struct {
	complaintRepo repositories.ComplaintRepository
	bookingRepo   repositories.BookingRepository
	audit         *AuditService
	now           func() time.Time
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	bookingRepo repositories.BookingRepository,
	audit *AuditService,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		bookingRepo:   bookingRepo,
		audit:         audit,
		now:           time.Now,
	}
}

// FileComplaintInput represents complaint filing input
type FileComplaintInput struct {
	BookingID   *uint  `json:"booking_id"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
}

// File creates a new PENDING complaint, optionally tied to a booking
func (s *ComplaintService) File(ctx context.Context, userID uint, input *FileComplaintInput, ip string) (*models.ComplaintResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	complaintType, err := domain.ParseComplaintType(input.Type)
	if err != nil {
		return nil, err
	}

	if input.BookingID != nil {
		if _, err := s.bookingRepo.GetByID(ctx, *input.BookingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
	}

	complaint := &models.Complaint{
		UserID:      userID,
		BookingID:   input.BookingID,
		Type:        complaintType,
		Description: input.Description,
		Status:      domain.ComplaintPending,
		FiledAt:     s.now(),
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, domain.ActionCreate, fmt.Sprintf("Complaint %d filed", complaint.ID), ip)

	return complaint.ToResponse(), nil
}

// Resolve marks a PENDING complaint as RESOLVED (admin)
func (s *ComplaintService) Resolve(ctx context.Context, complaintID, adminID uint, ip string) (*models.ComplaintResponse, error) {
	return s.close(ctx, complaintID, adminID, domain.ComplaintResolved, ip)
}

// Reject marks a PENDING complaint as REJECTED (admin)
func (s *ComplaintService) Reject(ctx context.Context, complaintID, adminID uint, ip string) (*models.ComplaintResponse, error) {
	return s.close(ctx, complaintID, adminID, domain.ComplaintRejected, ip)
}

func (s *ComplaintService) close(ctx context.Context, complaintID, adminID uint, status domain.ComplaintStatus, ip string) (*models.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	if complaint.Status != domain.ComplaintPending {
		return nil, ErrComplaintNotPending
	}

	complaint.Status = status
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.ActionUpdate, fmt.Sprintf("Complaint %d %s", complaint.ID, status), ip)

	return complaint.ToResponse(), nil
}

// ListByUser lists a user's complaints
func (s *ComplaintService) ListByUser(ctx context.Context, userID uint) ([]*models.ComplaintResponse, error) {
	complaints, err := s.complaintRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ComplaintResponse, len(complaints))
	for i, complaint := range complaints {
		responses[i] = complaint.ToResponse()
	}

	return responses, nil
}

// ListPending lists all unhandled complaints (admin)
func (s *ComplaintService) ListPending(ctx context.Context) ([]*models.ComplaintResponse, error) {
	complaints, err := s.complaintRepo.ListByStatus(ctx, domain.ComplaintPending)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ComplaintResponse, len(complaints))
	for i, complaint := range complaints {
		responses[i] = complaint.ToResponse()
	}

	return responses, nil
}
