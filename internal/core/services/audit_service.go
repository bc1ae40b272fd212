package services

import (
	"context"
	"log"
	"time"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/core/domain"
)

// AuditService appends immutable audit records for user-attributable actions.
// Writes are best-effort: a failed append is logged and never propagated, so
// audit failures cannot roll back or fail the primary mutation.
type AuditService struct {
	auditRepo repositories.AuditRepository
	now       func() time.Time
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

// NewAuditServiceWithClock creates an audit service with an injected clock
func NewAuditServiceWithClock(auditRepo repositories.AuditRepository, now func() time.Time) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		now:       now,
	}
}

// Record appends one audit record attributed to the acting user
func (s *AuditService) Record(ctx context.Context, userID uint, action domain.AuditAction, description, ip string) {
	record := &models.Audit{
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   ip,
		Timestamp:   s.now(),
	}

	if err := s.auditRepo.Create(ctx, record); err != nil {
		log.Printf("⚠️ Failed to write audit record (user %d, action %s): %v", userID, action, err)
	}
}

// GetUserTrail returns a user's audit trail, newest first
func (s *AuditService) GetUserTrail(ctx context.Context, userID uint, offset, limit int) ([]*models.Audit, int64, error) {
	return s.auditRepo.ListByUser(ctx, userID, offset, limit)
}
