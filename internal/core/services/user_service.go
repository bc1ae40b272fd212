package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/pkg/validate"

	"gorm.io/gorm"
)

// User lifecycle errors
var (
	ErrUserAlreadyDeleted = fmt.Errorf("%w: user is already deleted", domain.ErrInvalidOperation)
	ErrUserNotActive      = fmt.Errorf("%w: only active users can be blocked", domain.ErrInvalidOperation)
	ErrUserNotBlocked     = fmt.Errorf("%w: user is not blocked", domain.ErrInvalidOperation)
)

// UserService handles user account management
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	audit            *AuditService
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	audit *AuditService,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		audit:            audit,
	}
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,min=7,max=20"`
	Address *string `json:"address"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// ViewProfile gets a user's profile
func (s *UserService) ViewProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user.ToResponse(), nil
}

// UpdateProfile updates a user's own contact details.
// Email and phone uniqueness is re-checked only when the value changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput, ip string) (*models.UserResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}

	if input.Phone != nil && *input.Phone != user.Phone {
		exists, err := s.userRepo.ExistsByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrPhoneTaken
		}
		user.Phone = *input.Phone
	}

	if input.Address != nil {
		user.Address = *input.Address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, domain.ActionUpdate, "User profile updated", ip)

	return user.ToResponse(), nil
}

// Delete soft-deletes a user. DELETED is terminal: repeating the delete fails
// with an invalid-operation error. All refresh tokens are revoked.
func (s *UserService) Delete(ctx context.Context, userID uint, ip string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Status == domain.UserDeleted {
		return ErrUserAlreadyDeleted
	}

	user.Status = domain.UserDeleted
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		log.Printf("⚠️ Failed to revoke sessions for deleted user %d: %v", userID, err)
	}

	s.audit.Record(ctx, userID, domain.ActionDelete, "User account deleted", ip)
	return nil
}

// Block moves an ACTIVE user to BLOCKED (admin action, reversible)
func (s *UserService) Block(ctx context.Context, userID, adminID uint, ip string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Status != domain.UserActive {
		return nil, ErrUserNotActive
	}

	user.Status = domain.UserBlocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		log.Printf("⚠️ Failed to revoke sessions for blocked user %d: %v", userID, err)
	}

	s.audit.Record(ctx, adminID, domain.ActionUpdate, fmt.Sprintf("Blocked user %d", userID), ip)

	return user.ToResponse(), nil
}

// Unblock moves a BLOCKED user back to ACTIVE (admin action)
func (s *UserService) Unblock(ctx context.Context, userID, adminID uint, ip string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Status != domain.UserBlocked {
		return nil, ErrUserNotBlocked
	}

	user.Status = domain.UserActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.ActionUpdate, fmt.Sprintf("Unblocked user %d", userID), ip)

	return user.ToResponse(), nil
}

// ListUsers lists all users with pagination (admin)
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*ListUsersOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      userResponses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
