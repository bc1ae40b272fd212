package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"spacefinders/internal/adapters/persistence/models"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/config"
	"spacefinders/internal/core/domain"
	"spacefinders/internal/pkg/jwt"
	"spacefinders/internal/pkg/password"
	"spacefinders/internal/pkg/validate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound     = fmt.Errorf("%w: user not found, please register first", domain.ErrNotFound)
	ErrAccountNotFound  = fmt.Errorf("%w: account not found", domain.ErrNotFound)
	ErrUsernameTaken    = fmt.Errorf("%w: username already exists", domain.ErrDuplicateResource)
	ErrEmailTaken       = fmt.Errorf("%w: email already registered", domain.ErrDuplicateResource)
	ErrPhoneTaken       = fmt.Errorf("%w: phone number already registered", domain.ErrDuplicateResource)
	ErrWrongPassword    = fmt.Errorf("%w: invalid username or password", domain.ErrInvalidCredentials)
	ErrOldPasswordWrong = fmt.Errorf("%w: old password is incorrect", domain.ErrInvalidCredentials)
	ErrAccountBlocked   = fmt.Errorf("%w: your account is blocked, contact admin", domain.ErrUnauthorized)
	ErrInvalidToken     = fmt.Errorf("%w: invalid token", domain.ErrTokenInvalid)
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	audit            *AuditService
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	audit *AuditService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		audit:            audit,
		cfg:              cfg,
	}
}

// RegisterInput represents signup input
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8"`
	Address  string `json:"address,omitempty"`
	Role     string `json:"role" validate:"required"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordInput represents password reset input
type ResetPasswordInput struct {
	Username    string `json:"username" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register registers a new user.
// Username, email and phone must each be globally unique; the three existence
// probes run independently and the first collision names the offending field.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput, ip string) (*AuthResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	role, err := domain.ParseUserRole(input.Role)
	if err != nil {
		return nil, err
	}

	// 1. Check if username already exists
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	// 2. Check if email already exists
	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 3. Check if phone already exists
	exists, err = s.userRepo.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: hashedPassword,
		Address:  input.Address,
		Role:     role,
		Status:   domain.UserActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.ID, domain.ActionCreate, "User registered successfully", ip)

	// 6. Generate and store tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Username, user.Role)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a user. The credential is verified before the account
// status is inspected: a wrong password on a blocked account still reads as
// invalid credentials, matching the documented guard ordering.
func (s *AuthService) Login(ctx context.Context, input *LoginInput, ip string) (*AuthResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. Verify password first
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrWrongPassword
	}

	// 3. Then check account status
	if user.Status == domain.UserBlocked {
		return nil, ErrAccountBlocked
	}
	if user.Status == domain.UserDeleted {
		return nil, ErrAccountNotFound
	}

	s.audit.Record(ctx, user.ID, domain.ActionLogin, "User logged in", ip)

	// 4. Generate and store tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using a refresh token (with rotation)
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find token in DB by digest
	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, domain.ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 3. Get user and re-check status
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Status == domain.UserBlocked {
		return nil, ErrAccountBlocked
	}
	if user.Status == domain.UserDeleted {
		return nil, ErrAccountNotFound
	}

	// 4. Rotate: revoke old token, issue new pair
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token and records the action
func (s *AuthService) Logout(ctx context.Context, userID uint, refreshToken, ip string) error {
	if refreshToken != "" {
		tokenHash := password.HashToken(refreshToken)
		if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
			return err
		}
	}

	s.audit.Record(ctx, userID, domain.ActionLogout, "User logged out", ip)
	return nil
}

// ResetPassword verifies the old password and replaces it with the new one
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput, ip string) error {
	if err := validate.Struct(input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, user.ID, domain.ActionUpdate, "Password reset successfully", ip)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		string(user.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token digest in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
