package services

import (
	"context"
	"errors"
	"log"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/config"
	"staffdesk/internal/core/domain"
	"staffdesk/internal/pkg/jwt"
	"staffdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors. The identity-related ones alias the domain sentinels so
// errors.Is works across layers.
var (
	ErrUserNotFound       = domain.ErrUserNotFound
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrUserAlreadyExists  = domain.ErrUserAlreadyExists
	ErrUserInactive       = domain.ErrUserInactive
	ErrWeakPassword       = domain.ErrInvalidPassword
	ErrOldPasswordWrong   = errors.New("old password is incorrect")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"max=100"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Check if username already exists
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 2. Check if email already exists
	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 3. Hash password
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user (registration never grants admin)
	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		FullName: input.FullName,
		IsAdmin:  false,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Issue access token
	token, err := jwt.GenerateAccessToken(user.Username, user.IsAdmin, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Username)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Login authenticates a user. A missing user and a wrong password both come
// back as ErrInvalidCredentials so callers can't probe for usernames.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password before revealing account state
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 4. Issue access token
	token, err := jwt.GenerateAccessToken(user.Username, user.IsAdmin, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// GetProfile returns the current user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// ChangePassword verifies the old password and stores a new digest
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(oldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if !password.ValidatePassword(newPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed: %s", user.Username)
	return nil
}
