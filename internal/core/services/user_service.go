package services

import (
	"context"
	"errors"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
	ErrCannotDemoteSelf     = errors.New("cannot change your own admin flag")
)

// UserService handles admin-side user management
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page  int
	Limit int
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// UpdateUserInput represents admin updates to a user; nil fields are untouched
type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	IsAdmin  *bool   `json:"is_admin"`
	IsActive *bool   `json:"is_active"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	users, total, err := s.userRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      userResponses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser returns a single user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUser applies admin edits to a user. The acting admin cannot demote
// or deactivate themselves; that keeps at least one working admin around.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.IsAdmin != nil {
		if id == actorID && *input.IsAdmin != user.IsAdmin {
			return nil, ErrCannotDemoteSelf
		}
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsActive != nil {
		if id == actorID && !*input.IsActive {
			return nil, ErrCannotDeactivateSelf
		}
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeactivateUser soft-deactivates a user. Accounts are never hard-deleted;
// a deactivated user keeps their rows but can no longer authenticate.
func (s *UserService) DeactivateUser(ctx context.Context, actorID, id uint) error {
	if id == actorID {
		return ErrCannotDeactivateSelf
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.IsActive = false
	return s.userRepo.Update(ctx, user)
}
