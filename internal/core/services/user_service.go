package services

import (
	"context"
	"errors"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/password"
)

// User service errors
var (
	ErrOldPasswordWrong = errors.New("old password is incorrect")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
	log      *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, log *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log.With("service", "user"),
	}
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.UserResponse, len(users))
	for i, user := range users {
		out[i] = user.ToResponse()
	}
	return out, total, nil
}

// UpdateUserByAdmin changes the role or active flag of a user
func (s *UserService) UpdateUserByAdmin(ctx context.Context, actor Actor, id string, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if id == actor.UserID {
			return nil, domain.NewValidationError("Admins cannot change their own role", "role")
		}
		role, err := domain.ParseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		user.Role = string(role)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user updated by admin", "userId", id, "role", user.Role, "isActive", user.IsActive, "adminId", actor.UserID)
	return user.ToResponse(), nil
}

// DeleteUser deletes a user (soft delete)
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if id == actor.UserID {
		return domain.NewValidationError("Admins cannot delete their own account")
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ChangePassword changes user's password
func (s *UserService) ChangePassword(ctx context.Context, userID string, input *ChangePasswordInput) error {
	user, err := s.get(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return domain.NewValidationError("New password must be at least 8 characters", "newPassword")
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return domain.NewInfrastructureError("failed to hash password", err)
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

func (s *UserService) get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", id)
	}
	return user, nil
}
