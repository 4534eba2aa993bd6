package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/config"
	"churchhub/internal/core/domain"
	"churchhub/internal/pkg/jwt"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/password"

	"github.com/google/uuid"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
	log      *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		log:      log.With("service", "auth"),
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"accessToken"`
}

// Register registers a new user with the USER role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return nil, domain.NewValidationError("Name must be between 1 and 100 characters", "name")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.NewValidationError("Password must be at least 8 characters", "password")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("Email is already registered", "email")
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, domain.NewInfrastructureError("failed to hash password", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    email.String(),
		Name:     name,
		Password: hashedPassword,
		Role:     string(domain.RoleUser),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("✅ User registered", "userId", user.ID)
	return s.issue(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	s.log.Info("✅ User logged in", "userId", user.ID)
	return s.issue(user)
}

// Me returns the profile of the signed-in user
func (s *AuthService) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", userID)
	}
	return user.ToResponse(), nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, domain.NewInfrastructureError("failed to sign access token", err)
	}
	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: accessToken,
	}, nil
}
