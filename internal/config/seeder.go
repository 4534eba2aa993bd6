package config

import (
	"context"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	users repositories.UserRepository
	cfg   *Config
	log   *logger.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config, log *logger.Logger) *Seeder {
	return &Seeder{users: repositories.NewUserRepository(db), cfg: cfg, log: log}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	s.log.Info("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		s.log.Warn("⚠️ Admin seeder skipped", "error", err)
	}

	s.log.Info("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the first platform admin in dev mode.
// In production, create admins through a secure process.
func (s *Seeder) seedAdminUser() error {
	if !s.cfg.IsDev() {
		return nil
	}

	ctx := context.Background()
	count, err := s.users.CountByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := getEnv("SEED_ADMIN_EMAIL", "admin@churchhub.local")
	hashedPassword, err := password.Hash(getEnv("SEED_ADMIN_PASSWORD", "admin123456"))
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Name:     "Platform Admin",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info("✅ Admin user created", "email", email)
	return nil
}
