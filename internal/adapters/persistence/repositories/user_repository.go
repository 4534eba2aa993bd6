package repositories

import (
	"context"

	"churchhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return wrapErr(err, "failed to create user", "email")
}

// GetByID gets a user by ID. Returns nil, nil when absent.
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByEmail gets a user by email. Returns nil, nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *userRepository) getOne(q *gorm.DB) (*models.User, error) {
	var user models.User
	if err := q.First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to load user", "")
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, wrapErr(err, "failed to check email", "")
}

// CountByRole counts users holding a role
func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, wrapErr(err, "failed to count users", "")
}

// List lists users with pagination, newest first
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "failed to count users", "")
	}

	var users []*models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, wrapErr(err, "failed to list users", "")
	}
	return users, total, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	return wrapErr(err, "failed to update user", "email")
}

// Delete soft-deletes a user
func (r *userRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
	return wrapErr(err, "failed to delete user", "")
}
