package repositories

import (
	"context"
	"time"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/core/domain/donation"
	"churchhub/internal/core/domain/review"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// ChurchMutation computes the next state of a stored church
type ChurchMutation func(current church.Church) (church.Church, error)

// ChurchRepository persists churches in any lifecycle state.
// Lookups return nil, nil when the church does not exist.
type ChurchRepository interface {
	FindByID(ctx context.Context, id church.ID) (church.Church, error)
	FindBySlug(ctx context.Context, slug string) (church.Church, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublic(ctx context.Context, offset, limit int) ([]church.Church, int64, error)
	Save(ctx context.Context, c church.Church) error
	Update(ctx context.Context, id church.ID, fn ChurchMutation) (church.Church, error)
	Delete(ctx context.Context, id church.ID) error
}

// ReviewMutation computes the next state of a stored review
type ReviewMutation func(current review.Review) (review.Review, error)

// ReviewRepository persists reviews in any lifecycle state
type ReviewRepository interface {
	FindByID(ctx context.Context, id review.ID) (review.Review, error)
	FindByChurchID(ctx context.Context, churchID church.ID, offset, limit int) ([]review.Review, int64, error)
	FindApprovedByChurchID(ctx context.Context, churchID church.ID, offset, limit int) ([]review.Review, int64, error)
	Save(ctx context.Context, r review.Review) error
	Update(ctx context.Context, id review.ID, fn ReviewMutation) (review.Review, error)
	Delete(ctx context.Context, id review.ID) error
}

// DonationMutation computes the next state of a stored donation
type DonationMutation func(current donation.Donation) (donation.Donation, error)

// DonationRepository persists donations in any lifecycle state
type DonationRepository interface {
	FindByID(ctx context.Context, id donation.ID) (donation.Donation, error)
	FindByUserID(ctx context.Context, userID string, offset, limit int) ([]donation.Donation, int64, error)
	FindByStripePaymentIntentID(ctx context.Context, intentID string) (donation.Donation, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]donation.Donation, error)
	Save(ctx context.Context, d donation.Donation) error
	Update(ctx context.Context, id donation.ID, fn DonationMutation) (donation.Donation, error)
	Delete(ctx context.Context, id donation.ID) error
}
