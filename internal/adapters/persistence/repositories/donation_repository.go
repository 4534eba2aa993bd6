package repositories

import (
	"context"
	"time"

	"churchhub/internal/adapters/persistence/mappers"
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/donation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// FindByID gets a donation by ID
func (r *donationRepository) FindByID(ctx context.Context, id donation.ID) (donation.Donation, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id.String()))
}

// FindByStripePaymentIntentID gets a donation by its payment intent reference
func (r *donationRepository) FindByStripePaymentIntentID(ctx context.Context, intentID string) (donation.Donation, error) {
	return r.findOne(r.db.WithContext(ctx).Where("stripe_payment_intent_id = ?", intentID))
}

func (r *donationRepository) findOne(q *gorm.DB) (donation.Donation, error) {
	var row models.Donation
	if err := q.First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to load donation", "")
	}
	return mappers.DonationToDomain(&row)
}

// FindByUserID lists donations of a user, newest first
func (r *donationRepository) FindByUserID(ctx context.Context, userID string, offset, limit int) ([]donation.Donation, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, wrapErr(err, "failed to count donations", "")
	}

	var rows []*models.Donation
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, wrapErr(err, "failed to list donations", "")
	}
	out, err := toDonations(rows)
	return out, total, err
}

// ListPendingBefore lists pending donations created before cutoff (expiry job)
func (r *donationRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]donation.Donation, error) {
	var rows []*models.Donation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.DonationStatusPending).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(err, "failed to list pending donations", "")
	}
	return toDonations(rows)
}

func toDonations(rows []*models.Donation) ([]donation.Donation, error) {
	out := make([]donation.Donation, 0, len(rows))
	for _, row := range rows {
		d, err := mappers.DonationToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Save creates or updates a donation in any state
func (r *donationRepository) Save(ctx context.Context, d donation.Donation) error {
	return saveDonation(r.db.WithContext(ctx), d)
}

func saveDonation(db *gorm.DB, d donation.Donation) error {
	row := mappers.DonationToModel(d)
	return wrapErr(upsert(db, row, row.ID), "failed to save donation", "stripePaymentIntentId")
}

// Update applies fn to the current donation under a row lock and stores the result
func (r *donationRepository) Update(ctx context.Context, id donation.ID, fn DonationMutation) (donation.Donation, error) {
	var next donation.Donation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Donation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id.String()).
			First(&row).Error
		if err != nil {
			if isNotFound(err) {
				return domain.NewNotFoundError("Donation", id.String())
			}
			return wrapErr(err, "failed to lock donation", "")
		}
		current, err := mappers.DonationToDomain(&row)
		if err != nil {
			return err
		}
		if next, err = fn(current); err != nil {
			return err
		}
		return saveDonation(tx, next)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Delete deletes a donation
func (r *donationRepository) Delete(ctx context.Context, id donation.ID) error {
	err := r.db.WithContext(ctx).Delete(&models.Donation{}, "id = ?", id.String()).Error
	return wrapErr(err, "failed to delete donation", "")
}
