package repositories

import (
	"context"

	"churchhub/internal/adapters/persistence/mappers"
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/core/domain/review"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByID gets a review by ID
func (r *reviewRepository) FindByID(ctx context.Context, id review.ID) (review.Review, error) {
	var row models.Review
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to load review", "")
	}
	return mappers.ReviewToDomain(&row)
}

// FindByChurchID lists every review of a church, newest first
func (r *reviewRepository) FindByChurchID(ctx context.Context, churchID church.ID, offset, limit int) ([]review.Review, int64, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("church_id = ?", churchID.String())
	}, offset, limit)
}

// FindApprovedByChurchID lists approved reviews of a church, including those that
// received a response after approval, newest first
func (r *reviewRepository) FindApprovedByChurchID(ctx context.Context, churchID church.ID, offset, limit int) ([]review.Review, int64, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("church_id = ?", churchID.String()).
			Where("(status = ? OR (status = ? AND base_status = ?))",
				models.ReviewStatusApproved, models.ReviewStatusResponded, models.ReviewStatusApproved)
	}, offset, limit)
}

func (r *reviewRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB, offset, limit int) ([]review.Review, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Scopes(scope).
		Count(&total).Error
	if err != nil {
		return nil, 0, wrapErr(err, "failed to count reviews", "")
	}

	var rows []*models.Review
	err = r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, wrapErr(err, "failed to list reviews", "")
	}

	out := make([]review.Review, 0, len(rows))
	for _, row := range rows {
		rv, err := mappers.ReviewToDomain(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	return out, total, nil
}

// Save creates or updates a review in any state
func (r *reviewRepository) Save(ctx context.Context, rv review.Review) error {
	return saveReview(r.db.WithContext(ctx), rv)
}

func saveReview(db *gorm.DB, rv review.Review) error {
	row := mappers.ReviewToModel(rv)
	return wrapErr(upsert(db, row, row.ID), "failed to save review", "id")
}

// Update applies fn to the current review under a row lock and stores the result
func (r *reviewRepository) Update(ctx context.Context, id review.ID, fn ReviewMutation) (review.Review, error) {
	var next review.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Review
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id.String()).
			First(&row).Error
		if err != nil {
			if isNotFound(err) {
				return domain.NewNotFoundError("Review", id.String())
			}
			return wrapErr(err, "failed to lock review", "")
		}
		current, err := mappers.ReviewToDomain(&row)
		if err != nil {
			return err
		}
		if next, err = fn(current); err != nil {
			return err
		}
		return saveReview(tx, next)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Delete deletes a review
func (r *reviewRepository) Delete(ctx context.Context, id review.ID) error {
	err := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id.String()).Error
	return wrapErr(err, "failed to delete review", "")
}
