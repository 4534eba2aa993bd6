package repositories

import (
	"context"

	"churchhub/internal/adapters/persistence/mappers"
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// churchRepository implements ChurchRepository interface
type churchRepository struct {
	db *gorm.DB
}

// NewChurchRepository creates a new church repository
func NewChurchRepository(db *gorm.DB) ChurchRepository {
	return &churchRepository{db: db}
}

// FindByID gets a church by ID
func (r *churchRepository) FindByID(ctx context.Context, id church.ID) (church.Church, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id.String()))
}

// FindBySlug gets a published church by slug
func (r *churchRepository) FindBySlug(ctx context.Context, slug string) (church.Church, error) {
	return r.findOne(r.db.WithContext(ctx).Where("slug = ?", slug))
}

func (r *churchRepository) findOne(q *gorm.DB) (church.Church, error) {
	var row models.Church
	if err := q.First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to load church", "")
	}
	return mappers.ChurchToDomain(&row)
}

// SlugExists checks if a slug is already taken
func (r *churchRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Church{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, wrapErr(err, "failed to check slug", "")
}

// ListPublic lists published and verified churches with pagination
func (r *churchRepository) ListPublic(ctx context.Context, offset, limit int) ([]church.Church, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.Church{}).Where("is_published = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "failed to count churches", "")
	}

	var rows []*models.Church
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, wrapErr(err, "failed to list churches", "")
	}

	out := make([]church.Church, 0, len(rows))
	for _, row := range rows {
		c, err := mappers.ChurchToDomain(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, nil
}

// Save creates or updates a church in any state
func (r *churchRepository) Save(ctx context.Context, c church.Church) error {
	return saveChurch(r.db.WithContext(ctx), c)
}

func saveChurch(db *gorm.DB, c church.Church) error {
	row := mappers.ChurchToModel(c)
	return wrapErr(upsert(db, row, row.ID), "failed to save church", "slug")
}

// Update applies fn to the current church under a row lock and stores the result
func (r *churchRepository) Update(ctx context.Context, id church.ID, fn ChurchMutation) (church.Church, error) {
	var next church.Church
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Church
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id.String()).
			First(&row).Error
		if err != nil {
			if isNotFound(err) {
				return domain.NewNotFoundError("Church", id.String())
			}
			return wrapErr(err, "failed to lock church", "")
		}
		current, err := mappers.ChurchToDomain(&row)
		if err != nil {
			return err
		}
		if next, err = fn(current); err != nil {
			return err
		}
		return saveChurch(tx, next)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Delete deletes a church
func (r *churchRepository) Delete(ctx context.Context, id church.ID) error {
	err := r.db.WithContext(ctx).Delete(&models.Church{}, "id = ?", id.String()).Error
	return wrapErr(err, "failed to delete church", "")
}

// upsert inserts row or overwrites every column of the row with the same primary key
func upsert(db *gorm.DB, row any, id string) error {
	var count int64
	if err := db.Model(row).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return db.Create(row).Error
	}
	return db.Model(row).Select("*").Where("id = ?", id).Updates(row).Error
}
