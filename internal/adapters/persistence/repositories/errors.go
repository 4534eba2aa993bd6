package repositories

import (
	"errors"

	"churchhub/internal/core/domain"

	"gorm.io/gorm"
)

// wrapErr classifies a gorm error as a domain error. Domain errors pass through.
func wrapErr(err error, message string, conflictField string) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError(message+": duplicate "+conflictField, conflictField)
	}
	return domain.NewInfrastructureError(message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
