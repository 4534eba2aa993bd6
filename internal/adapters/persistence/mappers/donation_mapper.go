package mappers

import (
	"maps"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/donation"

	"gorm.io/datatypes"
)

// DonationToDomain rebuilds the donation state named by the status column.
// Metadata is returned verbatim: state fields live in their own columns, so no key is reserved.
func DonationToDomain(m *models.Donation) (donation.Donation, error) {
	id, err := donation.ParseID(m.ID)
	if err != nil {
		return nil, err
	}
	amount, err := donation.NewAmount(m.Amount)
	if err != nil {
		return nil, err
	}
	var metadata map[string]any
	if m.Metadata != nil {
		metadata = maps.Clone(map[string]any(m.Metadata))
	}
	p := donation.RestorePending(id, m.UserID, amount, m.StripePaymentIntentID, metadata, m.CreatedAt)

	switch m.Status {
	case models.DonationStatusPending:
		return p, nil
	case models.DonationStatusCompleted:
		if m.CompletedAt == nil {
			return nil, missing(m.ID, "completedAt")
		}
		return donation.RestoreCompleted(p, *m.CompletedAt), nil
	case models.DonationStatusFailed:
		if m.FailedAt == nil || m.FailureReason == nil {
			return nil, missing(m.ID, "failedAt")
		}
		return donation.RestoreFailed(p, *m.FailedAt, *m.FailureReason), nil
	case models.DonationStatusRefunded:
		if m.CompletedAt == nil || m.RefundedAt == nil || m.StripeRefundID == nil {
			return nil, missing(m.ID, "refundedAt")
		}
		c := donation.RestoreCompleted(p, *m.CompletedAt)
		return donation.RestoreRefunded(c, *m.RefundedAt, *m.StripeRefundID, m.RefundReason), nil
	}
	return nil, domain.NewValidationError("Unknown donation status: "+m.Status, "status")
}

func missing(id, field string) *domain.ValidationError {
	return domain.NewValidationError("Donation "+id+" is missing "+field, field)
}

// DonationToModel flattens any donation state into a row
func DonationToModel(d donation.Donation) *models.Donation {
	m := &models.Donation{
		ID:                    d.ID().String(),
		UserID:                d.UserID(),
		Amount:                d.Amount().Int64(),
		Status:                string(d.Tag()),
		StripePaymentIntentID: d.StripePaymentIntentID(),
		CreatedAt:             d.CreatedAt(),
	}
	if md := d.Metadata(); md != nil {
		m.Metadata = datatypes.JSONMap(md)
	}

	switch s := d.(type) {
	case donation.Completed:
		m.CompletedAt = ptr(s.CompletedAt())
	case donation.Failed:
		m.FailedAt = ptr(s.FailedAt())
		m.FailureReason = ptr(s.FailureReason())
	case donation.Refunded:
		m.CompletedAt = ptr(s.CompletedAt())
		m.RefundedAt = ptr(s.RefundedAt())
		m.RefundReason = s.RefundReason()
		m.StripeRefundID = ptr(s.StripeRefundID())
	}
	return m
}
