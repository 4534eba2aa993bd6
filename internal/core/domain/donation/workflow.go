package donation

import (
	"strings"

	"churchhub/internal/core/domain"
)

// CreateInput carries the raw fields of a new donation
type CreateInput struct {
	UserID                string
	Amount                float64
	StripePaymentIntentID *string
	Metadata              map[string]any
}

// Create validates the donor and amount and returns a Pending donation
func Create(in CreateInput) (Pending, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return Pending{}, domain.NewValidationError("User ID is required", "userId")
	}
	amount, err := AmountFromFloat(in.Amount)
	if err != nil {
		return Pending{}, err
	}

	var intent *string
	if in.StripePaymentIntentID != nil {
		if v := strings.TrimSpace(*in.StripePaymentIntentID); v != "" {
			intent = &v
		}
	}
	return RestorePending(NewID(), userID, amount, intent, in.Metadata, domain.Now()), nil
}

// Complete marks a pending donation as paid
func Complete(d Donation) (Completed, error) {
	p, ok := d.(Pending)
	if !ok {
		return Completed{}, domain.NewValidationError("Only pending donations can be completed", "status")
	}
	return RestoreCompleted(p, domain.Now()), nil
}

// Fail marks a pending donation as failed with a reason
func Fail(d Donation, failureReason string) (Failed, error) {
	p, ok := d.(Pending)
	if !ok {
		return Failed{}, domain.NewValidationError("Only pending donations can be failed", "status")
	}
	reason := strings.TrimSpace(failureReason)
	if reason == "" {
		return Failed{}, domain.NewValidationError("Failure reason is required", "failureReason")
	}
	return RestoreFailed(p, domain.Now(), reason), nil
}

// Refund records a refund of a completed donation.
// The original completion timestamp is kept.
func Refund(d Donation, stripeRefundID string, refundReason *string) (Refunded, error) {
	c, ok := d.(Completed)
	if !ok {
		return Refunded{}, domain.NewValidationError("Only completed donations can be refunded", "status")
	}
	refundID := strings.TrimSpace(stripeRefundID)
	if refundID == "" {
		return Refunded{}, domain.NewValidationError("Stripe refund ID is required", "stripeRefundId")
	}

	var reason *string
	if refundReason != nil {
		if v := strings.TrimSpace(*refundReason); v != "" {
			reason = &v
		}
	}
	return RestoreRefunded(c, domain.Now(), refundID, reason), nil
}
