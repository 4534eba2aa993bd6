package services

import (
	"context"
	"time"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/donation"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/pagination"
)

// ExpiredFailureReason is recorded on donations the expiry job gives up on
const ExpiredFailureReason = "Payment was not completed in time"

// expiryBatchSize bounds one expiry pass
const expiryBatchSize = 100

// DonationService runs the donation lifecycle against storage
type DonationService struct {
	donationRepo repositories.DonationRepository
	log          *logger.Logger
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo repositories.DonationRepository, log *logger.Logger) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		log:          log.With("service", "donation"),
	}
}

// CreateDonationInput represents a new donation
type CreateDonationInput struct {
	Amount                float64        `json:"amount"`
	StripePaymentIntentID *string        `json:"stripePaymentIntentId"`
	Metadata              map[string]any `json:"metadata"`
}

// FailInput represents a payment failure
type FailInput struct {
	Reason string `json:"reason"`
}

// RefundInput represents a refund of a completed donation
type RefundInput struct {
	StripeRefundID string  `json:"stripeRefundId"`
	Reason         *string `json:"reason"`
}

// Create stores a pending donation by the actor
func (s *DonationService) Create(ctx context.Context, actor Actor, input CreateDonationInput) (donation.Pending, error) {
	pending, err := donation.Create(donation.CreateInput{
		UserID:                actor.UserID,
		Amount:                input.Amount,
		StripePaymentIntentID: input.StripePaymentIntentID,
		Metadata:              input.Metadata,
	})
	if err != nil {
		return donation.Pending{}, err
	}
	if err := s.donationRepo.Save(ctx, pending); err != nil {
		return donation.Pending{}, err
	}

	s.log.Info("donation created", "donationId", pending.ID().String(), "amount", pending.Amount().Int64())
	return pending, nil
}

// Get returns a donation visible to the actor: its donor or a platform admin
func (s *DonationService) Get(ctx context.Context, actor Actor, rawID string) (donation.Donation, error) {
	d, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && d.UserID() != actor.UserID {
		return nil, domain.NewNotFoundError("Donation", rawID)
	}
	return d, nil
}

// ListByUser lists the donations of one donor
func (s *DonationService) ListByUser(ctx context.Context, userID string, params *pagination.Params) ([]donation.Donation, int64, error) {
	return s.donationRepo.FindByUserID(ctx, userID, params.Offset, params.Limit)
}

// Complete marks a pending donation as paid
func (s *DonationService) Complete(ctx context.Context, rawID string) (donation.Completed, error) {
	id, err := donation.ParseID(rawID)
	if err != nil {
		return donation.Completed{}, err
	}
	return s.complete(ctx, id)
}

// CompleteByPaymentIntent completes the donation behind an external payment reference
func (s *DonationService) CompleteByPaymentIntent(ctx context.Context, intentID string) (donation.Completed, error) {
	d, err := s.donationRepo.FindByStripePaymentIntentID(ctx, intentID)
	if err != nil {
		return donation.Completed{}, err
	}
	if d == nil {
		return donation.Completed{}, domain.NewNotFoundError("Donation", intentID)
	}
	return s.complete(ctx, d.ID())
}

func (s *DonationService) complete(ctx context.Context, id donation.ID) (donation.Completed, error) {
	next, err := s.donationRepo.Update(ctx, id, func(d donation.Donation) (donation.Donation, error) {
		return donation.Complete(d)
	})
	if err != nil {
		return donation.Completed{}, err
	}

	s.log.Info("donation completed", "donationId", id.String())
	return next.(donation.Completed), nil
}

// Fail records a failed payment for a pending donation
func (s *DonationService) Fail(ctx context.Context, rawID string, input FailInput) (donation.Failed, error) {
	id, err := donation.ParseID(rawID)
	if err != nil {
		return donation.Failed{}, err
	}
	next, err := s.donationRepo.Update(ctx, id, func(d donation.Donation) (donation.Donation, error) {
		return donation.Fail(d, input.Reason)
	})
	if err != nil {
		return donation.Failed{}, err
	}

	s.log.Info("donation failed", "donationId", rawID, "reason", input.Reason)
	return next.(donation.Failed), nil
}

// Refund refunds a completed donation
func (s *DonationService) Refund(ctx context.Context, rawID string, input RefundInput) (donation.Refunded, error) {
	id, err := donation.ParseID(rawID)
	if err != nil {
		return donation.Refunded{}, err
	}
	next, err := s.donationRepo.Update(ctx, id, func(d donation.Donation) (donation.Donation, error) {
		return donation.Refund(d, input.StripeRefundID, input.Reason)
	})
	if err != nil {
		return donation.Refunded{}, err
	}

	s.log.Info("donation refunded", "donationId", rawID, "stripeRefundId", input.StripeRefundID)
	return next.(donation.Refunded), nil
}

// ExpirePending fails pending donations created before cutoff.
// Donations that leave Pending concurrently are skipped.
func (s *DonationService) ExpirePending(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.donationRepo.ListPendingBefore(ctx, cutoff, expiryBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, d := range stale {
		_, err := s.donationRepo.Update(ctx, d.ID(), func(current donation.Donation) (donation.Donation, error) {
			return donation.Fail(current, ExpiredFailureReason)
		})
		switch domain.CodeOf(err) {
		case "":
			expired++
		case domain.CodeValidation, domain.CodeNotFound:
			s.log.Debug("donation left pending before expiry", "donationId", d.ID().String())
		default:
			return expired, err
		}
	}
	return expired, nil
}

func (s *DonationService) load(ctx context.Context, rawID string) (donation.Donation, error) {
	id, err := donation.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewNotFoundError("Donation", rawID)
	}
	return d, nil
}
