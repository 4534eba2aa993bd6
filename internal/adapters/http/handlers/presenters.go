package handlers

import (
	"time"

	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/core/domain/donation"
	"churchhub/internal/core/domain/review"
	"churchhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// actorOf builds the service actor from the locals set by the auth middlewares
func actorOf(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	role, _ := c.Locals(middleware.LocalRole).(string)
	return services.Actor{UserID: userID, Role: domain.Role(role)}
}

// ChurchResponse is the JSON view of a church in any state
type ChurchResponse struct {
	ID          string     `json:"id"`
	Status      church.Tag `json:"status"`
	Name        string     `json:"name"`
	AdminUserID string     `json:"adminUserId"`
	Email       string     `json:"email,omitempty"`
	PostalCode  string     `json:"postalCode,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy  string     `json:"verifiedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func presentChurch(c church.Church) ChurchResponse {
	out := ChurchResponse{
		ID:          c.ID().String(),
		Status:      c.Tag(),
		Name:        c.Name().String(),
		AdminUserID: c.AdminUserID(),
		Email:       c.Profile().Email().String(),
		PostalCode:  c.Profile().PostalCode().String(),
		CreatedAt:   c.CreatedAt(),
	}
	switch v := c.(type) {
	case church.Published:
		out.Slug = v.Slug().String()
		out.PublishedAt = timePtr(v.PublishedAt())
	case church.Verified:
		out.Slug = v.Slug().String()
		out.PublishedAt = timePtr(v.PublishedAt())
		out.VerifiedAt = timePtr(v.VerifiedAt())
		out.VerifiedBy = v.VerifiedBy()
	}
	return out
}

func presentChurches(list []church.Church) []ChurchResponse {
	out := make([]ChurchResponse, 0, len(list))
	for _, c := range list {
		out = append(out, presentChurch(c))
	}
	return out
}

// ReviewResponse is the JSON view of a review in any state
type ReviewResponse struct {
	ID             string     `json:"id"`
	Status         review.Tag `json:"status"`
	ChurchID       string     `json:"churchId"`
	AuthorID       string     `json:"authorId"`
	Content        string     `json:"content"`
	VisitDate      *time.Time `json:"visitDate,omitempty"`
	ExperienceType *string    `json:"experienceType,omitempty"`
	ModeratedAt    *time.Time `json:"moderatedAt,omitempty"`
	ModeratedBy    string     `json:"moderatedBy,omitempty"`
	ModerationNote *string    `json:"moderationNote,omitempty"`
	BaseStatus     review.Tag `json:"baseStatus,omitempty"`
	Response       string     `json:"response,omitempty"`
	RespondedBy    string     `json:"respondedBy,omitempty"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func presentReview(r review.Review) ReviewResponse {
	out := ReviewResponse{
		ID:             r.ID().String(),
		Status:         r.Tag(),
		ChurchID:       r.ChurchID().String(),
		AuthorID:       r.AuthorID(),
		Content:        r.Content().String(),
		VisitDate:      r.VisitDate(),
		ExperienceType: r.ExperienceType(),
		CreatedAt:      r.CreatedAt(),
	}
	if m, ok := review.AsModerated(r); ok {
		out.ModeratedAt = timePtr(m.ModeratedAt())
		out.ModeratedBy = m.ModeratedBy()
		out.ModerationNote = m.ModerationNote()
	}
	if resp, ok := review.AsResponded(r); ok {
		out.ModeratedAt = timePtr(resp.ModeratedAt())
		out.ModeratedBy = resp.ModeratedBy()
		out.ModerationNote = resp.ModerationNote()
		out.BaseStatus = resp.BaseState()
		out.Response = resp.Response().String()
		out.RespondedBy = resp.RespondedBy()
		out.RespondedAt = timePtr(resp.RespondedAt())
	}
	return out
}

func presentReviews(list []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, presentReview(r))
	}
	return out
}

// DonationResponse is the JSON view of a donation in any state
type DonationResponse struct {
	ID                    string         `json:"id"`
	Status                donation.Tag   `json:"status"`
	UserID                string         `json:"userId"`
	Amount                int64          `json:"amount"`
	StripePaymentIntentID *string        `json:"stripePaymentIntentId,omitempty"`
	Metadata              map[string]any `json:"metadata,omitempty"`
	CompletedAt           *time.Time     `json:"completedAt,omitempty"`
	FailedAt              *time.Time     `json:"failedAt,omitempty"`
	FailureReason         string         `json:"failureReason,omitempty"`
	RefundedAt            *time.Time     `json:"refundedAt,omitempty"`
	RefundReason          *string        `json:"refundReason,omitempty"`
	StripeRefundID        string         `json:"stripeRefundId,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
}

func presentDonation(d donation.Donation) DonationResponse {
	out := DonationResponse{
		ID:                    d.ID().String(),
		Status:                d.Tag(),
		UserID:                d.UserID(),
		Amount:                d.Amount().Int64(),
		StripePaymentIntentID: d.StripePaymentIntentID(),
		Metadata:              d.Metadata(),
		CreatedAt:             d.CreatedAt(),
	}
	switch v := d.(type) {
	case donation.Completed:
		out.CompletedAt = timePtr(v.CompletedAt())
	case donation.Failed:
		out.FailedAt = timePtr(v.FailedAt())
		out.FailureReason = v.FailureReason()
	case donation.Refunded:
		out.CompletedAt = timePtr(v.CompletedAt())
		out.RefundedAt = timePtr(v.RefundedAt())
		out.RefundReason = v.RefundReason()
		out.StripeRefundID = v.StripeRefundID()
	}
	return out
}

func presentDonations(list []donation.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, presentDonation(d))
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
