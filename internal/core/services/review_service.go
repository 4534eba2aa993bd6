package services

import (
	"context"
	"time"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/core/domain/review"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/pagination"
)

// ReviewService runs the review lifecycle against storage
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	churchRepo repositories.ChurchRepository
	log        *logger.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	churchRepo repositories.ChurchRepository,
	log *logger.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		churchRepo: churchRepo,
		log:        log.With("service", "review"),
	}
}

// SubmitReviewInput represents a new review
type SubmitReviewInput struct {
	Content        string     `json:"content"`
	VisitDate      *time.Time `json:"visitDate"`
	ExperienceType *string    `json:"experienceType"`
}

// ModerateInput represents a moderation decision
type ModerateInput struct {
	Decision string  `json:"decision"`
	Note     *string `json:"note"`
}

// Submit stores a pending review for a published or verified church
func (s *ReviewService) Submit(ctx context.Context, actor Actor, churchID string, input SubmitReviewInput) (review.Pending, error) {
	pending, err := review.Submit(review.SubmitInput{
		ChurchID:       churchID,
		UserID:         actor.UserID,
		Content:        input.Content,
		VisitDate:      input.VisitDate,
		ExperienceType: input.ExperienceType,
	})
	if err != nil {
		return review.Pending{}, err
	}

	c, err := s.churchRepo.FindByID(ctx, pending.ChurchID())
	if err != nil {
		return review.Pending{}, err
	}
	if c == nil {
		return review.Pending{}, domain.NewNotFoundError("Church", churchID)
	}
	if !church.IsPublic(c) {
		return review.Pending{}, domain.NewValidationError("Reviews can only be submitted for published churches", "churchId")
	}

	if err := s.reviewRepo.Save(ctx, pending); err != nil {
		return review.Pending{}, err
	}

	s.log.Info("review submitted", "reviewId", pending.ID().String(), "churchId", churchID)
	return pending, nil
}

// Moderate approves or rejects a pending review
func (s *ReviewService) Moderate(ctx context.Context, actor Actor, rawID string, input ModerateInput) (review.Moderated, error) {
	decision, err := review.ParseDecision(input.Decision)
	if err != nil {
		return nil, err
	}
	current, c, err := s.loadWithChurch(ctx, rawID)
	if err != nil {
		return nil, err
	}
	role := actor.moderationRole(c)

	next, err := s.reviewRepo.Update(ctx, current.ID(), func(r review.Review) (review.Review, error) {
		p, ok := review.AsPending(r)
		if !ok {
			return nil, domain.NewValidationError("Only pending reviews can be moderated")
		}
		return review.Moderate(p, decision, actor.UserID, role, input.Note)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("review moderated", "reviewId", rawID, "status", string(next.Tag()), "moderatedBy", actor.UserID)
	return next.(review.Moderated), nil
}

// Respond attaches the church's public response to a moderated review
func (s *ReviewService) Respond(ctx context.Context, actor Actor, rawID string, content string) (review.Responded, error) {
	current, c, err := s.loadWithChurch(ctx, rawID)
	if err != nil {
		return review.Responded{}, err
	}
	if !actor.canManage(c) {
		return review.Responded{}, domain.NewAuthorizationError("Only church administrators can respond to reviews", domain.RoleChurchAdmin)
	}

	next, err := s.reviewRepo.Update(ctx, current.ID(), func(r review.Review) (review.Review, error) {
		m, ok := review.AsModerated(r)
		if !ok {
			return nil, domain.NewValidationError("Only approved or rejected reviews can be responded to")
		}
		return review.Respond(m, content, actor.UserID)
	})
	if err != nil {
		return review.Responded{}, err
	}

	s.log.Info("review responded", "reviewId", rawID, "respondedBy", actor.UserID)
	return next.(review.Responded), nil
}

// ListByChurch lists reviews of a church, newest first.
// Drafts are hidden like in ChurchService.Get. Moderators and the church's managers
// see every review; everyone else sees approved reviews and their responses.
func (s *ReviewService) ListByChurch(ctx context.Context, actor Actor, rawChurchID string, params *pagination.Params) ([]review.Review, int64, error) {
	id, err := church.ParseID(rawChurchID)
	if err != nil {
		return nil, 0, err
	}
	c, err := s.churchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if c == nil || (!church.IsPublic(c) && !actor.canManage(c)) {
		return nil, 0, domain.NewNotFoundError("Church", rawChurchID)
	}

	if actor.moderationRole(c) != domain.RoleUser {
		return s.reviewRepo.FindByChurchID(ctx, id, params.Offset, params.Limit)
	}
	return s.reviewRepo.FindApprovedByChurchID(ctx, id, params.Offset, params.Limit)
}

func (s *ReviewService) loadWithChurch(ctx context.Context, rawID string) (review.Review, church.Church, error) {
	id, err := review.ParseID(rawID)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.NewNotFoundError("Review", rawID)
	}
	c, err := s.churchRepo.FindByID(ctx, r.ChurchID())
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, domain.NewNotFoundError("Church", r.ChurchID().String())
	}
	return r, c, nil
}
