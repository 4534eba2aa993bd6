package mappers

import (
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/core/domain/review"
)

// ReviewToDomain rebuilds the review state named by the status column
func ReviewToDomain(m *models.Review) (review.Review, error) {
	id, err := review.ParseID(m.ID)
	if err != nil {
		return nil, err
	}
	churchID, err := church.ParseID(m.ChurchID)
	if err != nil {
		return nil, err
	}
	content, err := review.NewContent(m.Content)
	if err != nil {
		return nil, err
	}
	p := review.RestorePending(id, churchID, m.UserID, content, m.VisitDate, m.ExperienceType, m.CreatedAt)

	if m.Status == models.ReviewStatusPending {
		return p, nil
	}

	if m.ModeratedAt == nil || m.ModeratedBy == nil {
		return nil, domain.NewValidationError("Review "+m.ID+" is missing moderation data", "moderatedAt")
	}

	moderatedAs := m.Status
	if m.Status == models.ReviewStatusResponded {
		if m.BaseStatus == nil {
			return nil, domain.NewValidationError("Review "+m.ID+" is missing its base status", "baseStatus")
		}
		moderatedAs = *m.BaseStatus
	}

	var moderated review.Moderated
	switch moderatedAs {
	case models.ReviewStatusApproved:
		moderated = review.RestoreApproved(p, *m.ModeratedAt, *m.ModeratedBy, m.ModerationNote)
	case models.ReviewStatusRejected:
		moderated = review.RestoreRejected(p, *m.ModeratedAt, *m.ModeratedBy, m.ModerationNote)
	default:
		return nil, domain.NewValidationError("Unknown review status: "+moderatedAs, "status")
	}

	if m.Status != models.ReviewStatusResponded {
		return moderated, nil
	}
	if m.ResponseContent == nil || m.RespondedBy == nil || m.RespondedAt == nil {
		return nil, domain.NewValidationError("Review "+m.ID+" is missing response data", "responseContent")
	}
	response, err := review.NewContent(*m.ResponseContent)
	if err != nil {
		return nil, err
	}
	return review.RestoreResponded(moderated, response, *m.RespondedBy, *m.RespondedAt), nil
}

// ReviewToModel flattens any review state into a row
func ReviewToModel(r review.Review) *models.Review {
	m := &models.Review{
		ID:             r.ID().String(),
		ChurchID:       r.ChurchID().String(),
		UserID:         r.AuthorID(),
		Content:        r.Content().String(),
		VisitDate:      r.VisitDate(),
		ExperienceType: r.ExperienceType(),
		Status:         string(r.Tag()),
		CreatedAt:      r.CreatedAt(),
	}

	switch s := r.(type) {
	case review.Approved, review.Rejected:
		mod := s.(review.Moderated)
		m.ModeratedAt = ptr(mod.ModeratedAt())
		m.ModeratedBy = ptr(mod.ModeratedBy())
		m.ModerationNote = mod.ModerationNote()
	case review.Responded:
		m.BaseStatus = ptr(string(s.BaseState()))
		m.ModeratedAt = ptr(s.ModeratedAt())
		m.ModeratedBy = ptr(s.ModeratedBy())
		m.ModerationNote = s.ModerationNote()
		m.ResponseContent = ptr(s.Response().String())
		m.RespondedBy = ptr(s.RespondedBy())
		m.RespondedAt = ptr(s.RespondedAt())
	}
	return m
}
