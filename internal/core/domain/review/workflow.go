package review

import (
	"strings"
	"time"
	"unicode/utf8"

	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
)

// SubmitInput carries the raw fields of a new review
type SubmitInput struct {
	ChurchID       string
	UserID         string
	Content        string
	VisitDate      *time.Time
	ExperienceType *string
}

// Submit validates the church ID, then the content, and returns a Pending review
func Submit(in SubmitInput) (Pending, error) {
	churchID, err := church.ParseID(in.ChurchID)
	if err != nil {
		return Pending{}, err
	}
	content, err := NewContent(in.Content)
	if err != nil {
		return Pending{}, err
	}
	author := strings.TrimSpace(in.UserID)
	if author == "" {
		return Pending{}, domain.NewValidationError("User ID is required", "userId")
	}

	var experience *string
	if in.ExperienceType != nil {
		if v := strings.TrimSpace(*in.ExperienceType); v != "" {
			experience = &v
		}
	}
	return RestorePending(NewID(), churchID, author, content, in.VisitDate, experience, domain.Now()), nil
}

// Moderate approves or rejects a pending review. Platform admins and church admins may moderate.
func Moderate(p Pending, decision Decision, moderatedBy string, moderatorRole domain.Role, note *string) (Moderated, error) {
	if moderatorRole != domain.RoleAdmin && moderatorRole != domain.RoleChurchAdmin {
		return nil, domain.NewAuthorizationError("Only admins or church admins can moderate reviews", domain.RoleChurchAdmin)
	}
	by := strings.TrimSpace(moderatedBy)
	if by == "" {
		return nil, domain.NewValidationError("Moderator ID is required", "moderatedBy")
	}

	var trimmed *string
	if note != nil {
		if v := strings.TrimSpace(*note); v != "" {
			trimmed = &v
		}
	}

	now := domain.Now()
	switch decision {
	case DecisionApprove:
		return RestoreApproved(p, now, by, trimmed), nil
	case DecisionReject:
		return RestoreRejected(p, now, by, trimmed), nil
	}
	return nil, domain.NewValidationError("Decision must be APPROVE or REJECT", "decision")
}

// Respond attaches an official response to a moderated review
func Respond(m Moderated, responseContent, respondedBy string) (Responded, error) {
	text := strings.TrimSpace(responseContent)
	if n := utf8.RuneCountInString(text); n < minContentLen || n > maxContentLen {
		return Responded{}, domain.NewValidationError("Response content must be between 10 and 2000 characters", "responseContent")
	}
	by := strings.TrimSpace(respondedBy)
	if by == "" {
		return Responded{}, domain.NewValidationError("Responder ID is required", "respondedBy")
	}
	return RestoreResponded(m, Content{value: text}, by, domain.Now()), nil
}
