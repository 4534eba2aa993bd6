package review

import (
	"strings"
	"unicode/utf8"

	"churchhub/internal/core/domain"

	"github.com/google/uuid"
)

// ID identifies a review
type ID struct {
	value string
}

func NewID() ID {
	return ID{value: uuid.NewString()}
}

func ParseID(raw string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ID{}, domain.NewValidationError("Review ID must be a valid UUID", "reviewId")
	}
	return ID{value: u.String()}, nil
}

func (id ID) String() string { return id.value }

const (
	minContentLen = 10
	maxContentLen = 2000
)

// Content is the body of a review or of a response to one
type Content struct {
	value string
}

func NewContent(raw string) (Content, error) {
	v := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(v); n < minContentLen || n > maxContentLen {
		return Content{}, domain.NewValidationError("Review content must be between 10 and 2000 characters", "content")
	}
	return Content{value: v}, nil
}

func (c Content) String() string { return c.value }

// Decision is a moderator's verdict on a pending review
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

func ParseDecision(raw string) (Decision, error) {
	switch d := Decision(strings.ToUpper(strings.TrimSpace(raw))); d {
	case DecisionApprove, DecisionReject:
		return d, nil
	}
	return "", domain.NewValidationError("Decision must be APPROVE or REJECT", "decision")
}
