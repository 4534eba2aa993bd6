package review

import (
	"time"

	"churchhub/internal/core/domain/church"
)

// Tag discriminates the review lifecycle states
type Tag string

const (
	TagPending   Tag = "PENDING"
	TagApproved  Tag = "APPROVED"
	TagRejected  Tag = "REJECTED"
	TagResponded Tag = "RESPONDED"
)

// Review is one of Pending, Approved, Rejected or Responded
type Review interface {
	Tag() Tag
	ID() ID
	ChurchID() church.ID
	AuthorID() string
	Content() Content
	VisitDate() *time.Time
	ExperienceType() *string
	CreatedAt() time.Time

	sealed()
}

// Moderated is an Approved or Rejected review, the only kind that can be responded to
type Moderated interface {
	Review
	ModeratedAt() time.Time
	ModeratedBy() string
	ModerationNote() *string

	moderated()
}

type core struct {
	id             ID
	churchID       church.ID
	authorID       string
	content        Content
	visitDate      *time.Time
	experienceType *string
	createdAt      time.Time
}

func (c core) ID() ID               { return c.id }
func (c core) ChurchID() church.ID  { return c.churchID }
func (c core) AuthorID() string     { return c.authorID }
func (c core) Content() Content     { return c.content }
func (c core) CreatedAt() time.Time { return c.createdAt }
func (core) sealed()                {}

func (c core) VisitDate() *time.Time {
	if c.visitDate == nil {
		return nil
	}
	v := *c.visitDate
	return &v
}

func (c core) ExperienceType() *string { return copyString(c.experienceType) }

type moderation struct {
	moderatedAt time.Time
	moderatedBy string
	note        *string
}

func (m moderation) ModeratedAt() time.Time  { return m.moderatedAt }
func (m moderation) ModeratedBy() string     { return m.moderatedBy }
func (m moderation) ModerationNote() *string { return copyString(m.note) }

type Pending struct {
	core
}

func (Pending) Tag() Tag { return TagPending }

type Approved struct {
	core
	moderation
}

func (Approved) Tag() Tag   { return TagApproved }
func (Approved) moderated() {}

type Rejected struct {
	core
	moderation
}

func (Rejected) Tag() Tag   { return TagRejected }
func (Rejected) moderated() {}

// Responded is a moderated review that received an official response
type Responded struct {
	core
	moderation
	baseState   Tag
	response    Content
	respondedBy string
	respondedAt time.Time
}

func (Responded) Tag() Tag { return TagResponded }

// BaseState is TagApproved or TagRejected, whichever the review was before the response
func (r Responded) BaseState() Tag         { return r.baseState }
func (r Responded) Response() Content      { return r.response }
func (r Responded) RespondedBy() string    { return r.respondedBy }
func (r Responded) RespondedAt() time.Time { return r.respondedAt }

func IsPending(r Review) bool {
	_, ok := r.(Pending)
	return ok
}

func IsApproved(r Review) bool {
	_, ok := r.(Approved)
	return ok
}

func IsRejected(r Review) bool {
	_, ok := r.(Rejected)
	return ok
}

func IsResponded(r Review) bool {
	_, ok := r.(Responded)
	return ok
}

func IsModerated(r Review) bool {
	_, ok := r.(Moderated)
	return ok
}

func AsPending(r Review) (Pending, bool) {
	p, ok := r.(Pending)
	return p, ok
}

func AsModerated(r Review) (Moderated, bool) {
	m, ok := r.(Moderated)
	return m, ok
}

func AsResponded(r Review) (Responded, bool) {
	rr, ok := r.(Responded)
	return rr, ok
}

// Restore* rebuild states from storage for the persistence mappers only.
// They skip every workflow rule; state changes go through Submit, Moderate and Respond.

func RestorePending(id ID, churchID church.ID, authorID string, content Content, visitDate *time.Time, experienceType *string, createdAt time.Time) Pending {
	var vd *time.Time
	if visitDate != nil {
		v := *visitDate
		vd = &v
	}
	return Pending{core: core{
		id:             id,
		churchID:       churchID,
		authorID:       authorID,
		content:        content,
		visitDate:      vd,
		experienceType: copyString(experienceType),
		createdAt:      createdAt,
	}}
}

func RestoreApproved(p Pending, moderatedAt time.Time, moderatedBy string, note *string) Approved {
	return Approved{core: p.core, moderation: moderation{moderatedAt: moderatedAt, moderatedBy: moderatedBy, note: copyString(note)}}
}

func RestoreRejected(p Pending, moderatedAt time.Time, moderatedBy string, note *string) Rejected {
	return Rejected{core: p.core, moderation: moderation{moderatedAt: moderatedAt, moderatedBy: moderatedBy, note: copyString(note)}}
}

func RestoreResponded(m Moderated, response Content, respondedBy string, respondedAt time.Time) Responded {
	r := Responded{response: response, respondedBy: respondedBy, respondedAt: respondedAt}
	switch s := m.(type) {
	case Approved:
		r.core, r.moderation, r.baseState = s.core, s.moderation, TagApproved
	case Rejected:
		r.core, r.moderation, r.baseState = s.core, s.moderation, TagRejected
	}
	return r
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
