package church

import "time"

// Tag discriminates the church lifecycle states
type Tag string

const (
	TagDraft     Tag = "DRAFT"
	TagPublished Tag = "PUBLISHED"
	TagVerified  Tag = "VERIFIED"
)

// Church is one of Draft, Published or Verified.
// State-specific fields are reached only after narrowing with a type switch or an As* helper.
type Church interface {
	Tag() Tag
	ID() ID
	Name() Name
	AdminUserID() string
	Profile() Profile
	CreatedAt() time.Time

	sealed()
}

type core struct {
	id          ID
	name        Name
	adminUserID string
	profile     Profile
	createdAt   time.Time
}

func (c core) ID() ID               { return c.id }
func (c core) Name() Name           { return c.name }
func (c core) AdminUserID() string  { return c.adminUserID }
func (c core) Profile() Profile     { return c.profile }
func (c core) CreatedAt() time.Time { return c.createdAt }
func (core) sealed()                {}

type publication struct {
	slug        Slug
	publishedAt time.Time
}

func (p publication) Slug() Slug             { return p.slug }
func (p publication) PublishedAt() time.Time { return p.publishedAt }

// Draft is a church that is not yet publicly visible
type Draft struct {
	core
}

func (Draft) Tag() Tag { return TagDraft }

// Published is publicly visible and reviewable
type Published struct {
	core
	publication
}

func (Published) Tag() Tag { return TagPublished }

// Verified has been confirmed by a platform admin
type Verified struct {
	core
	publication
	verifiedAt time.Time
	verifiedBy string
}

func (Verified) Tag() Tag { return TagVerified }

func (v Verified) VerifiedAt() time.Time { return v.verifiedAt }
func (v Verified) VerifiedBy() string    { return v.verifiedBy }

func IsDraft(c Church) bool {
	_, ok := c.(Draft)
	return ok
}

func IsPublished(c Church) bool {
	_, ok := c.(Published)
	return ok
}

func IsVerified(c Church) bool {
	_, ok := c.(Verified)
	return ok
}

// IsPublic reports whether the church can be listed and reviewed
func IsPublic(c Church) bool {
	return IsPublished(c) || IsVerified(c)
}

func AsDraft(c Church) (Draft, bool) {
	d, ok := c.(Draft)
	return d, ok
}

func AsPublished(c Church) (Published, bool) {
	p, ok := c.(Published)
	return p, ok
}

func AsVerified(c Church) (Verified, bool) {
	v, ok := c.(Verified)
	return v, ok
}

// SlugOf returns the slug of a public church
func SlugOf(c Church) (Slug, bool) {
	switch s := c.(type) {
	case Published:
		return s.Slug(), true
	case Verified:
		return s.Slug(), true
	}
	return Slug{}, false
}

// Restore* rebuild states from storage for the persistence mappers only.
// They skip every workflow rule (RestoreVerified does not check the verifier's role);
// state changes go through Create, Publish, Verify and UpdateProfile.

func RestoreDraft(id ID, name Name, adminUserID string, profile Profile, createdAt time.Time) Draft {
	return Draft{core: core{id: id, name: name, adminUserID: adminUserID, profile: profile, createdAt: createdAt}}
}

func RestorePublished(d Draft, slug Slug, publishedAt time.Time) Published {
	return Published{core: d.core, publication: publication{slug: slug, publishedAt: publishedAt}}
}

func RestoreVerified(p Published, verifiedAt time.Time, verifiedBy string) Verified {
	return Verified{core: p.core, publication: p.publication, verifiedAt: verifiedAt, verifiedBy: verifiedBy}
}
