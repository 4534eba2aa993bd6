package mappers

import (
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
)

// ChurchToDomain rebuilds the church state a row represents.
// Verified needs verified_at and verified_by; Published needs is_published, published_at and slug.
func ChurchToDomain(m *models.Church) (church.Church, error) {
	id, err := church.ParseID(m.ID)
	if err != nil {
		return nil, err
	}
	name, err := church.NewName(m.Name)
	if err != nil {
		return nil, err
	}
	adminUserID, err := church.ParseAdminUserID(m.AdminUserID)
	if err != nil {
		return nil, err
	}
	profile, err := church.NewProfile(deref(m.Email), deref(m.PostalCode))
	if err != nil {
		return nil, err
	}
	draft := church.RestoreDraft(id, name, adminUserID, profile, m.CreatedAt)

	published := m.IsPublished && m.PublishedAt != nil && m.Slug != nil
	verified := m.VerifiedAt != nil && m.VerifiedBy != nil

	if !published {
		if verified {
			return nil, domain.NewValidationError("Church "+m.ID+" is verified but has no publication data", "slug")
		}
		return draft, nil
	}

	slug, err := church.ParseSlug(*m.Slug)
	if err != nil {
		return nil, err
	}
	p := church.RestorePublished(draft, slug, *m.PublishedAt)
	if !verified {
		return p, nil
	}
	return church.RestoreVerified(p, *m.VerifiedAt, *m.VerifiedBy), nil
}

// ChurchToModel flattens any church state into a row
func ChurchToModel(c church.Church) *models.Church {
	m := &models.Church{
		ID:          c.ID().String(),
		Name:        c.Name().String(),
		AdminUserID: c.AdminUserID(),
		CreatedAt:   c.CreatedAt(),
	}
	if e := c.Profile().Email(); !e.IsZero() {
		m.Email = ptr(e.String())
	}
	if pc := c.Profile().PostalCode(); !pc.IsZero() {
		m.PostalCode = ptr(pc.String())
	}

	switch s := c.(type) {
	case church.Published:
		m.IsPublished = true
		m.Slug = ptr(s.Slug().String())
		m.PublishedAt = ptr(s.PublishedAt())
	case church.Verified:
		m.IsPublished = true
		m.Slug = ptr(s.Slug().String())
		m.PublishedAt = ptr(s.PublishedAt())
		m.VerifiedAt = ptr(s.VerifiedAt())
		m.VerifiedBy = ptr(s.VerifiedBy())
	}
	return m
}

func ptr[T any](v T) *T {
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
