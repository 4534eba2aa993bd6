package church

import (
	"strings"

	"churchhub/internal/core/domain"
)

// Create starts a church in Draft
func Create(name, adminUserID string) (Draft, error) {
	n, err := NewName(name)
	if err != nil {
		return Draft{}, err
	}
	admin, err := ParseAdminUserID(adminUserID)
	if err != nil {
		return Draft{}, err
	}
	return RestoreDraft(NewID(), n, admin, Profile{}, domain.Now()), nil
}

// Publish makes a draft publicly visible under a slug derived from its name.
// Slug uniqueness must be checked by the caller against storage.
func Publish(d Draft) (Published, error) {
	slug, err := ParseSlug(GenerateSlug(d.Name().String()))
	if err != nil {
		return Published{}, domain.NewValidationError("Generated slug must be between 3 and 200 characters", "slug")
	}
	return RestorePublished(d, slug, domain.Now()), nil
}

// Verify marks a published church as verified. Only platform admins may verify.
func Verify(p Published, verifiedBy string, verifierRole domain.Role) (Verified, error) {
	if verifierRole != domain.RoleAdmin {
		return Verified{}, domain.NewAuthorizationError("Only platform admins can verify churches", domain.RoleAdmin)
	}
	by := strings.TrimSpace(verifiedBy)
	if by == "" {
		return Verified{}, domain.NewValidationError("Verifier ID is required", "verifiedBy")
	}
	return RestoreVerified(p, domain.Now(), by), nil
}

// UpdateProfile replaces the contact details of a church in any state
func UpdateProfile(c Church, email, postalCode string) (Church, error) {
	profile, err := NewProfile(email, postalCode)
	if err != nil {
		return nil, err
	}
	switch s := c.(type) {
	case Draft:
		s.profile = profile
		return s, nil
	case Published:
		s.profile = profile
		return s, nil
	case Verified:
		s.profile = profile
		return s, nil
	}
	return nil, domain.NewValidationError("Unknown church state")
}
