package church

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"churchhub/internal/core/domain"

	"github.com/google/uuid"
)

// ID identifies a church
type ID struct {
	value string
}

// NewID generates a fresh church identifier
func NewID() ID {
	return ID{value: uuid.NewString()}
}

func ParseID(raw string) (ID, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ID{}, domain.NewValidationError("Church ID is required", "churchId")
	}
	return ID{value: v}, nil
}

func (id ID) String() string { return id.value }

const (
	minNameLen = 2
	maxNameLen = 200
	minSlugLen = 3
	maxSlugLen = 200
)

// Name is a church's display name
type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	v := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(v); n < minNameLen || n > maxNameLen {
		return Name{}, domain.NewValidationError("Church name must be between 2 and 200 characters", "name")
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slug is the URL path segment of a published church
type Slug struct {
	value string
}

// ParseSlug validates a slug read back from storage or a URL
func ParseSlug(raw string) (Slug, error) {
	if n := len(raw); n < minSlugLen || n > maxSlugLen {
		return Slug{}, domain.NewValidationError("Slug must be between 3 and 200 characters", "slug")
	}
	if !slugPattern.MatchString(raw) {
		return Slug{}, domain.NewValidationError("Slug may only contain lowercase letters, digits and single hyphens", "slug")
	}
	return Slug{value: raw}, nil
}

func (s Slug) String() string { return s.value }

// ParseAdminUserID trims the owning user's id and rejects blanks
func ParseAdminUserID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domain.NewValidationError("Admin user ID is required", "adminUserId")
	}
	return id, nil
}

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\p{Z}\s-]`)
	slugWhitespace = regexp.MustCompile(`[\p{Z}\s]+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL slug from a church name. It is idempotent:
// GenerateSlug(GenerateSlug(x)) == GenerateSlug(x).
func GenerateSlug(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Profile holds optional contact details
type Profile struct {
	email      domain.Email
	postalCode domain.PostalCode
}

// NewProfile validates optional contact details. Empty strings leave the field unset.
func NewProfile(email, postalCode string) (Profile, error) {
	var p Profile
	if strings.TrimSpace(email) != "" {
		e, err := domain.NewEmail(email)
		if err != nil {
			return Profile{}, err
		}
		p.email = e
	}
	if strings.TrimSpace(postalCode) != "" {
		pc, err := domain.NewPostalCode(postalCode)
		if err != nil {
			return Profile{}, err
		}
		p.postalCode = pc
	}
	return p, nil
}

func (p Profile) Email() domain.Email           { return p.email }
func (p Profile) PostalCode() domain.PostalCode { return p.postalCode }
