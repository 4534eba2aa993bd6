package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodePattern = regexp.MustCompile(`^(\d{3})-?(\d{4})$`)
)

// Email is a trimmed, lower-cased email address
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(v) {
		return Email{}, NewValidationError("Invalid email format", "email")
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

// PostalCode is a seven digit postal code normalized to 123-4567
type PostalCode struct {
	value string
}

func NewPostalCode(raw string) (PostalCode, error) {
	m := postalCodePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return PostalCode{}, NewValidationError("Postal code must be 7 digits (e.g. 123-4567)", "postalCode")
	}
	return PostalCode{value: m[1] + "-" + m[2]}, nil
}

func (p PostalCode) String() string { return p.value }
func (p PostalCode) IsZero() bool   { return p.value == "" }
