package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser        Role = "USER"
	RoleChurchAdmin Role = "CHURCH_ADMIN"
	RoleAdmin       Role = "ADMIN"
)

// ParseRole maps a stored or token role onto a known Role
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleUser, RoleChurchAdmin, RoleAdmin:
		return r, nil
	}
	return "", NewValidationError("Unknown role: "+raw, "role")
}

// Now is the clock every workflow reads. Tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}
