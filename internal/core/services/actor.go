package services

import (
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
)

// Actor identifies the caller of a service operation.
// The zero value is an anonymous visitor.
type Actor struct {
	UserID string
	Role   domain.Role
}

// IsAnonymous reports whether no user is signed in
func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

// roleFor resolves the role the actor holds with respect to one church.
// Platform admins stay ADMIN, the church's own administrator acts as CHURCH_ADMIN
// and everyone else is a plain USER there.
func (a Actor) roleFor(c church.Church) domain.Role {
	switch {
	case a.Role == domain.RoleAdmin:
		return domain.RoleAdmin
	case !a.IsAnonymous() && c.AdminUserID() == a.UserID:
		return domain.RoleChurchAdmin
	default:
		return domain.RoleUser
	}
}

func (a Actor) canManage(c church.Church) bool {
	return a.roleFor(c) != domain.RoleUser
}

// moderationRole is the role used to moderate reviews of c. On top of roleFor,
// users promoted to CHURCH_ADMIN moderate reviews of every church.
func (a Actor) moderationRole(c church.Church) domain.Role {
	if role := a.roleFor(c); role != domain.RoleUser {
		return role
	}
	if !a.IsAnonymous() && a.Role == domain.RoleChurchAdmin {
		return domain.RoleChurchAdmin
	}
	return domain.RoleUser
}
