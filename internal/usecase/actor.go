package usecase

import (
	"placement-portal/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as read from the access token.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsStudent() bool { return a.UserID != uuid.Nil && a.Role == user.RoleStudent }
func (a Actor) IsCompany() bool { return a.UserID != uuid.Nil && a.Role == user.RoleCompany }
func (a Actor) IsStaff() bool {
	return a.UserID != uuid.Nil && (a.Role == user.RoleAdmin || a.Role == user.RoleFaculty)
}
