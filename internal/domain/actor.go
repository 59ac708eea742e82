package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole возвращается для роли вне перечисления
var ErrUnknownRole = errors.New("unknown role")

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role claim
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleStaff, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Actor аутентифицированный пользователь, от имени которого выполняется операция
type Actor struct {
	UserID int64
	Role   Role
}

// IsStaff returns true for staff and admin roles
func (a *Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}

// IsAdmin returns true for admin role
func (a *Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
