package domain

import "strings"

// Role is the tagged variant the whole application dispatches on. It is
// decided once at login and carried in the JWT; there is no role
// hierarchy.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	RoleSupplier Role = "SUPPLIER"
)

// ParseRole normalizes a stored or transmitted role string. Unknown values
// collapse to the least-privileged role.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	case RoleSupplier:
		return RoleSupplier
	default:
		return RoleEmployee
	}
}

func (r Role) String() string {
	return string(r)
}

// CanReadAll reports whether the role may see records belonging to other
// employees of the company.
func (r Role) CanReadAll() bool {
	return r == RoleAdmin || r == RoleManager
}
