package domain

import (
	"strings"
	"time"
)

// Role enumerates the fixed set of user roles. There is no hierarchy;
// every permission rule names the roles it accepts explicitly.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleTester    Role = "TESTER"
	RoleDeveloper Role = "DEVELOPER"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTester, RoleDeveloper:
		return true
	}
	return false
}

// ParseRole resolves a case-insensitive role string to its canonical value.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	return role, role.Valid()
}

// User is the identity every authorization rule consults. Names are
// unique case-insensitively across all users.
type User struct {
	ID        string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
