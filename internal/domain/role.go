package domain

import "fmt"

// Role is the closed set of account roles. The string value is also the
// stored representation, so constants must match rows written by migrations
// and the admin endpoints.
type Role string

const (
	RoleNormalUser  Role = "Normal User"
	RoleStoreOwner  Role = "Store Owner"
	RoleSystemAdmin Role = "System Administrator"
)

// ParseRole converts a raw string into a known Role.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role is one of the known constants.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
