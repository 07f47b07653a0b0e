package domain

import (
	"errors"
	"strings"
)

// Role names that must exist before the service accepts traffic.
const (
	RoleDonor = "Donor"
	RoleAdmin = "Admin"
)

// DefaultRoleName is assigned to users registered without a role.
const DefaultRoleName = RoleDonor

// RequiredRoles is the fixed seed list.
var RequiredRoles = []string{RoleDonor, RoleAdmin}

var ErrEmptyRoleName = errors.New("role name must not be empty")

// Role groups users by permission level. Names are unique case-insensitively.
type Role struct {
	ID   int64
	Name string
}

func NewRole(name string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoleName
	}
	return &Role{Name: name}, nil
}

// RoleKey is the case-folded form used for uniqueness and lookup.
func RoleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
