// Package roles defines the ordered access levels a user can hold on a list.
package roles

import (
	"strings"

	"github.com/terraconstructs/tasklists/internal/apperr"
)

// Role is an access level on a list. The zero value means no access.
type Role string

const (
	None   Role = ""
	Viewer Role = "viewer"
	Editor Role = "editor"
	Admin  Role = "admin"
	Owner  Role = "owner"
)

func (r Role) rank() int {
	switch r {
	case Viewer:
		return 1
	case Editor:
		return 2
	case Admin:
		return 3
	case Owner:
		return 4
	default:
		return 0
	}
}

func (r Role) String() string {
	if r == None {
		return "none"
	}
	return string(r)
}

// AtLeast reports whether effective satisfies required. Owner satisfies
// everything; no access satisfies nothing.
func AtLeast(effective, required Role) bool {
	if effective == Owner {
		return true
	}
	have := effective.rank()
	return have > 0 && have >= required.rank()
}

// IsOwner reports whether effective is the owner role.
func IsOwner(effective Role) bool {
	return effective == Owner
}

// Grantable reports whether r may be stored on a share.
func Grantable(r Role) bool {
	return r == Viewer || r == Editor || r == Admin
}

// ParseGrant validates a role name supplied for a share.
func ParseGrant(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !Grantable(r) {
		return None, apperr.InvalidInput("role must be one of viewer, editor, admin").With("role", s)
	}
	return r, nil
}
