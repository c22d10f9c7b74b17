// Package auth adapts the external identity service: it verifies bearer
// tokens and carries the resulting identity on the request context. The
// list and task core trusts the identity verbatim.
package auth

import (
	"context"

	"github.com/terraconstructs/tasklists/internal/db/models"
)

// Identity is the verified caller attached to every core operation.
type Identity struct {
	UserID string            `mapstructure:"sub"`
	Email  string            `mapstructure:"email"`
	Role   models.SystemRole `mapstructure:"role"`
}

// IsAdmin reports whether the identity carries the system admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.SystemRoleAdmin
}

type identityContextKey struct{}

// SetIdentity stores the verified identity on the context for downstream handlers.
func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext retrieves the identity stored by SetIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
