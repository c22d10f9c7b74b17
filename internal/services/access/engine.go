// Package access resolves the role a user holds on a list. It is the only
// place effective-role logic lives; every list-scoped operation calls
// Resolve exactly once before acting.
package access

import (
	"context"
	"fmt"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/roles"
)

// Decision is the outcome of a successful resolution.
type Decision struct {
	List *repository.ListAggregate
	Role roles.Role
}

// Resolve loads the list with its grants through repos and computes the role
// subjectID holds on it.
//
//   - invalid id: InvalidInput
//   - no such list: NotFound
//   - list exists, subject is neither owner nor grantee: Forbidden
func Resolve(ctx context.Context, repos repository.Repositories, listID, subjectID string) (*Decision, error) {
	if err := bunx.ValidateID("list_id", listID); err != nil {
		return nil, err
	}

	agg, err := repos.Lists.GetWithGrants(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("resolve access: %w", err)
	}

	if agg.List.OwnerID == subjectID {
		return &Decision{List: agg, Role: roles.Owner}, nil
	}

	grant := agg.Grant(subjectID)
	if grant == nil {
		return nil, apperr.Forbidden("you do not have access to this list").
			With("list_id", listID).
			With("user_id", subjectID)
	}

	role := roles.Role(grant.Role)
	if !roles.Grantable(role) {
		return nil, apperr.Internal(nil, "stored grant has unknown role %q", grant.Role).With("list_id", listID)
	}
	return &Decision{List: agg, Role: role}, nil
}

// Require resolves access and checks it against required.
func Require(ctx context.Context, repos repository.Repositories, listID, subjectID string, required roles.Role) (*Decision, error) {
	decision, err := Resolve(ctx, repos, listID, subjectID)
	if err != nil {
		return nil, err
	}
	if !roles.AtLeast(decision.Role, required) {
		return nil, Denied(decision, subjectID, required)
	}
	return decision, nil
}

// Denied builds the Forbidden error for a role that falls short of required.
func Denied(decision *Decision, subjectID string, required roles.Role) error {
	return apperr.Forbidden("requires %s access on this list", required).
		With("list_id", decision.List.List.ID).
		With("user_id", subjectID).
		With("role", decision.Role.String())
}
