// Package access holds the authorization predicates of the tenancy core.
// They are pure functions of the actor and the owning identities of a
// resource and never touch the store.
package access

import (
	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
)

// Authorize allows the actor when it is one of owners or holds ADMIN.
func Authorize(actor models.Actor, entity string, owners ...uint) error {
	if actor.IsAdmin() {
		return nil
	}
	return AuthorizeStrict(actor, entity, owners...)
}

// AuthorizeStrict allows the actor only when it is one of owners. ADMIN
// grants nothing here.
func AuthorizeStrict(actor models.Actor, entity string, owners ...uint) error {
	if actor.ID != 0 {
		for _, id := range owners {
			if id == actor.ID {
				return nil
			}
		}
	}
	return apperr.PermissionDenied(entity, "user %d does not own this %s", actor.ID, entity)
}

// RequireRole allows the actor when it holds role.
func RequireRole(actor models.Actor, entity string, role models.Role) error {
	if actor.HasRole(role) {
		return nil
	}
	return apperr.PermissionDenied(entity, "only users with role %s may do this", role)
}
