package tenancy

import (
	"context"
	"strings"

	"github.com/beesaferoot/tenancy/internal/access"
	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// Accounts keeps the identity records the lifecycles resolve against.
// Credentials and sessions are handled elsewhere.
type Accounts struct {
	*core
}

type UserInput struct {
	Name  string   `validate:"notblank"`
	Email string   `validate:"required,email"`
	Phone string
	Roles []string `validate:"min=1"`
}

func parseRoles(tags []string) (models.RoleSet, error) {
	if err := validateValue("user", "role", tags, "min=1"); err != nil {
		return nil, err
	}
	return models.NewRoleSet(tags...)
}

// Register creates a user. Emails are unique regardless of case.
func (s *Accounts) Register(ctx context.Context, in UserInput) (*models.User, error) {
	var created *models.User
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := validateInput("user", in); err != nil {
			return err
		}
		roles, err := parseRoles(in.Roles)
		if err != nil {
			return err
		}

		u := &models.User{
			Name:  strings.TrimSpace(in.Name),
			Email: in.Email,
			Phone: in.Phone,
			Roles: roles,
		}
		if err := tx.CreateUser(u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err := s.finish("user", "register", err, "email", in.Email); err != nil {
		return nil, err
	}
	return created, nil
}

// SetRoles replaces the role set of a user. Only ADMIN may do this.
func (s *Accounts) SetRoles(ctx context.Context, actor models.Actor, id uint, tags []string) (*models.User, error) {
	var updated *models.User
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := access.RequireRole(actor, "user", models.RoleAdmin); err != nil {
			return err
		}
		u, err := tx.FindUser(id)
		if err != nil {
			return err
		}
		roles, err := parseRoles(tags)
		if err != nil {
			return err
		}

		u.Roles = roles
		if err := tx.SaveUser(u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err := s.finish("user", "set_roles", err, "actor", actor.ID, "user_id", id); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a user who no longer owns properties, holds leases or has
// filed maintenance requests. Only ADMIN may do this.
func (s *Accounts) Delete(ctx context.Context, actor models.Actor, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := access.RequireRole(actor, "user", models.RoleAdmin); err != nil {
			return err
		}
		if _, err := tx.FindUser(id); err != nil {
			return err
		}
		refs, err := tx.UserReferences(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperr.Conflict("user", "user %d is still referenced by %d records", id, refs)
		}
		return tx.DeleteUser(id)
	})
	return s.finish("user", "delete", err, "actor", actor.ID, "user_id", id)
}

// Inspect returns any user to an ADMIN.
func (s *Accounts) Inspect(ctx context.Context, actor models.Actor, id uint) (*models.User, error) {
	if err := access.RequireRole(actor, "user", models.RoleAdmin); err != nil {
		return nil, s.finish("user", "inspect", err, "actor", actor.ID, "user_id", id)
	}
	return s.Get(ctx, id)
}

// Actor resolves a stored user into the identity used for authorization.
func (s *Accounts) Actor(ctx context.Context, id uint) (models.Actor, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return models.Actor{}, err
	}
	return u.Actor(), nil
}

func (s *Accounts) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.store.WithContext(ctx).FindUser(id)
}

func (s *Accounts) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.WithContext(ctx).FindUserByEmail(email)
}

func (s *Accounts) ByRole(ctx context.Context, role string) ([]models.User, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return s.store.WithContext(ctx).UsersByRole(r)
}

func (s *Accounts) List(ctx context.Context) ([]models.User, error) {
	return s.store.WithContext(ctx).ListUsers()
}
