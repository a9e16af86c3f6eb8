// Package access decides whether a verified caller holds one of a set of roles.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/scholarship-api/internal/models"
	"github.com/harentsoaR/scholarship-api/internal/store"
)

type Decision struct {
	Allowed bool
	Reason  string
}

var (
	AdminOnly       = []models.Role{models.RoleAdmin}
	ModeratorOrMore = []models.Role{models.RoleAdmin, models.RoleModerator}
)

// Authorize looks up the user for email and allows the call when their role is
// one of roles. A missing user is a denial; only store failures are errors.
func Authorize(ctx context.Context, users store.Repository[models.User], email string, roles ...models.Role) (Decision, error) {
	if email == "" {
		return Decision{Reason: "no verified email"}, nil
	}

	user, err := users.FindOne(ctx, store.Filter{"email": email})
	if errors.Is(err, store.ErrNotFound) {
		return Decision{Reason: "no user for " + email}, nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("look up role for %s: %w", email, err)
	}

	for _, r := range roles {
		if user.Role == r {
			return Decision{Allowed: true}, nil
		}
	}
	return Decision{Reason: fmt.Sprintf("role %q not permitted", user.Role)}, nil
}
