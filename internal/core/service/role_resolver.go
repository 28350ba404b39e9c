package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// RoleResolver maps a user id to its application role via the user_roles
// store. It is idempotent and has no side effects of its own.
type RoleResolver struct {
	repo ports.RoleRepository
	log  zerolog.Logger
}

func NewRoleResolver(repo ports.RoleRepository, log zerolog.Logger) *RoleResolver {
	return &RoleResolver{repo: repo, log: log}
}

// Resolve returns the role for userID. An absent row yields the default
// role. More than one row violates the one-role-per-user invariant; the
// resolver logs a warning and returns the default (most restrictive outcome
// for this matrix). Transport errors are surfaced so callers keep their
// previous state.
func (r *RoleResolver) Resolve(ctx context.Context, userID string) (domain.Role, error) {
	roles, err := r.repo.FindRoles(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolve role: %w", err)
	}

	switch len(roles) {
	case 0:
		return domain.DefaultRole, nil
	case 1:
		return roles[0], nil
	default:
		r.log.Warn().
			Str("user_id", userID).
			Int("rows", len(roles)).
			Msg("multiple role rows for user, falling back to default")
		return domain.DefaultRole, nil
	}
}
