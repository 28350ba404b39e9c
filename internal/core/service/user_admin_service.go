package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/authz"
	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// UserAdminService performs privileged user management. The caller's role is
// re-resolved from the role store on every call; transport claims are not
// trusted for these operations.
type UserAdminService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	roles    ports.RoleRepository
	tasks    ports.TaskRepository
	resolver ports.RoleResolver
	log      zerolog.Logger
}

func NewUserAdminService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	roles ports.RoleRepository,
	tasks ports.TaskRepository,
	resolver ports.RoleResolver,
	log zerolog.Logger,
) *UserAdminService {
	return &UserAdminService{
		users:    users,
		profiles: profiles,
		roles:    roles,
		tasks:    tasks,
		resolver: resolver,
		log:      log,
	}
}

// DeleteUser removes the target account and cascades its profile, role rows
// and task assignments. Self-deletion is not special-cased; the UI
// discourages it.
func (s *UserAdminService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	role, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !authz.Can(role, authz.CapDeleteUser) {
		s.log.Warn().Str("caller_id", callerID).Str("role", string(role)).Msg("non-admin delete attempt")
		return domain.ErrNotAdmin
	}
	if targetID == "" {
		return domain.ErrMissingUserID
	}

	s.log.Info().Str("caller_id", callerID).Str("target_id", targetID).Msg("deleting user")

	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.profiles.DeleteByUser(ctx, targetID); err != nil {
		s.log.Error().Err(err).Str("target_id", targetID).Msg("profile cascade failed")
	}
	if err := s.roles.DeleteByUser(ctx, targetID); err != nil {
		s.log.Error().Err(err).Str("target_id", targetID).Msg("role cascade failed")
	}
	if err := s.tasks.UnassignUser(ctx, targetID); err != nil {
		s.log.Error().Err(err).Str("target_id", targetID).Msg("task cascade failed")
	}

	return nil
}

// ListMembers returns the reduced profile view used for task assignment.
func (s *UserAdminService) ListMembers(ctx context.Context, role domain.Role) ([]domain.Member, error) {
	if !authz.Can(role, authz.CapListMembers) {
		return nil, domain.ErrForbidden
	}

	members, err := s.profiles.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
