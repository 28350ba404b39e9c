package ports

import (
	"context"

	"github.com/founderflow/founderflow/internal/core/domain"
)

// UserRepository defines persistence for authentication accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository reads and writes the user_roles collection. FindRoles
// returns every row for the user so the resolver can detect the invariant
// violation of multiple rows.
type RoleRepository interface {
	FindRoles(ctx context.Context, userID string) ([]domain.Role, error)
	Assign(ctx context.Context, userID string, role domain.Role) error
	DeleteByUser(ctx context.Context, userID string) error
}

// ProfileRepository defines persistence for display profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	UpdateFullName(ctx context.Context, id, fullName string) error
	UpdateAvatarURL(ctx context.Context, id, avatarURL string) error
	ListMembers(ctx context.Context) ([]domain.Member, error)
	DeleteByUser(ctx context.Context, id string) error
}

// ProjectRepository defines persistence for projects. Authorization of what
// each role may see happens above this layer.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	UnassignUser(ctx context.Context, userID string) error
}

// FinanceRepository defines persistence for finance records.
type FinanceRepository interface {
	Create(ctx context.Context, r *domain.FinanceRecord) error
	List(ctx context.Context) ([]domain.FinanceRecord, error)
}
