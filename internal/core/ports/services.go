package ports

import (
	"context"
	"time"

	"github.com/founderflow/founderflow/internal/core/authz"
	"github.com/founderflow/founderflow/internal/core/domain"
)

// AuthService implements registration, login and password reset.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// RequestPasswordReset validates the address before touching any
	// provider; an invalid address returns domain.ErrInvalidEmail without a
	// network call.
	RequestPasswordReset(ctx context.Context, email, redirectTo string) error
}

// RoleResolver maps a principal id to its application role. Absent row means
// the default role; multiple rows is an invariant violation resolved to the
// default with a warning.
type RoleResolver interface {
	Resolve(ctx context.Context, userID string) (domain.Role, error)
}

// CreateProjectInput carries the fields for a new project.
type CreateProjectInput struct {
	Name         string
	Description  string
	Deliverables string
	StartDate    time.Time
	Deadline     time.Time
	Status       string
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	TotalAmount  string
	AmountPaid   string
	OutsourcedTo string
}

// ProjectService exposes projects already projected for the caller's role.
type ProjectService interface {
	ListProjects(ctx context.Context, role domain.Role) ([]authz.ProjectView, error)
	GetProject(ctx context.Context, role domain.Role, id string) (*authz.ProjectView, error)
	CreateProject(ctx context.Context, role domain.Role, in CreateProjectInput) (*authz.ProjectView, error)
}

// CreateTaskInput carries the fields for a new task. AssignedTo falls back
// to CreatorID when empty.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Deadline    *time.Time
	AssignedTo  string
	Status      string
	CreatorID   string
}

// TaskService exposes task reads and the admin-gated create operation.
type TaskService interface {
	ListProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, role domain.Role, in CreateTaskInput) (*domain.Task, error)
}

// CreateFinanceRecordInput carries the fields for a new finance record.
type CreateFinanceRecordInput struct {
	Type        string
	Amount      string
	Description string
}

// FinanceService exposes the admin-only finance ledger.
type FinanceService interface {
	ListRecords(ctx context.Context, role domain.Role) ([]domain.FinanceRecord, error)
	CreateRecord(ctx context.Context, role domain.Role, in CreateFinanceRecordInput) (*domain.FinanceRecord, error)
}

// DashboardStats is the aggregate view behind the dashboard cards. Finance
// figures are zero unless the caller holds the earnings capability.
type DashboardStats struct {
	TotalProjects     int                    `json:"total_projects"`
	ActiveProjects    int                    `json:"active_projects"`
	CompletedProjects int                    `json:"completed_projects"`
	TotalTasks        int                    `json:"total_tasks"`
	PendingTasks      int                    `json:"pending_tasks"`
	Finance           authz.DashboardFinance `json:"finance"`
}

// DashboardService aggregates stats for the dashboard.
type DashboardService interface {
	Stats(ctx context.Context, role domain.Role) (*DashboardStats, error)
}

// UserAdminService performs privileged user management. The caller's role is
// re-resolved from the role store, never trusted from transport claims.
type UserAdminService interface {
	DeleteUser(ctx context.Context, callerID, targetID string) error
	ListMembers(ctx context.Context, role domain.Role) ([]domain.Member, error)
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	FullName string
}

// ProfileService manages the caller's own profile and avatar.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) error
	UploadAvatar(ctx context.Context, userID, filename string, data []byte) (string, error)
}
