package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/founderflow/founderflow/internal/core/authz"
	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// ProjectService serves projects projected per caller role. The projection
// is a rendering convenience; repositories stay unfiltered and mutations are
// role-gated here.
type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, log: log}
}

func (s *ProjectService) ListProjects(ctx context.Context, role domain.Role) ([]authz.ProjectView, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	views := make([]authz.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, authz.ProjectFor(role, p))
	}
	return views, nil
}

func (s *ProjectService) GetProject(ctx context.Context, role domain.Role, id string) (*authz.ProjectView, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := authz.ProjectFor(role, *project)
	return &view, nil
}

// CreateProject writes a new project. Admin only; project management is not
// delegated to the other roles.
func (s *ProjectService) CreateProject(ctx context.Context, role domain.Role, in ports.CreateProjectInput) (*authz.ProjectView, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	status := domain.ProjectStatus(in.Status)
	if in.Status == "" {
		status = domain.ProjectActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("create project: invalid status %q", in.Status)
	}

	project := &domain.Project{
		Name:         in.Name,
		Description:  in.Description,
		Deliverables: in.Deliverables,
		StartDate:    in.StartDate,
		Deadline:     in.Deadline,
		Status:       status,
		ClientName:   optStr(in.ClientName),
		ClientEmail:  optStr(in.ClientEmail),
		ClientPhone:  optStr(in.ClientPhone),
		OutsourcedTo: optStr(in.OutsourcedTo),
		CreatedAt:    time.Now().UTC(),
	}

	var err error
	if project.TotalAmount, err = optMoney(in.TotalAmount); err != nil {
		return nil, fmt.Errorf("create project: total_amount: %w", err)
	}
	if project.AmountPaid, err = optMoney(in.AmountPaid); err != nil {
		return nil, fmt.Errorf("create project: amount_paid: %w", err)
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("name", project.Name).Msg("project created")

	view := authz.ProjectFor(role, *project)
	return &view, nil
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optMoney(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
