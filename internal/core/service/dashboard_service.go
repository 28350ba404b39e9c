package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/authz"
	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// DashboardService aggregates the stats behind the dashboard cards. Each
// fetch degrades independently to an empty collection on failure so one bad
// dependency never blanks the whole dashboard.
type DashboardService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	finance  ports.FinanceRepository
	log      zerolog.Logger
}

func NewDashboardService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	finance ports.FinanceRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{projects: projects, tasks: tasks, finance: finance, log: log}
}

// Stats computes project and task counts for everyone; finance records are
// only fetched when the role holds the earnings capability. "ongoing"
// projects count as active.
func (s *DashboardService) Stats(ctx context.Context, role domain.Role) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{}

	projects, err := s.projects.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("dashboard: project fetch failed, counting none")
		projects = nil
	}
	stats.TotalProjects = len(projects)
	for _, p := range projects {
		if p.Status.CountsAsActive() {
			stats.ActiveProjects++
		}
		if p.Status == domain.ProjectCompleted {
			stats.CompletedProjects++
		}
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("dashboard: task fetch failed, counting none")
		tasks = nil
	}
	stats.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.Status != domain.TaskDone {
			stats.PendingTasks++
		}
	}

	var records []domain.FinanceRecord
	if authz.Can(role, authz.CapViewEarnings) {
		records, err = s.finance.List(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("dashboard: finance fetch failed, aggregating none")
			records = nil
		}
	}
	stats.Finance = authz.DashboardFor(role, records)

	return stats, nil
}
