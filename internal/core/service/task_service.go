package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/authz"
	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// TaskNotifier abstracts the notification dispatcher.
type TaskNotifier interface {
	Enqueue(n ports.Notification)
}

// TaskService implements task reads and the admin-gated create operation.
// The create gate here is authoritative; the client-side gate is UX only.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	notifier TaskNotifier
	log      zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, notifier TaskNotifier, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, notifier: notifier, log: log}
}

func (s *TaskService) ListProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task on an existing project. AssignedTo falls back to
// the creator. The assignee notification is fire-and-forget.
func (s *TaskService) CreateTask(ctx context.Context, role domain.Role, in ports.CreateTaskInput) (*domain.Task, error) {
	if !authz.Can(role, authz.CapCreateTask) {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" {
		return nil, fmt.Errorf("create task: title is required")
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	status := domain.TaskStatus(in.Status)
	if in.Status == "" {
		status = domain.TaskTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("create task: invalid status %q", in.Status)
	}

	assignee := in.AssignedTo
	if assignee == "" {
		assignee = in.CreatorID
	}

	task := &domain.Task{
		ProjectID:   project.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Deadline:    in.Deadline,
		AssignedTo:  assignee,
		CreatedBy:   in.CreatorID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.log.Error().Err(err).Str("project_id", project.ID).Msg("failed to create task")
		return nil, err
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("project_id", project.ID).
		Str("assigned_to", task.AssignedTo).
		Msg("task created")

	if s.notifier != nil && task.AssignedTo != task.CreatedBy {
		s.notifier.Enqueue(ports.Notification{
			RecipientID: task.AssignedTo,
			TaskID:      task.ID,
			TaskTitle:   task.Title,
			ProjectName: project.Name,
			Deadline:    task.Deadline,
		})
	}

	return task, nil
}
