package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

type stubProjectRepo struct {
	projects map[string]domain.Project
	createFn func(ctx context.Context, p *domain.Project) error
	listFn   func(ctx context.Context) ([]domain.Project, error)
}

func (s *stubProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if s.createFn != nil {
		return s.createFn(ctx, p)
	}
	p.ID = "project_1"
	return nil
}

func (s *stubProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (s *stubProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	return out, nil
}

type recordingTaskRepo struct {
	created  []domain.Task
	tasks    []domain.Task
	listErr  error
	createFn func(ctx context.Context, t *domain.Task) error
}

func (r *recordingTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if r.createFn != nil {
		return r.createFn(ctx, t)
	}
	t.ID = "task_1"
	r.created = append(r.created, *t)
	return nil
}

func (r *recordingTaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return r.tasks, r.listErr
}

func (r *recordingTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	return r.tasks, r.listErr
}

func (r *recordingTaskRepo) UnassignUser(ctx context.Context, userID string) error { return nil }

type recordingNotifier struct {
	enqueued []ports.Notification
}

func (n *recordingNotifier) Enqueue(notification ports.Notification) {
	n.enqueued = append(n.enqueued, notification)
}

func demoProject() *stubProjectRepo {
	return &stubProjectRepo{projects: map[string]domain.Project{
		"project_1": {ID: "project_1", Name: "Website Redesign", Status: domain.ProjectActive},
	}}
}

func TestTaskService_CreateTask_NonAdminForbidden(t *testing.T) {
	svc := NewTaskService(&recordingTaskRepo{}, demoProject(), &recordingNotifier{}, zerolog.Nop())

	_, err := svc.CreateTask(context.Background(), domain.RoleMember, ports.CreateTaskInput{
		ProjectID: "project_1",
		Title:     "Design homepage",
		CreatorID: "user_1",
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_CreateTask_UnknownProject(t *testing.T) {
	svc := NewTaskService(&recordingTaskRepo{}, demoProject(), &recordingNotifier{}, zerolog.Nop())

	_, err := svc.CreateTask(context.Background(), domain.RoleAdmin, ports.CreateTaskInput{
		ProjectID: "missing",
		Title:     "Design homepage",
		CreatorID: "user_1",
	})
	if err == nil {
		t.Fatal("expected error for unknown project")
	}
}

func TestTaskService_CreateTask_AssigneeDefaultsToCreator(t *testing.T) {
	tasks := &recordingTaskRepo{}
	notifier := &recordingNotifier{}
	svc := NewTaskService(tasks, demoProject(), notifier, zerolog.Nop())

	task, err := svc.CreateTask(context.Background(), domain.RoleAdmin, ports.CreateTaskInput{
		ProjectID: "project_1",
		Title:     "Design homepage",
		CreatorID: "user_1",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.AssignedTo != "user_1" {
		t.Fatalf("assignee should default to creator, got %q", task.AssignedTo)
	}
	if task.Status != domain.TaskTodo {
		t.Fatalf("status should default to todo, got %s", task.Status)
	}
	if len(notifier.enqueued) != 0 {
		t.Fatal("no notification expected for self-assignment")
	}
}

func TestTaskService_CreateTask_NotifiesAssignee(t *testing.T) {
	tasks := &recordingTaskRepo{}
	notifier := &recordingNotifier{}
	svc := NewTaskService(tasks, demoProject(), notifier, zerolog.Nop())

	deadline := time.Now().Add(72 * time.Hour)
	_, err := svc.CreateTask(context.Background(), domain.RoleAdmin, ports.CreateTaskInput{
		ProjectID:  "project_1",
		Title:      "Design homepage",
		AssignedTo: "user_2",
		Deadline:   &deadline,
		CreatorID:  "user_1",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if len(notifier.enqueued) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.enqueued))
	}
	n := notifier.enqueued[0]
	if n.RecipientID != "user_2" || n.TaskTitle != "Design homepage" || n.ProjectName != "Website Redesign" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestTaskService_CreateTask_TitleRequired(t *testing.T) {
	svc := NewTaskService(&recordingTaskRepo{}, demoProject(), &recordingNotifier{}, zerolog.Nop())

	_, err := svc.CreateTask(context.Background(), domain.RoleAdmin, ports.CreateTaskInput{
		ProjectID: "project_1",
		CreatorID: "user_1",
	})
	if err == nil {
		t.Fatal("expected error for missing title")
	}
}
