package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/ports"
)

// notificationService emails task-assignment notices. Delivery is best
// effort; failures are logged by the dispatcher, never retried.
type notificationService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	mailer   ports.Mailer
	log      zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	mailer ports.Mailer,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{users: users, profiles: profiles, mailer: mailer, log: log}
}

func (s *notificationService) Process(ctx context.Context, n ports.Notification) error {
	user, err := s.users.FindByID(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	name := ""
	if profile, err := s.profiles.FindByID(ctx, n.RecipientID); err == nil {
		name = profile.FullName
	}

	msg := taskAssignedEmail(user.Email, name, n)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	s.log.Info().
		Str("recipient_id", n.RecipientID).
		Str("task_id", n.TaskID).
		Msg("assignment notification sent")
	return nil
}

func taskAssignedEmail(to, name string, n ports.Notification) ports.EmailMessage {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	deadline := ""
	if n.Deadline != nil {
		deadline = fmt.Sprintf("<p>Due: %s</p>", n.Deadline.Format("Jan 2, 2006"))
	}
	return ports.EmailMessage{
		To:      []string{to},
		Kind:    "task_assigned",
		Subject: fmt.Sprintf("New task: %s", n.TaskTitle),
		HTML: fmt.Sprintf(
			"<p>%s,</p><p>You were assigned <strong>%s</strong> on project <strong>%s</strong>.</p>%s",
			greeting, n.TaskTitle, n.ProjectName, deadline,
		),
	}
}
