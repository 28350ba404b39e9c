package ports

import (
	"context"
	"time"
)

// Notification tells a user that a task was assigned to them.
type Notification struct {
	RecipientID string
	TaskID      string
	TaskTitle   string
	ProjectName string
	Deadline    *time.Time
}

// NotificationService delivers a single notification.
type NotificationService interface {
	Process(ctx context.Context, n Notification) error
}
