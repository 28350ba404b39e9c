package ports

import "context"

// EmailMessage is a single outbound transactional email. Kind labels the
// message for delivery metrics (confirmation, recovery, task_assigned) and is
// never sent to the provider.
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Kind    string
}

// Mailer delivers transactional email through an external provider.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// AvatarStore persists avatar uploads and returns their public URL.
type AvatarStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}
