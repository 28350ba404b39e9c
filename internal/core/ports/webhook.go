package ports

import "context"

// EmailWebhookUser identifies the account an auth email concerns.
type EmailWebhookUser struct {
	Email string `json:"email"`
}

// EmailWebhookData carries the verification material from the identity
// provider.
type EmailWebhookData struct {
	Token           string `json:"token"`
	TokenHash       string `json:"token_hash"`
	RedirectTo      string `json:"redirect_to"`
	EmailActionType string `json:"email_action_type"`
}

// EmailWebhookPayload is the hook body sent by the identity provider when a
// confirmation email should go out.
type EmailWebhookPayload struct {
	User      EmailWebhookUser `json:"user"`
	EmailData EmailWebhookData `json:"email_data"`
}

// EmailWebhookService turns a verified hook delivery into an outbound
// confirmation email.
type EmailWebhookService interface {
	Process(ctx context.Context, deliveryID string, payload EmailWebhookPayload) error
}
