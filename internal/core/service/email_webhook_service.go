package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/ports"
	"github.com/founderflow/founderflow/internal/email"
)

// DedupChecker abstracts the delivery-idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, deliveryID string) (bool, error)
	Mark(ctx context.Context, deliveryID string) error
}

// emailWebhookService sends the confirmation email for a verified hook
// delivery. Redeliveries are deduplicated by delivery id.
type emailWebhookService struct {
	mailer  ports.Mailer
	dedup   DedupChecker
	authURL string
	log     zerolog.Logger
}

// NewEmailWebhookService returns an EmailWebhookService implementation.
func NewEmailWebhookService(mailer ports.Mailer, dedup DedupChecker, authURL string, log zerolog.Logger) ports.EmailWebhookService {
	return &emailWebhookService{mailer: mailer, dedup: dedup, authURL: authURL, log: log}
}

func (s *emailWebhookService) Process(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
	if payload.User.Email == "" || payload.EmailData.TokenHash == "" {
		return fmt.Errorf("process webhook: incomplete payload")
	}

	if deliveryID != "" {
		isDup, err := s.dedup.IsDuplicate(ctx, deliveryID)
		if err != nil {
			s.log.Warn().Err(err).Str("delivery_id", deliveryID).Msg("dedup check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Str("delivery_id", deliveryID).Msg("duplicate delivery skipped")
			return nil
		}
	}

	link := email.VerifyURL(
		s.authURL,
		payload.EmailData.TokenHash,
		payload.EmailData.EmailActionType,
		payload.EmailData.RedirectTo,
	)

	if err := s.mailer.Send(ctx, email.Confirmation(payload.User.Email, link)); err != nil {
		return fmt.Errorf("process webhook: %w", err)
	}

	if deliveryID != "" {
		if err := s.dedup.Mark(ctx, deliveryID); err != nil {
			s.log.Warn().Err(err).Str("delivery_id", deliveryID).Msg("failed to mark delivery processed")
		}
	}

	s.log.Info().Str("email", payload.User.Email).Str("action", payload.EmailData.EmailActionType).Msg("confirmation email sent")
	return nil
}
