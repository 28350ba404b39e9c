// Package email delivers transactional mail through the Resend REST API and
// owns the outbound message templates.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/founderflow/founderflow/internal/api/metrics"
	"github.com/founderflow/founderflow/internal/core/ports"
)

const defaultEndpoint = "https://api.resend.com/emails"

// DefaultSender is used when a message carries no From address.
const DefaultSender = "FounderFlow <onboarding@resend.dev>"

// ResendClient implements ports.Mailer against the Resend HTTP API.
type ResendClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewResendClient returns a mailer using the given API key.
func NewResendClient(apiKey string) *ResendClient {
	return &ResendClient{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendError struct {
	Message string `json:"message"`
}

// Send posts the message to Resend. Non-2xx responses are turned into
// errors carrying the provider's message.
func (c *ResendClient) Send(ctx context.Context, msg ports.EmailMessage) error {
	kind := msg.Kind
	if kind == "" {
		kind = "other"
	}
	if err := c.send(ctx, msg); err != nil {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues(kind).Inc()
	return nil
}

func (c *ResendClient) send(ctx context.Context, msg ports.EmailMessage) error {
	from := msg.From
	if from == "" {
		from = DefaultSender
	}

	body, err := json.Marshal(resendRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr resendError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("resend: %s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("resend: failed to send email (status %d)", resp.StatusCode)
	}

	return nil
}
