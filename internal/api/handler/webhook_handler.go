package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/api/metrics"
	"github.com/founderflow/founderflow/internal/core/ports"
	"github.com/founderflow/founderflow/internal/webhook"
)

// WebhookHandler ingests send-email hook deliveries from the identity
// provider. When no verifier is configured (local development) signature
// checking is skipped with a warning.
type WebhookHandler struct {
	service  ports.EmailWebhookService
	verifier *webhook.Verifier
	log      zerolog.Logger
}

func NewWebhookHandler(service ports.EmailWebhookService, verifier *webhook.Verifier, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, verifier: verifier, log: log}
}

// SendEmail handles POST /webhooks/send-email. The signature covers the raw
// body, so the payload is read before any decoding.
//
// @Summary      Ingest a send-email webhook delivery
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /webhooks/send-email [post]
func (h *WebhookHandler) SendEmail(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable body"})
	}

	if h.verifier != nil {
		if err := h.verifier.Verify(body, c.Request().Header); err != nil {
			h.log.Warn().Err(err).Msg("webhook signature rejected")
			metrics.WebhookDeliveriesTotal.WithLabelValues("invalid_signature").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
		}
	} else {
		h.log.Warn().Msg("webhook verification disabled, no secret configured")
	}

	var payload ports.EmailWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	deliveryID := c.Request().Header.Get("webhook-id")
	if err := h.service.Process(c.Request().Context(), deliveryID, payload); err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues("processed").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "delivery processed"})
}
