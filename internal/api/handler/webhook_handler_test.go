package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/ports"
	"github.com/founderflow/founderflow/internal/webhook"
)

const hookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

type stubEmailWebhookService struct {
	processFn func(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error
}

func (s *stubEmailWebhookService) Process(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
	return s.processFn(ctx, deliveryID, payload)
}

func signHook(t *testing.T, id string, payload []byte) http.Header {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(hookSecret[len("whsec_"):])
	if err != nil {
		t.Fatalf("decode secret: %v", err)
	}
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%d.", id, ts)
	mac.Write(payload)

	h := http.Header{}
	h.Set("webhook-id", id)
	h.Set("webhook-timestamp", strconv.FormatInt(ts, 10))
	h.Set("webhook-signature", "v1,"+base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return h
}

func hookContext(e *echo.Echo, body []byte, headers http.Header) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/send-email", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWebhookHandler_ValidDelivery(t *testing.T) {
	e := echo.New()
	verifier, err := webhook.NewVerifier(hookSecret)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	var gotID string
	var gotPayload ports.EmailWebhookPayload
	stub := &stubEmailWebhookService{
		processFn: func(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
			gotID, gotPayload = deliveryID, payload
			return nil
		},
	}
	h := NewWebhookHandler(stub, verifier, zerolog.Nop())

	body := []byte(`{"user":{"email":"a@example.com"},"email_data":{"token_hash":"hash123","email_action_type":"signup"}}`)
	c, rec := hookContext(e, body, signHook(t, "msg_1", body))

	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != "msg_1" {
		t.Fatalf("delivery id not forwarded: %s", gotID)
	}
	if gotPayload.User.Email != "a@example.com" || gotPayload.EmailData.TokenHash != "hash123" {
		t.Fatalf("payload not decoded: %+v", gotPayload)
	}
}

func TestWebhookHandler_BadSignature(t *testing.T) {
	e := echo.New()
	verifier, err := webhook.NewVerifier(hookSecret)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	stub := &stubEmailWebhookService{
		processFn: func(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
			t.Fatal("service must not run on a rejected delivery")
			return nil
		},
	}
	h := NewWebhookHandler(stub, verifier, zerolog.Nop())

	body := []byte(`{"user":{"email":"a@example.com"}}`)
	headers := signHook(t, "msg_1", []byte("different payload"))
	c, rec := hookContext(e, body, headers)

	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWebhookHandler_MissingHeaders(t *testing.T) {
	e := echo.New()
	verifier, err := webhook.NewVerifier(hookSecret)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	h := NewWebhookHandler(&stubEmailWebhookService{
		processFn: func(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
			t.Fatal("service must not run on a rejected delivery")
			return nil
		},
	}, verifier, zerolog.Nop())

	c, rec := hookContext(e, []byte(`{}`), http.Header{})
	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWebhookHandler_NoVerifierSkipsCheck(t *testing.T) {
	e := echo.New()
	called := false
	h := NewWebhookHandler(&stubEmailWebhookService{
		processFn: func(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
			called = true
			return nil
		},
	}, nil, zerolog.Nop())

	c, rec := hookContext(e, []byte(`{"user":{"email":"a@example.com"}}`), http.Header{})
	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("unverified delivery should still process when no secret is set: %d", rec.Code)
	}
}

func TestWebhookHandler_InvalidJSON(t *testing.T) {
	e := echo.New()
	body := []byte(`not json`)
	h := NewWebhookHandler(&stubEmailWebhookService{
		processFn: func(ctx context.Context, deliveryID string, payload ports.EmailWebhookPayload) error {
			t.Fatal("service must not run on an undecodable body")
			return nil
		},
	}, nil, zerolog.Nop())

	c, rec := hookContext(e, body, http.Header{})
	if err := h.SendEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
