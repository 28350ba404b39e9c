package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/domain"
)

func render(t *testing.T, err error) (int, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_NotAdminExactBody(t *testing.T) {
	code, body := render(t, domain.ErrNotAdmin)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if body["error"] != "Only admins can delete users" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestErrorHandler_MissingUserIDExactBody(t *testing.T) {
	code, body := render(t, domain.ErrMissingUserID)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["error"] != "User ID is required" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestErrorHandler_InvalidEmail(t *testing.T) {
	code, body := render(t, domain.ErrInvalidEmail)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["error"] != "Invalid email address" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("delete user"), domain.ErrNotAdmin)
	code, _ := render(t, wrapped)
	if code != http.StatusForbidden {
		t.Fatalf("wrapped domain errors must still map, got %d", code)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, body := render(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details leaked: %+v", body)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, body := render(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["error"] != "Not Found" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
