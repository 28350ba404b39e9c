package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/core/domain"
)

type stubAdminService struct {
	deleteFn func(ctx context.Context, callerID, targetID string) error
	listFn   func(ctx context.Context, role domain.Role) ([]domain.Member, error)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	return s.deleteFn(ctx, callerID, targetID)
}

func (s *stubAdminService) ListMembers(ctx context.Context, role domain.Role) ([]domain.Member, error) {
	return s.listFn(ctx, role)
}

func adminContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/users/delete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "caller_1")
	c.Set("role", "admin")
	return c, rec
}

func TestAdminHandler_DeleteUser_Success(t *testing.T) {
	e := echo.New()
	var gotCaller, gotTarget string
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, callerID, targetID string) error {
			gotCaller, gotTarget = callerID, targetID
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := adminContext(e, `{"userId":"target_1"}`)
	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gotCaller != "caller_1" || gotTarget != "target_1" {
		t.Fatalf("unexpected args: %s %s", gotCaller, gotTarget)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "User deleted successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAdminHandler_DeleteUser_NotAdminPropagated(t *testing.T) {
	e := echo.New()
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, callerID, targetID string) error {
			return domain.ErrNotAdmin
		},
	}
	h := NewAdminHandler(stub)

	c, _ := adminContext(e, `{"userId":"target_1"}`)
	err := h.DeleteUser(c)
	if !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin to propagate, got %v", err)
	}
}

func TestAdminHandler_DeleteUser_MissingTargetPropagated(t *testing.T) {
	e := echo.New()
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, callerID, targetID string) error {
			if targetID != "" {
				t.Fatalf("expected empty target, got %q", targetID)
			}
			return domain.ErrMissingUserID
		},
	}
	h := NewAdminHandler(stub)

	c, _ := adminContext(e, `{}`)
	err := h.DeleteUser(c)
	if !errors.Is(err, domain.ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID to propagate, got %v", err)
	}
}

func TestAdminHandler_DeleteUser_NoClaims(t *testing.T) {
	e := echo.New()
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, callerID, targetID string) error {
			t.Fatal("service must not be called without claims")
			return nil
		},
	}
	h := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/users/delete", strings.NewReader(`{"userId":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.DeleteUser(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAdminHandler_ListMembers(t *testing.T) {
	e := echo.New()
	stub := &stubAdminService{
		listFn: func(ctx context.Context, role domain.Role) ([]domain.Member, error) {
			if role != domain.RoleAdmin {
				t.Fatalf("unexpected role: %s", role)
			}
			return []domain.Member{{ID: "u1", FullName: "Alice"}}, nil
		},
	}
	h := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "caller_1")
	c.Set("role", "admin")

	if err := h.ListMembers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Alice") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
