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
)

type stubSettingsService struct {
	logo             string
	updateLogoFn     func(ctx context.Context, url string) error
	updatePasswordFn func(ctx context.Context, newPassword string) error
}

func (s *stubSettingsService) UpdateSiteLogo(ctx context.Context, url string) error {
	return s.updateLogoFn(ctx, url)
}

func (s *stubSettingsService) UpdateAdminPassword(ctx context.Context, newPassword string) error {
	return s.updatePasswordFn(ctx, newPassword)
}

func (s *stubSettingsService) Logo() string {
	return s.logo
}

func TestSettingsHandler_Logo_Unset(t *testing.T) {
	e := newTestEcho()
	handler := NewSettingsHandler(&stubSettingsService{logo: ""})

	req := httptest.NewRequest(http.MethodGet, "/v1/settings/logo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["url"] != "" {
		t.Fatalf("expected empty url, got %q", resp["url"])
	}
}

func TestSettingsHandler_UpdateLogo(t *testing.T) {
	e := newTestEcho()
	stored := ""
	stub := &stubSettingsService{
		updateLogoFn: func(ctx context.Context, url string) error {
			stored = url
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	body := strings.NewReader(`{"url":"https://cdn.example.com/logo.png"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/settings/logo", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.UpdateLogo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stored != "https://cdn.example.com/logo.png" {
		t.Fatalf("expected logo stored, got %q", stored)
	}
}

func TestSettingsHandler_UpdateLogo_NotAURL(t *testing.T) {
	e := newTestEcho()
	stub := &stubSettingsService{
		updateLogoFn: func(ctx context.Context, url string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	body := strings.NewReader(`{"url":"not a url"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/settings/logo", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UpdateLogo(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestSettingsHandler_UpdateAdminPassword(t *testing.T) {
	e := newTestEcho()
	stored := ""
	stub := &stubSettingsService{
		updatePasswordFn: func(ctx context.Context, newPassword string) error {
			stored = newPassword
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	body := strings.NewReader(`{"new_password":"hunter2hunter2","confirm_password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/settings/admin-password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.UpdateAdminPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stored != "hunter2hunter2" {
		t.Fatalf("expected password stored, got %q", stored)
	}
}

func TestSettingsHandler_UpdateAdminPassword_Mismatch(t *testing.T) {
	e := newTestEcho()
	stub := &stubSettingsService{
		updatePasswordFn: func(ctx context.Context, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	body := strings.NewReader(`{"new_password":"hunter2hunter2","confirm_password":"different123"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/settings/admin-password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UpdateAdminPassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestSettingsHandler_UpdateAdminPassword_TooShort(t *testing.T) {
	e := newTestEcho()
	stub := &stubSettingsService{
		updatePasswordFn: func(ctx context.Context, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	body := strings.NewReader(`{"new_password":"short","confirm_password":"short"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/settings/admin-password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UpdateAdminPassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}
