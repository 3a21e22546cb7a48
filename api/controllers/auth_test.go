package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/simplefs/catalog-backend/pkg/config"
	"github.com/simplefs/catalog-backend/pkg/security"
)

type stubSessionManager struct {
	issuedSubject string
	issueToken    string
	issueErr      error
	revokedToken  string
	revokeErr     error
}

func (s *stubSessionManager) Issue(_ context.Context, subject string, _ bool) (string, time.Time, error) {
	s.issuedSubject = subject
	return s.issueToken, time.Now().Add(time.Hour), s.issueErr
}

func (s *stubSessionManager) Revoke(_ context.Context, token string) error {
	s.revokedToken = token
	return s.revokeErr
}

func testConfig() *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{Username: "admin", Password: "s3cret"},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			CookieName: "catalog_session",
		},
	}
}

func postLogin(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthLoginSuccess(t *testing.T) {
	manager := &stubSessionManager{issueToken: "tok-123"}
	handler := AuthLogin(manager, testConfig(), nil)

	rec := postLogin(t, handler, map[string]any{
		"username": "admin",
		"password": "s3cret",
		"remember": true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if manager.issuedSubject != "admin" {
		t.Fatalf("issued subject = %q", manager.issuedSubject)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("body = %s", rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "catalog_session" || cookies[0].Value != "tok-123" {
		t.Fatalf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	manager := &stubSessionManager{issueToken: "tok-123"}
	handler := AuthLogin(manager, testConfig(), nil)

	cases := []map[string]any{
		{"username": "admin", "password": "wrong"},
		{"username": "intruder", "password": "s3cret"},
		{"username": "admin"},
	}
	for _, body := range cases {
		rec := postLogin(t, handler, body)
		if rec.Code == http.StatusOK {
			t.Fatalf("body %v: expected rejection, got 200", body)
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Fatalf("body %v: response = %s", body, rec.Body.String())
		}
		if manager.issuedSubject != "" {
			t.Fatalf("body %v: session issued for rejected login", body)
		}
	}
}

func TestAuthLogoutRevokesAndClearsCookie(t *testing.T) {
	manager := &stubSessionManager{}
	handler := AuthLogout(manager, testConfig(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/auth", nil)
	req.AddCookie(&http.Cookie{Name: "catalog_session", Value: "tok-123"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if manager.revokedToken != "tok-123" {
		t.Fatalf("revoked token = %q", manager.revokedToken)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("cookie not cleared: %+v", cookies)
	}
}

func TestCredentialsValidHashedPassword(t *testing.T) {
	hash, err := security.HashPassword("s3cret", config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	admin := config.AdminConfig{Username: "admin", PasswordHash: hash}
	if !credentialsValid(admin, "admin", "s3cret") {
		t.Fatal("valid hashed credential rejected")
	}
	if credentialsValid(admin, "admin", "wrong") {
		t.Fatal("wrong password accepted against hash")
	}
}

func TestAuthLogoutWithoutSessionStillSucceeds(t *testing.T) {
	manager := &stubSessionManager{}
	handler := AuthLogout(manager, testConfig(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/auth", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if manager.revokedToken != "" {
		t.Fatal("nothing should be revoked without a token")
	}
}
