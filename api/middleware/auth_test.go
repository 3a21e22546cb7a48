package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simplefs/catalog-backend/pkg/auth/session"
	"github.com/simplefs/catalog-backend/pkg/config"
)

type stubChecker struct {
	subject   string
	err       error
	lastToken string
}

func (s *stubChecker) Validate(_ context.Context, token string) (string, error) {
	s.lastToken = token
	return s.subject, s.err
}

func runAuth(t *testing.T, checker *stubChecker, prepare func(*http.Request)) (*httptest.ResponseRecorder, string) {
	t.Helper()
	cfg := config.SessionConfig{CookieName: "catalog_session"}

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = AdminUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	Auth(cfg, checker, nil)(next).ServeHTTP(rec, req)
	return rec, gotSubject
}

func TestAuthAcceptsCookieSession(t *testing.T) {
	checker := &stubChecker{subject: "admin"}
	rec, subject := runAuth(t, checker, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "catalog_session", Value: "tok-1"})
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if checker.lastToken != "tok-1" {
		t.Fatalf("validated token = %q", checker.lastToken)
	}
	if subject != "admin" {
		t.Fatalf("context subject = %q", subject)
	}
}

func TestAuthAcceptsBearerFallback(t *testing.T) {
	checker := &stubChecker{subject: "admin"}
	rec, _ := runAuth(t, checker, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer tok-2")
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if checker.lastToken != "tok-2" {
		t.Fatalf("validated token = %q", checker.lastToken)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	checker := &stubChecker{}
	rec, _ := runAuth(t, checker, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if checker.lastToken != "" {
		t.Fatal("checker should not run without a token")
	}
}

func TestAuthRejectsInvalidSession(t *testing.T) {
	checker := &stubChecker{err: session.ErrInvalidSession}
	rec, _ := runAuth(t, checker, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "catalog_session", Value: "stale"})
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthSurfacesStoreFailure(t *testing.T) {
	checker := &stubChecker{err: errors.New("redis down")}
	rec, _ := runAuth(t, checker, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "catalog_session", Value: "tok-3"})
	})

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
