package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/simplefs/catalog-backend/api/responses"
	"github.com/simplefs/catalog-backend/pkg/auth/session"
	"github.com/simplefs/catalog-backend/pkg/config"
	pkgerrors "github.com/simplefs/catalog-backend/pkg/errors"
	"github.com/simplefs/catalog-backend/pkg/logger"
)

// Auth gates admin routes behind a valid session. The token travels in the
// session cookie; a bearer Authorization header is accepted as a fallback
// for non-browser clients.
func Auth(cfg config.SessionConfig, checker session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cfg.CookieName)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			subject, err := checker.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrInvalidSession) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}

			ctx := WithAdminUser(r.Context(), subject)
			if logg != nil {
				ctx = logg.WithField(ctx, "admin_user", subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken extracts the session token from the cookie or, failing that,
// a bearer Authorization header.
func SessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
