package controllers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/simplefs/catalog-backend/api/middleware"
	"github.com/simplefs/catalog-backend/api/responses"
	"github.com/simplefs/catalog-backend/api/validators"
	"github.com/simplefs/catalog-backend/pkg/config"
	pkgerrors "github.com/simplefs/catalog-backend/pkg/errors"
	"github.com/simplefs/catalog-backend/pkg/logger"
	"github.com/simplefs/catalog-backend/pkg/security"
)

type sessionIssuer interface {
	Issue(ctx context.Context, subject string, remember bool) (string, time.Time, error)
	Revoke(ctx context.Context, token string) error
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// AuthLogin checks the admin credential and opens a session. The token is
// set as a cookie and echoed in the legacy envelope for API clients.
func AuthLogin(manager sessionIssuer, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteLegacy(w, http.StatusBadRequest, false, nil)
			return
		}

		if !credentialsValid(cfg.Admin, req.Username, req.Password) {
			responses.WriteLegacy(w, http.StatusUnauthorized, false, nil)
			return
		}

		token, expires, err := manager.Issue(r.Context(), req.Username, req.Remember)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening session"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.Session.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  expires,
			HttpOnly: true,
			Secure:   cfg.Session.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteLegacy(w, http.StatusOK, true, map[string]string{"token": token})
	}
}

// AuthLogout revokes the current session and clears the cookie. Requests
// without a usable token still succeed; there is nothing to revoke.
func AuthLogout(manager sessionIssuer, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := middleware.SessionToken(r, cfg.Session.CookieName); token != "" {
			if err := manager.Revoke(r.Context(), token); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "closing session"))
				return
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.Session.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Session.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteLegacy(w, http.StatusOK, true, nil)
	}
}

// credentialsValid checks the configured admin credential. A hashed
// password takes precedence; the plain variant exists for dev setups.
func credentialsValid(admin config.AdminConfig, username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(admin.Username), []byte(username)) != 1 {
		return false
	}
	if admin.PasswordHash != "" {
		ok, err := security.VerifyPassword(password, admin.PasswordHash)
		return err == nil && ok
	}
	if admin.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(admin.Password), []byte(password)) == 1
}
