package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// SessionReader exposes the current session.
type SessionReader interface {
	Current() models.Session
}

type sessionKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by SessionMiddleware.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// SessionMiddleware rejects requests without an authenticated session and
// passes the session snapshot down the context.
func SessionMiddleware(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessions.Current()
			if !session.Authenticated() {
				logger.Log.Warnw("request without session", "uri", r.RequestURI, "request_id", RequestIDFromContext(r.Context()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: models.ErrNotAuthenticated.Error(),
					Kind:  models.KindValidation.String(),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RoleMiddleware redirects sessions without role to their own dashboard
// with 303 See Other. It must run after SessionMiddleware.
func RoleMiddleware(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok || !session.HasRole(role) {
				target := models.RoleUser.HomeRoute()
				if ok && session.User != nil {
					target = session.User.Role.HomeRoute()
				}
				logger.Log.Warnw("role mismatch, redirecting", "uri", r.RequestURI, "required", role, "target", target)
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
