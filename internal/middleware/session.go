package middleware

import (
	"context"
	"net/http"

	"github.com/MYAIBV/my-ai-portfolio/internal/auth"
	"github.com/MYAIBV/my-ai-portfolio/internal/transport"
)

// SessionCookie carries the signed login token.
const SessionCookie = "auth_token"

type userKey struct{}

// Session resolves the login cookie into claims on the request context.
// It never rejects: anonymous requests pass through so handlers can
// apply the visibility rule themselves.
func Session(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				next.ServeHTTP(w, r)
				return
			}
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := manager.Parse(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser gates mutating and AI routes behind a valid session.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) *auth.Claims {
	if v := ctx.Value(userKey{}); v != nil {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
