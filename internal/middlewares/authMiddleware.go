package middlewares

import (
	"context"
	"net/http"
	"strings"

	"andhrawala/internal/repositories"
	"andhrawala/internal/utils"
)

type contextKey string

// SessionKey is the request-context key carrying the resolved identity.
const SessionKey contextKey = "session"

const tokenHeader = "x-auth-token"

// AuthMiddleware resolves a bearer token to a session before any route logic
// runs. The token is read from the x-auth-token header, an
// "Authorization: Bearer" header, or a "token" query parameter.
func AuthMiddleware(sessions repositories.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				utils.SendJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			session, ok := sessions.Resolve(token)
			if !ok {
				utils.SendJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if token := r.Header.Get(tokenHeader); token != "" {
		return token
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return auth[len("Bearer "):]
	}
	return r.URL.Query().Get("token")
}
