package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"studio-chat/auth"
	"studio-chat/domain"
)

type contextKey string

const userKey contextKey = "user"

// Authenticated validates the Bearer token on every request and injects the
// resolved identity into the request context for the handlers.
func Authenticated(verifier *auth.Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "authorization token is missing")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			user, err := verifier.Verify(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

// UserFrom retrieves the authenticated identity stored by the middleware.
func UserFrom(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}
