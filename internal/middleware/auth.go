package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/authgate/authgate-go/internal/crypto"
)

type contextKey string

const userIDKey contextKey = "userID"

// BearerAuth returns middleware that gates protected routes behind a valid
// Bearer token. Missing header, malformed header, bad signature and expiry
// all produce the same 401 body; the actual reason is only logged at debug
// level so unauthorized callers learn nothing from the response.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				slog.Debug("rejecting request: missing authorization header", "path", r.URL.Path)
				writeUnauthorized(w)
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				slog.Debug("rejecting request: malformed authorization header", "path", r.URL.Path)
				writeUnauthorized(w)
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				slog.Debug("rejecting request: token verification failed", "path", r.URL.Path, "error", err)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated account ID from the request
// context. The second return is false if the auth middleware did not run.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
