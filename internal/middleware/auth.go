package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"appointment-booking-api/internal/auth"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// Auth verifies the bearer token and stores the user id in the request
// context. Missing credential is 401, a credential that fails verification
// is 403.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// token from Authorization: Bearer <jwt>
			raw := ""
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				writeJSONError(w, http.StatusUnauthorized, "access denied")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				writeJSONError(w, http.StatusForbidden, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID reads the authenticated user id placed by Auth. Zero means the
// middleware never ran; routes behind Auth can rely on a real id.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(UserIDKey).(int64)
	return id
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
