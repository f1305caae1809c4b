package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"pathways/internal/platform/jwt"
	"pathways/pkg/requestcontext"
)

// RequireAuth validates the bearer token and stores its subject as the
// acting identity. A nil validator disables auth entirely; requests then
// act as the context default actor. Auth is opt-in because local and demo
// deployments run without an identity provider.
func RequireAuth(validator *jwt.Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}
			subject, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token rejected", "error", err.Error())
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(r.Context(), subject)))
		})
	}
}
