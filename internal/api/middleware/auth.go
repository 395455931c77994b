package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hirotalab/cms-server/internal/api/apierr"
	"github.com/hirotalab/cms-server/internal/auth"
)

const adminEmailKey contextKey = "admin_email"

// AdminAuth runs the admin gate before a mutating handler. Failures answer
// 401 with the gate's reason; the verified email lands in the context for
// handlers that want to record who wrote.
func AdminAuth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := gate.Authorize(r)
			if err != nil {
				apierr.Write(w, r, http.StatusUnauthorized, err.Error(), err)
				return
			}
			zerolog.Ctx(r.Context()).Debug().Str("admin", email).Msg("admin authorized")
			ctx := context.WithValue(r.Context(), adminEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmail returns the authorized admin email, or "" outside gated routes.
func AdminEmail(ctx context.Context) string {
	if email, ok := ctx.Value(adminEmailKey).(string); ok {
		return email
	}
	return ""
}
