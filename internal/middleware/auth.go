package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"sopgen/internal/auth"
	"sopgen/internal/httputil"
)

// Authenticate resolves the acting user and role for each request.
//
// With a verifier configured every request must carry a Bearer token; the
// token's subject and role claims are attached to the request context.
// With no verifier (development mode) identity comes from the X-User and
// X-Role headers, defaulting to an anonymous editor.
func Authenticate(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				user := r.Header.Get("X-User")
				if user == "" {
					user = "anonymous"
				}
				role := r.Header.Get("X-Role")
				if role == "" {
					role = auth.RoleEditor
				}
				next.ServeHTTP(w, httputil.WithUser(r, user, role))
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUser(r, claims.Subject, claims.Role))
		})
	}
}

// RequireRole gates a handler to the listed roles. Admin passes every gate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles)+1)
	for _, role := range roles {
		allowed[role] = true
	}
	allowed[auth.RoleAdmin] = true

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[httputil.GetRole(r)] {
				httputil.RespondError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
