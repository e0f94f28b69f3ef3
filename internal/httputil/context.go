package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userKey contextKey = "user"
	roleKey contextKey = "role"
)

// WithUser attaches the authenticated user and role to the request context.
func WithUser(r *http.Request, user, role string) *http.Request {
	ctx := context.WithValue(r.Context(), userKey, user)
	ctx = context.WithValue(ctx, roleKey, role)
	return r.WithContext(ctx)
}

// GetUser returns the authenticated user, or "" when unauthenticated.
func GetUser(r *http.Request) string {
	user, _ := r.Context().Value(userKey).(string)
	return user
}

// GetRole returns the authenticated user's role, or "" when
// unauthenticated.
func GetRole(r *http.Request) string {
	role, _ := r.Context().Value(roleKey).(string)
	return role
}
