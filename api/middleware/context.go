package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxEmail    contextKey = "email"
	ctxIsAdmin  contextKey = "is_admin"
	ctxAccessID contextKey = "access_id"
)

// UserIDFromContext returns the authenticated user's ID, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserID).(uuid.UUID)
	return id, ok
}

// EmailFromContext returns the authenticated user's email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxEmail).(string)
	return email, ok
}

// IsAdminFromContext reports whether the authenticated user is an admin.
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(ctxIsAdmin).(bool)
	return isAdmin
}

// AccessIDFromContext returns the access token's session identifier, if any.
func AccessIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxAccessID).(string)
	return id, ok
}

func withPrincipal(ctx context.Context, userID uuid.UUID, email string, isAdmin bool, accessID string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxEmail, email)
	ctx = context.WithValue(ctx, ctxIsAdmin, isAdmin)
	ctx = context.WithValue(ctx, ctxAccessID, accessID)
	return ctx
}
