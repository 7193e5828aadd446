package authz

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	operatorKey contextKey = "operator"
	roleKey     contextKey = "role"
)

// WithIdentity stores the authenticated operator on the context. The
// operator display name is what ends up on audit-trail entries.
func WithIdentity(ctx context.Context, userID, operator, role string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	if operator != "" {
		ctx = context.WithValue(ctx, operatorKey, operator)
	}
	if role != "" {
		ctx = context.WithValue(ctx, roleKey, role)
	}
	return ctx
}

func UserIDFromRequest(r *http.Request) (string, bool) {
	uid, ok := r.Context().Value(userIDKey).(string)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}

func OperatorFromRequest(r *http.Request) (string, bool) {
	name, ok := r.Context().Value(operatorKey).(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func RoleFromRequest(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
