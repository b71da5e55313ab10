// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// OperatorKey is the context key for the operator name.
// Exported so it can be used consistently across packages.
type OperatorKey struct{}

// SessionKey is the context key for the workflow session ID.
type SessionKey struct{}

// WithOperator returns a context with the operator name embedded.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, OperatorKey{}, operator)
}

// OperatorFromContext returns the operator from context, or empty string if not set.
func OperatorFromContext(ctx context.Context) string {
	if v := ctx.Value(OperatorKey{}); v != nil {
		return v.(string)
	}
	return ""
}

// WithSessionID returns a context carrying the workflow session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionKey{}, sessionID)
}

// SessionFromContext returns the session ID from context, or empty string if not set.
func SessionFromContext(ctx context.Context) string {
	if v := ctx.Value(SessionKey{}); v != nil {
		return v.(string)
	}
	return ""
}
