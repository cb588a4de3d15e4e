package middleware

import (
	"context"

	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/Sum1ght/schand/pkg/types"
)

type contextKey string

const ctxCaller contextKey = "caller"

// WithCaller injects the resolved caller into the context.
func WithCaller(ctx context.Context, caller types.Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCaller, caller)
}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (types.Caller, bool) {
	if ctx == nil {
		return types.Caller{}, false
	}
	caller, ok := ctx.Value(ctxCaller).(types.Caller)
	return caller, ok
}

// RoleFromContext returns the caller's role, or the empty role when
// unauthenticated.
func RoleFromContext(ctx context.Context) enums.Role {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return enums.Role("")
	}
	return caller.Role
}
