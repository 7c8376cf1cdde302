package auth

import "context"

type contextKey string

const IdentityContextKey contextKey = "identity"

// IdentityFromContext retrieves the authenticated admin from the context.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(IdentityContextKey).(*Identity)
	return id
}
