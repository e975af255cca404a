package auth

import (
	"context"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	// UserID is the authenticated user's ID. Zero for the admin session.
	UserID int64

	// Role is the session scope.
	Role Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type contextKey struct{}

// identityKey is the context key for the authenticated identity.
var identityKey contextKey

// WithIdentity returns a context annotated with the authenticated identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the authenticated identity from a context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// RequireIdentity retrieves the authenticated identity or fails.
// Handlers behind the middleware can rely on this never failing; it guards
// against routes wired without authentication by mistake.
func RequireIdentity(ctx context.Context) (Identity, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, domain.ErrNoToken
	}
	return identity, nil
}
