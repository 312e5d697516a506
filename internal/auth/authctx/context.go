// Package authctx propagates the authenticated identity through the request
// context. The authentication gate stores the identity; handlers and
// authorization policies read it back.
package authctx

import (
	"context"
	"errors"
)

// Identity is the decoded identity attached to an authenticated request.
type Identity struct {
	UserID uint
	Role   string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// identityKey is the single key used to store the identity in context.
var identityKey = contextKey{}

// ErrNoIdentity is returned when no identity is present in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// Set stores the authenticated identity in the context.
func Set(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get retrieves the authenticated identity from the context.
func Get(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// MustGet retrieves the authenticated identity from the context.
// Panics if absent. Use in handlers where the authentication gate
// guarantees an identity exists.
func MustGet(ctx context.Context) Identity {
	id, ok := Get(ctx)
	if !ok {
		panic("authctx: identity not found in context")
	}
	return id
}

// GetOrError retrieves the identity, returning ErrNoIdentity if absent.
func GetOrError(ctx context.Context) (Identity, error) {
	id, ok := Get(ctx)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
