package auth

import (
	"context"
)

// RoleAdmin is the only role the API issues
const RoleAdmin = "admin"

// UserContext holds the authenticated admin identity
type UserContext struct {
	AdminID string
	Email   string
	Role    string
}

type contextKey string

const (
	userContextKey  contextKey = "userContext"
	identitySlotKey contextKey = "identitySlot"
)

type identitySlot struct {
	user *UserContext
}

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	if slot, ok := ctx.Value(identitySlotKey).(*identitySlot); ok {
		slot.user = user
	}
	return context.WithValue(ctx, userContextKey, user)
}

// WithIdentitySlot lets an outer middleware observe the identity attached
// further down the chain. The returned func reports it once the request is done.
func WithIdentitySlot(ctx context.Context) (context.Context, func() *UserContext) {
	slot := &identitySlot{}
	return context.WithValue(ctx, identitySlotKey, slot), func() *UserContext { return slot.user }
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// ActorID returns the admin id of the authenticated caller, if any
func ActorID(ctx context.Context) *string {
	user, ok := FromContext(ctx)
	if !ok || user.AdminID == "" {
		return nil
	}
	id := user.AdminID
	return &id
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
