package auth

import "context"

type userContextKey struct{}

// SetUserToContext stores the authenticated user for downstream handlers.
func SetUserToContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext retrieves the authenticated user, or nil when the
// request did not pass the bearer middleware.
func GetUserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}
