package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// LocalsUserKey is the fiber locals key the guard stores the resolved
// user under.
const LocalsUserKey = "auth_user"

// WithContext sets the User in the given context
func WithContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// UserFromFiber extracts the resolved user the guard attached to the
// request.
func UserFromFiber(c *fiber.Ctx) (*User, bool) {
	raw, ok := c.Locals(LocalsUserKey).(*User)
	return raw, ok
}
