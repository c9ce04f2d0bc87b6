package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthScheme is the Authorization header scheme the guard accepts.
const AuthScheme = "Bearer"

// Gate guards routes that require authentication. Per request it extracts
// the bearer token, verifies it, resolves the bound subject to a live user,
// and attaches that user to the request. A subject that resolves to no user
// or to an inactive one fails exactly like a malformed token, so responses
// never reveal account state.
type Gate struct {
	tokens *TokenService
	users  Users
	logger Logger
}

// NewGate will create a new Gate
func NewGate(tokens *TokenService, users Users) *Gate {
	return &Gate{
		tokens: tokens,
		users:  users,
		logger: defLogger{},
	}
}

func (g *Gate) WithLogger(l Logger) *Gate {
	if l != nil {
		g.logger = l
	}
	return g
}

// Protected returns the middleware enforcing authentication. Errors are
// returned raw; the app's error handler maps them at the boundary.
func (g *Gate) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := ExtractBearerToken(c)
		if err != nil {
			return err
		}

		subject, err := g.tokens.Verify(raw)
		if err != nil {
			return err
		}

		id, err := uuid.Parse(subject)
		if err != nil {
			g.logger.Debug("token subject %q is not a user id", subject)
			return ErrTokenMalformed
		}

		user, err := g.users.ByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return ErrTokenMalformed
			}
			return err
		}

		if !user.IsActive {
			return ErrTokenMalformed
		}

		c.Locals(LocalsUserKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// ExtractBearerToken pulls the raw token out of the Authorization header.
// An absent header or a different scheme counts as no credential at all;
// a bearer header without a token is a malformed credential.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrTokenMissing
	}

	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, AuthScheme) {
		return "", ErrTokenMissing
	}
	if !found || strings.TrimSpace(token) == "" {
		return "", ErrTokenMalformed
	}

	return strings.TrimSpace(token), nil
}
