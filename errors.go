package auth

import (
	"errors"
	"net/http"
	"strings"
)

// Error is a failure that is safe to show to a client. Code is a stable
// identifier clients can branch on; Status is the HTTP status the error
// maps to at the response boundary.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrUsernameTaken is returned when a signup collides with an
	// existing username, either at validation time or on insert.
	ErrUsernameTaken = &Error{
		Code:    "USER_ALREADY_EXISTS",
		Message: "a user with that username already exists",
		Status:  http.StatusBadRequest,
	}

	// ErrWeakPassword is returned when a signup password is shorter
	// than MinPasswordLength.
	ErrWeakPassword = &Error{
		Code:    "WEAK_PASSWORD",
		Message: "password must be at least 8 characters",
		Status:  http.StatusBadRequest,
	}

	// ErrMissingField is returned when a required signup field is absent.
	ErrMissingField = &Error{
		Code:    "MISSING_FIELD",
		Message: "a required field is missing",
		Status:  http.StatusBadRequest,
	}

	// ErrInvalidPayload is returned when a request body cannot be parsed.
	ErrInvalidPayload = &Error{
		Code:    "INVALID_PAYLOAD",
		Message: "request body could not be parsed",
		Status:  http.StatusBadRequest,
	}

	// ErrInvalidCredentials covers both unknown usernames and password
	// mismatches so responses never reveal which half was wrong.
	ErrInvalidCredentials = &Error{
		Code:    "INVALID_CREDENTIALS",
		Message: "username or password is incorrect",
		Status:  http.StatusUnauthorized,
	}

	// ErrTokenMissing is returned when a protected request carries no
	// bearer token.
	ErrTokenMissing = &Error{
		Code:    "TOKEN_NOT_FOUND",
		Message: "authentication token not found",
		Status:  http.StatusUnauthorized,
	}

	// ErrTokenMalformed covers unparseable tokens, bad signatures, and
	// tokens that resolve to no usable identity.
	ErrTokenMalformed = &Error{
		Code:    "INVALID_TOKEN",
		Message: "authentication token is invalid",
		Status:  http.StatusUnauthorized,
	}

	// ErrTokenExpired is returned for tokens whose signature verifies
	// but whose expiry has passed.
	ErrTokenExpired = &Error{
		Code:    "TOKEN_EXPIRED",
		Message: "authentication token has expired",
		Status:  http.StatusUnauthorized,
	}

	// ErrServer is the fallback for anything unmapped; internal detail
	// never reaches the client.
	ErrServer = &Error{
		Code:    "SERVER_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
	}
)

// ErrUserNotFound is an internal sentinel returned by the repository for
// lookups that match no user. It is never sent to a client directly; callers
// re-map it into the taxonomy above.
var ErrUserNotFound = errors.New("user not found")

// Map translates any error into a client-safe *Error. Errors already in the
// taxonomy pass through unchanged; everything else collapses to ErrServer.
func Map(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrServer
}

// IsUniqueViolation reports whether err is a storage-level uniqueness
// constraint failure. sqliteshim multiplexes drivers with distinct error
// types, so classification is by message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
