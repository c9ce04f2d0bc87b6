package auth

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MinPasswordLength is the only enforced password policy; there are no
// complexity rules.
const MinPasswordLength = 8

// ValidatedSignup is a signup request that passed validation, with the
// nickname already defaulted.
type ValidatedSignup struct {
	Username string
	Password string
	Nickname string
}

// CredentialValidator checks signup input against policy and the user
// store, and authenticates login credentials. It never writes; creation is
// a separate step so the storage constraint stays the final authority on
// username uniqueness.
type CredentialValidator struct {
	users  Users
	hasher PasswordAuthenticator
	logger Logger
}

// NewCredentialValidator will create a new CredentialValidator
func NewCredentialValidator(users Users) *CredentialValidator {
	return &CredentialValidator{
		users:  users,
		hasher: NewPasswordAuthenticator(),
		logger: defLogger{},
	}
}

func (v *CredentialValidator) WithLogger(l Logger) *CredentialValidator {
	if l != nil {
		v.logger = l
	}
	return v
}

func (v *CredentialValidator) WithPasswordAuthenticator(h PasswordAuthenticator) *CredentialValidator {
	if h != nil {
		v.hasher = h
	}
	return v
}

// ValidateSignup checks the signup input. Username must be present and not
// already taken; the password must meet MinPasswordLength. An absent or
// empty nickname defaults to the username.
func (v *CredentialValidator) ValidateSignup(ctx context.Context, username, password, nickname string) (*ValidatedSignup, error) {
	if err := validation.Validate(username, validation.Required); err != nil {
		return nil, ErrMissingField
	}

	if err := validation.Validate(password,
		validation.Required,
		validation.Length(MinPasswordLength, 0),
	); err != nil {
		return nil, ErrWeakPassword
	}

	_, err := v.users.ByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check username availability: %w", err)
	}

	if nickname == "" {
		nickname = username
	}

	return &ValidatedSignup{
		Username: username,
		Password: password,
		Nickname: nickname,
	}, nil
}

// ValidateLogin authenticates a username/password pair and returns the
// matching user. Unknown usernames, password mismatches, and inactive
// accounts all collapse into ErrInvalidCredentials so a caller can never
// probe which condition failed.
func (v *CredentialValidator) ValidateLogin(ctx context.Context, username, password string) (*User, error) {
	user, err := v.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("retrieve user during verification: %w", err)
	}

	if !user.IsActive {
		v.logger.Debug("login rejected for inactive user %s", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := v.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
