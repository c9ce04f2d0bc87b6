package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model. PasswordHash is excluded from JSON so it can
// never leak through a serialized response.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Username      string    `bun:"username,notnull,unique" json:"username"`
	Nickname      string    `bun:"nickname,notnull" json:"nickname"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	IsActive      bool      `bun:"is_active,notnull" json:"is_active,omitempty"`
	IsStaff       bool      `bun:"is_staff,notnull" json:"is_staff,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}

// NewUser builds an unsaved user. Nickname falls back to username here,
// at creation time only; it is never recomputed afterwards.
func NewUser(username, nickname, passwordHash string) *User {
	if nickname == "" {
		nickname = username
	}
	return &User{
		Username:     username,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

// Info projects the user into its public response shape.
func (u *User) Info() UserInfo {
	return UserInfo{
		Username: u.Username,
		Nickname: u.Nickname,
	}
}

// UserInfo is the public view of a user returned by the API.
type UserInfo struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

type userIdentity struct {
	id       string
	username string
}

func (i userIdentity) ID() string       { return i.id }
func (i userIdentity) Username() string { return i.username }

// IdentityFromUser adapts a user record to the Identity the token
// service signs for.
func IdentityFromUser(u *User) Identity {
	return userIdentity{id: u.ID.String(), username: u.Username}
}
