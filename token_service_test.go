package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/lmller/go-authsvc"
)

var testSigningKey = []byte("test-signing-key")

func newTestTokenService(ttl time.Duration) *auth.TokenService {
	return auth.NewTokenService(testSigningKey, ttl, "authsvc-test", noopLogger{})
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	user := newActiveUser("testuser", "Tester", "hash")

	token, err := ts.Issue(auth.IdentityFromUser(user))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)
}

func TestTokenIssueNilIdentity(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	_, err := ts.Issue(nil)
	assert.Error(t, err)
}

func TestTokenVerifyMissing(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	_, err := ts.Verify("")
	assert.ErrorIs(t, err, auth.ErrTokenMissing)
}

func TestTokenVerifyMalformed(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{"not a token at all", "invalid_token"},
		{"wrong segment count", "aaaa.bbbb"},
		{"garbage segments", "aaaa.bbbb.cccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Verify(tt.raw)
			assert.ErrorIs(t, err, auth.ErrTokenMalformed)
		})
	}
}

func TestTokenVerifyTamperedSignature(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	user := newActiveUser("testuser", "Tester", "hash")

	token, err := ts.Issue(auth.IdentityFromUser(user))
	require.NoError(t, err)

	// flip the final signature byte
	last := token[len(token)-1]
	flipped := byte('A')
	if last == flipped {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestTokenVerifyWrongKey(t *testing.T) {
	issuer := newTestTokenService(time.Hour)
	verifier := auth.NewTokenService([]byte("a-different-key"), time.Hour, "authsvc-test", noopLogger{})
	user := newActiveUser("testuser", "Tester", "hash")

	token, err := issuer.Issue(auth.IdentityFromUser(user))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestTokenVerifyExpired(t *testing.T) {
	ts := newTestTokenService(-time.Minute)
	user := newActiveUser("testuser", "Tester", "hash")

	token, err := ts.Issue(auth.IdentityFromUser(user))
	require.NoError(t, err)

	_, err = ts.Verify(token)
	// expired is expired, never malformed
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.NotErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestTokenVerifyWrongIssuer(t *testing.T) {
	issuer := auth.NewTokenService(testSigningKey, time.Hour, "someone-else", noopLogger{})
	verifier := newTestTokenService(time.Hour)
	user := newActiveUser("testuser", "Tester", "hash")

	token, err := issuer.Issue(auth.IdentityFromUser(user))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestTokenTTL(t *testing.T) {
	ts := newTestTokenService(45 * time.Minute)
	assert.Equal(t, 45*time.Minute, ts.TTL())
}
