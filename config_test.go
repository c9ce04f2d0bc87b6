package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/lmller/go-authsvc"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := auth.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "authsvc", cfg.TokenIssuer)
	assert.True(t, cfg.IsInsecureSecret())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("TOKEN_TTL", "15m")

	cfg, err := auth.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.IsInsecureSecret())
}

func TestConfigValidate(t *testing.T) {
	cfg := &auth.Config{SecretKey: "", TokenTTL: time.Hour}
	assert.Error(t, cfg.Validate())

	cfg = &auth.Config{SecretKey: "k", TokenTTL: 0}
	assert.Error(t, cfg.Validate())

	cfg = &auth.Config{SecretKey: "k", TokenTTL: time.Hour}
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	_, err := auth.LoadConfig()
	assert.Error(t, err)
}
