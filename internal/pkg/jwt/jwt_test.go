package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	SetSecret("round-trip-secret")
	t.Cleanup(func() { SetSecret(DefaultSecret) })

	token, err := Sign("admin-1", "admin@example.com", DefaultTTL)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejects(t *testing.T) {
	SetSecret("server-secret")
	t.Cleanup(func() { SetSecret(DefaultSecret) })

	expired, err := Sign("admin-1", "a@b.c", -time.Minute)
	require.NoError(t, err)
	forged, err := SignWithSecret([]byte("someone-else"), "admin-1", "a@b.c", time.Hour)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":     "",
		"malformed": "not.a.token",
		"expired":   expired,
		"forged":    forged,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tok)
			assert.Error(t, err)
		})
	}
}

func TestUsingDefaultSecret(t *testing.T) {
	SetSecret(DefaultSecret)
	assert.True(t, UsingDefaultSecret())
	SetSecret("")
	assert.True(t, UsingDefaultSecret())
	SetSecret("prod")
	assert.False(t, UsingDefaultSecret())
	SetSecret(DefaultSecret)
}
