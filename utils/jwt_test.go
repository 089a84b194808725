package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, err := signer.GenerateToken("a@x.com")
	require.NoError(t, err)

	email, err := signer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestTokenSignerRejects(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	expired := NewTokenSigner("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("a@x.com")
	require.NoError(t, err)

	foreignToken, err := NewTokenSigner("other", time.Hour).GenerateToken("a@x.com")
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expiredToken, ErrTokenExpired},
		{"wrong secret", foreignToken, ErrTokenInvalid},
		{"malformed", "not.a.token", ErrTokenInvalid},
		{"missing email claim", noEmail, ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
