package auth_test

import (
	"testing"

	"github.com/fitcoach/apiserver/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	first, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	second, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	// Per-call salt: same plaintext, different hashes, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, auth.CheckPassword("s3cret", first))
	assert.True(t, auth.CheckPassword("s3cret", second))
	assert.False(t, auth.CheckPassword("wrong", first))
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	// Accounts created through Google sign-in have no hash; a password login
	// against them is a mismatch, not a fault.
	assert.False(t, auth.CheckPassword("anything", ""))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")

	token, err := issuer.Issue(42, "coach@x.com")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.ID)
	assert.Equal(t, "coach@x.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.NewTokenIssuer("secret-a").Issue(1, "a@x.com")
	require.NoError(t, err)

	_, err = auth.NewTokenIssuer("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := auth.NewTokenIssuer("secret").Parse("not.a.token")
	assert.Error(t, err)
}
