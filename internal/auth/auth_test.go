package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailem/recallbox/internal/auth"
)

func TestTokenIssueAndParse(t *testing.T) {
	m := auth.NewTokenManager("test-secret", 24*time.Hour)
	now := time.Now()

	signed, issued, err := m.Issue("user-1", now)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, "user-1", issued.UserID)
	assert.NotEmpty(t, issued.JTI)
	assert.WithinDuration(t, now.Add(24*time.Hour), issued.ExpiresAt, time.Second)

	parsed, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, issued.UserID, parsed.UserID)
	assert.Equal(t, issued.JTI, parsed.JTI)
}

func TestTokenParseRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", time.Hour)
	verifier := auth.NewTokenManager("secret-b", time.Hour)

	signed, _, err := issuer.Issue("user-1", time.Now())
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenParseRejectsExpired(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)

	signed, _, err := m.Issue("user-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenParseRejectsGarbage(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)

	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMemoryBlocklist(t *testing.T) {
	ctx := context.Background()
	b := auth.NewMemoryBlocklist()

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Revoking with an expiry in the past is a no-op.
	require.NoError(t, b.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	revoked, err = b.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, auth.CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, auth.CheckPassword(hash, "wrong password"))
}
