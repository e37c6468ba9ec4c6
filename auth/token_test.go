package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour, nil)
	userID := uuid.New()

	raw, err := tokens.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := tokens.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokens("secret-a", time.Hour, nil)
	verifier := NewTokens("secret-b", time.Hour, nil)

	raw, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), raw)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute, nil)

	raw, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	_, err = tokens.Verify(context.Background(), raw)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour, nil)

	_, err := tokens.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestRevokeRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute, nil)

	raw, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	// An expired token fails validation before any denylist write.
	assert.Error(t, tokens.Revoke(context.Background(), raw))
}
