package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/model"
)

func newManager(ttl time.Duration) *TokenManager {
	return NewTokenManager("test-secret", ttl, ttl, ttl)
}

func TestAccessAndRefreshCarrySameIdentity(t *testing.T) {
	manager := newManager(time.Minute)
	principal := model.Principal{Username: "alice", Role: model.RoleEmployee}

	access, err := manager.IssueAccess(principal)
	require.NoError(t, err)
	refresh, err := manager.IssueRefresh(principal)
	require.NoError(t, err)

	got, err := manager.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	got, err = manager.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	manager := newManager(time.Minute)
	principal := model.Principal{Username: "alice", Role: model.RoleAdmin}

	access, err := manager.IssueAccess(principal)
	require.NoError(t, err)
	refresh, err := manager.IssueRefresh(principal)
	require.NoError(t, err)
	reset, err := manager.IssuePasswordReset("alice@example.com")
	require.NoError(t, err)

	_, err = manager.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = manager.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = manager.ParseAccess(reset)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = manager.ParsePasswordReset(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredToken(t *testing.T) {
	manager := newManager(-time.Minute)

	access, err := manager.IssueAccess(model.Principal{Username: "alice", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = manager.ParseAccess(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestForeignSignatureRejected(t *testing.T) {
	other := NewTokenManager("another-secret", time.Minute, time.Minute, time.Minute)
	access, err := other.IssueAccess(model.Principal{Username: "mallory", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = newManager(time.Minute).ParseAccess(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = newManager(time.Minute).ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	manager := newManager(time.Hour)

	token, err := manager.IssuePasswordReset("bob@example.com")
	require.NoError(t, err)

	email, err := manager.ParsePasswordReset(token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, CheckPassword("s3cret", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}
