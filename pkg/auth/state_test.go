package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateIsRandomHex(t *testing.T) {
	a, err := NewState()
	require.NoError(t, err)
	b, err := NewState()
	require.NoError(t, err)

	assert.Len(t, a, StateLength*2)
	assert.NotEqual(t, a, b)
}

func TestStateSignerRoundTrip(t *testing.T) {
	signer := NewStateSigner("cookie-secret")

	token, expiresAt, err := signer.Sign("nonce-123", StateTTL)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(StateTTL), expiresAt, 2*time.Second)

	state, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "nonce-123", state)
}

func TestStateSignerRejects(t *testing.T) {
	signer := NewStateSigner("cookie-secret")

	t.Run("token signed with another key", func(t *testing.T) {
		token, _, err := NewStateSigner("other-secret").Sign("nonce-123", StateTTL)
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidStateToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, _, err := signer.Sign("nonce-123", -time.Minute)
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidStateToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := signer.Verify("")
		assert.ErrorIs(t, err, ErrInvalidStateToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidStateToken)
	})
}

func TestStateSignerWithoutKey(t *testing.T) {
	_, _, err := NewStateSigner("").Sign("nonce", StateTTL)
	assert.Error(t, err)
}
