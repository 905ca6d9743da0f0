package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestInMemoryTokenBlacklist_ExpiredEntryIsDropped(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
