package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitResult(t *testing.T) {
	got, err := parseLimitResult([]interface{}{int64(1), int64(59), int64(42)}, 60)
	require.NoError(t, err)

	assert.True(t, got.Allowed)
	assert.Equal(t, 59, got.Remaining)
	assert.Equal(t, 42*time.Second, got.ResetIn)
	assert.Equal(t, 60, got.Limit)
}

func TestParseLimitResultDenied(t *testing.T) {
	got, err := parseLimitResult([]interface{}{int64(0), int64(0), int64(7)}, 60)
	require.NoError(t, err)

	assert.False(t, got.Allowed)
	assert.Equal(t, 0, got.Remaining)
}

func TestParseLimitResultMalformed(t *testing.T) {
	_, err := parseLimitResult("OK", 60)
	assert.Error(t, err)

	_, err = parseLimitResult([]interface{}{int64(1)}, 60)
	assert.Error(t, err)

	_, err = parseLimitResult([]interface{}{"1", int64(1), int64(1)}, 60)
	assert.Error(t, err)
}

func TestWindowSeconds(t *testing.T) {
	assert.Equal(t, 1, windowSeconds(0))
	assert.Equal(t, 1, windowSeconds(500*time.Millisecond))
	assert.Equal(t, 1, windowSeconds(time.Second))
	assert.Equal(t, 2, windowSeconds(1500*time.Millisecond))
	assert.Equal(t, 60, windowSeconds(time.Minute))
}
