package tmdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := newCache[string](time.Hour)

	// Miss
	_, ok := c.get("movie/603")
	assert.False(t, ok, "empty cache should miss")

	// Set and hit
	c.set("movie/603", "tt0133093")

	got, ok := c.get("movie/603")
	require.True(t, ok, "should hit after set")
	assert.Equal(t, "tt0133093", got)

	// Different key should miss
	_, ok = c.get("tv/603")
	assert.False(t, ok, "different key should miss")
}

func TestCache_Expiry(t *testing.T) {
	c := newCache[string](time.Millisecond)
	c.set("k", "v")

	time.Sleep(5 * time.Millisecond)

	_, ok := c.get("k")
	assert.False(t, ok, "expired entry should miss")
}
