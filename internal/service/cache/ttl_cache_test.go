package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiresWithClock(t *testing.T) {
	now := time.Date(2024, 6, 18, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(WithClock(func() time.Time { return now }))

	c.Set("k", "v", time.Hour)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(59 * time.Minute)
	_, ok = c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	// Expired entries are evicted, not just hidden.
	c.mu.RLock()
	_, present := c.m["k"]
	c.mu.RUnlock()
	assert.False(t, present)
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 6, 18, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(WithClock(func() time.Time { return now }))

	c.Set("k", 42, 0)
	now = now.Add(1000 * time.Hour)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 0)
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTLCacheBytesRoundTrip(t *testing.T) {
	c := NewTTLCache()

	assert.NoError(t, c.SetBytes("b", []byte("payload"), time.Minute))
	got, ok, err := c.GetBytes("b")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	// Non-byte values are a miss through the BytesCache view.
	c.Set("s", "not bytes", time.Minute)
	_, ok, err = c.GetBytes("s")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "series:GC:legacy", Key("series", "GC", "legacy"))
}
