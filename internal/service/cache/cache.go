package cache

import (
	"strings"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL. It is the
// seam between the in-process cache and Redis.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// Key joins key parts with ':' for a stable cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
