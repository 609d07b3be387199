package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PreviewKey returns the cache key for a generated website preview.
// URLs are hashed so arbitrary input cannot produce unbounded keys.
func PreviewKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("preview:%s", hex.EncodeToString(sum[:16]))
}

// RateLimitKey returns the per-client rate limit counter key.
func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:%s", client)
}
