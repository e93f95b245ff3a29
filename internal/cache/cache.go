package cache

import "time"

// Cache stores raw values by string key with a per-entry time to live.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Clear()
}
