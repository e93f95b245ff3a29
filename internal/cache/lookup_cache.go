package cache

import (
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const defaultLookupCacheSize = 10 * 1024 * 1024 // 10 MB

var _ Cache = (*LookupCache)(nil)

// LookupCache keeps short-lived results of slow remote lookups in memory.
type LookupCache struct {
	mainCache *freecache.Cache
}

func NewLookupCache(sizeBytes int) *LookupCache {
	if sizeBytes <= 0 {
		sizeBytes = defaultLookupCacheSize
	}
	return &LookupCache{
		mainCache: freecache.NewCache(sizeBytes),
	}
}

func (lc *LookupCache) Get(key string) ([]byte, bool) {
	value, err := lc.mainCache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("lookup cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (lc *LookupCache) Set(key string, value []byte, ttl time.Duration) error {
	expireSeconds := int(ttl.Seconds())
	if ttl > 0 && expireSeconds == 0 {
		expireSeconds = 1
	}
	return lc.mainCache.Set([]byte(key), value, expireSeconds)
}

func (lc *LookupCache) Clear() {
	lc.mainCache.Clear()
}

func (lc *LookupCache) EntryCount() int64 {
	return lc.mainCache.EntryCount()
}
