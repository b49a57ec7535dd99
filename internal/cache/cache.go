package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

const DefaultSizeBytes = 16 * 1024 * 1024

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) bool
}

var _ Cache = (*FreeCache)(nil)

// FreeCache is an in-process byte cache with per-entry expiry.
type FreeCache struct {
	cache *freecache.Cache
}

func NewFreeCache(sizeBytes int) *FreeCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultSizeBytes
	}
	return &FreeCache{
		cache: freecache.NewCache(sizeBytes),
	}
}

func (c *FreeCache) Get(key string) ([]byte, bool) {
	value, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores value for ttl, rounded up to whole seconds.
func (c *FreeCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("cache ttl must be positive")
	}
	expireSeconds := int((ttl + time.Second - 1) / time.Second)
	if err := c.cache.Set([]byte(key), value, expireSeconds); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *FreeCache) Delete(key string) bool {
	return c.cache.Del([]byte(key))
}

func (c *FreeCache) Clear() {
	c.cache.Clear()
}
