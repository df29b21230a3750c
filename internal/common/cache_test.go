package common

import (
	"testing"
	"time"
)

func setupTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_SetGet(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set(CacheKeyBlog("abc"), "value")

	if _, ok := cache.Get(CacheKeyBlog("abc")); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_SetWithExpiration(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set("key", "value", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("expected key to be expired")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}
