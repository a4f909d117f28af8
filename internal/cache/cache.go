// Package cache provides thread-safe generic caching and the rendered
// content cache used by the markdown pipeline.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

var renderedContentCache = NewCache[string, []byte]()

// Rendered content is keyed by content hash plus syntax theme, since the
// same markdown highlights differently per theme.
func GetRenderedContent(contentHash, syntaxTheme string) ([]byte, bool) {
	return renderedContentCache.Get(contentHash + ":" + syntaxTheme)
}

func SetRenderedContent(contentHash, syntaxTheme string, html []byte) {
	renderedContentCache.Set(contentHash+":"+syntaxTheme, html)
}

func ClearRenderedContentCache() {
	renderedContentCache.Clear()
}
