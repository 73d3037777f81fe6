package pubkit

import (
	"io/fs"
	"sync"
	"time"
)

// ArticleCache is an in-memory cache of parsed articles keyed by path. An
// entry stays valid while the file's size and modification time are
// unchanged, so dev-server rebuilds only re-parse edited files.
type ArticleCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	article Article
}

// NewArticleCache creates an empty ArticleCache.
func NewArticleCache() *ArticleCache {
	return &ArticleCache{entries: make(map[string]cacheEntry)}
}

func (c *ArticleCache) get(path string, info fs.FileInfo) (Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || e.size != info.Size() || !e.modTime.Equal(info.ModTime()) {
		return Article{}, false
	}
	return e.article, true
}

func (c *ArticleCache) put(path string, info fs.FileInfo, a Article) {
	c.mu.Lock()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), article: a}
	c.mu.Unlock()
}

// retain drops entries for files that were not seen in the latest walk.
func (c *ArticleCache) retain(seen map[string]struct{}) {
	c.mu.Lock()
	for p := range c.entries {
		if _, ok := seen[p]; !ok {
			delete(c.entries, p)
		}
	}
	c.mu.Unlock()
}

// Invalidate clears the cache so the next load parses every file.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Len returns the number of cached articles.
func (c *ArticleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// WithCache reuses parsed articles across builds of the same Builder.
func WithCache(c *ArticleCache) Option {
	return func(b *Builder) {
		b.cache = c
	}
}
