package rbtranslations

import (
	"context"
	"sync"
)

// defaultCatalogCapacity bounds the translator cache of a Catalogs helper.
const defaultCatalogCapacity = 64

// Catalogs manages translators for multiple basenames over one source,
// mirroring how an application keeps one properties family per component
// (e.g. "messages", "errors", "emails"). Translators are built lazily and
// kept in a bounded LRU cache.
type Catalogs struct {
	source  Source
	options []Option
	cache   *lruCache[string, *Translator]
	buildMu sync.Mutex
}

// NewCatalogs creates a Catalogs helper. A capacity <= 0 selects the
// default. The options are applied to every translator built.
func NewCatalogs(source Source, capacity int, options ...Option) *Catalogs {
	if capacity <= 0 {
		capacity = defaultCatalogCapacity
	}
	return &Catalogs{
		source:  source,
		options: options,
		cache:   newLRUCache[string, *Translator](capacity),
	}
}

// Translator returns the translator for a basename, building and caching it
// on first use. Concurrent callers for the same basename share one build.
func (c *Catalogs) Translator(ctx context.Context, basename string) (*Translator, error) {
	if t, ok := c.cache.get(basename); ok {
		return t, nil
	}

	// One build at a time: bundle resolution hits the source, and the
	// common case after a miss is many goroutines asking for the same
	// basename.
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	if t, ok := c.cache.get(basename); ok {
		return t, nil
	}

	t, err := NewTranslator(ctx, c.source, basename, c.options...)
	if err != nil {
		return nil, err
	}

	c.cache.put(basename, t)
	return t, nil
}

// Len reports how many translators are currently cached.
func (c *Catalogs) Len() int {
	return c.cache.len()
}

// Invalidate drops all cached translators, forcing fresh builds. Useful
// after catalog files changed when no Watcher is attached.
func (c *Catalogs) Invalidate() {
	c.cache.purge()
}
