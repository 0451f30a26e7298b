package pipeline

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/doctest/internal/example"
)

// ExtractionCache memoizes per-file extraction results across pipeline runs,
// keyed by path plus file metadata so edits invalidate naturally. Used by
// watch mode; one-shot builds don't need it.
type ExtractionCache struct {
	cache otter.Cache[string, []example.Example]
}

// NewExtractionCache builds a cache holding up to capacity file entries.
func NewExtractionCache(capacity int) (*ExtractionCache, error) {
	cache, err := otter.MustBuilder[string, []example.Example](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("building extraction cache: %w", err)
	}
	return &ExtractionCache{cache: cache}, nil
}

// Get returns the cached examples for path if the file is unchanged since
// they were stored.
func (c *ExtractionCache) Get(path string) ([]example.Example, bool) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// Put stores the examples extracted from path.
func (c *ExtractionCache) Put(path string, examples []example.Example) {
	key, err := cacheKey(path)
	if err != nil {
		return
	}
	c.cache.Set(key, examples)
}

func cacheKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size()), nil
}
