package runner

import (
	"path/filepath"

	"github.com/goliatone/go-lessonlint/internal/document"
)

type cacheEntry struct {
	doc *document.Document
	err error
}

// documentCache memoizes link-target parses by cleaned path for the
// duration of one batch run. Anchor sets are pure functions of the file
// contents, so sharing parsed documents cannot change any check result.
type documentCache struct {
	entries map[string]cacheEntry
}

func newDocumentCache() *documentCache {
	return &documentCache{entries: map[string]cacheEntry{}}
}

// Resolve satisfies engine.Resolver.
func (c *documentCache) Resolve(path string) (*document.Document, error) {
	key := filepath.Clean(path)
	if entry, ok := c.entries[key]; ok {
		return entry.doc, entry.err
	}
	doc, err := document.ParseFile(key)
	c.entries[key] = cacheEntry{doc: doc, err: err}
	return doc, err
}
