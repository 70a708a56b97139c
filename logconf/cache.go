package logconf

import (
	"sync"
)

// DefaultCache is the process-wide Cache used when Options.Cache is nil.
var DefaultCache = new(Cache)

// Cache holds a parsed logging Document.
//
// The first successful Load parses the document and keeps it;
// every later Load returns a copy of the kept document without parsing,
// even if called with a different path.
// A failed or empty parse keeps nothing, so the next Load parses again.
//
// The zero value is ready to use and safe for concurrent use.
type Cache struct {
	mu   sync.Mutex
	doc  *Document
	path string
}

// ParseFunc parses the logging document at path.
type ParseFunc func(path string) (*Document, error)

// Load returns a copy of the cached document, parsing path with parse first
// if the cache is empty.
func (c *Cache) Load(path string, parse ParseFunc) (*Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		doc, err := parse(path)
		if err != nil {
			return nil, err
		}
		if doc.IsEmpty() {
			return nil, ErrEmptyDocument
		}
		c.doc = doc
		c.path = path
	}
	return c.doc.Clone(), nil
}

// Original returns a copy of the cached document as parsed,
// or nil if nothing is cached.
func (c *Cache) Original() *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Path returns the path the cached document was parsed from.
func (c *Cache) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Reset drops the cached document.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = nil
	c.path = ""
}
