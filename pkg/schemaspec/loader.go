package schemaspec

import (
	"os"
	"sync"
	"time"
)

// Loader loads schemas from YAML definition files on disk, caching the
// parsed *Schema by path with a TTL the same way pkg/kbin.Parser caches
// *kaitaistruct.KaitaiSchema (spec.md §3.4: schemas are immutable once
// built and meant to be reused across many decode calls, so re-parsing the
// same file on every call is pure waste).
type Loader struct {
	mu    sync.RWMutex
	cache map[string]cachedSchema
	ttl   time.Duration
	opts  []Option
}

type cachedSchema struct {
	schema   *Schema
	loadedAt time.Time
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCacheTTL sets how long a loaded schema stays valid before the next
// Load for the same path re-reads and re-parses the file. A zero TTL (the
// default) caches forever, matching pkg/kbin.WithCaching's "enabled with a
// timeout" semantics when the timeout is treated as "no expiry" at zero.
func WithCacheTTL(ttl time.Duration) LoaderOption {
	return func(l *Loader) { l.ttl = ttl }
}

// WithSchemaOptions sets the schemaspec.Option values applied to every
// schema this Loader parses (e.g. WithLogger, WithTolerantMissingKeys).
func WithSchemaOptions(opts ...Option) LoaderOption {
	return func(l *Loader) { l.opts = opts }
}

// NewLoader returns a Loader with an empty cache.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{cache: make(map[string]cachedSchema)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses the YAML schema file at path, returning the cached
// *Schema if one was loaded within the TTL window.
func (l *Loader) Load(path string) (*Schema, error) {
	if cached, ok := l.lookup(path); ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := FromYAML(data, l.opts...)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = cachedSchema{schema: schema, loadedAt: nowFunc()}
	l.mu.Unlock()

	return schema, nil
}

func (l *Loader) lookup(path string) (*Schema, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.cache[path]
	if !ok {
		return nil, false
	}
	if l.ttl > 0 && nowFunc().Sub(entry.loadedAt) > l.ttl {
		return nil, false
	}
	return entry.schema, true
}

// ClearCache empties the Loader's cache.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]cachedSchema)
}

// nowFunc is a seam for tests that need to simulate TTL expiry.
var nowFunc = time.Now
