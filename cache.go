package shadergraph

import (
	"sync"
)

// ProgramCache stores compiled shaders across passes, keyed by the caller
// (typically by source text plus stage). Eviction is deliberately naive:
// an explicit Clear, plus a size-threshold clear-all when MaxEntries is
// exceeded. There is no timestamp-based expiry.
type ProgramCache struct {
	mu      sync.Mutex
	entries map[string]*Shader

	// MaxEntries caps the cache size; inserting past the cap empties the
	// cache first. Zero means unbounded.
	MaxEntries int
}

// NewProgramCache creates a cache with the given size threshold.
func NewProgramCache(maxEntries int) *ProgramCache {
	return &ProgramCache{
		entries:    make(map[string]*Shader),
		MaxEntries: maxEntries,
	}
}

// Get returns the cached shader for the key, if present.
func (c *ProgramCache) Get(key string) (*Shader, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	shader, ok := c.entries[key]
	return shader, ok
}

// Put stores a shader under the key.
func (c *ProgramCache) Put(key string, shader *Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.MaxEntries > 0 && len(c.entries) >= c.MaxEntries {
		if _, exists := c.entries[key]; !exists {
			c.entries = make(map[string]*Shader)
		}
	}
	c.entries[key] = shader
}

// GetOrCompile returns the cached shader for the key, compiling and
// storing it on a miss. Concurrent callers may compile the same key more
// than once; the first stored result is not guaranteed to win.
func (c *ProgramCache) GetOrCompile(key string, compile func() (*Shader, error)) (*Shader, error) {
	if shader, ok := c.Get(key); ok {
		return shader, nil
	}
	shader, err := compile()
	if err != nil {
		return nil, err
	}
	c.Put(key, shader)
	return shader, nil
}

// Clear removes all entries.
func (c *ProgramCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Shader)
}

// Len returns the number of cached shaders.
func (c *ProgramCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
