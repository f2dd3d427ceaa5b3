package api

import "sync"

// renderCache keeps rendered documents whose content depends only on the
// archetype, so angle changes inside one interval reuse the same bytes.
type renderCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newRenderCache() *renderCache {
	return &renderCache{entries: make(map[string][]byte)}
}

// get returns the cached document for key, rendering and storing it on a
// miss. Errors are not cached.
func (c *renderCache) get(key string, render func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	b, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return b, nil
	}

	b, err := render()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = b
	c.mu.Unlock()
	return b, nil
}

func (c *renderCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
