package resource

import "sync/atomic"

// Cache maps identities to resources and keeps a copy-on-write snapshot of
// its values for iteration.
//
// Mutations are not synchronized; the Manager serializes them. Snapshot can
// be read from any goroutine: it only ever sees a fully built slice.
type Cache struct {
	entries  map[string]Resource
	order    []string
	snapshot atomic.Pointer[[]Resource]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	c := &Cache{entries: make(map[string]Resource)}
	empty := []Resource{}
	c.snapshot.Store(&empty)
	return c
}

// Lookup returns the resource stored under id.
func (c *Cache) Lookup(id string) (Resource, bool) {
	r, ok := c.entries[id]
	return r, ok
}

// Insert stores r under id, replacing any previous entry, and rebuilds the snapshot.
func (c *Cache) Insert(id string, r Resource) {
	if _, exists := c.entries[id]; !exists {
		c.order = append(c.order, id)
	}
	c.entries[id] = r
	c.rebuild()
}

// Remove deletes the entry for id and rebuilds the snapshot.
func (c *Cache) Remove(id string) bool {
	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	order := c.order[:0]
	for _, k := range c.order {
		if k != id {
			order = append(order, k)
		}
	}
	c.order = order
	c.rebuild()
	return true
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Each visits the live entries in insertion order until fn returns false.
func (c *Cache) Each(fn func(id string, r Resource) bool) {
	for _, id := range c.order {
		if !fn(id, c.entries[id]) {
			return
		}
	}
}

// Snapshot returns the last materialized copy of the cached resources.
// The returned slice must not be modified.
func (c *Cache) Snapshot() []Resource {
	return *c.snapshot.Load()
}

func (c *Cache) rebuild() {
	values := make([]Resource, 0, len(c.order))
	for _, id := range c.order {
		values = append(values, c.entries[id])
	}
	c.snapshot.Store(&values)
}
