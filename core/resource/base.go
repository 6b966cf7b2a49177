package resource

import "sync"

// Base implements the bookkeeping half of Resource: identity, reference
// count and the driver dirty flag. Resource kinds embed it and provide the
// lifecycle callbacks.
type Base struct {
	mu       sync.Mutex
	id       string
	refCount int
	dirty    bool
}

// ID returns the cache identity.
func (b *Base) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// SetID assigns the identity once. Later calls are ignored.
func (b *Base) SetID(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.id == "" {
		b.id = id
	}
}

// AddRef increments the reference count.
func (b *Base) AddRef() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refCount++
	return b.refCount
}

// Release decrements the reference count, stopping at zero.
func (b *Base) Release() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refCount > 0 {
		b.refCount--
	}
	return b.refCount
}

// RefCount returns the current reference count.
func (b *Base) RefCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refCount
}

// NeedsRelease reports true once every owner has detached.
func (b *Base) NeedsRelease() bool {
	return b.RefCount() == 0
}

// IsDriverDataDirty reports whether the driver copy is stale.
func (b *Base) IsDriverDataDirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// SetDriverDataDirty flags or clears the driver copy as stale.
func (b *Base) SetDriverDataDirty(dirty bool) {
	b.mu.Lock()
	b.dirty = dirty
	b.mu.Unlock()
}
