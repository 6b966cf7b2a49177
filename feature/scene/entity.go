package scene

import (
	"sync"

	"resource-manager/core/resource"
)

// Detacher drops one owner reference from a resource.
type Detacher interface {
	Detach(r resource.Resource) int
}

// Entity is a scene object owning the resources it was loaded with. It
// implements resource.Owner.
type Entity struct {
	name string

	mu        sync.Mutex
	resources []resource.Resource
}

// NewEntity creates an entity owning nothing.
func NewEntity(name string) *Entity {
	return &Entity{name: name}
}

// Name returns the entity name.
func (e *Entity) Name() string {
	return e.name
}

// AddResource implements resource.Owner. The manager calls it once per reference.
func (e *Entity) AddResource(r resource.Resource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources = append(e.resources, r)
}

// Resources returns the resources held, one element per reference.
func (e *Entity) Resources() []resource.Resource {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]resource.Resource, len(e.resources))
	copy(out, e.resources)
	return out
}

// Len returns the number of references held.
func (e *Entity) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.resources)
}

// Drop releases one reference to the resource with the given id. It
// reports false when the entity holds none.
func (e *Entity) Drop(d Detacher, id string) bool {
	e.mu.Lock()
	var found resource.Resource
	for i := len(e.resources) - 1; i >= 0; i-- {
		if e.resources[i].ID() == id {
			found = e.resources[i]
			e.resources = append(e.resources[:i], e.resources[i+1:]...)
			break
		}
	}
	e.mu.Unlock()

	if found == nil {
		return false
	}
	d.Detach(found)
	return true
}

// Destroy releases every reference the entity holds and returns how many
// were dropped.
func (e *Entity) Destroy(d Detacher) int {
	e.mu.Lock()
	held := e.resources
	e.resources = nil
	e.mu.Unlock()

	for _, r := range held {
		d.Detach(r)
	}
	return len(held)
}
