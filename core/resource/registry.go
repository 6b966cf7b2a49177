package resource

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds an empty, unloaded resource of one kind.
type Constructor func() (Resource, error)

// Registry maps kind tags to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[Kind]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[Kind]Constructor)}
}

// Register binds kind to ctor, replacing any earlier binding.
func (r *Registry) Register(kind Kind, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[kind] = ctor
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New instantiates a resource of the given kind.
func (r *Registry) New(kind Kind) (Resource, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var res Resource
	err := safeCall(func() error {
		var err error
		res, err = ctor()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate %q: %w", kind, err)
	}
	if res == nil {
		return nil, fmt.Errorf("failed to instantiate %q: constructor returned nil", kind)
	}
	return res, nil
}

// RegisterType binds kind to a constructor for *T, where *T is a Resource.
func RegisterType[T any, PT interface {
	*T
	Resource
}](r *Registry, kind Kind) {
	r.Register(kind, func() (Resource, error) {
		return PT(new(T)), nil
	})
}
