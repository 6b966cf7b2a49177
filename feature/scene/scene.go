package scene

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"resource-manager/core/resource"

	"go.uber.org/zap"
)

// Scene keeps named entities whose resources come from one manager.
type Scene struct {
	manager *resource.Manager
	logger  *zap.Logger

	mu       sync.Mutex
	entities map[string]*Entity
}

// New creates an empty scene loading through manager.
func New(manager *resource.Manager, logger *zap.Logger) *Scene {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scene{
		manager:  manager,
		logger:   logger,
		entities: make(map[string]*Entity),
	}
}

// Spawn returns the entity called name, creating it if needed.
func (s *Scene) Spawn(name string) *Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entities[name]; ok {
		return e
	}
	e := NewEntity(name)
	s.entities[name] = e
	return e
}

// Entity returns the entity called name.
func (s *Scene) Entity(name string) (*Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[name]
	return e, ok
}

// Names returns the entity names, sorted.
func (s *Scene) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entities))
	for name := range s.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load loads a resource through the manager on behalf of the named entity.
func (s *Scene) Load(ctx context.Context, name string, kind resource.Kind, opts ...resource.Option) (resource.Resource, error) {
	e := s.Spawn(name)
	r, err := s.manager.Factory(ctx, kind, e, opts...)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", name, err)
	}
	return r, nil
}

// LoadCompressed loads a resource from the expansion pack on behalf of the
// named entity.
func (s *Scene) LoadCompressed(ctx context.Context, name string, kind resource.Kind, location string, opts ...resource.Option) (resource.Resource, error) {
	e := s.Spawn(name)
	r, err := s.manager.FactoryCompressed(ctx, kind, e, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", name, err)
	}
	return r, nil
}

// Despawn destroys the entity called name, releasing its references.
func (s *Scene) Despawn(name string) bool {
	s.mu.Lock()
	e, ok := s.entities[name]
	delete(s.entities, name)
	s.mu.Unlock()

	if !ok {
		return false
	}
	n := e.Destroy(s.manager)
	s.logger.Debug("Entity despawned", zap.String("entity", name), zap.Int("released", n))
	return true
}

// Clear despawns every entity.
func (s *Scene) Clear() {
	for _, name := range s.Names() {
		s.Despawn(name)
	}
}
