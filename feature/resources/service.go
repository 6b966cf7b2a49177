package resources

import (
	"context"
	"errors"
	"fmt"

	"resource-manager/core/catalog"
	"resource-manager/core/driver"
	"resource-manager/core/resource"
	"resource-manager/feature/scene"

	"go.uber.org/zap"
)

// PinOwner is the entity holding resources loaded through the admin API.
const PinOwner = "admin"

var (
	// ErrNotFound is returned for an identity that is not cached.
	ErrNotFound = errors.New("resource not cached")
	// ErrInvalidRequest is returned for a load request missing its kind or address.
	ErrInvalidRequest = errors.New("invalid load request")
)

// Resolver looks up catalog rows by raw id.
type Resolver interface {
	Resolve(ctx context.Context, rawID int) (catalog.Asset, error)
}

// StatsProvider reports driver object counts.
type StatsProvider interface {
	Stats() driver.Stats
}

// Status summarizes the manager state.
type Status struct {
	Entries       int           `json:"entries"`
	Paused        bool          `json:"paused"`
	CleanupPolicy string        `json:"cleanup_policy"`
	MipmapLevel   int           `json:"mipmap_level"`
	Kinds         []string      `json:"kinds"`
	Pinned        int           `json:"pinned"`
	Driver        *driver.Stats `json:"driver,omitempty"`
}

// LoadRequest asks for a resource to be loaded and pinned.
type LoadRequest struct {
	// Kind is the resource kind. Optional with a raw id known to the catalog.
	Kind string `json:"kind"`
	// ID overrides the cache identity.
	ID string `json:"id"`
	// RawID addresses the raw source.
	RawID *int `json:"raw_id"`
	// Location addresses an expansion pack entry instead of the raw source.
	Location string `json:"location"`
}

// CleanupResult reports an eviction pass.
type CleanupResult struct {
	Evicted int    `json:"evicted"`
	Error   string `json:"error,omitempty"`
}

// Service exposes the resource manager to the admin API.
type Service struct {
	manager  *resource.Manager
	registry *resource.Registry
	scene    *scene.Scene
	catalog  Resolver
	stats    StatsProvider
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCatalog resolves the kind of raw-id loads that omit it.
func WithCatalog(r Resolver) Option {
	return func(s *Service) { s.catalog = r }
}

// WithStats includes driver statistics in Status.
func WithStats(p StatsProvider) Option {
	return func(s *Service) { s.stats = p }
}

// NewService creates a new resources service.
func NewService(manager *resource.Manager, registry *resource.Registry, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		manager:  manager,
		registry: registry,
		scene:    scene.New(manager, logger),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entries lists the cached resources.
func (s *Service) Entries() []resource.EntryInfo {
	return s.manager.Entries()
}

// Entry describes the cached resource with the given identity.
func (s *Service) Entry(id string) (resource.EntryInfo, error) {
	for _, e := range s.manager.Entries() {
		if e.ID == id {
			return e, nil
		}
	}
	return resource.EntryInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Status summarizes the manager state.
func (s *Service) Status() Status {
	cfg := s.manager.Config()
	st := Status{
		Entries:       s.manager.Len(),
		Paused:        s.manager.IsDataPaused(),
		CleanupPolicy: cfg.CleanupPolicy,
		MipmapLevel:   s.manager.DefaultMipmapLevel(),
		Kinds:         []string{},
	}
	if s.registry != nil {
		for _, k := range s.registry.Kinds() {
			st.Kinds = append(st.Kinds, string(k))
		}
	}
	if e, ok := s.scene.Entity(PinOwner); ok {
		st.Pinned = e.Len()
	}
	if s.stats != nil {
		ds := s.stats.Stats()
		st.Driver = &ds
	}
	return st
}

// Load loads the requested resource and pins it to the admin owner.
func (s *Service) Load(ctx context.Context, req LoadRequest) (resource.EntryInfo, error) {
	if req.Location == "" && req.RawID == nil && req.ID == "" {
		return resource.EntryInfo{}, fmt.Errorf("%w: one of raw_id, location or id is required", ErrInvalidRequest)
	}

	kind := req.Kind
	if kind == "" && req.RawID != nil && s.catalog != nil {
		asset, err := s.catalog.Resolve(ctx, *req.RawID)
		if err != nil {
			return resource.EntryInfo{}, err
		}
		kind = asset.Kind
	}
	if kind == "" {
		return resource.EntryInfo{}, fmt.Errorf("%w: kind is required", ErrInvalidRequest)
	}

	var opts []resource.Option
	if req.ID != "" {
		opts = append(opts, resource.WithID(req.ID))
	}
	if req.RawID != nil {
		opts = append(opts, resource.WithRawID(*req.RawID))
	}

	var (
		r   resource.Resource
		err error
	)
	if req.Location != "" {
		r, err = s.scene.LoadCompressed(ctx, PinOwner, resource.Kind(kind), req.Location, opts...)
	} else {
		r, err = s.scene.Load(ctx, PinOwner, resource.Kind(kind), opts...)
	}
	if err != nil {
		return resource.EntryInfo{}, err
	}

	s.logger.Info("Resource pinned", zap.String("id", r.ID()), zap.String("kind", kind))
	return s.Entry(r.ID())
}

// Unpin drops one admin reference to the resource with the given identity.
func (s *Service) Unpin(id string) error {
	e, ok := s.scene.Entity(PinOwner)
	if !ok || !e.Drop(s.manager, id) {
		return fmt.Errorf("%w: %s is not pinned", ErrNotFound, id)
	}
	return nil
}

// Pause releases driver data of every cached resource.
func (s *Service) Pause() {
	s.manager.OnPaused()
}

// Resume re-acquires driver data of every cached resource.
func (s *Service) Resume() {
	s.manager.OnResumed()
}

// Flush commits dirty resources to the driver.
func (s *Service) Flush() int {
	return s.manager.LoadAllToRenderer()
}

// CleanUp evicts every unreferenced resource.
func (s *Service) CleanUp() CleanupResult {
	n, err := s.manager.CleanUp()
	res := CleanupResult{Evicted: n}
	if err != nil {
		s.logger.Warn("Cleanup reported errors", zap.Error(err))
		res.Error = err.Error()
	}
	return res
}
