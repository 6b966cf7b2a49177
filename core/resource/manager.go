package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"resource-manager/core/archive"
	"resource-manager/core/driver"
)

// ErrArchiveAlreadySet is returned when an archive is configured twice.
var ErrArchiveAlreadySet = errors.New("archive already set")

// EntryInfo describes one cached resource.
type EntryInfo struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	RefCount int    `json:"ref_count"`
	Dirty    bool   `json:"dirty"`
}

// Manager deduplicates resource loads by identity, counts owner references
// and drives every cached resource through storage load, driver load,
// pause, resume and release.
//
// All operations run under a single mutex. Driver loads hold it too: a
// driver upload must never interleave with a pause or resume of the same
// resource, and the cost is one serialized pass per frame.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	registry *Registry
	cache    *Cache
	ids      Identities
	env      Env
	archive  Archive
	paused   bool
	logger   *zap.Logger
	metrics  *Metrics
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSource sets the raw storage source handed to resources.
func WithSource(s Source) ManagerOption {
	return func(m *Manager) { m.env.Source = s }
}

// WithDriver sets the rendering driver handed to resources.
func WithDriver(d driver.Driver) ManagerOption {
	return func(m *Manager) { m.env.Driver = d }
}

// WithMetrics records cache activity in metrics.
func WithMetrics(metrics *Metrics) ManagerOption {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager creates a manager instantiating resources from registry.
func NewManager(cfg Config, registry *Registry, logger *zap.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if cfg.CleanupPolicy == "" {
		cfg.CleanupPolicy = CleanupManual
	}
	m := &Manager{
		cfg:      cfg,
		registry: registry,
		cache:    NewCache(),
		logger:   logger,
	}
	m.env.MipmapLevel = cfg.DefaultMipmapLevel
	m.env.Logger = logger
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the manager configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// SetDefaultMipmapLevel sets the mipmap level handed to texture kinds.
func (m *Manager) SetDefaultMipmapLevel(level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env.MipmapLevel = level
}

// DefaultMipmapLevel returns the mipmap level handed to texture kinds.
func (m *Manager) DefaultMipmapLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env.MipmapLevel
}

// Env returns a copy of the environment handed to resource callbacks.
func (m *Manager) Env() Env {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env
}

// SetExpansionPack opens the archive at cfg.Path and uses it for compressed loads.
func (m *Manager) SetExpansionPack(cfg archive.Config) error {
	p, err := archive.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open expansion pack: %w", err)
	}
	if err := m.SetArchive(p); err != nil {
		_ = p.Close()
		return err
	}
	m.logger.Info("Expansion pack opened", zap.String("path", cfg.Path), zap.Int("entries", p.Len()))
	return nil
}

// SetArchive sets the archive used by compressed loads. It can be set once.
func (m *Manager) SetArchive(a Archive) error {
	if a == nil {
		return errors.New("archive is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.archive != nil {
		return ErrArchiveAlreadySet
	}
	m.archive = a
	return nil
}

// Close closes the archive, if it holds one that can be closed.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.archive.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Factory returns the resource cached under the requested identity, loading
// it on first use, and adds a reference for owner (which may be nil).
//
// Without WithID the identity is "genres_<rawID>", or a fresh "autores_<n>"
// when no raw id is given either.
func (m *Manager) Factory(ctx context.Context, kind Kind, owner Owner, opts ...Option) (Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.factory(ctx, kind, owner, newRequest(opts), nil)
}

// FactoryCompressed is Factory for resources stored in the expansion pack.
// The identity defaults to location.
func (m *Manager) FactoryCompressed(ctx context.Context, kind Kind, owner Owner, location string, opts ...Option) (CompressedResource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.factoryCompressed(ctx, kind, owner, location, newRequest(opts), nil)
}

// Get is Factory returning a concrete resource type.
func Get[T Resource](ctx context.Context, m *Manager, kind Kind, owner Owner, opts ...Option) (T, error) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.factory(ctx, kind, owner, newRequest(opts), expectType[T])
	if err != nil {
		return zero, err
	}
	return r.(T), nil
}

// GetCompressed is FactoryCompressed returning a concrete resource type.
func GetCompressed[T CompressedResource](ctx context.Context, m *Manager, kind Kind, owner Owner, location string, opts ...Option) (T, error) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.factoryCompressed(ctx, kind, owner, location, newRequest(opts), expectType[T])
	if err != nil {
		return zero, err
	}
	return r.(T), nil
}

func expectType[T Resource](r Resource) error {
	if _, ok := r.(T); !ok {
		var zero T
		return fmt.Errorf("resource %q is %T, expected %T", r.ID(), r, zero)
	}
	return nil
}

func (m *Manager) factory(ctx context.Context, kind Kind, owner Owner, req request, accept func(Resource) error) (Resource, error) {
	id := req.id
	if id == "" {
		id = m.ids.Next(req.rawID)
	}

	cached, _ := m.cache.Lookup(id)
	if cached != nil && accept != nil {
		if err := accept(cached); err != nil {
			return nil, err
		}
	}
	if tryAttachExisting(owner, cached) {
		m.metrics.hit()
		return cached, nil
	}
	m.metrics.miss()

	res, err := m.instantiate(kind, id, accept)
	if err != nil {
		return nil, err
	}

	env := &m.env
	err = safeCall(func() error {
		return res.OnStorageLoad(ctx, env, id, req.rawID, req.data)
	})
	if err != nil {
		m.metrics.loadFailed("storage")
		m.logLoadError(id, kind, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, id, err)
	}

	m.store(id, res)
	attach(owner, res)
	return res, nil
}

func (m *Manager) factoryCompressed(ctx context.Context, kind Kind, owner Owner, location string, req request, accept func(Resource) error) (CompressedResource, error) {
	id := req.id
	if id == "" {
		id = location
	}

	compressed := func(r Resource) error {
		if _, ok := r.(CompressedResource); !ok {
			return fmt.Errorf("%w: %s is %T", ErrNotCompressed, kind, r)
		}
		if accept != nil {
			return accept(r)
		}
		return nil
	}

	cached, _ := m.cache.Lookup(id)
	if cached != nil {
		if err := compressed(cached); err != nil {
			return nil, err
		}
	}
	if tryAttachExisting(owner, cached) {
		m.metrics.hit()
		return cached.(CompressedResource), nil
	}
	m.metrics.miss()

	res, err := m.instantiate(kind, id, compressed)
	if err != nil {
		return nil, err
	}
	cres := res.(CompressedResource)

	env := &m.env
	err = safeCall(func() error {
		return cres.OnCompressedStorageLoad(ctx, env, lockedLoader{m}, id, m.archive, location, req.data)
	})
	if err != nil {
		m.metrics.loadFailed("compressed")
		if errors.Is(err, ErrNotLoaded) {
			m.logger.Error("Unable to load compressed resource",
				zap.String("id", id),
				zap.String("location", location),
				zap.Error(err))
		} else {
			m.logLoadError(id, kind, err)
		}
		return nil, fmt.Errorf("%w: %s at %s: %w", ErrLoadFailed, id, location, err)
	}

	m.store(id, cres)
	attach(owner, cres)
	return cres, nil
}

func (m *Manager) instantiate(kind Kind, id string, accept func(Resource) error) (Resource, error) {
	res, err := m.registry.New(kind)
	if err == nil && accept != nil {
		err = accept(res)
	}
	if err != nil {
		m.metrics.loadFailed("instantiate")
		m.logLoadError(id, kind, err)
		return nil, err
	}
	return res, nil
}

func (m *Manager) store(id string, r Resource) {
	m.cache.Insert(id, r)
	r.SetID(id)
	m.metrics.setEntries(m.cache.Len())
}

func (m *Manager) logLoadError(id string, kind Kind, err error) {
	fields := []zap.Field{
		zap.String("id", id),
		zap.String("kind", string(kind)),
		zap.Error(err),
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		fields = append(fields, zap.ByteString("stack", pe.Stack))
	}
	m.logger.Error("Error loading resource", fields...)
}

// Register adds a resource built outside the factory path. A resource
// without an identity gets id, or a random UUID when id is empty. owner,
// if not nil, is attached and the reference counted like Factory does.
func (m *Manager) Register(r Resource, owner Owner, id string) error {
	if r == nil {
		return errors.New("cannot register a nil resource")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID() == "" {
		if id == "" {
			id = uuid.NewString()
		}
		r.SetID(id)
	}
	attach(owner, r)
	m.cache.Insert(r.ID(), r)
	m.metrics.setEntries(m.cache.Len())

	m.logger.Debug("Resource registered",
		zap.String("type", fmt.Sprintf("%T", r)),
		zap.String("id", r.ID()))
	return nil
}

// Detach drops one owner reference from r and returns the remaining count.
// With the immediate cleanup policy, a resource reaching zero is released.
func (m *Manager) Detach(r Resource) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := detach(r)
	if n == 0 && m.cfg.CleanupPolicy == CleanupImmediate && r.NeedsRelease() {
		if cur, ok := m.cache.Lookup(r.ID()); ok && cur == r {
			if err := m.evict(r.ID(), r); err != nil {
				m.logger.Warn("Failed to release resource", zap.String("id", r.ID()), zap.Error(err))
			}
		}
	}
	return n
}

// Lookup returns the cached resource for id without touching its references.
func (m *Manager) Lookup(id string) (Resource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Lookup(id)
}

// Len returns the number of cached resources.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// Entries describes every cached resource in insertion order.
func (m *Manager) Entries() []EntryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]EntryInfo, 0, m.cache.Len())
	m.cache.Each(func(id string, r Resource) bool {
		infos = append(infos, EntryInfo{
			ID:       id,
			Type:     fmt.Sprintf("%T", r),
			RefCount: r.RefCount(),
			Dirty:    r.IsDriverDataDirty(),
		})
		return true
	})
	return infos
}

// IsDataPaused reports whether driver data is currently paused.
func (m *Manager) IsDataPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// OnPaused releases the driver-side data of every cached resource. A
// resource failing to pause is logged and skipped.
func (m *Manager) OnPaused() {
	m.logger.Debug("Pausing resources")
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = true
	m.metrics.setPaused(true)
	env := &m.env
	m.cache.Each(func(id string, r Resource) bool {
		if err := safeCall(func() error { return r.OnPaused(env) }); err != nil {
			m.logger.Warn("Failed to pause resource", zap.String("id", id), zap.Error(err))
		}
		return true
	})
	m.logger.Debug("Resources paused", zap.Int("count", m.cache.Len()))
}

// OnResumed re-acquires the driver-side data of every cached resource. A
// resource failing to resume is logged and skipped.
func (m *Manager) OnResumed() {
	m.logger.Debug("Resuming resources")
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = false
	m.metrics.setPaused(false)
	env := &m.env
	m.cache.Each(func(id string, r Resource) bool {
		if err := safeCall(func() error { return r.OnResumed(env) }); err != nil {
			m.logger.Warn("Failed to resume resource", zap.String("id", id), zap.Error(err))
		}
		return true
	})
	m.logger.Debug("Resources resumed", zap.Int("count", m.cache.Len()))
}

// LoadAllToRenderer commits every dirty resource to the driver and returns
// how many were loaded. Call it from the goroutine that owns the driver.
func (m *Manager) LoadAllToRenderer() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	env := &m.env
	loaded := 0
	for _, r := range m.cache.Snapshot() {
		if !r.IsDriverDataDirty() {
			continue
		}
		if err := safeCall(func() error { return r.OnDriverLoad(env) }); err != nil {
			m.metrics.loadFailed("driver")
			m.logger.Error("Failed to load resource to driver", zap.String("id", r.ID()), zap.Error(err))
			continue
		}
		m.metrics.driverLoaded()
		loaded++
	}

	if m.cfg.CleanupPolicy == CleanupFrame {
		if _, err := m.cleanUp(); err != nil {
			m.logger.Warn("Cleanup after flush reported errors", zap.Error(err))
		}
	}
	return loaded
}

// CleanUp releases and evicts every resource no owner references any more.
// Release failures are collected; the entry is evicted regardless.
func (m *Manager) CleanUp() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanUp()
}

func (m *Manager) cleanUp() (int, error) {
	type victim struct {
		id string
		r  Resource
	}
	var victims []victim
	m.cache.Each(func(id string, r Resource) bool {
		if r.NeedsRelease() {
			victims = append(victims, victim{id: id, r: r})
		}
		return true
	})

	var errs error
	for _, v := range victims {
		errs = multierr.Append(errs, m.evict(v.id, v.r))
	}
	return len(victims), errs
}

func (m *Manager) evict(id string, r Resource) error {
	m.logger.Info("Removing resource",
		zap.String("type", fmt.Sprintf("%T", r)),
		zap.String("id", id))

	env := &m.env
	err := safeCall(func() error { return r.OnRelease(env) })
	m.cache.Remove(id)
	m.metrics.evicted()
	m.metrics.setEntries(m.cache.Len())
	if err != nil {
		return fmt.Errorf("release %s: %w", id, err)
	}
	return nil
}

// lockedLoader routes nested loads issued from a compressed load callback
// through the manager without re-acquiring its lock. It is only valid for
// the duration of that callback.
type lockedLoader struct {
	m *Manager
}

func (l lockedLoader) Factory(ctx context.Context, kind Kind, owner Owner, opts ...Option) (Resource, error) {
	return l.m.factory(ctx, kind, owner, newRequest(opts), nil)
}

func (l lockedLoader) FactoryCompressed(ctx context.Context, kind Kind, owner Owner, location string, opts ...Option) (CompressedResource, error) {
	return l.m.factoryCompressed(ctx, kind, owner, location, newRequest(opts), nil)
}
