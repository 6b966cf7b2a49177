// Package resource provides the reference-counted resource cache that sits
// between renderable entities and driver-backed assets (textures, shaders,
// sounds, archive entries).
//
// # Lifecycle
//
// A resource is created by the first Factory call for its identity: it is
// loaded from storage, inserted in the cache and flagged dirty. The render
// goroutine then calls LoadAllToRenderer, which commits dirty resources to
// the driver. When the driver context is lost the application calls
// OnPaused (handles released, data kept) and later OnResumed. Resources
// whose owners have all detached are evicted by CleanUp, according to the
// configured cleanup policy.
//
// # Identity
//
// Requests are deduplicated by identity:
//   - WithID("k") uses "k"
//   - WithRawID(7) without an id uses "genres_7"
//   - neither uses a fresh "autores_<n>"
//   - FactoryCompressed defaults to the archive location
//
// Storage load runs at most once per identity while it is cached.
//
// # Concurrency
//
// Manager serializes every operation behind one mutex, so two racing
// requests for a new identity load it once. The cache keeps a
// copy-on-write snapshot for the flush pass.
//
// # Usage
//
//	reg := resource.NewRegistry()
//	kinds.RegisterAll(reg)
//	m := resource.NewManager(cfg.Resources, reg, log, resource.WithDriver(drv))
//
//	tex, err := resource.Get[*kinds.Texture](ctx, m, kinds.KindTexture, entity, resource.WithRawID(7))
//	m.LoadAllToRenderer()
package resource
