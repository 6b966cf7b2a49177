package resource

import (
	"context"
	"io"

	"go.uber.org/zap"

	"resource-manager/core/driver"
)

// Kind tags a family of resources (texture, shader, sound...).
type Kind string

// NoRawID marks a request without a raw storage id.
const NoRawID = -1

// Resource is the capability contract every cacheable asset implements.
// The Manager only ever talks to resources through this interface.
type Resource interface {
	// ID returns the cache identity, empty until assigned.
	ID() string
	// SetID assigns the cache identity. Implementations ignore later calls.
	SetID(id string)

	// AddRef adds an owner reference and returns the new count.
	AddRef() int
	// Release drops an owner reference and returns the new count. Never below zero.
	Release() int
	// RefCount returns the number of owner references.
	RefCount() int
	// NeedsRelease reports whether the resource can be evicted.
	NeedsRelease() bool

	// IsDriverDataDirty reports whether in-memory data is newer than the driver copy.
	IsDriverDataDirty() bool

	// OnStorageLoad populates the in-memory representation from raw storage.
	OnStorageLoad(ctx context.Context, env *Env, id string, rawID int, data any) error
	// OnDriverLoad commits in-memory data to the driver and clears the dirty flag.
	OnDriverLoad(env *Env) error
	// OnPaused releases driver-side handles after a context loss.
	OnPaused(env *Env) error
	// OnResumed re-acquires driver-side handles.
	OnResumed(env *Env) error
	// OnRelease frees everything before the resource leaves the cache.
	OnRelease(env *Env) error
}

// CompressedResource is a Resource that can also be read from an archive entry.
type CompressedResource interface {
	Resource

	// OnCompressedStorageLoad populates the resource from the archive entry at location.
	// archive may be nil when no expansion pack is configured. Return ErrNotLoaded
	// (possibly wrapped) to refuse the load without a lower level failure.
	OnCompressedStorageLoad(ctx context.Context, env *Env, cache Loader, id string, archive Archive, location string, data any) error
}

// Owner is an entity that holds counted references to resources.
type Owner interface {
	AddResource(r Resource)
}

// Source reads raw asset bytes addressed by a raw storage id.
type Source interface {
	Open(ctx context.Context, rawID int) (io.ReadCloser, error)
}

// Archive is a read-only container of compressed assets.
type Archive interface {
	ReadFile(name string) ([]byte, error)
}

// Loader is handed to compressed loads so they can pull dependent resources
// through the same cache while the Manager is mid-load.
type Loader interface {
	Factory(ctx context.Context, kind Kind, owner Owner, opts ...Option) (Resource, error)
	FactoryCompressed(ctx context.Context, kind Kind, owner Owner, location string, opts ...Option) (CompressedResource, error)
}

// Env carries the collaborators passed to every lifecycle callback.
type Env struct {
	// Source provides raw storage bytes. May be nil.
	Source Source
	// Driver is the rendering driver owned by the surrounding application.
	Driver driver.Driver
	// MipmapLevel is the default mipmap level for texture kinds.
	MipmapLevel int
	// Logger is never nil inside callbacks.
	Logger *zap.Logger
}
