package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	kindFake       Kind = "fake"
	kindCompressed Kind = "compressed"
)

// fakeResource counts every lifecycle callback.
type fakeResource struct {
	Base

	storageLoads atomic.Int32
	driverLoads  atomic.Int32
	pauses       atomic.Int32
	resumes      atomic.Int32
	releases     atomic.Int32

	rawID       int
	data        any
	mipmapLevel int

	loadDelay  time.Duration
	loadErr    error
	loadPanic  bool
	driverErr  error
	pauseErr   error
	releaseErr error
}

func (f *fakeResource) OnStorageLoad(ctx context.Context, env *Env, id string, rawID int, data any) error {
	f.storageLoads.Add(1)
	if f.loadDelay > 0 {
		time.Sleep(f.loadDelay)
	}
	if f.loadPanic {
		panic("corrupt asset")
	}
	if f.loadErr != nil {
		return f.loadErr
	}
	f.rawID = rawID
	f.data = data
	f.mipmapLevel = env.MipmapLevel
	f.SetDriverDataDirty(true)
	return nil
}

func (f *fakeResource) OnDriverLoad(env *Env) error {
	f.driverLoads.Add(1)
	if f.driverErr != nil {
		return f.driverErr
	}
	f.SetDriverDataDirty(false)
	return nil
}

func (f *fakeResource) OnPaused(env *Env) error {
	f.pauses.Add(1)
	if f.pauseErr != nil {
		return f.pauseErr
	}
	f.SetDriverDataDirty(true)
	return nil
}

func (f *fakeResource) OnResumed(env *Env) error {
	f.resumes.Add(1)
	return nil
}

func (f *fakeResource) OnRelease(env *Env) error {
	f.releases.Add(1)
	return f.releaseErr
}

// fakeCompressed reads its payload from the archive. Data of the form
// "dep:<id>" also pulls a fake resource through the nested loader.
type fakeCompressed struct {
	fakeResource

	compressedLoads atomic.Int32
	payload         []byte
	dep             Resource
}

func (f *fakeCompressed) OnCompressedStorageLoad(ctx context.Context, env *Env, cache Loader, id string, archive Archive, location string, data any) error {
	f.compressedLoads.Add(1)
	if archive == nil {
		return fmt.Errorf("%w: no archive", ErrNotLoaded)
	}
	payload, err := archive.ReadFile(location)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return ErrNotLoaded
	}
	if s, ok := data.(string); ok {
		if depID, ok := strings.CutPrefix(s, "dep:"); ok {
			dep, err := cache.Factory(ctx, kindFake, nil, WithID(depID))
			if err != nil {
				return err
			}
			f.dep = dep
		}
	}
	f.payload = payload
	f.SetDriverDataDirty(true)
	return nil
}

// fakeFactory builds fake resources and remembers them.
type fakeFactory struct {
	mu      sync.Mutex
	created []*fakeResource
	setup   func(*fakeResource)
}

func (f *fakeFactory) constructor() (Resource, error) {
	r := &fakeResource{}
	if f.setup != nil {
		f.setup(r)
	}
	f.mu.Lock()
	f.created = append(f.created, r)
	f.mu.Unlock()
	return r, nil
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// fakeOwner records attached resources.
type fakeOwner struct {
	mu        sync.Mutex
	resources []Resource
}

func (o *fakeOwner) AddResource(r Resource) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resources = append(o.resources, r)
}

func (o *fakeOwner) holds(r Resource) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, held := range o.resources {
		if held == r {
			return true
		}
	}
	return false
}

// mapArchive is an in-memory Archive.
type mapArchive map[string][]byte

var errNoEntry = errors.New("no such entry")

func (a mapArchive) ReadFile(name string) ([]byte, error) {
	data, ok := a[name]
	if !ok {
		return nil, errNoEntry
	}
	return data, nil
}

func newTestManager(cfg Config, setup func(*fakeResource), opts ...ManagerOption) (*Manager, *fakeFactory) {
	factory := &fakeFactory{setup: setup}
	reg := NewRegistry()
	reg.Register(kindFake, factory.constructor)
	RegisterType[fakeCompressed](reg, kindCompressed)
	return NewManager(cfg, reg, nil, opts...), factory
}
