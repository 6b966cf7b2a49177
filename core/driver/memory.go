package driver

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
)

// ObjectType is the kind of object behind a handle.
type ObjectType string

const (
	ObjectTexture ObjectType = "texture"
	ObjectShader  ObjectType = "shader"
	ObjectBuffer  ObjectType = "buffer"
)

// Object describes a live driver object.
type Object struct {
	Type ObjectType
	// Size is the number of bytes (textures: pixels of every level * 4).
	Size int
	// Levels is the mip count for textures.
	Levels int
}

// Stats counts driver activity.
type Stats struct {
	Live    int `json:"live"`
	Created int `json:"created"`
	Deleted int `json:"deleted"`
	Bytes   int `json:"bytes"`
}

// Memory is an in-process Driver that tracks handles instead of talking to
// a GPU. It simulates context loss: LoseContext drops every object and
// rejects new ones until Restore.
type Memory struct {
	mu      sync.Mutex
	next    Handle
	objects map[Handle]Object
	lost    bool
	created int
	deleted int
}

// NewMemory returns an empty in-memory driver.
func NewMemory() *Memory {
	return &Memory{objects: make(map[Handle]Object)}
}

func (d *Memory) create(obj Object) (Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lost {
		return NoHandle, ErrContextLost
	}
	d.next++
	d.objects[d.next] = obj
	d.created++
	return d.next, nil
}

// CreateTexture implements Driver.
func (d *Memory) CreateTexture(levels []image.Image) (Handle, error) {
	if len(levels) == 0 {
		return NoHandle, errors.New("texture has no levels")
	}
	size := 0
	for _, l := range levels {
		b := l.Bounds()
		size += b.Dx() * b.Dy() * 4
	}
	return d.create(Object{Type: ObjectTexture, Size: size, Levels: len(levels)})
}

// CreateShader implements Driver.
func (d *Memory) CreateShader(source string) (Handle, error) {
	if strings.TrimSpace(source) == "" {
		return NoHandle, errors.New("empty shader source")
	}
	return d.create(Object{Type: ObjectShader, Size: len(source)})
}

// CreateBuffer implements Driver.
func (d *Memory) CreateBuffer(data []byte) (Handle, error) {
	return d.create(Object{Type: ObjectBuffer, Size: len(data)})
}

// Delete implements Driver. Deleting a handle twice fails with ErrUnknownHandle.
func (d *Memory) Delete(h Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.objects[h]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	delete(d.objects, h)
	d.deleted++
	return nil
}

// Object returns the live object behind h.
func (d *Memory) Object(h Handle) (Object, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj, ok := d.objects[h]
	return obj, ok
}

// LoseContext drops every object, as a platform does when the app is backgrounded.
func (d *Memory) LoseContext() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lost = true
	d.objects = make(map[Handle]Object)
}

// Restore accepts new objects again after LoseContext.
func (d *Memory) Restore() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lost = false
}

// Stats returns a snapshot of driver activity.
func (d *Memory) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Stats{Live: len(d.objects), Created: d.created, Deleted: d.deleted}
	for _, obj := range d.objects {
		s.Bytes += obj.Size
	}
	return s
}
