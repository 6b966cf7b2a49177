package driver

import (
	"errors"
	"image"
)

// Handle identifies a driver-side object. The zero Handle is never valid.
type Handle uint32

// NoHandle is the zero, invalid handle.
const NoHandle Handle = 0

var (
	// ErrUnknownHandle is returned when deleting a handle the driver does not own.
	ErrUnknownHandle = errors.New("unknown driver handle")
	// ErrContextLost is returned while the driver context is lost.
	ErrContextLost = errors.New("driver context lost")
)

// Driver is the rendering subsystem resources commit their data to.
// Calls are only made from the goroutine that owns the driver context.
type Driver interface {
	// CreateTexture uploads a mip chain, base level first.
	CreateTexture(levels []image.Image) (Handle, error)
	// CreateShader compiles shader source.
	CreateShader(source string) (Handle, error)
	// CreateBuffer uploads raw bytes, e.g. decoded audio.
	CreateBuffer(data []byte) (Handle, error)
	// Delete frees a handle.
	Delete(h Handle) error
}
