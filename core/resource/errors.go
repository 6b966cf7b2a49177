package resource

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrUnknownKind is returned when no constructor is registered for a kind.
	ErrUnknownKind = errors.New("unknown resource kind")
	// ErrLoadFailed wraps every storage load failure.
	ErrLoadFailed = errors.New("resource load failed")
	// ErrNotLoaded is returned by a compressed load that declines without an underlying error.
	ErrNotLoaded = errors.New("resource not loaded")
	// ErrNotCompressed is returned when a kind cannot be loaded from an archive.
	ErrNotCompressed = errors.New("resource kind does not support compressed loads")
	// ErrSharedAlreadySet is returned when the shared manager is assigned twice.
	ErrSharedAlreadySet = errors.New("shared resource manager already set")
)

// PanicError is a recovered panic raised by a resource callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("resource callback panicked: %v", e.Value)
}

// safeCall runs fn and turns a panic into a *PanicError.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
