package resource

import (
	"errors"
	"sync/atomic"
)

var shared atomic.Pointer[Manager]

// SetShared publishes m as the process-wide manager. It can be set once;
// later calls return ErrSharedAlreadySet. Only application wiring should
// call this; everything else takes a *Manager explicitly.
func SetShared(m *Manager) error {
	if m == nil {
		return errors.New("shared resource manager is nil")
	}
	if !shared.CompareAndSwap(nil, m) {
		return ErrSharedAlreadySet
	}
	return nil
}

// Shared returns the process-wide manager, or nil before SetShared.
func Shared() *Manager {
	return shared.Load()
}
