package kinds

import (
	"errors"
	"fmt"

	"resource-manager/core/driver"
	"resource-manager/core/resource"
)

// Resource kinds provided by this package.
const (
	KindTexture resource.Kind = "texture"
	KindShader  resource.Kind = "shader"
	KindSound   resource.Kind = "sound"
)

// ErrNoDriver is returned by driver callbacks when the environment has no driver.
var ErrNoDriver = errors.New("no driver configured")

// RegisterAll binds every kind of this package in reg.
func RegisterAll(reg *resource.Registry) {
	resource.RegisterType[Texture](reg, KindTexture)
	resource.RegisterType[Shader](reg, KindShader)
	resource.RegisterType[Sound](reg, KindSound)
}

// slot owns at most one driver handle.
type slot struct {
	handle driver.Handle
}

// Handle returns the driver handle, NoHandle while not loaded.
func (s *slot) Handle() driver.Handle {
	return s.handle
}

func (s *slot) replace(d driver.Driver, create func(driver.Driver) (driver.Handle, error)) error {
	if d == nil {
		return ErrNoDriver
	}
	h, err := create(d)
	if err != nil {
		return err
	}
	if err := s.drop(d); err != nil {
		_ = d.Delete(h)
		return err
	}
	s.handle = h
	return nil
}

// drop deletes the handle. A handle the driver already lost counts as deleted.
func (s *slot) drop(d driver.Driver) error {
	if s.handle == driver.NoHandle {
		return nil
	}
	if d == nil {
		return ErrNoDriver
	}
	h := s.handle
	s.handle = driver.NoHandle
	if err := d.Delete(h); err != nil && !errors.Is(err, driver.ErrUnknownHandle) {
		return fmt.Errorf("failed to delete handle %d: %w", h, err)
	}
	return nil
}

// readEntry reads location from archive, mapping a missing archive or
// entry to resource.ErrNotLoaded.
func readEntry(archive resource.Archive, location string) ([]byte, error) {
	if archive == nil {
		return nil, fmt.Errorf("%w: no archive for %s", resource.ErrNotLoaded, location)
	}
	data, err := archive.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", resource.ErrNotLoaded, err)
	}
	return data, nil
}
