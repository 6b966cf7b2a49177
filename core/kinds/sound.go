package kinds

import (
	"bytes"
	"context"
	"fmt"

	"resource-manager/core/driver"
	"resource-manager/core/resource"
	"resource-manager/core/source"
)

// Sound is an audio clip kept in a driver buffer.
type Sound struct {
	resource.Base
	slot

	data []byte
}

// Data returns the encoded clip.
func (s *Sound) Data() []byte {
	return s.data
}

// IsWAV reports whether the clip carries a RIFF/WAVE header.
func (s *Sound) IsWAV() bool {
	return len(s.data) >= 12 && bytes.Equal(s.data[0:4], []byte("RIFF")) && bytes.Equal(s.data[8:12], []byte("WAVE"))
}

// OnStorageLoad implements resource.Resource.
func (s *Sound) OnStorageLoad(ctx context.Context, env *resource.Env, id string, rawID int, data any) error {
	raw, err := source.ReadAll(ctx, env.Source, rawID)
	if err != nil {
		return err
	}
	return s.set(raw)
}

// OnCompressedStorageLoad implements resource.CompressedResource.
func (s *Sound) OnCompressedStorageLoad(ctx context.Context, env *resource.Env, cache resource.Loader, id string, archive resource.Archive, location string, data any) error {
	raw, err := readEntry(archive, location)
	if err != nil {
		return err
	}
	return s.set(raw)
}

func (s *Sound) set(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("sound clip is empty")
	}
	s.data = raw
	s.SetDriverDataDirty(true)
	return nil
}

func (s *Sound) upload(env *resource.Env) error {
	err := s.replace(env.Driver, func(d driver.Driver) (driver.Handle, error) {
		return d.CreateBuffer(s.data)
	})
	if err != nil {
		return fmt.Errorf("failed to upload sound %s: %w", s.ID(), err)
	}
	s.SetDriverDataDirty(false)
	return nil
}

// OnDriverLoad implements resource.Resource.
func (s *Sound) OnDriverLoad(env *resource.Env) error {
	return s.upload(env)
}

// OnPaused implements resource.Resource.
func (s *Sound) OnPaused(env *resource.Env) error {
	s.SetDriverDataDirty(true)
	return s.drop(env.Driver)
}

// OnResumed implements resource.Resource.
func (s *Sound) OnResumed(env *resource.Env) error {
	return s.upload(env)
}

// OnRelease implements resource.Resource.
func (s *Sound) OnRelease(env *resource.Env) error {
	s.data = nil
	return s.drop(env.Driver)
}
