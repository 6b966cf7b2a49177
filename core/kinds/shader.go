package kinds

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"resource-manager/core/driver"
	"resource-manager/core/resource"
	"resource-manager/core/source"
)

// ShaderOptions are passed with resource.WithData to inject preprocessor defines.
type ShaderOptions struct {
	Defines map[string]string
}

// Shader is shader source compiled by the driver.
type Shader struct {
	resource.Base
	slot

	source string
}

// Source returns the shader source, defines included.
func (s *Shader) Source() string {
	return s.source
}

// OnStorageLoad implements resource.Resource.
func (s *Shader) OnStorageLoad(ctx context.Context, env *resource.Env, id string, rawID int, data any) error {
	src, err := source.ReadString(ctx, env.Source, rawID)
	if err != nil {
		return err
	}
	s.setSource(src, data)
	return nil
}

// OnCompressedStorageLoad implements resource.CompressedResource.
func (s *Shader) OnCompressedStorageLoad(ctx context.Context, env *resource.Env, cache resource.Loader, id string, archive resource.Archive, location string, data any) error {
	raw, err := readEntry(archive, location)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: %s is empty", resource.ErrNotLoaded, location)
	}
	s.setSource(string(raw), data)
	return nil
}

func (s *Shader) setSource(src string, data any) {
	var opts ShaderOptions
	switch v := data.(type) {
	case ShaderOptions:
		opts = v
	case *ShaderOptions:
		if v != nil {
			opts = *v
		}
	}

	if len(opts.Defines) > 0 {
		keys := make([]string, 0, len(opts.Defines))
		for k := range opts.Defines {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "#define %s %s\n", k, opts.Defines[k])
		}
		b.WriteString(src)
		src = b.String()
	}
	s.source = src
	s.SetDriverDataDirty(true)
}

func (s *Shader) compile(env *resource.Env) error {
	err := s.replace(env.Driver, func(d driver.Driver) (driver.Handle, error) {
		return d.CreateShader(s.source)
	})
	if err != nil {
		return fmt.Errorf("failed to compile shader %s: %w", s.ID(), err)
	}
	s.SetDriverDataDirty(false)
	return nil
}

// OnDriverLoad implements resource.Resource.
func (s *Shader) OnDriverLoad(env *resource.Env) error {
	return s.compile(env)
}

// OnPaused implements resource.Resource.
func (s *Shader) OnPaused(env *resource.Env) error {
	s.SetDriverDataDirty(true)
	return s.drop(env.Driver)
}

// OnResumed implements resource.Resource.
func (s *Shader) OnResumed(env *resource.Env) error {
	return s.compile(env)
}

// OnRelease implements resource.Resource.
func (s *Shader) OnRelease(env *resource.Env) error {
	return s.drop(env.Driver)
}
