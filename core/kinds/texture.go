package kinds

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"resource-manager/core/driver"
	"resource-manager/core/resource"
	"resource-manager/core/source"
	"resource-manager/core/utils"
)

// TextureOptions tune how a texture is prepared. Pass them with
// resource.WithData, either as a value or as a map with the keys
// "mipmaps" and "filter".
type TextureOptions struct {
	// MipmapLevels is the number of levels below the base image. Negative uses the manager default.
	MipmapLevels int
	// Filter is "linear" (default) or "nearest".
	Filter string
}

func textureOptions(data any, defaultLevels int) TextureOptions {
	opts := TextureOptions{MipmapLevels: -1}
	switch v := data.(type) {
	case TextureOptions:
		opts = v
	case *TextureOptions:
		if v != nil {
			opts = *v
		}
	case map[string]any:
		if l, ok := v["mipmaps"]; ok {
			opts.MipmapLevels = utils.ToInt(l)
		}
		if f, ok := v["filter"]; ok {
			opts.Filter = utils.ToString(f)
		}
	}
	if opts.MipmapLevels < 0 {
		opts.MipmapLevels = defaultLevels
	}
	return opts
}

// Texture is an image resource uploaded to the driver with its mip chain.
type Texture struct {
	resource.Base
	slot

	levels []image.Image
	format string
}

// Levels returns the mip chain, base level first.
func (t *Texture) Levels() []image.Image {
	return t.levels
}

// Format returns the decoded image format (png, jpeg, bmp...).
func (t *Texture) Format() string {
	return t.format
}

// Size returns the base level dimensions.
func (t *Texture) Size() (int, int) {
	if len(t.levels) == 0 {
		return 0, 0
	}
	b := t.levels[0].Bounds()
	return b.Dx(), b.Dy()
}

// OnStorageLoad implements resource.Resource.
func (t *Texture) OnStorageLoad(ctx context.Context, env *resource.Env, id string, rawID int, data any) error {
	raw, err := source.ReadAll(ctx, env.Source, rawID)
	if err != nil {
		return err
	}
	return t.decode(raw, textureOptions(data, env.MipmapLevel))
}

// OnCompressedStorageLoad implements resource.CompressedResource.
func (t *Texture) OnCompressedStorageLoad(ctx context.Context, env *resource.Env, cache resource.Loader, id string, archive resource.Archive, location string, data any) error {
	raw, err := readEntry(archive, location)
	if err != nil {
		return err
	}
	return t.decode(raw, textureOptions(data, env.MipmapLevel))
}

func (t *Texture) decode(raw []byte, opts TextureOptions) error {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode texture: %w", err)
	}
	t.levels = mipChain(img, opts)
	t.format = format
	t.SetDriverDataDirty(true)
	return nil
}

// mipChain halves img until opts.MipmapLevels extra levels exist or a side reaches 1.
func mipChain(img image.Image, opts TextureOptions) []image.Image {
	var scaler xdraw.Scaler = xdraw.ApproxBiLinear
	if opts.Filter == "nearest" {
		scaler = xdraw.NearestNeighbor
	}

	levels := []image.Image{img}
	prev := img
	for i := 0; i < opts.MipmapLevels; i++ {
		b := prev.Bounds()
		if b.Dx() <= 1 && b.Dy() <= 1 {
			break
		}
		w, h := max(b.Dx()/2, 1), max(b.Dy()/2, 1)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		scaler.Scale(dst, dst.Bounds(), prev, b, xdraw.Src, nil)
		levels = append(levels, dst)
		prev = dst
	}
	return levels
}

func (t *Texture) upload(env *resource.Env) error {
	err := t.replace(env.Driver, func(d driver.Driver) (driver.Handle, error) {
		return d.CreateTexture(t.levels)
	})
	if err != nil {
		return fmt.Errorf("failed to upload texture %s: %w", t.ID(), err)
	}
	t.SetDriverDataDirty(false)
	return nil
}

// OnDriverLoad implements resource.Resource.
func (t *Texture) OnDriverLoad(env *resource.Env) error {
	return t.upload(env)
}

// OnPaused implements resource.Resource.
func (t *Texture) OnPaused(env *resource.Env) error {
	t.SetDriverDataDirty(true)
	return t.drop(env.Driver)
}

// OnResumed implements resource.Resource.
func (t *Texture) OnResumed(env *resource.Env) error {
	return t.upload(env)
}

// OnRelease implements resource.Resource.
func (t *Texture) OnRelease(env *resource.Env) error {
	t.levels = nil
	return t.drop(env.Driver)
}
