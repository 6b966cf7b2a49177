package resources

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"resource-manager/core/catalog"
	"resource-manager/core/driver"
	"resource-manager/core/kinds"
	"resource-manager/core/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapSource map[int]string

func (s mapSource) Open(ctx context.Context, rawID int) (io.ReadCloser, error) {
	src, ok := s[rawID]
	if !ok {
		return nil, fmt.Errorf("raw id %d not found", rawID)
	}
	return io.NopCloser(strings.NewReader(src)), nil
}

type mapArchive map[string]string

func (a mapArchive) ReadFile(name string) ([]byte, error) {
	data, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%s not found", name)
	}
	return []byte(data), nil
}

type stubResolver map[int]catalog.Asset

func (r stubResolver) Resolve(ctx context.Context, rawID int) (catalog.Asset, error) {
	a, ok := r[rawID]
	if !ok {
		return catalog.Asset{}, fmt.Errorf("%w: %d", catalog.ErrNotFound, rawID)
	}
	return a, nil
}

func setupService(t *testing.T) (*Service, *driver.Memory) {
	t.Helper()
	reg := resource.NewRegistry()
	kinds.RegisterAll(reg)
	drv := driver.NewMemory()

	m := resource.NewManager(resource.Config{CleanupPolicy: resource.CleanupManual}, reg, zap.NewNop(),
		resource.WithSource(mapSource{7: "void main() {}", 8: "RIFF\x00\x00\x00\x00WAVEfmt "}),
		resource.WithDriver(drv))
	require.NoError(t, m.SetArchive(mapArchive{"shaders/ui.glsl": "void ui() {}"}))

	svc := NewService(m, reg, zap.NewNop(),
		WithCatalog(stubResolver{8: {RawID: 8, Kind: string(kinds.KindSound), ObjectKey: "sounds/click.wav"}}),
		WithStats(drv))
	return svc, drv
}

func intPtr(v int) *int { return &v }

func TestService_LoadAndUnpin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	entry, err := svc.Load(ctx, LoadRequest{Kind: string(kinds.KindShader), RawID: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, "genres_7", entry.ID)
	assert.Equal(t, 1, entry.RefCount)
	assert.True(t, entry.Dirty)

	entry, err = svc.Load(ctx, LoadRequest{Kind: string(kinds.KindShader), RawID: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 2, entry.RefCount)
	assert.Equal(t, 2, svc.Status().Pinned)

	require.NoError(t, svc.Unpin("genres_7"))
	require.NoError(t, svc.Unpin("genres_7"))
	assert.ErrorIs(t, svc.Unpin("genres_7"), ErrNotFound)

	res := svc.CleanUp()
	assert.Equal(t, 1, res.Evicted)
	assert.Empty(t, res.Error)
	assert.Empty(t, svc.Entries())
}

func TestService_LoadResolvesKindFromCatalog(t *testing.T) {
	svc, _ := setupService(t)

	entry, err := svc.Load(context.Background(), LoadRequest{RawID: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, "genres_8", entry.ID)
	assert.Equal(t, "*kinds.Sound", entry.Type)

	_, err = svc.Load(context.Background(), LoadRequest{RawID: intPtr(9)})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestService_LoadCompressed(t *testing.T) {
	svc, _ := setupService(t)

	entry, err := svc.Load(context.Background(), LoadRequest{Kind: string(kinds.KindShader), Location: "shaders/ui.glsl"})
	require.NoError(t, err)
	assert.Equal(t, "shaders/ui.glsl", entry.ID)

	_, err = svc.Load(context.Background(), LoadRequest{Kind: string(kinds.KindShader), Location: "shaders/missing.glsl"})
	assert.ErrorIs(t, err, resource.ErrNotLoaded)
}

func TestService_LoadInvalid(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Load(ctx, LoadRequest{Kind: string(kinds.KindShader)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Load(ctx, LoadRequest{Location: "shaders/ui.glsl"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Load(ctx, LoadRequest{Kind: "mesh", RawID: intPtr(7)})
	assert.ErrorIs(t, err, resource.ErrUnknownKind)
}

func TestService_PauseResumeFlush(t *testing.T) {
	svc, drv := setupService(t)
	ctx := context.Background()

	_, err := svc.Load(ctx, LoadRequest{Kind: string(kinds.KindShader), RawID: intPtr(7)})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Flush())
	assert.Zero(t, svc.Flush())
	assert.Equal(t, 1, drv.Stats().Live)

	svc.Pause()
	st := svc.Status()
	assert.True(t, st.Paused)
	require.NotNil(t, st.Driver)
	assert.Zero(t, st.Driver.Live)

	svc.Resume()
	st = svc.Status()
	assert.False(t, st.Paused)
	assert.Equal(t, 1, st.Driver.Live)
	assert.Equal(t, []string{"shader", "sound", "texture"}, st.Kinds)
	assert.Equal(t, resource.CleanupManual, st.CleanupPolicy)
}

func TestService_Entry(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Entry("genres_7")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Load(context.Background(), LoadRequest{Kind: string(kinds.KindShader), RawID: intPtr(7)})
	require.NoError(t, err)

	entry, err := svc.Entry("genres_7")
	require.NoError(t, err)
	assert.Equal(t, "*kinds.Shader", entry.Type)
}
