package scene_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"resource-manager/core/driver"
	"resource-manager/core/kinds"
	"resource-manager/core/resource"
	"resource-manager/feature/scene"

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

func setupManager(t *testing.T) *resource.Manager {
	t.Helper()
	reg := resource.NewRegistry()
	kinds.RegisterAll(reg)
	src := mapSource{1: "void main() {}", 2: "void main() { discard; }"}
	return resource.NewManager(resource.Config{}, reg, zap.NewNop(),
		resource.WithSource(src),
		resource.WithDriver(driver.NewMemory()))
}

func TestScene_SharedResourceAcrossEntities(t *testing.T) {
	m := setupManager(t)
	s := scene.New(m, zap.NewNop())
	ctx := context.Background()

	a, err := s.Load(ctx, "player", kinds.KindShader, resource.WithRawID(1))
	require.NoError(t, err)
	b, err := s.Load(ctx, "enemy", kinds.KindShader, resource.WithRawID(1))
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 2, a.RefCount())
	assert.Equal(t, []string{"enemy", "player"}, s.Names())

	assert.True(t, s.Despawn("player"))
	assert.Equal(t, 1, a.RefCount())

	n, err := m.CleanUp()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.True(t, s.Despawn("enemy"))
	assert.True(t, a.NeedsRelease())

	n, err = m.CleanUp()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, m.Len())
}

func TestScene_DespawnUnknown(t *testing.T) {
	s := scene.New(setupManager(t), nil)
	assert.False(t, s.Despawn("ghost"))
}

func TestScene_LoadFailure(t *testing.T) {
	m := setupManager(t)
	s := scene.New(m, nil)

	_, err := s.Load(context.Background(), "player", kinds.KindShader, resource.WithRawID(99))
	assert.ErrorIs(t, err, resource.ErrLoadFailed)
	assert.ErrorContains(t, err, "entity player")

	e, ok := s.Entity("player")
	require.True(t, ok)
	assert.Zero(t, e.Len())
}

func TestScene_LoadCompressedWithoutArchive(t *testing.T) {
	s := scene.New(setupManager(t), nil)

	_, err := s.LoadCompressed(context.Background(), "hud", kinds.KindShader, "shaders/hud.glsl")
	assert.ErrorIs(t, err, resource.ErrNotLoaded)
}

func TestScene_Clear(t *testing.T) {
	m := setupManager(t)
	s := scene.New(m, nil)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Load(ctx, name, kinds.KindShader, resource.WithRawID(2))
		require.NoError(t, err)
	}
	r, ok := m.Lookup("genres_2")
	require.True(t, ok)
	assert.Equal(t, 3, r.RefCount())

	s.Clear()
	assert.Empty(t, s.Names())
	assert.Zero(t, r.RefCount())
}

func TestEntity_Drop(t *testing.T) {
	m := setupManager(t)
	e := scene.NewEntity("admin")
	ctx := context.Background()

	r, err := m.Factory(ctx, kinds.KindShader, e, resource.WithRawID(1))
	require.NoError(t, err)
	_, err = m.Factory(ctx, kinds.KindShader, e, resource.WithRawID(1))
	require.NoError(t, err)

	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 2, r.RefCount())

	assert.True(t, e.Drop(m, "genres_1"))
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 1, r.RefCount())

	assert.False(t, e.Drop(m, "genres_42"))
	assert.Equal(t, 1, e.Destroy(m))
	assert.Zero(t, r.RefCount())
	assert.Empty(t, e.Resources())
}
