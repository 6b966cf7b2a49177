package resource

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startScheduler(t *testing.T, m *Manager) *clock.Mock {
	t.Helper()
	clk := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewScheduler(m, clk, nil).Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Error("scheduler did not stop")
		}
	})
	return clk
}

func TestScheduler_FlushesDirtyResources(t *testing.T) {
	m, _ := newTestManager(Config{FlushIntervalMs: 16}, nil)
	r, err := m.Factory(context.Background(), kindFake, nil)
	require.NoError(t, err)

	clk := startScheduler(t, m)
	require.Eventually(t, func() bool {
		clk.Add(16 * time.Millisecond)
		return !r.IsDriverDataDirty()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), r.(*fakeResource).driverLoads.Load())
}

func TestScheduler_SkipsWhilePaused(t *testing.T) {
	m, _ := newTestManager(Config{FlushIntervalMs: 16}, nil)
	m.OnPaused()
	r, err := m.Factory(context.Background(), kindFake, nil)
	require.NoError(t, err)
	fr := r.(*fakeResource)

	clk := startScheduler(t, m)
	assert.Never(t, func() bool {
		clk.Add(16 * time.Millisecond)
		return fr.driverLoads.Load() > 0
	}, 100*time.Millisecond, 10*time.Millisecond)

	m.OnResumed()
	require.Eventually(t, func() bool {
		clk.Add(16 * time.Millisecond)
		return fr.driverLoads.Load() > 0
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_IntervalCleanup(t *testing.T) {
	m, _ := newTestManager(Config{CleanupPolicy: CleanupInterval, CleanupIntervalMs: 100}, nil)
	ctx := context.Background()

	kept, err := m.Factory(ctx, kindFake, nil, WithID("kept"))
	require.NoError(t, err)
	gone, err := m.Factory(ctx, kindFake, nil, WithID("gone"))
	require.NoError(t, err)
	m.Detach(gone)
	require.Equal(t, 2, m.Len())

	clk := startScheduler(t, m)
	require.Eventually(t, func() bool {
		clk.Add(100 * time.Millisecond)
		return m.Len() == 1
	}, time.Second, 5*time.Millisecond)

	_, ok := m.Lookup(kept.ID())
	assert.True(t, ok)
	assert.Equal(t, int32(1), gone.(*fakeResource).releases.Load())
}

func TestScheduler_NoCleanupWithoutIntervalPolicy(t *testing.T) {
	m, _ := newTestManager(Config{CleanupIntervalMs: 100}, nil)
	r, err := m.Factory(context.Background(), kindFake, nil)
	require.NoError(t, err)
	m.Detach(r)

	clk := startScheduler(t, m)
	assert.Never(t, func() bool {
		clk.Add(100 * time.Millisecond)
		return m.Len() == 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}
