package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetShared(t *testing.T) {
	t.Cleanup(func() { shared.Store(nil) })
	shared.Store(nil)

	assert.Nil(t, Shared())
	assert.Error(t, SetShared(nil))

	first, _ := newTestManager(Config{}, nil)
	second, _ := newTestManager(Config{}, nil)

	require.NoError(t, SetShared(first))
	assert.ErrorIs(t, SetShared(second), ErrSharedAlreadySet)
	assert.Same(t, first, Shared())
}
