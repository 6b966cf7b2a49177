package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	RegisterType[fakeResource](reg, "b")
	RegisterType[fakeCompressed](reg, "a")
	reg.Register("c", func() (Resource, error) { return nil, nil })
	reg.Register("d", func() (Resource, error) { return nil, errors.New("no gpu") })
	reg.Register("e", func() (Resource, error) { panic("bad ctor") })

	assert.Equal(t, []Kind{"a", "b", "c", "d", "e"}, reg.Kinds())

	t.Run("Typed", func(t *testing.T) {
		r, err := reg.New("a")
		require.NoError(t, err)
		assert.IsType(t, &fakeCompressed{}, r)

		other, err := reg.New("a")
		require.NoError(t, err)
		assert.NotSame(t, r, other)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := reg.New("zzz")
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("NilResult", func(t *testing.T) {
		_, err := reg.New("c")
		assert.ErrorContains(t, err, "constructor returned nil")
	})

	t.Run("ConstructorError", func(t *testing.T) {
		_, err := reg.New("d")
		assert.ErrorContains(t, err, "no gpu")
	})

	t.Run("ConstructorPanic", func(t *testing.T) {
		_, err := reg.New("e")
		var pe *PanicError
		assert.ErrorAs(t, err, &pe)
	})
}
