package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(100)
		defer cleanup()

		require.Len(t, slice, 100)
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("shrinks a larger pooled slice", func(t *testing.T) {
		_, cleanup1 := GetFloat64Slice(1000)
		cleanup1()

		slice, cleanup2 := GetFloat64Slice(10)
		defer cleanup2()

		require.Len(t, slice, 10)
	})

	t.Run("zero size", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(0)
		defer cleanup()

		require.Empty(t, slice)
	})
}

func TestGetIntSlice(t *testing.T) {
	slice, cleanup := GetIntSlice(64)
	defer cleanup()

	require.Len(t, slice, 64)
	for i := range slice {
		slice[i] = i
	}
	require.Equal(t, 63, slice[63])
}
