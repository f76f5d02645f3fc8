package data

import (
	"math"
	"testing"

	"github.com/arloliu/chartdata/errs"
	"github.com/stretchr/testify/require"
)

func TestContainer_CloneShallow(t *testing.T) {
	c := categoryContainer(t)
	c.SetVisual(ChannelColor, "blue")
	require.NoError(t, c.SetItemVisual(0, ChannelColor, "red"))
	require.NoError(t, c.SetItemLayout(1, [2]float64{3, 4}))
	require.NoError(t, c.SetStackedValues([]float64{1, 2, 3, 4}, nil))

	clone := c.CloneShallow()
	require.Equal(t, c.Count(), clone.Count())

	// Columns are shared.
	v, err := clone.Get("value", 3)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	// Overlays are independent.
	clone.SetVisual(ChannelColor, "green")
	require.NoError(t, clone.SetItemVisual(0, ChannelColor, "black"))
	require.NoError(t, clone.SetItemLayout(1, nil))
	require.NoError(t, clone.SetStackedValues([]float64{9, 9, 9, 9}, nil))

	got, _ := c.GetItemVisual(0, ChannelColor)
	require.Equal(t, "red", got)
	got, _ = c.GetItemVisual(1, ChannelColor)
	require.Equal(t, "blue", got)
	layout, _ := c.ItemLayout(1)
	require.Equal(t, [2]float64{3, 4}, layout)
	sv, _ := c.StackedValue(0)
	require.Equal(t, 1.0, sv)

	got, _ = clone.GetItemVisual(1, ChannelColor)
	require.Equal(t, "green", got)
}

func TestContainer_CloneShallow_StackIndependent(t *testing.T) {
	c := categoryContainer(t)
	stacked := []float64{1, 2, 3, 4}
	require.NoError(t, c.SetStackedValues(stacked, nil))

	clone := c.CloneShallow()
	stacked[0] = 100

	v, _ := clone.StackedValue(0)
	require.Equal(t, 1.0, v)
}

func TestContainer_Derive(t *testing.T) {
	c := categoryContainer(t)
	c.SetVisual(ChannelSymbol, "circle")
	require.NoError(t, c.SetItemVisual(1, ChannelSymbol, "rect"))

	d, err := c.Derive([]int{1, 3}, map[string][]float64{"value": {50, 20}})
	require.NoError(t, err)
	require.Equal(t, 2, d.Count())

	raw, err := d.RawIndex(1)
	require.NoError(t, err)
	require.Equal(t, 3, raw)

	v, _ := d.Get("value", 0)
	require.Equal(t, 50.0, v)
	name, _ := d.Ordinal("name", 0)
	require.Equal(t, "B", name)

	// Source container unchanged.
	v, _ = c.Get("value", 1)
	require.Equal(t, 5.0, v)

	// Defaults kept, per-item overrides dropped.
	sym, _ := d.GetItemVisual(0, ChannelSymbol)
	require.Equal(t, "circle", sym)

	t.Run("nested derive keeps provenance", func(t *testing.T) {
		dd, err := d.Derive([]int{1}, nil)
		require.NoError(t, err)
		raw, err := dd.RawIndex(0)
		require.NoError(t, err)
		require.Equal(t, 3, raw)
		v, _ := dd.Get("value", 0)
		require.Equal(t, 20.0, v)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := c.Derive([]int{2, 1}, nil)
		require.ErrorIs(t, err, errs.ErrInvalidConfig)

		_, err = c.Derive([]int{0, 9}, nil)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

		_, err = c.Derive([]int{0}, map[string][]float64{"value": {1, 2}})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)

		_, err = c.Derive([]int{0}, map[string][]float64{"zzz": {1}})
		require.ErrorIs(t, err, errs.ErrUnknownDimension)
	})
}

func TestContainer_SelectRange(t *testing.T) {
	c := numberContainer(t, 1, nil, 5, 3, 9)

	sel, err := c.SelectRange("v", 3, 5)
	require.NoError(t, err)
	require.Equal(t, 2, sel.Count())

	raws := make([]int, sel.Count())
	for i := range raws {
		raws[i], _ = sel.RawIndex(i)
	}
	require.Equal(t, []int{2, 3}, raws)

	ext, err := sel.DataExtent("v")
	require.NoError(t, err)
	require.Equal(t, [2]float64{3, 5}, ext)

	missing, err := c.FilterSelf("v", math.IsNaN)
	require.NoError(t, err)
	require.Equal(t, 1, missing.Count())

	_, err = c.SelectRange("w", 0, 1)
	require.ErrorIs(t, err, errs.ErrUnknownDimension)
}
