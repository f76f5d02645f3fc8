package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDimensionType_String(t *testing.T) {
	require.Equal(t, "number", DimensionNumber.String())
	require.Equal(t, "ordinal", DimensionOrdinal.String())
	require.Equal(t, "time", DimensionTime.String())
	require.Equal(t, "unknown", DimensionType(0).String())

	require.True(t, DimensionTime.Valid())
	require.False(t, DimensionType(0).Valid())
	require.False(t, DimensionType(4).Valid())
}

func TestParseSamplingStrategy(t *testing.T) {
	for _, s := range []SamplingStrategy{
		SamplingNone, SamplingAverage, SamplingMin, SamplingMax, SamplingSum, SamplingLTTB, SamplingMinMax,
	} {
		got, ok := ParseSamplingStrategy(s.String())
		require.True(t, ok, s.String())
		require.Equal(t, s, got)
	}

	got, ok := ParseSamplingStrategy("")
	require.True(t, ok)
	require.Equal(t, SamplingNone, got)

	_, ok = ParseSamplingStrategy("median")
	require.False(t, ok)
	require.Equal(t, "unknown", SamplingStrategy(42).String())
}

func TestEnum_String(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{StackSameSign.String(), "samesign"},
		{StackNegative.String(), "negative"},
		{StackStrategy(0).String(), "unknown"},
		{BrushLineX.String(), "lineX"},
		{BrushPolygon.String(), "polygon"},
		{BrushType(0).String(), "unknown"},
		{InRange.String(), "inRange"},
		{OutOfRange.String(), "outOfRange"},
		{PhaseStatistic.String(), "statistic"},
		{PhaseLayout.String(), "layout"},
		{ColorByData.String(), "data"},
		{ColorBy(0).String(), "unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.got)
	}
}

func TestPhase_Order(t *testing.T) {
	require.Less(t, PhaseTransform, PhaseStatistic)
	require.Less(t, PhaseStatistic, PhaseVisual)
	require.Less(t, PhaseVisual, PhaseLayout)
}
