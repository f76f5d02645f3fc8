package pipeline

import (
	"math"
	"testing"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/stretchr/testify/require"
)

func TestSampler_Average_PreservesMean(t *testing.T) {
	values := make([]float64, 10000)
	for i := range values {
		values[i] = math.Sin(float64(i)/50)*100 + float64(i%7)
	}
	c := valueContainer(t, values)

	before, err := MeanOf(c, "v")
	require.NoError(t, err)

	s := &Sampler{ValueDim: "v", Strategy: format.SamplingAverage, Threshold: 1000, Target: 100}
	require.Equal(t, 100, s.FrameSize(c.Count()))

	ctx := NewContext(c)
	require.NoError(t, s.Process(ctx, 0, c.Count()))

	sampled := ctx.Data()
	require.Equal(t, 100, sampled.Count())
	require.Equal(t, 10000, c.Count(), "source container untouched")

	after, err := MeanOf(sampled, "v")
	require.NoError(t, err)
	require.InDelta(t, before, after, 1e-9)

	for i := range sampled.Count() {
		raw, err := sampled.RawIndex(i)
		require.NoError(t, err)
		require.GreaterOrEqual(t, raw, i*100)
		require.Less(t, raw, (i+1)*100)
	}
}

func TestSampler_Aggregates(t *testing.T) {
	values := []float64{1, 5, 3, math.NaN(), 2, 8, math.NaN(), math.NaN(), 4}

	tests := []struct {
		strategy format.SamplingStrategy
		values   []float64
		raw      []int
	}{
		{format.SamplingSum, []float64{9, 10, 4}, []int{0, 4, 8}},
		{format.SamplingMin, []float64{1, 2, 4}, []int{0, 4, 8}},
		{format.SamplingMax, []float64{5, 8, 4}, []int{1, 5, 8}},
		{format.SamplingAverage, []float64{3, 5, 4}, []int{2, 4, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			c := valueContainer(t, values)
			ctx := NewContext(c)
			s := &Sampler{ValueDim: "v", Strategy: tt.strategy, Target: 3}
			require.NoError(t, s.Process(ctx, 0, c.Count()))

			got, err := ctx.Data().Values("v")
			require.NoError(t, err)
			require.InDeltaSlice(t, tt.values, got, 1e-12)

			for i, want := range tt.raw {
				raw, err := ctx.Data().RawIndex(i)
				require.NoError(t, err)
				require.Equal(t, want, raw)
			}
		})
	}
}

func TestSampler_AllMissingBucket(t *testing.T) {
	c := valueContainer(t, []float64{math.NaN(), math.NaN(), 1, 3})
	ctx := NewContext(c)
	s := &Sampler{ValueDim: "v", Strategy: format.SamplingAverage, Target: 2}
	require.NoError(t, s.Process(ctx, 0, c.Count()))

	got, err := ctx.Data().Values("v")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, math.IsNaN(got[0]))
	require.InDelta(t, 2, got[1], 1e-12)
}

func TestSampler_NotApplied(t *testing.T) {
	c := valueContainer(t, []float64{1, 2, 3, 4})

	for _, s := range []*Sampler{
		{ValueDim: "v", Strategy: format.SamplingNone, Target: 2},
		{ValueDim: "v", Strategy: format.SamplingAverage, Threshold: 10, Target: 2},
		{ValueDim: "v", Strategy: format.SamplingAverage, Target: 8},
	} {
		ctx := NewContext(c)
		require.NoError(t, s.Process(ctx, 0, c.Count()))
		require.Same(t, c, ctx.Data())
	}
}

func TestSampler_UnknownStrategy(t *testing.T) {
	c := valueContainer(t, []float64{1, 2, 3, 4})
	s := &Sampler{ValueDim: "v", Strategy: format.SamplingStrategy(99), Target: 2}
	require.ErrorIs(t, s.Process(NewContext(c), 0, 4), errs.ErrInvalidConfig)

	s = &Sampler{ValueDim: "nope", Strategy: format.SamplingSum, Target: 2}
	require.ErrorIs(t, s.Process(NewContext(c), 0, 4), errs.ErrUnknownDimension)
}

func TestSampler_LTTB(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = math.Sin(float64(i) / 30)
	}
	values[500] = 50 // spike must survive

	c := valueContainer(t, values)
	ctx := NewContext(c)
	s := &Sampler{ValueDim: "v", Strategy: format.SamplingLTTB, Target: 50}
	require.NoError(t, s.Process(ctx, 0, c.Count()))

	sampled := ctx.Data()
	require.Equal(t, 50, sampled.Count())

	prev := -1
	seenSpike := false
	for i := range sampled.Count() {
		raw, err := sampled.RawIndex(i)
		require.NoError(t, err)
		require.Greater(t, raw, prev)
		prev = raw
		v, err := sampled.Get("v", i)
		require.NoError(t, err)
		require.Equal(t, values[raw], v, "lttb keeps original values")
		seenSpike = seenSpike || raw == 500
	}
	require.True(t, seenSpike)

	first, _ := sampled.RawIndex(0)
	last, _ := sampled.RawIndex(sampled.Count() - 1)
	require.Equal(t, 0, first)
	require.Equal(t, 999, last)
}

func TestLTTB_Small(t *testing.T) {
	require.Equal(t, []int{0, 1, 2}, lttb([]float64{1, 2, 3}, 10))
	require.Equal(t, []int{0, 4}, lttb([]float64{1, 2, 3, 4, 5}, 2))
}

func TestSampler_MinMax(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64((i * 37) % 101)
	}
	c := valueContainer(t, values)
	ctx := NewContext(c)
	s := &Sampler{ValueDim: "v", Strategy: format.SamplingMinMax, Target: 10}
	require.NoError(t, s.Process(ctx, 0, c.Count()))

	sampled := ctx.Data()
	require.LessOrEqual(t, sampled.Count(), 20)

	ext, err := sampled.DataExtent("v")
	require.NoError(t, err)
	full, err := c.DataExtent("v")
	require.NoError(t, err)
	require.Equal(t, full, ext, "global extremes are kept")

	prev := -1
	for i := range sampled.Count() {
		raw, _ := sampled.RawIndex(i)
		require.Greater(t, raw, prev)
		prev = raw
	}
}

func TestMinMax_AppendsToBuffer(t *testing.T) {
	nan := math.NaN()
	values := []float64{3, 1, 2, 5, nan, 4, nan, nan}

	require.Equal(t, []int{0, 1, 3, 5, 6}, minMax(make([]int, 0, 10), values, 3))
	require.Equal(t, []int{99, 0, 1, 3, 5, 6}, minMax([]int{99}, values, 3))
}

func TestSampler_MinMax_PooledBufferReuse(t *testing.T) {
	values := make([]float64, 500)
	for i := range values {
		values[i] = math.Sin(float64(i) / 7)
	}
	s := &Sampler{ValueDim: "v", Strategy: format.SamplingMinMax, Target: 25}

	rawIndices := func() []int {
		ctx := NewContext(valueContainer(t, values))
		require.NoError(t, s.Process(ctx, 0, len(values)))
		out := make([]int, ctx.Data().Count())
		for i := range out {
			out[i], _ = ctx.Data().RawIndex(i)
		}

		return out
	}

	first := rawIndices()
	require.Equal(t, first, rawIndices(), "a reused buffer does not leak into the next pass")
}
