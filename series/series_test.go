package series

import (
	"testing"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/source"
	"github.com/arloliu/chartdata/visualmap"
	"github.com/stretchr/testify/require"
)

var catSchema = schema.MustNew(
	schema.DimensionDef{Name: "cat", Type: format.DimensionOrdinal},
	schema.DimensionDef{Name: "v", Type: format.DimensionNumber},
)

func catAdapter(t *testing.T, cats []string, values []any) *source.Adapter {
	t.Helper()

	rows := make([][]any, len(cats))
	for i := range cats {
		rows[i] = []any{cats[i], values[i]}
	}
	a, err := source.NewAdapter(source.Rows(rows), catSchema)
	require.NoError(t, err)

	return a
}

func rangeAdapter(t *testing.T, n int) *source.Adapter {
	t.Helper()

	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(i)
	}
	s, err := schema.Numbers("x", "y")
	require.NoError(t, err)
	p, err := source.Columns(
		source.Column{Name: "x", Values: vals},
		source.Column{Name: "y", Values: vals},
	)
	require.NoError(t, err)
	a, err := source.NewAdapter(p, s)
	require.NoError(t, err)

	return a
}

func TestNew_ConfigDefaults(t *testing.T) {
	s, err := New(Config{ID: "s1"}, catAdapter(t, []string{"a"}, []any{1}))
	require.NoError(t, err)

	cfg := s.Config()
	require.Equal(t, "s1", cfg.Name)
	require.Equal(t, "v", cfg.ValueDim)
	require.Equal(t, "cat", cfg.CategoryDim)
	require.Equal(t, "v", cfg.VisualMapDim)
	require.Equal(t, format.ColorBySeries, cfg.ColorBy)

	s, err = New(Config{ID: "s2", StackKey: "k", Progressive: true}, rangeAdapter(t, 3))
	require.NoError(t, err)
	cfg = s.Config()
	require.Equal(t, "y", cfg.ValueDim, "last numeric dimension")
	require.Empty(t, cfg.CategoryDim)
	require.Equal(t, format.StackSameSign, cfg.StackStrategy)
	require.Equal(t, DefaultProgressiveThreshold, cfg.ProgressiveThreshold)
	require.Equal(t, DefaultProgressiveChunk, cfg.ProgressiveChunk)
}

func TestNew_ConfigErrors(t *testing.T) {
	a := catAdapter(t, []string{"a"}, []any{1})

	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"missing id", Config{}, errs.ErrInvalidConfig},
		{"unknown value dim", Config{ID: "s", ValueDim: "nope"}, errs.ErrUnknownDimension},
		{"unknown category dim", Config{ID: "s", CategoryDim: "nope"}, errs.ErrUnknownDimension},
		{"unknown visual map dim", Config{ID: "s", VisualMapDim: "nope"}, errs.ErrUnknownDimension},
		{"sampling without target", Config{ID: "s", Sampling: format.SamplingLTTB}, errs.ErrInvalidConfig},
		{"numeric inverted index", Config{ID: "s", InvertedIndex: []string{"v"}}, errs.ErrInvalidDimensionType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, a)
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := New(Config{ID: "s"}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = New(Config{ID: "s"}, a, WithIndex(-1))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestSeries_Process(t *testing.T) {
	vm, err := visualmap.NewContinuous([2]float64{0, 999})
	require.NoError(t, err)

	s, err := New(Config{
		ID:                "s",
		Sampling:          format.SamplingAverage,
		TargetBucketCount: 10,
		Symbol:            "circle",
		VisualMap:         vm,
	}, rangeAdapter(t, 1000), WithIndex(2))
	require.NoError(t, err)

	require.Equal(t, []string{"sample", "style", "legend", "visualMap"}, s.Pipeline().Processors())
	require.Equal(t, 1000, s.Data().Count(), "unprocessed before the first pass")

	require.NoError(t, s.Process())
	require.Equal(t, 10, s.Data().Count())
	require.Equal(t, 1000, s.Raw().Count())

	legend, ok := s.Data().GetVisual(data.ChannelLegendSymbol)
	require.True(t, ok)
	require.Equal(t, "circle", legend)
	require.True(t, s.Data().HasItemVisual(9, data.ChannelColor))

	require.NoError(t, s.Process(), "passes are repeatable")
	require.Equal(t, 10, s.Data().Count())
}

func TestSeries_Step(t *testing.T) {
	s, err := New(Config{
		ID:                   "s",
		ColorBy:              format.ColorByData,
		Progressive:          true,
		ProgressiveThreshold: 10,
		ProgressiveChunk:     20,
	}, rangeAdapter(t, 50))
	require.NoError(t, err)
	require.True(t, s.IsProgressive())

	steps := 0
	for {
		done, err := s.Step()
		require.NoError(t, err)
		steps++
		if done {
			break
		}
		require.Less(t, steps, 10)
	}
	require.Equal(t, 3, steps)
	require.True(t, s.Data().HasItemVisual(49, data.ChannelColor))

	done, err := s.Step()
	require.NoError(t, err)
	require.True(t, done)

	s.Rewind()
	done, err = s.Step()
	require.NoError(t, err)
	require.False(t, done, "new pass")
	require.False(t, s.Data().HasItemVisual(49, data.ChannelColor))
}

func TestSeries_Reingest(t *testing.T) {
	s, err := New(Config{ID: "s"}, catAdapter(t, []string{"a", "b"}, []any{1, 2}))
	require.NoError(t, err)
	require.NoError(t, s.Process())

	require.NoError(t, s.Reingest(rangeAdapter(t, 5)))
	require.Equal(t, 5, s.Raw().Count())
	require.Equal(t, 5, s.Data().Count())
	require.Equal(t, "y", s.Config().ValueDim, "defaults re-derived from the new schema")
	require.Empty(t, s.Config().CategoryDim)

	require.ErrorIs(t, s.Reingest(nil), errs.ErrInvalidConfig)
	require.Equal(t, 5, s.Raw().Count(), "failed reingest keeps the previous data")
}
