package chartdata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/series"
	"github.com/arloliu/chartdata/source"
	"github.com/arloliu/chartdata/visualmap"
)

var salesSchema = schema.MustNew(
	schema.DimensionDef{Name: "day", Type: format.DimensionOrdinal},
	schema.DimensionDef{Name: "sales", Type: format.DimensionNumber},
)

func TestNewSeries(t *testing.T) {
	s, err := NewSeries(series.Config{ID: "s"}, salesSchema,
		source.Objects([]map[string]any{{"day": "Mon", "amount": 3}}),
		source.WithEncode(source.Encode{"sales": source.Named("amount")}))
	require.NoError(t, err)
	require.NoError(t, s.Process())

	v, err := s.Data().Get("sales", 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	_, err = NewSeries(series.Config{}, salesSchema, source.Rows(nil))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestAddRowsAndJSON(t *testing.T) {
	set, err := NewSet()
	require.NoError(t, err)

	_, err = AddRows(set, series.Config{ID: "a", StackKey: "k"}, salesSchema, [][]any{{"Mon", 1}, {"Tue", 2}})
	require.NoError(t, err)
	b, err := AddJSON(set, series.Config{ID: "b", StackKey: "k"}, salesSchema, []byte(`[["Tue", 10], ["Mon", 20]]`))
	require.NoError(t, err)

	require.NoError(t, set.Process())
	top, err := b.Data().StackedValue(0)
	require.NoError(t, err)
	require.Equal(t, 12.0, top)

	_, err = AddJSON(set, series.Config{ID: "c"}, salesSchema, []byte(`{`))
	require.ErrorIs(t, err, errs.ErrUnsupportedSource)
}

func TestNewDefaultPipeline(t *testing.T) {
	p, err := NewDefaultPipeline(0)
	require.NoError(t, err)
	require.Equal(t, []string{"style", "legend"}, p.Processors())
	require.False(t, p.IsProgressive(1_000_000))

	p, err = NewProgressivePipeline(0)
	require.NoError(t, err)
	require.True(t, p.IsProgressive(series.DefaultProgressiveThreshold+1))
	require.False(t, p.IsProgressive(series.DefaultProgressiveThreshold))
}

func TestNewMaps(t *testing.T) {
	c, err := NewContinuousMap([2]float64{0, 10})
	require.NoError(t, err)
	require.Equal(t, "#f6efa6", c.MapColor(0))

	pw, err := NewPiecewiseMap([2]float64{0, 10}, 5)
	require.NoError(t, err)
	require.Len(t, pw.Pieces(), 5)

	_, err = NewContinuousMap([2]float64{1, 1})
	require.ErrorIs(t, err, errs.ErrInvalidDomain)
}

func TestNewCategoryMap(t *testing.T) {
	m, err := NewCategoryMap([]string{"Mon", "Tue"}, visualmap.WithPieceColors("#000000", "#ffffff"))
	require.NoError(t, err)
	require.Equal(t, "#ffffff", m.MapCategory("Tue").Color)
	require.Equal(t, visualmap.DefaultOutOfRangeColor, m.MapCategory("Sun").Color)

	_, err = NewCategoryMap(nil)
	require.ErrorIs(t, err, errs.ErrInvalidPieces)
}
