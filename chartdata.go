// Package chartdata is the data core of a declarative charting library.
//
// It ingests tabular input into dimension-typed columnar containers, runs a
// phased processing pipeline over them (stacking, down-sampling, visual
// encoding, optionally in progressive chunks), maps values to visuals and
// answers brush and range selection queries over item layouts written by an
// external layout stage.
//
// # Core Features
//
//   - Typed dimensions (number, ordinal, time) with missing values as NaN
//   - Row, object, typed-column, JSON and Arrow sources with encode mapping
//   - Index-aligned containers with provenance tracking after sampling
//   - Sparse per-item visual overrides over container-wide defaults
//   - Stack groups with samesign, all, positive and negative strategies
//   - Average, sum, min, max, minmax and LTTB down-sampling
//   - Continuous, piecewise and category visual maps
//   - Rect, lineX, lineY and polygon brushes
//
// # Basic Usage
//
//	s := schema.MustNew(
//	    schema.DimensionDef{Name: "day", Type: format.DimensionOrdinal},
//	    schema.DimensionDef{Name: "sales", Type: format.DimensionNumber},
//	)
//	set, _ := chartdata.NewSet()
//	_, _ = chartdata.AddRows(set, series.Config{ID: "shop", StackKey: "total"}, s, [][]any{
//	    {"Mon", 120}, {"Tue", 200}, {"Wed", 150},
//	})
//	_ = set.Process()
//
// # Package Structure
//
// This package provides top-level wrappers with default option sets. For
// fine-grained control use the schema, source, data, pipeline, visualmap,
// brush and series packages directly.
package chartdata

import (
	"github.com/arloliu/chartdata/pipeline"
	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/series"
	"github.com/arloliu/chartdata/source"
	"github.com/arloliu/chartdata/visualmap"
)

// NewSet creates an empty series set.
func NewSet(opts ...series.SetOption) (*series.Set, error) {
	return series.NewSet(opts...)
}

// NewSeries ingests provider against s and creates a standalone series.
//
// Parameters:
//   - cfg: series configuration; cfg.ID is required
//   - s: the dimension schema
//   - p: the raw input
//   - opts: adapter options such as source.WithEncode
//
// Returns:
//   - *series.Series: the ingested, unprocessed series
//   - error: an adapter or configuration error
func NewSeries(cfg series.Config, s *schema.Schema, p source.Provider, opts ...source.AdapterOption) (*series.Series, error) {
	a, err := source.NewAdapter(p, s, opts...)
	if err != nil {
		return nil, err
	}

	return series.New(cfg, a)
}

// AddRows adds a series built from array-of-arrays input to set.
func AddRows(set *series.Set, cfg series.Config, s *schema.Schema, rows [][]any, opts ...source.AdapterOption) (*series.Series, error) {
	a, err := source.NewAdapter(source.Rows(rows), s, opts...)
	if err != nil {
		return nil, err
	}

	return set.Add(cfg, a)
}

// AddJSON adds a series built from a JSON payload to set. See source.FromJSON
// for the accepted shapes.
func AddJSON(set *series.Set, cfg series.Config, s *schema.Schema, payload []byte, opts ...source.AdapterOption) (*series.Series, error) {
	p, err := source.FromJSON(payload)
	if err != nil {
		return nil, err
	}
	a, err := source.NewAdapter(p, s, opts...)
	if err != nil {
		return nil, err
	}

	return set.Add(cfg, a)
}

// NewDefaultPipeline creates a pipeline with the style and legend visual
// coders of the series at seriesIndex, using the default palette.
func NewDefaultPipeline(seriesIndex int, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	p, err := pipeline.New(opts...)
	if err != nil {
		return nil, err
	}
	p.Register(
		&pipeline.StyleVisual{SeriesIndex: seriesIndex},
		&pipeline.LegendVisual{},
	)

	return p, nil
}

// NewProgressivePipeline is NewDefaultPipeline with progressive processing
// enabled at the series defaults.
func NewProgressivePipeline(seriesIndex int) (*pipeline.Pipeline, error) {
	return NewDefaultPipeline(seriesIndex,
		pipeline.WithProgressive(series.DefaultProgressiveThreshold, series.DefaultProgressiveChunk))
}

// NewContinuousMap creates a continuous visual map over domain with the
// default colour ramp.
func NewContinuousMap(domain [2]float64, opts ...visualmap.ContinuousOption) (*visualmap.Continuous, error) {
	return visualmap.NewContinuous(domain, opts...)
}

// NewPiecewiseMap splits extent into n equal pieces with generated colours.
func NewPiecewiseMap(extent [2]float64, n int, opts ...visualmap.PiecewiseOption) (*visualmap.Piecewise, error) {
	pieces, err := visualmap.SplitPieces(extent, n)
	if err != nil {
		return nil, err
	}

	return visualmap.NewPiecewise(pieces, opts...)
}

// NewCategoryMap maps each category name of an ordinal dimension to a
// colour generated from the piece ramp, in the given order.
func NewCategoryMap(categories []string, opts ...visualmap.PiecewiseOption) (*visualmap.Piecewise, error) {
	return visualmap.NewPiecewise(visualmap.CategoryPieces(categories...), opts...)
}
