// Package series ties a data container to its configuration.
//
// A Series ingests a source adapter into a container and builds the
// processing pipeline described by its Config: down-sampling, stacking,
// style and legend visuals, and an optional visual map. A Set keeps series
// in registration order, wires stack groups together and exposes the series
// as targets for range queries and brushing.
package series

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
	"github.com/arloliu/chartdata/pipeline"
	"github.com/arloliu/chartdata/source"
)

// Series is one configured data series.
type Series struct {
	orig  Config
	cfg   Config
	index int
	below pipeline.StackSource

	raw  *data.Container
	ctx  *pipeline.Context
	pipe *pipeline.Pipeline

	stepping bool
	logger   *slog.Logger
}

// Option configures a Series.
type Option = options.Option[*Series]

// WithIndex sets the series position used to pick the palette colour.
func WithIndex(i int) Option {
	return options.New(func(s *Series) error {
		if i < 0 {
			return fmt.Errorf("%w: series index %d", errs.ErrInvalidConfig, i)
		}
		s.index = i

		return nil
	})
}

// WithStackSource supplies the containers stacked below the series.
func WithStackSource(src pipeline.StackSource) Option {
	return options.NoError(func(s *Series) {
		s.below = src
	})
}

// WithLogger sets the logger used by the series, its container and pipeline.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(s *Series) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		s.logger = l

		return nil
	})
}

// New ingests adapter according to cfg.
//
// Returns errs.ErrInvalidConfig for an invalid configuration and
// errs.ErrUnknownDimension when cfg names a dimension missing from the
// adapter's schema.
func New(cfg Config, adapter *source.Adapter, opts ...Option) (*Series, error) {
	s := &Series{
		orig:   cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}
	if err := s.ingest(adapter); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Series) ingest(adapter *source.Adapter) error {
	if adapter == nil {
		return fmt.Errorf("%w: nil adapter", errs.ErrInvalidConfig)
	}

	cfg, err := s.orig.normalize(adapter.Schema())
	if err != nil {
		return err
	}

	raw, err := data.New(adapter,
		data.WithInvertedIndex(cfg.InvertedIndex...),
		data.WithLogger(s.logger.With(slog.String("series", cfg.ID))))
	if err != nil {
		return fmt.Errorf("series %q: %w", cfg.ID, err)
	}

	pipe, err := s.buildPipeline(cfg)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.raw = raw
	s.pipe = pipe
	s.ctx = pipeline.NewContext(raw.CloneShallow())
	s.stepping = false

	return nil
}

func (s *Series) buildPipeline(cfg Config) (*pipeline.Pipeline, error) {
	opts := []pipeline.Option{pipeline.WithLogger(s.logger.With(slog.String("series", cfg.ID)))}
	if cfg.Progressive {
		opts = append(opts, pipeline.WithProgressive(cfg.ProgressiveThreshold, cfg.ProgressiveChunk))
	}

	p, err := pipeline.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", cfg.ID, err)
	}

	if cfg.Sampling != format.SamplingNone {
		p.Register(&pipeline.Sampler{
			ValueDim:  cfg.ValueDim,
			Strategy:  cfg.Sampling,
			Threshold: cfg.SamplingThreshold,
			Target:    cfg.TargetBucketCount,
		})
	}
	if cfg.StackKey != "" {
		p.Register(&pipeline.Stacker{
			ValueDim:  cfg.ValueDim,
			StackedBy: cfg.CategoryDim,
			Strategy:  cfg.StackStrategy,
			Below:     s.below,
		})
	}
	p.Register(
		&pipeline.StyleVisual{
			Color:       cfg.Color,
			Palette:     cfg.Palette,
			SeriesIndex: s.index,
			ColorBy:     cfg.ColorBy,
			Symbol:      cfg.Symbol,
			SymbolSize:  cfg.SymbolSize,
		},
		&pipeline.LegendVisual{Symbol: cfg.LegendSymbol},
	)
	if cfg.VisualMap != nil {
		p.Register(&pipeline.VisualMapCoder{Dim: cfg.VisualMapDim, Mapper: cfg.VisualMap})
	}

	return p, nil
}

// ID returns the series ID.
func (s *Series) ID() string { return s.cfg.ID }

// Name returns the display name.
func (s *Series) Name() string { return s.cfg.Name }

// CoordSys returns the coordinate system the series belongs to.
func (s *Series) CoordSys() string { return s.cfg.CoordSys }

// Index returns the palette position of the series.
func (s *Series) Index() int { return s.index }

// Config returns the configuration with defaults filled in.
func (s *Series) Config() Config { return s.cfg }

// Pipeline returns the processing pipeline.
func (s *Series) Pipeline() *pipeline.Pipeline { return s.pipe }

// Raw returns the container as ingested, before any processing.
func (s *Series) Raw() *data.Container { return s.raw }

// Data returns the processed container. Before the first Process or Step
// it is an unprocessed copy of Raw.
func (s *Series) Data() *data.Container { return s.ctx.Data() }

// IsProgressive reports whether processing runs in chunks.
func (s *Series) IsProgressive() bool {
	return s.pipe.IsProgressive(s.raw.Count())
}

// Process runs a full pass over a fresh copy of the ingested data.
func (s *Series) Process() error {
	s.ctx = pipeline.NewContext(s.raw.CloneShallow())
	s.stepping = false
	if err := s.pipe.Run(s.ctx); err != nil {
		return fmt.Errorf("series %q: %w", s.cfg.ID, err)
	}

	return nil
}

// Step processes the next chunk, starting a new pass when none is running.
// It reports whether the pass is complete; a completed pass keeps reporting
// true until Rewind, Process or Reingest.
func (s *Series) Step() (bool, error) {
	if !s.stepping {
		s.ctx = pipeline.NewContext(s.raw.CloneShallow())
		s.pipe.Reset()
		s.stepping = true
	}

	done, err := s.pipe.Step(s.ctx)
	if err != nil {
		return false, fmt.Errorf("series %q: %w", s.cfg.ID, err)
	}

	return done, nil
}

// Rewind makes the next Step start a new progressive pass.
func (s *Series) Rewind() {
	s.stepping = false
}

// Reingest replaces the data wholesale with a new source. The configuration
// is re-applied against the new schema; processing must be run again.
func (s *Series) Reingest(adapter *source.Adapter) error {
	return s.ingest(adapter)
}
