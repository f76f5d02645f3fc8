package series

import (
	"fmt"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/visualmap"
)

// Default configuration values.
const (
	DefaultProgressiveThreshold = 3000
	DefaultProgressiveChunk     = 400
)

// Config is the per-series configuration supplied by the option layer. It is
// read once per ingestion and never modified by the series.
type Config struct {
	// ID identifies the series within a Set. Required.
	ID string
	// Name is the display name; defaults to ID.
	Name string
	// Type is the chart type ("line", "bar", "scatter", "boxplot", ...).
	Type string
	// CoordSys names the coordinate system the series is laid out in.
	CoordSys string

	// ValueDim is the dimension stacked, sampled and visual-mapped.
	// Empty selects the last numeric dimension.
	ValueDim string
	// CategoryDim matches items across a stack group and groups box
	// statistics. Empty selects the first ordinal dimension, if any.
	CategoryDim string
	// InvertedIndex lists ordinal dimensions given a category → item index.
	InvertedIndex []string

	// StackKey groups series whose values accumulate. Empty disables stacking.
	StackKey      string
	StackStrategy format.StackStrategy

	Sampling          format.SamplingStrategy
	SamplingThreshold int
	TargetBucketCount int

	Progressive          bool
	ProgressiveThreshold int
	ProgressiveChunk     int

	Color        string
	Palette      []string
	ColorBy      format.ColorBy
	Symbol       string
	SymbolSize   float64
	LegendSymbol string

	// VisualMap maps VisualMapDim (default ValueDim) to per-item visuals.
	VisualMap    visualmap.Mapper
	VisualMapDim string
}

// normalize fills defaults against schema s and validates the result.
func (c Config) normalize(s *schema.Schema) (Config, error) {
	if c.ID == "" {
		return c, fmt.Errorf("%w: series without id", errs.ErrInvalidConfig)
	}
	if c.Name == "" {
		c.Name = c.ID
	}

	if c.ValueDim == "" {
		for i := s.Len() - 1; i >= 0; i-- {
			if s.At(i).Type == format.DimensionNumber {
				c.ValueDim = s.At(i).Name
				break
			}
		}
		if c.ValueDim == "" {
			return c, fmt.Errorf("%w: series %q has no numeric dimension", errs.ErrInvalidConfig, c.ID)
		}
	} else if _, err := s.Lookup(c.ValueDim); err != nil {
		return c, fmt.Errorf("series %q value: %w", c.ID, err)
	}

	if c.CategoryDim == "" {
		if d, ok := s.FirstOfType(format.DimensionOrdinal); ok {
			c.CategoryDim = d.Name
		}
	} else if _, err := s.Lookup(c.CategoryDim); err != nil {
		return c, fmt.Errorf("series %q category: %w", c.ID, err)
	}

	if c.VisualMapDim == "" {
		c.VisualMapDim = c.ValueDim
	} else if _, err := s.Lookup(c.VisualMapDim); err != nil {
		return c, fmt.Errorf("series %q visual map: %w", c.ID, err)
	}

	if c.Sampling != format.SamplingNone {
		if c.TargetBucketCount <= 0 {
			return c, fmt.Errorf("%w: series %q samples with %s but target bucket count is %d",
				errs.ErrInvalidConfig, c.ID, c.Sampling, c.TargetBucketCount)
		}
		if c.SamplingThreshold < 0 {
			return c, fmt.Errorf("%w: series %q sampling threshold %d", errs.ErrInvalidConfig, c.ID, c.SamplingThreshold)
		}
	}

	if c.StackKey != "" && c.StackStrategy == 0 {
		c.StackStrategy = format.StackSameSign
	}

	if c.Progressive {
		if c.ProgressiveThreshold == 0 {
			c.ProgressiveThreshold = DefaultProgressiveThreshold
		}
		if c.ProgressiveChunk == 0 {
			c.ProgressiveChunk = DefaultProgressiveChunk
		}
	}

	if c.ColorBy == 0 {
		c.ColorBy = format.ColorBySeries
	}

	return c, nil
}
