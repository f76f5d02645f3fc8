package pipeline

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
)

// StackSource returns the containers of the series stacked below the current
// one, in stack order (bottom first).
type StackSource func() []*data.Container

// Stacker computes stackedValue and stackedOver for a series of a stack group.
//
// For item i, stackedOver is the sum of the values of every series below at
// the same category, and stackedValue adds the item's own value. A missing
// value below contributes zero. A missing own value yields a NaN stacked value
// (a gap) without affecting the series above, which only read raw values.
type Stacker struct {
	// ValueDim is the dimension being stacked.
	ValueDim string
	// StackedBy is the category dimension used to match items across series.
	// Empty matches items by source row.
	StackedBy string
	// Strategy selects which values stack onto each other. Zero means StackSameSign.
	Strategy format.StackStrategy
	// Below supplies the series stacked under this one.
	Below StackSource
}

var _ Processor = (*Stacker)(nil)

func (s *Stacker) Name() string        { return "stack" }
func (s *Stacker) Phase() format.Phase { return format.PhaseStatistic }
func (s *Stacker) Chunked() bool       { return false }

// stackKey identifies a category position shared by series of one group.
type stackKey struct {
	name  string
	value float64
}

func (s *Stacker) keyOf(c *data.Container, dim, i int) (stackKey, bool) {
	if dim < 0 {
		raw, _ := c.RawIndex(i)
		return stackKey{value: float64(raw)}, true
	}

	if meta := c.OrdinalMeta(s.StackedBy); meta != nil {
		name, err := c.Ordinal(s.StackedBy, i)
		if err != nil || name == "" {
			return stackKey{}, false
		}

		return stackKey{name: name}, true
	}

	v, err := c.GetByIndex(dim, i)
	if err != nil || math.IsNaN(v) {
		return stackKey{}, false
	}

	return stackKey{value: v}, true
}

func (s *Stacker) strategy() format.StackStrategy {
	if s.Strategy == 0 {
		return format.StackSameSign
	}

	return s.Strategy
}

// contributes reports whether a value below (other) adds to the stack of own.
func contributes(strategy format.StackStrategy, own, other float64) bool {
	switch strategy {
	case format.StackAll:
		return true
	case format.StackPositive:
		return own >= 0 && other > 0
	case format.StackNegative:
		return own <= 0 && other < 0
	default:
		if own >= 0 {
			return other >= 0
		}

		return other < 0
	}
}

// Process computes the stack over the whole container.
func (s *Stacker) Process(ctx *Context, _, _ int) error {
	c := ctx.Data()

	valueDim, err := c.DimensionIndex(s.ValueDim)
	if err != nil {
		return err
	}
	byDim := -1
	if s.StackedBy != "" {
		if byDim, err = c.DimensionIndex(s.StackedBy); err != nil {
			return err
		}
	}

	// Values of each series below, keyed by category.
	var below []map[stackKey]float64
	if s.Below != nil {
		for _, bc := range s.Below() {
			m, err := s.collect(ctx, bc)
			if err != nil {
				return err
			}
			below = append(below, m)
		}
	}

	strategy := s.strategy()
	n := c.Count()
	stacked := make([]float64, n)
	over := make([]float64, n)

	for i := range n {
		own, _ := c.GetByIndex(valueDim, i)
		key, ok := s.keyOf(c, byDim, i)

		sum := 0.0
		if ok {
			for _, m := range below {
				other, found := m[key]
				if !found || math.IsNaN(other) {
					continue
				}
				if math.IsNaN(own) || contributes(strategy, own, other) {
					sum += other
				}
			}
		}

		switch {
		case math.IsNaN(own):
			stacked[i], over[i] = math.NaN(), math.NaN()
		case strategy == format.StackPositive && own < 0,
			strategy == format.StackNegative && own > 0:
			// Not stacked: rendered from the baseline.
			stacked[i], over[i] = own, 0
		default:
			stacked[i], over[i] = sum+own, sum
		}
	}

	return c.SetStackedValues(stacked, over)
}

func (s *Stacker) collect(ctx *Context, c *data.Container) (map[stackKey]float64, error) {
	valueDim, err := c.DimensionIndex(s.ValueDim)
	if err != nil {
		return nil, fmt.Errorf("stack member: %w", err)
	}
	byDim := -1
	if s.StackedBy != "" {
		if byDim, err = c.DimensionIndex(s.StackedBy); err != nil {
			ctx.Logger().Warn("stack member lacks category dimension", slog.String("dimension", s.StackedBy))
			return nil, fmt.Errorf("%w: stack member: %w", errs.ErrInvalidConfig, err)
		}
	}

	m := make(map[stackKey]float64, c.Count())
	for i := range c.Count() {
		key, ok := s.keyOf(c, byDim, i)
		if !ok {
			continue
		}
		v, _ := c.GetByIndex(valueDim, i)
		if math.IsNaN(v) {
			continue
		}
		if _, dup := m[key]; !dup {
			m[key] = v
		}
	}

	return m, nil
}
