package visualmap

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
)

var errInvalidStops = fmt.Errorf("%w: unordered color stops", errs.ErrInvalidDomain)

// DefaultInRangeColors is the colour ramp of a continuous map without explicit colours.
var DefaultInRangeColors = []string{"#f6efa6", "#d88273", "#bf444c"}

// DefaultOutOfRangeColor is the colour of values outside the selected range.
const DefaultOutOfRangeColor = "#cccccc"

// Continuous maps values linearly over a domain.
type Continuous struct {
	domain   [2]float64
	selected [2]float64
	norm     scale.Linear

	inRange    StateVisuals
	outOfRange StateVisuals
	inStops    []parsedStop
	outStops   []parsedStop
}

// ContinuousOption configures a Continuous mapper.
type ContinuousOption = options.Option[*Continuous]

// WithInRange sets the visuals of in-range values.
func WithInRange(v StateVisuals) ContinuousOption {
	return options.NoError(func(c *Continuous) {
		c.inRange = v
	})
}

// WithOutOfRange sets the visuals of out-of-range values.
func WithOutOfRange(v StateVisuals) ContinuousOption {
	return options.NoError(func(c *Continuous) {
		c.outOfRange = v
	})
}

// WithStops positions the in-range colours at explicit domain offsets.
func WithStops(stops ...Stop) ContinuousOption {
	return options.NoError(func(c *Continuous) {
		c.inRange.Stops = stops
	})
}

// WithRange selects the sub-range [lo, hi] of the domain that is in range.
// A descending pair is reversed.
func WithRange(lo, hi float64) ContinuousOption {
	return options.New(func(c *Continuous) error {
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return fmt.Errorf("%w: selected range [%v, %v]", errs.ErrInvalidDomain, lo, hi)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		c.selected = [2]float64{lo, hi}

		return nil
	})
}

// NewContinuous creates a continuous mapper over domain [lo, hi].
//
// Returns errs.ErrInvalidDomain when the domain is not strictly ordered or
// not finite, or when colour stops are out of order, and errs.ErrInvalidColor
// for an unparseable colour.
func NewContinuous(domain [2]float64, opts ...ContinuousOption) (*Continuous, error) {
	lo, hi := domain[0], domain[1]
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return nil, fmt.Errorf("%w: [%v, %v]", errs.ErrInvalidDomain, lo, hi)
	}

	c := &Continuous{
		domain:   domain,
		selected: domain,
		norm:     scale.Linear{Min: lo, Max: hi, Clamp: true},
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	if len(c.inRange.Colors) == 0 && len(c.inRange.Stops) == 0 {
		c.inRange.Colors = DefaultInRangeColors
	}
	if len(c.outOfRange.Colors) == 0 && len(c.outOfRange.Stops) == 0 {
		c.outOfRange.Colors = []string{DefaultOutOfRangeColor}
	}

	var err error
	if c.inStops, err = parseStops(c.inRange.Colors, c.inRange.Stops, domain); err != nil {
		return nil, err
	}
	if c.outStops, err = parseStops(c.outOfRange.Colors, c.outOfRange.Stops, domain); err != nil {
		return nil, err
	}

	return c, nil
}

// Domain returns the mapped domain.
func (c *Continuous) Domain() [2]float64 {
	return c.domain
}

// Range returns the selected sub-range.
func (c *Continuous) Range() [2]float64 {
	return c.selected
}

// SetRange changes the selected sub-range, reversing a descending pair.
func (c *Continuous) SetRange(lo, hi float64) error {
	return options.Apply(c, WithRange(lo, hi))
}

// Normalize maps v to [0, 1] over the domain, clamping outside values.
func (c *Continuous) Normalize(v float64) float64 {
	return c.norm.Map(v)
}

// ValueState classifies v against the selected range.
//
// v is in range iff
//
//	(range[0] <= domain[0] || range[0] <= v) && (range[1] >= domain[1] || v <= range[1])
//
// so a range edge touching the domain edge is open-ended on that side:
// selecting from the domain minimum includes every smaller value as well.
// Missing values are out of range.
func (c *Continuous) ValueState(v float64) format.VisualState {
	if math.IsNaN(v) {
		return format.OutOfRange
	}

	r, d := c.selected, c.domain
	if (r[0] <= d[0] || r[0] <= v) && (r[1] >= d[1] || v <= r[1]) {
		return format.InRange
	}

	return format.OutOfRange
}

// MapColor returns the in-range colour of v, clamping to the end colours
// outside the domain.
func (c *Continuous) MapColor(v float64) string {
	return colorAt(c.inStops, v)
}

// Map returns the visual of v for its state.
func (c *Continuous) Map(v float64) Visual {
	state := c.ValueState(v)
	t := c.Normalize(v)
	if math.IsNaN(t) {
		t = 0
	}

	sv, stops := c.inRange, c.inStops
	if state == format.OutOfRange {
		sv, stops = c.outOfRange, c.outStops
	}

	return Visual{
		State:      state,
		Color:      colorAt(stops, clampTo(v, c.domain)),
		Symbol:     pickSymbol(sv.Symbols, t),
		SymbolSize: lerpRange(sv.SymbolSize, t),
		Opacity:    lerpRange(sv.Opacity, t),
	}
}

func clampTo(v float64, d [2]float64) float64 {
	if math.IsNaN(v) {
		return d[0]
	}

	return math.Max(d[0], math.Min(d[1], v))
}
