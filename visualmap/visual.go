// Package visualmap maps numeric values to visual attributes.
//
// Two mappers are provided:
//
//   - Continuous: linear interpolation over a domain, with colour stops at
//     arbitrary domain positions and a selectable sub-range. Values outside
//     the selected range use the out-of-range visuals.
//   - Piecewise: ordered, non-overlapping [min, max) buckets each carrying
//     an explicit or generated colour, with per-bucket selection. Pieces may
//     also match category names of an ordinal dimension.
//
// FindTargetIndices answers range queries over series containers without
// touching layouts, e.g. for cross-highlighting on legend hover.
package visualmap

import (
	"fmt"
	"image/color"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/format"
)

// Visual is the result of mapping one value. Zero fields are unset.
type Visual struct {
	State      format.VisualState
	Color      string
	Symbol     string
	SymbolSize float64
	Opacity    float64
}

// Mapper maps a value to its visual.
type Mapper interface {
	Map(value float64) Visual
}

// CategoryMapper is a Mapper that can also map category names of an ordinal
// dimension. Piecewise implements it.
type CategoryMapper interface {
	Mapper
	// HasCategories reports whether category names should be used at all.
	HasCategories() bool
	MapCategory(name string) Visual
}

// Apply writes the set fields of v as per-item overrides of item i.
func (v Visual) Apply(c *data.Container, i int) error {
	if v.Color != "" {
		if err := c.SetItemVisual(i, data.ChannelColor, v.Color); err != nil {
			return err
		}
	}
	if v.Symbol != "" {
		if err := c.SetItemVisual(i, data.ChannelSymbol, v.Symbol); err != nil {
			return err
		}
	}
	if v.SymbolSize > 0 {
		if err := c.SetItemVisual(i, data.ChannelSymbolSize, v.SymbolSize); err != nil {
			return err
		}
	}
	if v.Opacity > 0 {
		if err := c.SetItemVisual(i, data.ChannelOpacity, v.Opacity); err != nil {
			return err
		}
	}

	return nil
}

// StateVisuals describes the visuals of one state (in range or out of range).
//
// Colors are spread evenly over the domain unless Stops positions them
// explicitly. SymbolSize and Opacity hold one value (constant) or two
// (linear from the low to the high end of the domain). Symbols are picked
// by rounding the normalized value onto the list.
type StateVisuals struct {
	Colors     []string
	Stops      []Stop
	Symbols    []string
	SymbolSize []float64
	Opacity    []float64
}

// Stop places a colour at a domain position.
type Stop struct {
	Offset float64
	Color  string
}

type parsedStop struct {
	offset float64
	raw    string
	rgba   color.RGBA
}

// parseStops validates and parses stops; when only colours are given they are
// spread evenly over domain.
func parseStops(colors []string, stops []Stop, domain [2]float64) ([]parsedStop, error) {
	if len(stops) == 0 {
		stops = make([]Stop, len(colors))
		for i, c := range colors {
			off := domain[0]
			if len(colors) > 1 {
				off = domain[0] + (domain[1]-domain[0])*float64(i)/float64(len(colors)-1)
			}
			stops[i] = Stop{Offset: off, Color: c}
		}
	}

	out := make([]parsedStop, len(stops))
	for i, s := range stops {
		rgba, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		if i > 0 && s.Offset < stops[i-1].Offset {
			return nil, fmt.Errorf("%w: stop %d offset %v precedes %v", errInvalidStops, i, s.Offset, stops[i-1].Offset)
		}
		out[i] = parsedStop{offset: s.Offset, raw: s.Color, rgba: rgba}
	}

	return out, nil
}

// colorAt interpolates between the stops bracketing v. Values outside the
// stops clamp to the end colours; exact stop positions return the stop's
// original string.
func colorAt(stops []parsedStop, v float64) string {
	switch {
	case len(stops) == 0:
		return ""
	case v <= stops[0].offset:
		return stops[0].raw
	case v >= stops[len(stops)-1].offset:
		return stops[len(stops)-1].raw
	}

	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if v > hi.offset {
			continue
		}
		lo := stops[i-1]
		if v == hi.offset || hi.offset == lo.offset {
			return hi.raw
		}
		t := (v - lo.offset) / (hi.offset - lo.offset)

		return FormatColor(LerpColor(lo.rgba, hi.rgba, t))
	}

	return stops[len(stops)-1].raw
}

// lerpRange maps normalized t onto a one- or two-element range.
func lerpRange(r []float64, t float64) float64 {
	switch len(r) {
	case 0:
		return 0
	case 1:
		return r[0]
	default:
		return r[0] + (r[1]-r[0])*t
	}
}

func pickSymbol(symbols []string, t float64) string {
	if len(symbols) == 0 {
		return ""
	}
	i := int(t*float64(len(symbols)-1) + 0.5)

	return symbols[max(0, min(i, len(symbols)-1))]
}
