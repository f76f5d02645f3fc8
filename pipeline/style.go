package pipeline

import (
	"fmt"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
)

// DefaultPalette is the colour cycle used when a series has no explicit colour.
var DefaultPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

// StyleVisual assigns the series colour and style.
//
// With ColorBySeries, the container default colour is Color, or the palette
// entry at SeriesIndex. With ColorByData every item in the window receives
// the palette entry at its item index, overriding the default.
type StyleVisual struct {
	Color       string
	Palette     []string
	SeriesIndex int
	ColorBy     format.ColorBy
	Symbol      string
	SymbolSize  float64
	Style       map[string]any
}

var _ Processor = (*StyleVisual)(nil)

func (s *StyleVisual) Name() string        { return "style" }
func (s *StyleVisual) Phase() format.Phase { return format.PhaseVisual }
func (s *StyleVisual) Chunked() bool       { return true }

func (s *StyleVisual) palette() []string {
	if len(s.Palette) > 0 {
		return s.Palette
	}

	return DefaultPalette
}

// SeriesColor returns the colour used for the series as a whole.
func (s *StyleVisual) SeriesColor() string {
	if s.Color != "" {
		return s.Color
	}
	p := s.palette()

	return p[((s.SeriesIndex%len(p))+len(p))%len(p)]
}

func (s *StyleVisual) Process(ctx *Context, start, end int) error {
	c := ctx.Data()

	c.SetVisual(data.ChannelColor, s.SeriesColor())
	if s.Symbol != "" {
		c.SetVisual(data.ChannelSymbol, s.Symbol)
	}
	if s.SymbolSize > 0 {
		c.SetVisual(data.ChannelSymbolSize, s.SymbolSize)
	}
	if s.Style != nil {
		c.SetVisual(data.ChannelStyle, s.Style)
	}

	switch s.ColorBy {
	case 0, format.ColorBySeries:
		return nil
	case format.ColorByData:
		p := s.palette()
		for i := start; i < end; i++ {
			if err := c.SetItemVisual(i, data.ChannelColor, p[i%len(p)]); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: colorBy %d", errs.ErrInvalidConfig, s.ColorBy)
	}
}

// LegendVisual sets the legend symbol of the series.
//
// The legend symbol is Symbol when set, else the series symbol visual, else
// "roundRect". It runs with every window so that it observes the symbol set
// by StyleVisual earlier in the same phase.
type LegendVisual struct {
	Symbol string
}

var _ Processor = (*LegendVisual)(nil)

func (l *LegendVisual) Name() string        { return "legend" }
func (l *LegendVisual) Phase() format.Phase { return format.PhaseVisual }
func (l *LegendVisual) Chunked() bool       { return true }

func (l *LegendVisual) Process(ctx *Context, _, _ int) error {
	c := ctx.Data()

	symbol := l.Symbol
	if symbol == "" {
		if v, ok := c.GetVisual(data.ChannelSymbol); ok {
			symbol, _ = v.(string)
		}
	}
	if symbol == "" {
		symbol = "roundRect"
	}
	c.SetVisual(data.ChannelLegendSymbol, symbol)

	return nil
}
