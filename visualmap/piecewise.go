package visualmap

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
)

// Piece is one bucket of a piecewise map.
//
// A range piece covers [Min, Max) by default; ExcludeMin opens the lower
// bound and IncludeMax closes the upper one. Use math.Inf for unbounded
// sides. A piece with Value set matches that exact value only and ignores
// Min and Max. A piece with Category set matches items of an ordinal
// dimension by category name, never by ordinal code, and never matches a
// numeric value.
type Piece struct {
	Min        float64
	Max        float64
	ExcludeMin bool
	IncludeMax bool
	Value      *float64
	Category   string

	Color      string
	Symbol     string
	SymbolSize float64
	Label      string
}

// Contains reports whether v falls in the piece.
func (p Piece) Contains(v float64) bool {
	if math.IsNaN(v) || p.Category != "" {
		return false
	}
	if p.Value != nil {
		return v == *p.Value
	}

	lower := v > p.Min || (v == p.Min && !p.ExcludeMin)
	upper := v < p.Max || (v == p.Max && p.IncludeMax)

	return lower && upper
}

// ContainsCategory reports whether p is a category piece for name.
func (p Piece) ContainsCategory(name string) bool {
	return p.Category != "" && p.Category == name
}

// Piecewise maps values to the visual of the first piece containing them.
type Piecewise struct {
	pieces     []Piece
	selected   []bool
	categories map[string]int // category name → piece index
	ramp       []string
	outOfRange string
}

// PiecewiseOption configures a Piecewise mapper.
type PiecewiseOption = options.Option[*Piecewise]

// WithPieceColors sets the ramp that colours pieces without an explicit colour.
func WithPieceColors(colors ...string) PiecewiseOption {
	return options.New(func(p *Piecewise) error {
		if len(colors) == 0 {
			return fmt.Errorf("%w: empty piece color ramp", errs.ErrInvalidPieces)
		}
		p.ramp = colors

		return nil
	})
}

// WithOutOfRangeColor sets the colour of values outside every selected piece.
func WithOutOfRangeColor(color string) PiecewiseOption {
	return options.New(func(p *Piecewise) error {
		if _, err := ParseColor(color); err != nil {
			return err
		}
		p.outOfRange = color

		return nil
	})
}

// NewPiecewise creates a piecewise mapper.
//
// Range pieces must be ordered by Min and must not overlap; exact-value and
// category pieces may appear anywhere. Every piece starts selected.
//
// Returns errs.ErrInvalidPieces for empty, unordered or overlapping pieces
// or a repeated category, and errs.ErrInvalidColor for unparseable colours.
func NewPiecewise(pieces []Piece, opts ...PiecewiseOption) (*Piecewise, error) {
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", errs.ErrInvalidPieces)
	}

	p := &Piecewise{
		ramp:       DefaultInRangeColors,
		outOfRange: DefaultOutOfRangeColor,
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}
	if err := validatePieces(pieces); err != nil {
		return nil, err
	}

	stops, err := parseStops(p.ramp, nil, [2]float64{0, 1})
	if err != nil {
		return nil, err
	}

	p.pieces = make([]Piece, len(pieces))
	p.selected = make([]bool, len(pieces))
	p.categories = make(map[string]int)
	for i, pc := range pieces {
		if pc.Category != "" {
			p.categories[pc.Category] = i
		}
		if pc.Color == "" {
			t := 0.0
			if len(pieces) > 1 {
				t = float64(i) / float64(len(pieces)-1)
			}
			pc.Color = colorAt(stops, t)
		} else if _, err := ParseColor(pc.Color); err != nil {
			return nil, err
		}
		if pc.Label == "" {
			pc.Label = pieceLabel(pc)
		}
		p.pieces[i] = pc
		p.selected[i] = true
	}

	return p, nil
}

func validatePieces(pieces []Piece) error {
	var prev *Piece
	seen := make(map[string]bool)
	for i := range pieces {
		pc := &pieces[i]
		if pc.Category != "" {
			if seen[pc.Category] {
				return fmt.Errorf("%w: category %q repeated in piece %d", errs.ErrInvalidPieces, pc.Category, i)
			}
			seen[pc.Category] = true

			continue
		}
		if pc.Value != nil {
			if math.IsNaN(*pc.Value) {
				return fmt.Errorf("%w: piece %d has NaN value", errs.ErrInvalidPieces, i)
			}

			continue
		}

		if math.IsNaN(pc.Min) || math.IsNaN(pc.Max) || pc.Min > pc.Max ||
			(pc.Min == pc.Max && (pc.ExcludeMin || !pc.IncludeMax)) {
			return fmt.Errorf("%w: piece %d has empty bounds [%v, %v]", errs.ErrInvalidPieces, i, pc.Min, pc.Max)
		}

		if prev != nil {
			if pc.Min < prev.Min {
				return fmt.Errorf("%w: piece %d is not ordered", errs.ErrInvalidPieces, i)
			}
			if pc.Min < prev.Max || (pc.Min == prev.Max && prev.IncludeMax && !pc.ExcludeMin) {
				return fmt.Errorf("%w: piece %d overlaps its predecessor", errs.ErrInvalidPieces, i)
			}
		}
		prev = pc
	}

	return nil
}

func pieceLabel(pc Piece) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	switch {
	case pc.Category != "":
		return pc.Category
	case pc.Value != nil:
		return f(*pc.Value)
	case math.IsInf(pc.Min, -1):
		return "< " + f(pc.Max)
	case math.IsInf(pc.Max, 1):
		return "> " + f(pc.Min)
	default:
		return f(pc.Min) + " - " + f(pc.Max)
	}
}

// Pieces returns the configured pieces with generated colours and labels filled in.
func (p *Piecewise) Pieces() []Piece {
	out := make([]Piece, len(p.pieces))
	copy(out, p.pieces)

	return out
}

// PieceIndex returns the index of the first piece containing v, or -1.
func (p *Piecewise) PieceIndex(v float64) int {
	for i, pc := range p.pieces {
		if pc.Contains(v) {
			return i
		}
	}

	return -1
}

// CategoryIndex returns the index of the category piece for name, or -1.
func (p *Piecewise) CategoryIndex(name string) int {
	if i, ok := p.categories[name]; ok {
		return i
	}

	return -1
}

// HasCategories reports whether any piece matches by category name.
func (p *Piecewise) HasCategories() bool {
	return len(p.categories) > 0
}

// SetSelected toggles the selection of piece i.
func (p *Piecewise) SetSelected(i int, selected bool) error {
	if i < 0 || i >= len(p.pieces) {
		return fmt.Errorf("%w: piece %d, count %d", errs.ErrIndexOutOfRange, i, len(p.pieces))
	}
	p.selected[i] = selected

	return nil
}

// Selected reports whether piece i is selected.
func (p *Piecewise) Selected(i int) bool {
	return i >= 0 && i < len(p.selected) && p.selected[i]
}

// ValueState reports InRange when v falls in a selected piece.
func (p *Piecewise) ValueState(v float64) format.VisualState {
	if p.Selected(p.PieceIndex(v)) {
		return format.InRange
	}

	return format.OutOfRange
}

// CategoryState reports InRange when name has a selected category piece.
func (p *Piecewise) CategoryState(name string) format.VisualState {
	if p.Selected(p.CategoryIndex(name)) {
		return format.InRange
	}

	return format.OutOfRange
}

// Map returns the visual of the piece containing v, or the out-of-range
// colour when no selected piece contains it.
func (p *Piecewise) Map(v float64) Visual {
	return p.visual(p.PieceIndex(v))
}

// MapCategory returns the visual of the category piece for name, or the
// out-of-range colour when there is none or it is deselected. The empty
// name of a missing item is always out of range.
func (p *Piecewise) MapCategory(name string) Visual {
	return p.visual(p.CategoryIndex(name))
}

func (p *Piecewise) visual(i int) Visual {
	if !p.Selected(i) {
		return Visual{State: format.OutOfRange, Color: p.outOfRange}
	}
	pc := p.pieces[i]

	return Visual{
		State:      format.InRange,
		Color:      pc.Color,
		Symbol:     pc.Symbol,
		SymbolSize: pc.SymbolSize,
	}
}

// CategoryPieces returns one piece per category, in the given order.
// Colours and labels are filled in by NewPiecewise.
func CategoryPieces(categories ...string) []Piece {
	pieces := make([]Piece, len(categories))
	for i, c := range categories {
		pieces[i] = Piece{Category: c}
	}

	return pieces
}

// SplitPieces divides extent into n equal-width pieces. The last piece
// includes the extent maximum.
func SplitPieces(extent [2]float64, n int) ([]Piece, error) {
	lo, hi := extent[0], extent[1]
	if n < 1 {
		return nil, fmt.Errorf("%w: split count %d", errs.ErrInvalidPieces, n)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return nil, fmt.Errorf("%w: [%v, %v]", errs.ErrInvalidDomain, lo, hi)
	}

	step := (hi - lo) / float64(n)
	pieces := make([]Piece, n)
	for i := range pieces {
		pieces[i] = Piece{Min: lo + step*float64(i), Max: lo + step*float64(i+1)}
	}
	pieces[n-1].Max = hi
	pieces[n-1].IncludeMax = true

	return pieces, nil
}
