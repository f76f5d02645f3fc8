package source

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
	"github.com/arloliu/chartdata/schema"
)

// Adapter resolves (row, dimension) pairs of a Provider to typed float64 values.
type Adapter struct {
	provider  Provider
	schema    *schema.Schema
	encode    Encode
	binding   []int
	metas     []*schema.OrdinalMeta
	malformed int
	logger    *slog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption = options.Option[*Adapter]

// WithEncode binds dimensions to source columns explicitly.
func WithEncode(e Encode) AdapterOption {
	return options.NoError(func(a *Adapter) {
		a.encode = e
	})
}

// WithLogger sets the logger used to report malformed cells.
func WithLogger(l *slog.Logger) AdapterOption {
	return options.New(func(a *Adapter) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		a.logger = l

		return nil
	})
}

// NewAdapter binds p to s.
//
// Returns an error only for contract problems (an encode map naming an unknown
// dimension); malformed cells are handled during Resolve.
func NewAdapter(p Provider, s *schema.Schema, opts ...AdapterOption) (*Adapter, error) {
	if p == nil || s == nil {
		return nil, fmt.Errorf("%w: nil provider or schema", errs.ErrInvalidConfig)
	}

	a := &Adapter{
		provider: p,
		schema:   s,
		logger:   slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}
	if err := checkEncode(a.encode, s); err != nil {
		return nil, err
	}

	binding, err := a.encode.Resolve(s, p)
	if err != nil {
		return nil, err
	}
	a.binding = binding

	a.metas = make([]*schema.OrdinalMeta, s.Len())
	for i := range s.Len() {
		d := s.At(i)
		if d.Type == format.DimensionOrdinal {
			a.metas[i] = schema.NewOrdinalMeta(d.Name, d.Categories)
		}
	}

	return a, nil
}

// Count returns the number of source rows.
func (a *Adapter) Count() int {
	return a.provider.Count()
}

// Schema returns the bound schema.
func (a *Adapter) Schema() *schema.Schema {
	return a.schema
}

// Binding returns the source column of each dimension (-1 for unbound).
func (a *Adapter) Binding() []int {
	return append([]int(nil), a.binding...)
}

// OrdinalMeta returns the category table of dimension dim, or nil for
// non-ordinal dimensions.
func (a *Adapter) OrdinalMeta(dim int) *schema.OrdinalMeta {
	return a.metas[dim]
}

// Malformed returns how many non-empty cells could not be coerced so far.
func (a *Adapter) Malformed() int {
	return a.malformed
}

// Raw returns the unconverted cell for row and dimension dim.
func (a *Adapter) Raw(row, dim int) any {
	col := a.binding[dim]
	if col < 0 {
		return nil
	}

	return a.provider.Value(row, col)
}

// Resolve returns the typed value of dimension dim in row.
// Missing and malformed cells return NaN.
func (a *Adapter) Resolve(row, dim int) float64 {
	raw := a.Raw(row, dim)
	if isMissing(raw) {
		return math.NaN()
	}

	var (
		v  float64
		ok bool
	)
	switch a.schema.At(dim).Type {
	case format.DimensionOrdinal:
		var c string
		if c, ok = toCategory(raw); ok {
			v = a.metas[dim].Parse(c)
		}
	case format.DimensionTime:
		v, ok = toTime(raw)
	default:
		v, ok = toNumber(raw)
	}

	if !ok {
		if a.malformed == 0 {
			a.logger.Debug("malformed cell resolved to missing",
				slog.Int("row", row),
				slog.String("dimension", a.schema.At(dim).Name),
				slog.Any("value", raw))
		}
		a.malformed++

		return math.NaN()
	}

	return v
}
