package data

import (
	"fmt"
	"iter"
	"log/slog"
	"math"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/source"
)

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing returns the missing-value sentinel.
func Missing() float64 {
	return math.NaN()
}

// Container is the columnar store of one series.
type Container struct {
	schema   *schema.Schema
	metas    []*schema.OrdinalMeta
	columns  [][]float64 // per dimension, indexed by raw row
	rawCount int

	indices []int // item → raw row; nil means identity
	count   int

	visual      *visualOverlay
	stacked     []float64
	stackedOver []float64
	layouts     []any

	invertedDims map[int]bool
	inverted     map[int]map[int]int // dimension → category code → first item
	extents      map[int][2]float64

	logger *slog.Logger
}

// Option configures a Container at construction time.
type Option = options.Option[*Container]

// WithInvertedIndex enables the category → item inverted index for the named
// ordinal dimensions. Dimensions declared with SortByCategory are enabled
// automatically.
func WithInvertedIndex(dims ...string) Option {
	return options.New(func(c *Container) error {
		for _, name := range dims {
			i, err := c.schema.Lookup(name)
			if err != nil {
				return err
			}
			if c.schema.At(i).Type != format.DimensionOrdinal {
				return fmt.Errorf("%w: inverted index on %s dimension %q",
					errs.ErrInvalidDimensionType, c.schema.At(i).Type, name)
			}
			c.invertedDims[i] = true
		}

		return nil
	})
}

// WithLogger sets the logger used for ingestion diagnostics.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(c *Container) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		c.logger = l

		return nil
	})
}

// New ingests every row of adapter into a new container.
//
// Malformed cells become missing values; they never fail ingestion.
//
// Returns:
//   - *Container: the populated container with Count() == adapter.Count()
//   - error: an option error (unknown or non-ordinal inverted-index dimension, nil logger)
func New(adapter *source.Adapter, opts ...Option) (*Container, error) {
	if adapter == nil {
		return nil, fmt.Errorf("%w: nil adapter", errs.ErrInvalidConfig)
	}

	s := adapter.Schema()
	n := adapter.Count()
	c := &Container{
		schema:       s,
		metas:        make([]*schema.OrdinalMeta, s.Len()),
		columns:      make([][]float64, s.Len()),
		rawCount:     n,
		count:        n,
		visual:       newVisualOverlay(),
		layouts:      make([]any, n),
		invertedDims: make(map[int]bool),
		extents:      make(map[int][2]float64),
		logger:       slog.New(slog.DiscardHandler),
	}
	for i := range s.Len() {
		if s.At(i).SortByCategory && s.At(i).Type == format.DimensionOrdinal {
			c.invertedDims[i] = true
		}
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	for dim := range s.Len() {
		col := make([]float64, n)
		for row := range n {
			col[row] = adapter.Resolve(row, dim)
		}
		c.columns[dim] = col
		c.metas[dim] = adapter.OrdinalMeta(dim)
	}

	c.logger.Debug("series data ingested",
		slog.Int("items", n),
		slog.Int("dimensions", s.Len()),
		slog.Int("malformed", adapter.Malformed()))

	return c, nil
}

// Schema returns the dimension schema.
func (c *Container) Schema() *schema.Schema {
	return c.schema
}

// Count returns the number of items.
func (c *Container) Count() int {
	return c.count
}

// RawCount returns the number of ingested source rows.
func (c *Container) RawCount() int {
	return c.rawCount
}

func (c *Container) checkIndex(i int) error {
	if i < 0 || i >= c.count {
		return fmt.Errorf("%w: index %d, count %d", errs.ErrIndexOutOfRange, i, c.count)
	}

	return nil
}

func (c *Container) rawIndex(i int) int {
	if c.indices == nil {
		return i
	}

	return c.indices[i]
}

// RawIndex returns the source row of item i.
func (c *Container) RawIndex(i int) (int, error) {
	if err := c.checkIndex(i); err != nil {
		return -1, err
	}

	return c.rawIndex(i), nil
}

// DimensionIndex resolves a dimension name to its schema position.
func (c *Container) DimensionIndex(dim string) (int, error) {
	return c.schema.Lookup(dim)
}

// Get returns the value of dimension dim for item i.
func (c *Container) Get(dim string, i int) (float64, error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return math.NaN(), err
	}

	return c.GetByIndex(d, i)
}

// GetByIndex is Get with a dimension position instead of a name.
func (c *Container) GetByIndex(dim, i int) (float64, error) {
	if dim < 0 || dim >= len(c.columns) {
		return math.NaN(), fmt.Errorf("%w: dimension #%d", errs.ErrUnknownDimension, dim)
	}
	if err := c.checkIndex(i); err != nil {
		return math.NaN(), err
	}

	return c.columns[dim][c.rawIndex(i)], nil
}

// Ordinal returns the category string of an ordinal dimension for item i.
// A missing value returns "".
func (c *Container) Ordinal(dim string, i int) (string, error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return "", err
	}
	meta := c.metas[d]
	if meta == nil {
		return "", fmt.Errorf("%w: %q is %s", errs.ErrInvalidDimensionType, dim, c.schema.At(d).Type)
	}
	v, err := c.GetByIndex(d, i)
	if err != nil {
		return "", err
	}
	name, _ := meta.Name(v)

	return name, nil
}

// OrdinalMeta returns the category table of an ordinal dimension, or nil.
func (c *Container) OrdinalMeta(dim string) *schema.OrdinalMeta {
	d, ok := c.schema.Index(dim)
	if !ok {
		return nil
	}

	return c.metas[d]
}

// Values returns a copy of dimension dim in item order.
func (c *Container) Values(dim string) ([]float64, error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return nil, err
	}

	col := c.columns[d]
	out := make([]float64, c.count)
	for i := range out {
		out[i] = col[c.rawIndex(i)]
	}

	return out, nil
}

// Each calls fn for every item in index order with the values of dims.
// Iteration stops early when fn returns false. The vals slice is reused
// between calls; copy it to retain values.
//
// With no dims, fn receives an empty slice.
func (c *Container) Each(dims []string, fn func(i int, vals []float64) bool) error {
	pos := make([]int, len(dims))
	for k, name := range dims {
		d, err := c.schema.Lookup(name)
		if err != nil {
			return err
		}
		pos[k] = d
	}

	vals := make([]float64, len(dims))
	for i := range c.count {
		raw := c.rawIndex(i)
		for k, d := range pos {
			vals[k] = c.columns[d][raw]
		}
		if !fn(i, vals) {
			break
		}
	}

	return nil
}

// All returns an iterator over (item index, value) of dimension dim.
func (c *Container) All(dim string) (iter.Seq2[int, float64], error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return nil, err
	}
	col := c.columns[d]

	return func(yield func(int, float64) bool) {
		for i := range c.count {
			if !yield(i, col[c.rawIndex(i)]) {
				return
			}
		}
	}, nil
}

// DataExtent returns [min, max] of dimension dim over all items, ignoring
// missing values. When no valid value exists it returns [NaN, NaN].
// The result is cached per container.
func (c *Container) DataExtent(dim string) ([2]float64, error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return [2]float64{math.NaN(), math.NaN()}, err
	}
	if ext, ok := c.extents[d]; ok {
		return ext, nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	col := c.columns[d]
	for i := range c.count {
		v := col[c.rawIndex(i)]
		if math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}

	ext := [2]float64{lo, hi}
	if lo > hi {
		ext = [2]float64{math.NaN(), math.NaN()}
	}
	c.extents[d] = ext

	return ext, nil
}

// ItemLayout returns the layout written for item i, or nil.
func (c *Container) ItemLayout(i int) (any, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}

	return c.layouts[i], nil
}

// SetItemLayout stores the layout computed by the layout stage for item i.
// The container treats the value as opaque.
func (c *Container) SetItemLayout(i int, layout any) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.layouts[i] = layout

	return nil
}

// ClearLayouts drops all item layouts.
func (c *Container) ClearLayouts() {
	clear(c.layouts)
}

// SetStackedValues installs the stacking result. Both slices must have
// Count() elements; over may be nil.
func (c *Container) SetStackedValues(stacked, over []float64) error {
	if len(stacked) != c.count || (over != nil && len(over) != c.count) {
		return fmt.Errorf("%w: stacked %d, over %d, count %d",
			errs.ErrLengthMismatch, len(stacked), len(over), c.count)
	}
	c.stacked = stacked
	c.stackedOver = over

	return nil
}

// HasStack reports whether stacked values were installed.
func (c *Container) HasStack() bool {
	return c.stacked != nil
}

// StackedValue returns the cumulative stacked value of item i, or NaN when
// the series is not stacked.
func (c *Container) StackedValue(i int) (float64, error) {
	if err := c.checkIndex(i); err != nil {
		return math.NaN(), err
	}
	if c.stacked == nil {
		return math.NaN(), nil
	}

	return c.stacked[i], nil
}

// StackedOver returns the sum of the series below item i, or NaN when
// the series is not stacked.
func (c *Container) StackedOver(i int) (float64, error) {
	if err := c.checkIndex(i); err != nil {
		return math.NaN(), err
	}
	if c.stackedOver == nil {
		return math.NaN(), nil
	}

	return c.stackedOver[i], nil
}
