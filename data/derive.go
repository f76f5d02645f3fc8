package data

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/chartdata/errs"
)

// CloneShallow returns a container sharing the immutable columns and index
// vector with c, but with independent visual, stack and layout overlays.
//
// Mutating the clone's overlays never affects c, and vice versa.
func (c *Container) CloneShallow() *Container {
	out := *c
	out.visual = c.visual.clone()
	out.stacked = slices.Clone(c.stacked)
	out.stackedOver = slices.Clone(c.stackedOver)
	out.layouts = slices.Clone(c.layouts)
	out.invertedDims = maps.Clone(c.invertedDims)
	out.inverted = nil
	out.extents = maps.Clone(c.extents)

	return &out
}

// Derive builds a container over a subset of c's items.
//
// items lists item indices of c in the order they appear in the result; they
// must be strictly increasing so provenance order is preserved. overrides
// replaces, for a dimension, the value of each resulting item (one value per
// entry of items); the affected column is copied first, so c is unchanged.
//
// The result keeps c's container-wide visual defaults; per-item overrides,
// stacked values and layouts start empty because item positions change.
func (c *Container) Derive(items []int, overrides map[string][]float64) (*Container, error) {
	indices := make([]int, len(items))
	for k, i := range items {
		if err := c.checkIndex(i); err != nil {
			return nil, err
		}
		if k > 0 && i <= items[k-1] {
			return nil, fmt.Errorf("%w: items must be strictly increasing (position %d)", errs.ErrInvalidConfig, k)
		}
		indices[k] = c.rawIndex(i)
	}

	columns := slices.Clone(c.columns)
	for dim, vals := range overrides {
		d, err := c.schema.Lookup(dim)
		if err != nil {
			return nil, err
		}
		if len(vals) != len(items) {
			return nil, fmt.Errorf("%w: override %q has %d values for %d items",
				errs.ErrLengthMismatch, dim, len(vals), len(items))
		}
		col := slices.Clone(c.columns[d])
		for k, raw := range indices {
			col[raw] = vals[k]
		}
		columns[d] = col
	}

	out := &Container{
		schema:       c.schema,
		metas:        c.metas,
		columns:      columns,
		rawCount:     c.rawCount,
		indices:      indices,
		count:        len(indices),
		visual:       &visualOverlay{defaults: maps.Clone(c.visual.defaults), items: make(map[Channel]map[int]any)},
		layouts:      make([]any, len(indices)),
		invertedDims: maps.Clone(c.invertedDims),
		extents:      make(map[int][2]float64),
		logger:       c.logger,
	}

	return out, nil
}

// FilterSelf returns a container holding only the items whose value in dim
// satisfies keep. Missing values are passed to keep as NaN.
func (c *Container) FilterSelf(dim string, keep func(v float64) bool) (*Container, error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return nil, err
	}

	col := c.columns[d]
	items := make([]int, 0, c.count)
	for i := range c.count {
		if keep(col[c.rawIndex(i)]) {
			items = append(items, i)
		}
	}

	return c.Derive(items, nil)
}

// SelectRange keeps the items with lo <= value <= hi in dim. Missing values
// are dropped.
func (c *Container) SelectRange(dim string, lo, hi float64) (*Container, error) {
	return c.FilterSelf(dim, func(v float64) bool {
		return lo <= v && v <= hi
	})
}
