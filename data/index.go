package data

import (
	"fmt"
	"math"

	"github.com/arloliu/chartdata/errs"
)

// IndexOfCategory returns the first item whose value in ordinal dimension dim
// is category, using the inverted index. It returns -1 when no item has that
// category.
//
// The index is built on first use. Returns errs.ErrInvalidConfig when the
// inverted index was not enabled for dim (see WithInvertedIndex).
func (c *Container) IndexOfCategory(dim, category string) (int, error) {
	d, err := c.schema.Lookup(dim)
	if err != nil {
		return -1, err
	}
	if !c.invertedDims[d] {
		return -1, fmt.Errorf("%w: inverted index not enabled for %q", errs.ErrInvalidConfig, dim)
	}

	code, ok := c.metas[d].Code(category)
	if !ok {
		return -1, nil
	}

	idx := c.invertedIndex(d)
	if i, ok := idx[code]; ok {
		return i, nil
	}

	return -1, nil
}

// HasInvertedIndex reports whether the inverted index is enabled for dim.
func (c *Container) HasInvertedIndex(dim string) bool {
	d, ok := c.schema.Index(dim)
	return ok && c.invertedDims[d]
}

func (c *Container) invertedIndex(d int) map[int]int {
	if c.inverted == nil {
		c.inverted = make(map[int]map[int]int)
	}
	if idx, ok := c.inverted[d]; ok {
		return idx
	}

	col := c.columns[d]
	idx := make(map[int]int, c.metas[d].Len())
	for i := range c.count {
		v := col[c.rawIndex(i)]
		if math.IsNaN(v) {
			continue
		}
		code := int(v)
		if _, seen := idx[code]; !seen {
			idx[code] = i
		}
	}
	c.inverted[d] = idx

	return idx
}
