package visualmap

import (
	"math"

	"github.com/arloliu/chartdata/data"
)

// Target is a series whose items can be queried by value range.
type Target interface {
	ID() string
	Data() *data.Container
}

// TargetIndices lists the items of one series matching a range query.
type TargetIndices struct {
	SeriesID string
	Indices  []int
}

// FindTargetIndices returns, per target, the indices of items whose value on
// dim lies in [r[0], r[1]]. A descending range is reversed; missing values
// never match. Targets lacking dim or with no matching item are omitted.
func FindTargetIndices(targets []Target, dim string, r [2]float64) []TargetIndices {
	lo, hi := r[0], r[1]
	if lo > hi {
		lo, hi = hi, lo
	}

	var out []TargetIndices
	for _, t := range targets {
		c := t.Data()
		if c == nil {
			continue
		}
		values, err := c.Values(dim)
		if err != nil {
			continue
		}

		var indices []int
		for i, v := range values {
			if !math.IsNaN(v) && lo <= v && v <= hi {
				indices = append(indices, i)
			}
		}
		if len(indices) > 0 {
			out = append(out, TargetIndices{SeriesID: t.ID(), Indices: indices})
		}
	}

	return out
}
