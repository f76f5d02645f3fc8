package series

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/arloliu/chartdata/errs"
)

// DefaultBoundIQR is the whisker reach, in interquartile ranges, of a BoxPlot.
const DefaultBoundIQR = 1.5

// BoxStat is the five-number summary of one category.
//
// Low and High are the whisker ends: Q1 - k*IQR and Q3 + k*IQR clamped to
// the observed extremes. Values beyond the whiskers are Outliers.
type BoxStat struct {
	Category string
	Count    int
	Low      float64
	Q1       float64
	Median   float64
	Q3       float64
	High     float64
	Outliers []float64
}

// HasBoxStatistics is implemented by series that summarize their values as
// box plots.
type HasBoxStatistics interface {
	BoxStatistics(dim string) ([]BoxStat, error)
}

// BoxPlot summarizes a series per category.
type BoxPlot struct {
	*Series

	// BoundIQR is the whisker reach; zero means DefaultBoundIQR and
	// +Inf extends whiskers to the extremes.
	BoundIQR float64
}

var _ HasBoxStatistics = (*BoxPlot)(nil)

// NewBoxPlot wraps s.
func NewBoxPlot(s *Series) *BoxPlot {
	return &BoxPlot{Series: s}
}

// BoxStatistics computes one BoxStat per category of the series' category
// dimension, in first-seen order; without a category dimension it returns a
// single summary. Missing values are ignored and a category with none
// yields NaN statistics.
func (b *BoxPlot) BoxStatistics(dim string) ([]BoxStat, error) {
	c := b.Data()
	values, err := c.Values(dim)
	if err != nil {
		return nil, err
	}

	k := b.BoundIQR
	if k == 0 {
		k = DefaultBoundIQR
	}
	if k < 0 || math.IsNaN(k) {
		return nil, fmt.Errorf("%w: box plot bound %v", errs.ErrInvalidConfig, k)
	}

	var (
		order  []string
		groups = make(map[string][]float64)
	)
	catDim := b.Config().CategoryDim
	for i, v := range values {
		name := ""
		if catDim != "" {
			if name, err = c.Ordinal(catDim, i); err != nil {
				return nil, err
			}
		}
		if _, ok := groups[name]; !ok {
			order = append(order, name)
			groups[name] = nil
		}
		if !math.IsNaN(v) {
			groups[name] = append(groups[name], v)
		}
	}

	out := make([]BoxStat, len(order))
	for i, name := range order {
		out[i] = summarize(name, groups[name], k)
	}

	return out, nil
}

func summarize(category string, vals []float64, k float64) BoxStat {
	st := BoxStat{Category: category, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		st.Low, st.Q1, st.Median, st.Q3, st.High = nan, nan, nan, nan, nan

		return st
	}

	sample := (&stats.Sample{Xs: vals}).Sort()
	lo, hi := sample.Bounds()
	st.Q1 = sample.Quantile(0.25)
	st.Median = sample.Quantile(0.5)
	st.Q3 = sample.Quantile(0.75)

	iqr := st.Q3 - st.Q1
	st.Low, st.High = lo, hi
	if !math.IsInf(k, 1) {
		st.Low = math.Max(lo, st.Q1-k*iqr)
		st.High = math.Min(hi, st.Q3+k*iqr)
	}

	for _, v := range sample.Xs {
		if v < st.Low || v > st.High {
			st.Outliers = append(st.Outliers, v)
		}
	}

	return st
}
