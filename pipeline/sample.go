package pipeline

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/pool"
)

// Sampler down-samples a container when it has more than Threshold items.
//
// Items are grouped into contiguous buckets of ceil(Count()/Target) items and
// each bucket is replaced by a representative item:
//
//   - Average: the item closest to the bucket mean, carrying the mean
//   - Sum: the first item of the bucket, carrying the bucket sum
//   - Min, Max: the item holding the extremum
//   - MinMax: both extreme items, in index order, values unchanged
//   - LTTB: largest-triangle-three-buckets; first and last items always kept
//
// Sampling never reorders items. The result is a derived container, so
// RawIndex of every representative still points at its source row.
type Sampler struct {
	// ValueDim is the dimension aggregated and used for LTTB areas.
	ValueDim string
	// Strategy selects the aggregate.
	Strategy format.SamplingStrategy
	// Threshold is the item count above which sampling applies.
	Threshold int
	// Target is the desired number of buckets (for LTTB, the output size).
	Target int
}

var _ Processor = (*Sampler)(nil)

func (s *Sampler) Name() string        { return "sample" }
func (s *Sampler) Phase() format.Phase { return format.PhaseStatistic }
func (s *Sampler) Chunked() bool       { return false }

// Applies reports whether a container of count items would be sampled.
func (s *Sampler) Applies(count int) bool {
	return s.Strategy != format.SamplingNone && s.Target > 0 && count > s.Threshold && count > s.Target
}

// FrameSize returns the bucket size used for count items.
func (s *Sampler) FrameSize(count int) int {
	if s.Target <= 0 {
		return count
	}

	return max(1, (count+s.Target-1)/s.Target)
}

// Process replaces ctx's container with the sampled view.
func (s *Sampler) Process(ctx *Context, _, _ int) error {
	c := ctx.Data()
	n := c.Count()
	if !s.Applies(n) {
		return nil
	}

	values, err := c.Values(s.ValueDim)
	if err != nil {
		return err
	}

	var (
		items      []int
		aggregates []float64
	)
	switch s.Strategy {
	case format.SamplingLTTB:
		items = lttb(values, s.Target)
	case format.SamplingMinMax:
		frame := s.FrameSize(n)
		buf, release := pool.GetIntSlice(2 * ((n + frame - 1) / frame))
		defer release()
		items = minMax(buf[:0], values, frame)
	case format.SamplingAverage, format.SamplingSum, format.SamplingMin, format.SamplingMax:
		items, aggregates = aggregate(values, s.FrameSize(n), s.Strategy)
	default:
		return fmt.Errorf("%w: sampling strategy %s", errs.ErrInvalidConfig, s.Strategy)
	}

	var overrides map[string][]float64
	if aggregates != nil {
		overrides = map[string][]float64{s.ValueDim: aggregates}
	}
	sampled, err := c.Derive(items, overrides)
	if err != nil {
		return err
	}

	ctx.Logger().Debug("series down-sampled",
		slog.String("strategy", s.Strategy.String()),
		slog.Int("from", n),
		slog.Int("to", sampled.Count()))
	ctx.ReplaceData(sampled)

	return nil
}

// aggregate reduces each bucket to one item and its aggregate value.
func aggregate(values []float64, frame int, strategy format.SamplingStrategy) ([]int, []float64) {
	n := len(values)
	buckets := (n + frame - 1) / frame
	items := make([]int, 0, buckets)
	aggs := make([]float64, 0, buckets)

	buf, cleanup := pool.GetFloat64Slice(frame)
	defer cleanup()

	for start := 0; start < n; start += frame {
		end := min(start+frame, n)

		valid := buf[:0]
		for _, v := range values[start:end] {
			if !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
		if len(valid) == 0 {
			items = append(items, start)
			aggs = append(aggs, math.NaN())

			continue
		}

		var agg float64
		switch strategy {
		case format.SamplingAverage:
			agg = stats.Mean(valid)
		case format.SamplingSum:
			agg = vec.Sum(valid)
		case format.SamplingMin:
			agg, _ = stats.Bounds(valid)
		default:
			_, agg = stats.Bounds(valid)
		}

		items = append(items, start+representative(values[start:end], agg, strategy))
		aggs = append(aggs, agg)
	}

	return items, aggs
}

// representative picks the bucket item that stands for agg.
func representative(frame []float64, agg float64, strategy format.SamplingStrategy) int {
	best, bestDist := -1, math.Inf(1)
	for k, v := range frame {
		if math.IsNaN(v) {
			continue
		}
		if strategy == format.SamplingSum {
			return k
		}
		if d := math.Abs(v - agg); d < bestDist {
			best, bestDist = k, d
		}
	}

	return max(best, 0)
}

// minMax appends the minimum and maximum item of every bucket to items.
func minMax(items []int, values []float64, frame int) []int {
	n := len(values)

	for start := 0; start < n; start += frame {
		end := min(start+frame, n)
		lo, hi := -1, -1
		for k := start; k < end; k++ {
			v := values[k]
			if math.IsNaN(v) {
				continue
			}
			if lo < 0 || v < values[lo] {
				lo = k
			}
			if hi < 0 || v > values[hi] {
				hi = k
			}
		}

		switch {
		case lo < 0:
			items = append(items, start)
		case lo == hi:
			items = append(items, lo)
		default:
			items = append(items, min(lo, hi), max(lo, hi))
		}
	}

	return items
}

// lttb selects about target items with the largest-triangle-three-buckets
// method, using the item index as x. NaN values are skipped when computing
// areas; a bucket that mixes NaN and numbers also keeps its first NaN item so
// the gap survives sampling.
func lttb(values []float64, target int) []int {
	n := len(values)
	if target >= n || n < 3 {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		return items
	}
	if target < 3 {
		return []int{0, n - 1}
	}

	frame := max(1, (n-2+target-3)/(target-2))
	items := make([]int, 0, target+target/2)
	items = append(items, 0)

	a := 0
	for i := 1; i < n-1; i += frame {
		frameEnd := min(i+frame, n-1)
		nextStart := frameEnd
		nextEnd := min(frameEnd+frame, n)

		avgX := float64(nextStart+nextEnd-1) / 2
		avgY, cnt := 0.0, 0
		for k := nextStart; k < nextEnd; k++ {
			if !math.IsNaN(values[k]) {
				avgY += values[k]
				cnt++
			}
		}
		if cnt > 0 {
			avgY /= float64(cnt)
		}

		ax, ay := float64(a), values[a]
		if math.IsNaN(ay) {
			ay = 0
		}

		chosen, maxArea := i, -1.0
		firstNaN, nanCount := -1, 0
		for k := i; k < frameEnd; k++ {
			y := values[k]
			if math.IsNaN(y) {
				nanCount++
				if firstNaN < 0 {
					firstNaN = k
				}

				continue
			}
			area := math.Abs((ax-avgX)*(y-ay) - (ax-float64(k))*(avgY-ay))
			if area > maxArea {
				maxArea, chosen = area, k
			}
		}

		if nanCount > 0 && nanCount < frameEnd-i {
			items = append(items, min(firstNaN, chosen))
			chosen = max(firstNaN, chosen)
		}
		items = append(items, chosen)
		a = chosen
	}

	return append(items, n-1)
}

// MeanOf returns the mean of the non-missing values of dim in c, NaN when
// none exist. It is a convenience for checking that sampling preserves the
// overall level of a series.
func MeanOf(c *data.Container, dim string) (float64, error) {
	vals, err := c.Values(dim)
	if err != nil {
		return math.NaN(), err
	}

	valid := vals[:0]
	for _, v := range vals {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return math.NaN(), nil
	}

	return stats.Mean(valid), nil
}
