package pipeline

import (
	"math"
	"testing"

	"github.com/arloliu/chartdata/format"
)

func BenchmarkLTTB(b *testing.B) {
	values := make([]float64, 100_000)
	for i := range values {
		values[i] = math.Sin(float64(i)/100) + float64(i%13)/13
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = lttb(values, 1000)
	}
}

func BenchmarkSampler_Average(b *testing.B) {
	values := make([]float64, 100_000)
	for i := range values {
		values[i] = float64(i % 97)
	}
	c := valueContainer(b, values)
	s := &Sampler{ValueDim: "v", Strategy: format.SamplingAverage, Target: 1000}

	b.ReportAllocs()
	for b.Loop() {
		if err := s.Process(NewContext(c), 0, c.Count()); err != nil {
			b.Fatal(err)
		}
	}
}
