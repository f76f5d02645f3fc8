package data

import (
	"math/rand"
	"testing"

	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/source"
)

func benchContainer(b *testing.B, n int) *Container {
	b.Helper()

	r := rand.New(rand.NewSource(1))
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.NormFloat64()
	}

	p, err := source.Columns(source.Column{Name: "v", Values: vals})
	if err != nil {
		b.Fatal(err)
	}
	s, _ := schema.Numbers("v")
	a, err := source.NewAdapter(p, s)
	if err != nil {
		b.Fatal(err)
	}
	c, err := New(a)
	if err != nil {
		b.Fatal(err)
	}

	return c
}

func BenchmarkContainer_DataExtent(b *testing.B) {
	c := benchContainer(b, 100_000)

	b.ResetTimer()
	for range b.N {
		c.extents = make(map[int][2]float64)
		_, _ = c.DataExtent("v")
	}
}

func BenchmarkContainer_Each(b *testing.B) {
	c := benchContainer(b, 100_000)

	b.ResetTimer()
	for range b.N {
		sum := 0.0
		_ = c.Each([]string{"v"}, func(_ int, v []float64) bool {
			sum += v[0]
			return true
		})
	}
}
