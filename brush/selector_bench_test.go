package brush

import (
	"math"
	"testing"
)

func BenchmarkSelector_PolygonPoint(b *testing.B) {
	const n = 64
	poly := make([]Point, n)
	for i := range poly {
		a := 2 * math.Pi * float64(i) / n
		poly[i] = Point{100 + 80*math.Cos(a), 100 + 80*math.Sin(a)}
	}
	s, err := NewSelector(PolygonArea{Points: poly})
	if err != nil {
		b.Fatal(err)
	}

	pts := make([]Point, 1024)
	for i := range pts {
		pts[i] = Point{float64(i % 200), float64((i * 7) % 200)}
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, p := range pts {
			_ = s.Point(p)
		}
	}
}
