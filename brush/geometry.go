package brush

import "math"

// Point is a pixel-space position.
type Point struct {
	X, Y float64
}

// Rect is a pixel-space rectangle. Width and Height may be negative; use
// Normalize before comparing.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Normalize returns r with non-negative width and height.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}

	return r
}

// Empty reports whether r has zero area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	r = r.Normalize()

	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and o overlap, touching edges included.
func (r Rect) Intersects(o Rect) bool {
	r, o = r.Normalize(), o.Normalize()

	return r.X <= o.X+o.Width && o.X <= r.X+r.Width &&
		r.Y <= o.Y+o.Height && o.Y <= r.Y+r.Height
}

// Corners returns the four corners of r in drawing order.
func (r Rect) Corners() [4]Point {
	r = r.Normalize()

	return [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

func (p Point) valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y)
}

func (r Rect) valid() bool {
	return !math.IsNaN(r.X) && !math.IsNaN(r.Y) && !math.IsNaN(r.Width) && !math.IsNaN(r.Height)
}

// boundsOf returns the bounding rectangle of pts.
func boundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// insidePolygon applies the even-odd rule by casting a ray toward +X.
func insidePolygon(poly []Point, p Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}

	return inside
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func onSegment(p, q, r Point) bool {
	return math.Min(p.X, r.X) <= q.X && q.X <= math.Max(p.X, r.X) &&
		math.Min(p.Y, r.Y) <= q.Y && q.Y <= math.Max(p.Y, r.Y)
}

// segmentsIntersect reports whether segments p1p2 and p3p4 share a point.
func segmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(p3, p1, p4):
		return true
	case d2 == 0 && onSegment(p3, p2, p4):
		return true
	case d3 == 0 && onSegment(p1, p3, p2):
		return true
	case d4 == 0 && onSegment(p1, p4, p2):
		return true
	}

	return false
}

// intervalsOverlap reports whether [a0, a1] and [b0, b1] share a point.
// Either interval may be given in descending order.
func intervalsOverlap(a0, a1, b0, b1 float64) bool {
	if a0 > a1 {
		a0, a1 = a1, a0
	}
	if b0 > b1 {
		b0, b1 = b1, b0
	}

	return (a0 <= b0 && b0 <= a1) || (a0 <= b1 && b1 <= a1) ||
		(b0 <= a0 && a0 <= b1) || (b0 <= a1 && a1 <= b1)
}
