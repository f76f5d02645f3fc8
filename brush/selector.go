package brush

import (
	"fmt"
	"math"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
)

// Selector tests item layouts against one area.
type Selector struct {
	area   Area
	bounds Rect
	poly   []Point
}

// NewSelector prepares a selector for area.
//
// Returns errs.ErrInvalidConfig for a nil area, a polygon with fewer than
// three vertices or an area with NaN coordinates.
func NewSelector(area Area) (*Selector, error) {
	s := &Selector{area: area}

	switch a := area.(type) {
	case RectArea:
		if !a.Rect.valid() {
			return nil, fmt.Errorf("%w: rect brush with NaN coordinates", errs.ErrInvalidConfig)
		}
		s.bounds = a.Rect.Normalize()
	case LineXArea:
		if math.IsNaN(a.Min) || math.IsNaN(a.Max) {
			return nil, fmt.Errorf("%w: lineX brush with NaN range", errs.ErrInvalidConfig)
		}
	case LineYArea:
		if math.IsNaN(a.Min) || math.IsNaN(a.Max) {
			return nil, fmt.Errorf("%w: lineY brush with NaN range", errs.ErrInvalidConfig)
		}
	case PolygonArea:
		if len(a.Points) < 3 {
			return nil, fmt.Errorf("%w: polygon brush with %d vertices", errs.ErrInvalidConfig, len(a.Points))
		}
		for _, p := range a.Points {
			if !p.valid() {
				return nil, fmt.Errorf("%w: polygon brush with NaN vertex", errs.ErrInvalidConfig)
			}
		}
		s.poly = a.Points
		s.bounds = boundsOf(a.Points)
	default:
		return nil, fmt.Errorf("%w: brush area %T", errs.ErrInvalidConfig, area)
	}

	return s, nil
}

// Area returns the area the selector tests against.
func (s *Selector) Area() Area {
	return s.area
}

// Point reports whether a point item is selected.
func (s *Selector) Point(p Point) bool {
	if !p.valid() {
		return false
	}

	switch a := s.area.(type) {
	case RectArea:
		return !s.bounds.Empty() && s.bounds.Contains(p)
	case LineXArea:
		lo, hi := ordered(a.Min, a.Max)
		return lo <= p.X && p.X <= hi
	case LineYArea:
		lo, hi := ordered(a.Min, a.Max)
		return lo <= p.Y && p.Y <= hi
	case PolygonArea:
		return s.bounds.Contains(p) && insidePolygon(s.poly, p)
	}

	return false
}

// Rect reports whether a rect item is selected. Partial overlap counts.
func (s *Selector) Rect(r Rect) bool {
	if !r.valid() {
		return false
	}
	r = r.Normalize()

	switch a := s.area.(type) {
	case RectArea:
		return !s.bounds.Empty() && s.bounds.Intersects(r)
	case LineXArea:
		return intervalsOverlap(a.Min, a.Max, r.X, r.X+r.Width)
	case LineYArea:
		return intervalsOverlap(a.Min, a.Max, r.Y, r.Y+r.Height)
	case PolygonArea:
		return s.polygonRect(r)
	}

	return false
}

// polygonRect is the union of three tests: a rect corner inside the polygon,
// a polygon vertex inside the rect, or crossing edges.
func (s *Selector) polygonRect(r Rect) bool {
	corners := r.Corners()
	for _, c := range corners {
		if s.Point(c) {
			return true
		}
	}
	for _, v := range s.poly {
		if r.Contains(v) {
			return true
		}
	}
	for i := range corners {
		c0, c1 := corners[i], corners[(i+1)%4]
		for j := range s.poly {
			if segmentsIntersect(c0, c1, s.poly[j], s.poly[(j+1)%len(s.poly)]) {
				return true
			}
		}
	}

	return false
}

// Layout reports whether an item layout is selected. Supported layouts are
// Point, Rect, pointers to them, [2]float64 and two-element []float64
// points. Other layouts, including nil, are never selected.
func (s *Selector) Layout(layout any) bool {
	switch l := layout.(type) {
	case Point:
		return s.Point(l)
	case *Point:
		return l != nil && s.Point(*l)
	case [2]float64:
		return s.Point(Point{l[0], l[1]})
	case []float64:
		return len(l) == 2 && s.Point(Point{l[0], l[1]})
	case Rect:
		return s.Rect(l)
	case *Rect:
		return l != nil && s.Rect(*l)
	}

	return false
}

// Select returns the indices of items in c whose layout is selected by
// area. Items without a supported layout are skipped. c is not modified.
func Select(area Area, c *data.Container) ([]int, error) {
	s, err := NewSelector(area)
	if err != nil {
		return nil, err
	}

	var out []int
	for i := range c.Count() {
		layout, err := c.ItemLayout(i)
		if err != nil {
			return nil, err
		}
		if s.Layout(layout) {
			out = append(out, i)
		}
	}

	return out, nil
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}

	return a, b
}
