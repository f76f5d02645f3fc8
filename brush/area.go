package brush

import (
	"github.com/arloliu/chartdata/format"
)

// Area is a brush selection region in pixel space.
//
// The concrete types are RectArea, LineXArea, LineYArea and PolygonArea.
// CoordSys names the coordinate system the area was drawn in; an empty
// value applies the area to every target.
type Area interface {
	Type() format.BrushType
	CoordSys() string

	sealed()
}

// RectArea selects items inside an axis-aligned rectangle.
type RectArea struct {
	Coord string
	Rect  Rect
}

// LineXArea selects items whose horizontal position lies in [Min, Max].
type LineXArea struct {
	Coord    string
	Min, Max float64
}

// LineYArea selects items whose vertical position lies in [Min, Max].
type LineYArea struct {
	Coord    string
	Min, Max float64
}

// PolygonArea selects items inside a polygon given by its vertices in order.
type PolygonArea struct {
	Coord  string
	Points []Point
}

func (RectArea) Type() format.BrushType    { return format.BrushRect }
func (LineXArea) Type() format.BrushType   { return format.BrushLineX }
func (LineYArea) Type() format.BrushType   { return format.BrushLineY }
func (PolygonArea) Type() format.BrushType { return format.BrushPolygon }

func (a RectArea) CoordSys() string    { return a.Coord }
func (a LineXArea) CoordSys() string   { return a.Coord }
func (a LineYArea) CoordSys() string   { return a.Coord }
func (a PolygonArea) CoordSys() string { return a.Coord }

func (RectArea) sealed()    {}
func (LineXArea) sealed()   {}
func (LineYArea) sealed()   {}
func (PolygonArea) sealed() {}
