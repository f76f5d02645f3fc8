// Package brush selects series items by their rendered position.
//
// An Area is one of RectArea, LineXArea, LineYArea or PolygonArea. A
// Selector tests item layouts (points or rects written by the layout stage)
// against an area:
//
//   - rect vs point: containment; rect vs rect: overlap, not containment.
//     A zero-area rect brush selects nothing.
//   - lineX/lineY vs point: the coordinate on that axis lies in the interval;
//     vs rect: the rect's projected interval overlaps the brush interval.
//   - polygon vs point: bounding-box pre-check, then even-odd containment;
//     vs rect: a rect corner is inside the polygon, a polygon vertex is
//     inside the rect, or an edge of one crosses an edge of the other.
//
// Selection never modifies the container. Controller keeps the active areas
// across targets and answers per-item selection queries; Encode is the only
// operation that writes visuals.
package brush
