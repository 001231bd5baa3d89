package geo

import "math"

// Epsilon is the tolerance used for coordinate comparisons throughout the
// solver. Plans are specified in meters, so 1mm is well below any wall.
const Epsilon = 1e-6

// Edge identifies one of the four sides of an axis-aligned rectangle, and
// by extension one of the four cardinal boundaries of a footprint.
// North is +Y, east is +X.
type Edge string

const (
	EdgeNorth Edge = "north"
	EdgeSouth Edge = "south"
	EdgeEast  Edge = "east"
	EdgeWest  Edge = "west"
)

// Edges lists all four edges in a fixed order.
var Edges = []Edge{EdgeNorth, EdgeSouth, EdgeEast, EdgeWest}

// Valid reports whether e is one of the four cardinal edges.
func (e Edge) Valid() bool {
	switch e {
	case EdgeNorth, EdgeSouth, EdgeEast, EdgeWest:
		return true
	}
	return false
}

// Opposite returns the opposing edge.
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeNorth:
		return EdgeSouth
	case EdgeSouth:
		return EdgeNorth
	case EdgeEast:
		return EdgeWest
	case EdgeWest:
		return EdgeEast
	}
	return e
}

// Horizontal reports whether the edge runs along the X axis (north/south).
func (e Edge) Horizontal() bool {
	return e == EdgeNorth || e == EdgeSouth
}

// Rect is an axis-aligned rectangle with (X1,Y1) the min corner and
// (X2,Y2) the max corner.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// R is a shorthand constructor that normalizes corner order.
func R(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the X extent.
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the Y extent.
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Area returns the rectangle area.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsEmpty reports whether the rectangle has no usable extent.
func (r Rect) IsEmpty() bool {
	return r.Width() < Epsilon || r.Height() < Epsilon
}

// Aspect returns the long-side to short-side ratio (always >= 1).
// Degenerate rects return +Inf.
func (r Rect) Aspect() float64 {
	w, h := r.Width(), r.Height()
	if w < Epsilon || h < Epsilon {
		return math.Inf(1)
	}
	if w > h {
		return w / h
	}
	return h / w
}

// Center returns the center point.
func (r Rect) Center() Point2D {
	return Point2D{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}
}

// Corners returns the four corner points in CCW order from the min corner.
func (r Rect) Corners() [4]Point2D {
	return [4]Point2D{
		{r.X1, r.Y1},
		{r.X2, r.Y1},
		{r.X2, r.Y2},
		{r.X1, r.Y2},
	}
}

// ContainsPoint reports whether pt lies inside or on the boundary.
func (r Rect) ContainsPoint(pt Point2D) bool {
	return pt.X >= r.X1-Epsilon && pt.X <= r.X2+Epsilon &&
		pt.Y >= r.Y1-Epsilon && pt.Y <= r.Y2+Epsilon
}

// ContainsRect reports whether other lies fully inside r (boundaries may touch).
func (r Rect) ContainsRect(other Rect) bool {
	return other.X1 >= r.X1-Epsilon && other.X2 <= r.X2+Epsilon &&
		other.Y1 >= r.Y1-Epsilon && other.Y2 <= r.Y2+Epsilon
}

// Overlaps reports whether r and other share interior area.
// Touching boundaries do not count as overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X1 < other.X2-Epsilon && other.X1 < r.X2-Epsilon &&
		r.Y1 < other.Y2-Epsilon && other.Y1 < r.Y2-Epsilon
}

// Intersection returns the overlapping region of r and other.
// The result is empty when the rects do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x1 := math.Max(r.X1, other.X1)
	y1 := math.Max(r.Y1, other.Y1)
	x2 := math.Min(r.X2, other.X2)
	y2 := math.Min(r.Y2, other.Y2)
	if x1 >= x2 || y1 >= y2 {
		return Rect{}
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// EdgeCoord returns the fixed coordinate of the given edge: Y for
// north/south, X for east/west.
func (r Rect) EdgeCoord(e Edge) float64 {
	switch e {
	case EdgeNorth:
		return r.Y2
	case EdgeSouth:
		return r.Y1
	case EdgeEast:
		return r.X2
	}
	return r.X1
}

// EdgeSpan returns the interval the given edge covers along its running
// axis: [X1,X2] for north/south, [Y1,Y2] for east/west.
func (r Rect) EdgeSpan(e Edge) (float64, float64) {
	if e.Horizontal() {
		return r.X1, r.X2
	}
	return r.Y1, r.Y2
}

// TouchesEdge reports whether r's given edge coincides with the same edge
// of the enclosing rect.
func (r Rect) TouchesEdge(enclosing Rect, e Edge) bool {
	return math.Abs(r.EdgeCoord(e)-enclosing.EdgeCoord(e)) < 1e-3
}

// SharedWall returns the wall segment r shares with other, if the two
// rects touch along a full edge. The returned edge is the side of r facing
// other; lo/hi is the overlapping interval along the wall's running axis.
// ok is false when the rects do not share a positive-length boundary.
func (r Rect) SharedWall(other Rect) (edge Edge, lo, hi float64, ok bool) {
	// Vertical walls: r's east against other's west, and vice versa.
	if math.Abs(r.X2-other.X1) < 1e-3 {
		lo, hi = overlap1D(r.Y1, r.Y2, other.Y1, other.Y2)
		if hi > lo {
			return EdgeEast, lo, hi, true
		}
	}
	if math.Abs(r.X1-other.X2) < 1e-3 {
		lo, hi = overlap1D(r.Y1, r.Y2, other.Y1, other.Y2)
		if hi > lo {
			return EdgeWest, lo, hi, true
		}
	}
	// Horizontal walls.
	if math.Abs(r.Y2-other.Y1) < 1e-3 {
		lo, hi = overlap1D(r.X1, r.X2, other.X1, other.X2)
		if hi > lo {
			return EdgeNorth, lo, hi, true
		}
	}
	if math.Abs(r.Y1-other.Y2) < 1e-3 {
		lo, hi = overlap1D(r.X1, r.X2, other.X1, other.X2)
		if hi > lo {
			return EdgeSouth, lo, hi, true
		}
	}
	return "", 0, 0, false
}

// Touches reports whether r and other share a boundary segment of at least
// the given length.
func (r Rect) Touches(other Rect, minLen float64) bool {
	_, lo, hi, ok := r.SharedWall(other)
	return ok && hi-lo >= minLen
}

// Union returns the bounding rect of r and other.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
		X2: math.Max(r.X2, other.X2),
		Y2: math.Max(r.Y2, other.Y2),
	}
}

// ToPolygon converts the rect to a CCW polygon.
func (r Rect) ToPolygon() Polygon {
	return NewPolygon(
		Pt(r.X1, r.Y1),
		Pt(r.X2, r.Y1),
		Pt(r.X2, r.Y2),
		Pt(r.X1, r.Y2),
	)
}

func overlap1D(a1, a2, b1, b2 float64) (float64, float64) {
	lo := math.Max(a1, b1)
	hi := math.Min(a2, b2)
	if hi < lo {
		return 0, 0
	}
	return lo, hi
}
