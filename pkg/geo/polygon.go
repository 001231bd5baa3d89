package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order.
// Footprint polygons are axis-aligned (L and U shapes) but nothing here
// assumes that beyond the rect-containment helpers.
type Polygon struct {
	Vertices []Point2D
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// BoundingBox returns the axis-aligned bounding box.
func (p Polygon) BoundingBox() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	bb := Rect{
		X1: p.Vertices[0].X, Y1: p.Vertices[0].Y,
		X2: p.Vertices[0].X, Y2: p.Vertices[0].Y,
	}
	for _, v := range p.Vertices[1:] {
		if v.X < bb.X1 {
			bb.X1 = v.X
		}
		if v.Y < bb.Y1 {
			bb.Y1 = v.Y
		}
		if v.X > bb.X2 {
			bb.X2 = v.X
		}
		if v.Y > bb.Y2 {
			bb.Y2 = v.Y
		}
	}
	return bb
}

// Contains returns true if the point is inside the polygon using ray
// casting. Points exactly on the boundary are treated as inside by nudging
// the query inward is the caller's job; the solver only queries points
// strictly interior to candidate rects.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ContainsRect reports whether the rect lies inside the polygon.
// The rect is shrunk by a small margin and tested at its corners and
// center; on top of that, any polygon vertex strictly inside the rect or
// any polygon edge crossing the rect interior rejects it, which catches
// notches of L/U footprints that corner sampling misses.
func (p Polygon) ContainsRect(r Rect) bool {
	if r.IsEmpty() {
		return false
	}
	const margin = 1e-3
	inner := Rect{X1: r.X1 + margin, Y1: r.Y1 + margin, X2: r.X2 - margin, Y2: r.Y2 - margin}
	if inner.IsEmpty() {
		return p.Contains(r.Center())
	}
	for _, c := range inner.Corners() {
		if !p.Contains(c) {
			return false
		}
	}
	if !p.Contains(inner.Center()) {
		return false
	}
	for _, v := range p.Vertices {
		if v.X > r.X1+margin && v.X < r.X2-margin &&
			v.Y > r.Y1+margin && v.Y < r.Y2-margin {
			return false
		}
	}
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		if segmentCrossesInterior(a, b, r, margin) {
			return false
		}
	}
	return true
}

// segmentCrossesInterior reports whether an axis-aligned segment passes
// through the strict interior of r. Segments along the rect's own
// boundary do not count.
func segmentCrossesInterior(a, b Point2D, r Rect, margin float64) bool {
	if math.Abs(a.X-b.X) < Epsilon {
		if a.X <= r.X1+margin || a.X >= r.X2-margin {
			return false
		}
		lo, hi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		return lo < r.Y2-margin && hi > r.Y1+margin
	}
	if math.Abs(a.Y-b.Y) < Epsilon {
		if a.Y <= r.Y1+margin || a.Y >= r.Y2-margin {
			return false
		}
		lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
		return lo < r.X2-margin && hi > r.X1+margin
	}
	return false
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}
