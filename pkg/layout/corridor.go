package layout

import (
	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
)

// minCorridorContact is the wall length a corridor leg must share with a
// room for the room to count as served.
const minCorridorContact = 0.3

// SynthesizeCorridor carves a circulation spine out of the remaining free
// area when the intent declares no circulation room of its own. A straight
// corridor is preferred; an L is attempted only when no straight candidate
// serves at least two rooms. Returns true when a corridor was placed.
func SynthesizeCorridor(st *PlanState, in *intent.Intent, f *frame.Frame) bool {
	if in.HasCirculation() {
		return false
	}
	if !needsCorridor(st, in) {
		return false
	}

	width := in.CorridorWidth()

	if rect, idx, served := bestStraightCorridor(st, f, width); served >= 2 {
		applyCorridor(st, rect, rect.ToPolygon(), idx, geo.Rect{}, -1)
		return true
	}

	if a, ai, b, bi, ok := bestElbowCorridor(st, f, width); ok {
		if poly, legsOK := elbowPolygon(a, b); legsOK {
			applyCorridor(st, a, *poly, ai, b, bi)
			return true
		}
	}
	return false
}

// needsCorridor reports whether any placed room belongs to a category that
// expects circulation access.
func needsCorridor(st *PlanState, in *intent.Intent) bool {
	for _, id := range st.Order {
		rs := in.Room(id)
		if rs == nil {
			continue
		}
		switch intent.CategoryOf(rs.Type) {
		case intent.CategorySleeping, intent.CategoryPrivate:
			return true
		}
	}
	return false
}

// bestStraightCorridor scans the free pool for the width-trimmed slice that
// serves the most rooms. Returns the slice, its free-pool index and the
// served-room count.
func bestStraightCorridor(st *PlanState, f *frame.Frame, width float64) (geo.Rect, int, int) {
	var best geo.Rect
	bestIdx, bestServed := -1, 0

	for i, fr := range st.free {
		for _, slice := range corridorSlices(fr.rect, width) {
			if slice.IsEmpty() || !f.ContainsRect(slice) {
				continue
			}
			if overlapsAnyRoom(st, slice) {
				continue
			}
			served := roomsServed(st, slice)
			if served > bestServed {
				best, bestIdx, bestServed = slice, i, served
			}
		}
	}
	return best, bestIdx, bestServed
}

// corridorSlices trims fr down to corridor width along each axis, anchored
// to each side, yielding up to four candidate slices.
func corridorSlices(fr geo.Rect, width float64) []geo.Rect {
	var out []geo.Rect
	if fr.Height() >= width-geo.Epsilon {
		out = append(out,
			geo.Rect{X1: fr.X1, Y1: fr.Y1, X2: fr.X2, Y2: fr.Y1 + width},
			geo.Rect{X1: fr.X1, Y1: fr.Y2 - width, X2: fr.X2, Y2: fr.Y2},
		)
	}
	if fr.Width() >= width-geo.Epsilon {
		out = append(out,
			geo.Rect{X1: fr.X1, Y1: fr.Y1, X2: fr.X1 + width, Y2: fr.Y2},
			geo.Rect{X1: fr.X2 - width, Y1: fr.Y1, X2: fr.X2, Y2: fr.Y2},
		)
	}
	return out
}

func roomsServed(st *PlanState, slice geo.Rect) int {
	n := 0
	for _, id := range st.Order {
		if slice.Touches(st.Rooms[id].Rect, minCorridorContact) {
			n++
		}
	}
	return n
}

func overlapsAnyRoom(st *PlanState, r geo.Rect) bool {
	for _, id := range st.Order {
		if r.Overlaps(st.Rooms[id].Rect) {
			return true
		}
	}
	return false
}

// bestElbowCorridor looks for two perpendicular slices from distinct free
// rects whose combined coverage serves at least two rooms and whose ends
// meet, so they can join into an L.
func bestElbowCorridor(st *PlanState, f *frame.Frame, width float64) (a geo.Rect, ai int, b geo.Rect, bi int, ok bool) {
	type leg struct {
		rect geo.Rect
		idx  int
	}
	var horiz, vert []leg

	for i, fr := range st.free {
		for _, slice := range corridorSlices(fr.rect, width) {
			if slice.IsEmpty() || !f.ContainsRect(slice) || overlapsAnyRoom(st, slice) {
				continue
			}
			if slice.Width() >= slice.Height() {
				horiz = append(horiz, leg{slice, i})
			} else {
				vert = append(vert, leg{slice, i})
			}
		}
	}

	bestServed := 0
	for _, h := range horiz {
		for _, v := range vert {
			if h.idx == v.idx {
				continue
			}
			if _, legsOK := elbowPolygon(h.rect, v.rect); !legsOK {
				continue
			}
			served := roomsServed(st, h.rect) + roomsServed(st, v.rect)
			if served >= 2 && served > bestServed {
				a, ai, b, bi, ok = h.rect, h.idx, v.rect, v.idx, true
				bestServed = served
			}
		}
	}
	return a, ai, b, bi, ok
}

// elbowPolygon joins a horizontal and a vertical leg into a six-corner L.
// The legs must meet at a shared corner square of corridor width; anything
// else is rejected.
func elbowPolygon(h, v geo.Rect) (*geo.Polygon, bool) {
	if h.Width() < h.Height() || v.Height() < v.Width() {
		return nil, false
	}

	// The vertical leg must sit flush against one end of the horizontal
	// leg and extend from one of its long sides.
	alignedLeft := near(v.X1, h.X1) && near(v.X2, h.X1+v.Width())
	alignedRight := near(v.X2, h.X2) && near(v.X1, h.X2-v.Width())
	if !alignedLeft && !alignedRight {
		return nil, false
	}
	fromTop := near(v.Y1, h.Y2)
	fromBottom := near(v.Y2, h.Y1)
	if !fromTop && !fromBottom {
		return nil, false
	}

	var pts []geo.Point2D
	switch {
	case alignedLeft && fromTop:
		pts = []geo.Point2D{
			{X: h.X1, Y: h.Y1}, {X: h.X2, Y: h.Y1}, {X: h.X2, Y: h.Y2},
			{X: v.X2, Y: h.Y2}, {X: v.X2, Y: v.Y2}, {X: v.X1, Y: v.Y2},
		}
	case alignedRight && fromTop:
		pts = []geo.Point2D{
			{X: h.X1, Y: h.Y1}, {X: h.X2, Y: h.Y1}, {X: h.X2, Y: v.Y2},
			{X: v.X1, Y: v.Y2}, {X: v.X1, Y: h.Y2}, {X: h.X1, Y: h.Y2},
		}
	case alignedLeft && fromBottom:
		pts = []geo.Point2D{
			{X: v.X1, Y: v.Y1}, {X: v.X2, Y: v.Y1}, {X: v.X2, Y: h.Y1},
			{X: h.X2, Y: h.Y1}, {X: h.X2, Y: h.Y2}, {X: h.X1, Y: h.Y2},
		}
	default: // alignedRight && fromBottom
		pts = []geo.Point2D{
			{X: v.X1, Y: v.Y1}, {X: v.X2, Y: v.Y1}, {X: v.X2, Y: h.Y2},
			{X: h.X1, Y: h.Y2}, {X: h.X1, Y: h.Y1}, {X: v.X1, Y: h.Y1},
		}
	}
	poly := geo.NewPolygon(pts...).EnsureCCW()
	return &poly, true
}

func near(a, b float64) bool {
	return a-b < 1e-3 && b-a < 1e-3
}

// applyCorridor commits the corridor into the plan state: the primary leg
// is registered as a placed room under CorridorID, the full outline goes to
// st.Corridor, and the consumed free rects are re-split.
func applyCorridor(st *PlanState, primary geo.Rect, poly geo.Polygon, primaryIdx int, second geo.Rect, secondIdx int) {
	pr := &PlacedRoom{
		ID:    CorridorID,
		Rect:  primary,
		Label: "Corridor",
		Type:  intent.RoomCorridor,
	}
	if primaryIdx >= 0 && primaryIdx < len(st.free) {
		pr.BandID = st.free[primaryIdx].bandID
		pr.DepthID = st.free[primaryIdx].depthID
	}
	st.Place(pr)
	st.Corridor = &poly

	// Re-split consumed free rects; the second index shifts down when the
	// first removal precedes it.
	carveFree(st, primaryIdx, primary)
	if secondIdx >= 0 {
		if secondIdx > primaryIdx {
			secondIdx--
		}
		carveFree(st, secondIdx, second)
	}
}

func carveFree(st *PlanState, idx int, taken geo.Rect) {
	if idx < 0 || idx >= len(st.free) {
		return
	}
	fr := st.free[idx]
	st.free = append(st.free[:idx], st.free[idx+1:]...)
	for _, rem := range subtractRect(fr.rect, taken) {
		if rem.Area() < minFreeArea {
			continue
		}
		st.free = append(st.free, freeRect{rect: rem, bandID: fr.bandID, depthID: fr.depthID})
	}
}
