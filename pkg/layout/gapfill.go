package layout

import (
	"math"

	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
)

// maxGapPasses bounds gap absorption.
const maxGapPasses = 6

// GapFill expands placed rooms into leftover footprint area. Each pass
// runs the whole free pool, absorbing every gap some adjacent room can
// cleanly take (the union stays rectangular and max_area is not
// exceeded). Returns the number of passes that absorbed anything, for
// diagnostics.
func GapFill(st *PlanState, in *intent.Intent) int {
	passes := 0

	for pass := 0; pass < maxGapPasses; pass++ {
		absorbed := false

		for gi := 0; gi < len(st.free); gi++ {
			gap := st.free[gi]
			roomID, expansion, remainders, ok := absorbableBy(st, in, gap)
			if !ok {
				continue
			}

			room := st.Rooms[roomID]
			grown := room.Rect.Union(expansion)
			if overlapsOther(st, roomID, grown) {
				continue
			}

			room.Rect = grown
			st.free = append(st.free[:gi], st.free[gi+1:]...)
			for _, rem := range remainders {
				if rem.Area() < minFreeArea {
					continue
				}
				st.free = append(st.free, freeRect{rect: rem, bandID: gap.bandID, depthID: gap.depthID})
			}
			absorbed = true
			gi--
		}

		if !absorbed {
			break
		}
		passes++
	}

	return passes
}

// absorbableBy finds a placed room that can grow into the gap. The room
// must share its full wall span with a slice of the gap so that the union
// stays rectangular, and the growth must not push it past max_area.
func absorbableBy(st *PlanState, in *intent.Intent, gap freeRect) (roomID string, expansion geo.Rect, remainders []geo.Rect, ok bool) {
	for _, id := range st.Order {
		room := st.Rooms[id]
		edge, lo, hi, shares := room.Rect.SharedWall(gap.rect)
		if !shares {
			continue
		}

		// Clean rectangular union: the shared overlap must cover the
		// room's entire span along the wall axis.
		rlo, rhi := room.Rect.EdgeSpan(edge)
		if math.Abs(lo-rlo) > 1e-3 || math.Abs(hi-rhi) > 1e-3 {
			continue
		}

		slice, rems := sliceGap(gap.rect, edge, lo, hi)
		if slice.IsEmpty() {
			continue
		}

		if rs := in.Room(id); rs != nil && rs.MaxArea > 0 {
			if room.Rect.Area()+slice.Area() > rs.MaxArea+1e-6 {
				continue
			}
		}
		return id, slice, rems, true
	}
	return "", geo.Rect{}, nil, false
}

// sliceGap cuts from the gap the sub-rect spanning [lo,hi] along the wall
// axis, returning the slice and the remainders.
func sliceGap(gap geo.Rect, edge geo.Edge, lo, hi float64) (geo.Rect, []geo.Rect) {
	var slice geo.Rect
	if edge.Horizontal() {
		slice = geo.Rect{X1: lo, Y1: gap.Y1, X2: hi, Y2: gap.Y2}
	} else {
		slice = geo.Rect{X1: gap.X1, Y1: lo, X2: gap.X2, Y2: hi}
	}
	return slice, subtractRect(gap, slice)
}

// overlapsOther reports whether the grown rect overlaps any other room.
func overlapsOther(st *PlanState, roomID string, grown geo.Rect) bool {
	for _, id := range st.Order {
		if id == roomID {
			continue
		}
		if grown.Overlaps(st.Rooms[id].Rect) {
			return true
		}
	}
	return false
}
