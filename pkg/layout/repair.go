package layout

import (
	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/intent"
)

// maxRepairPasses bounds the swap search.
const maxRepairPasses = 8

// maxSwapAreaDiff is the relative area difference above which two rooms
// may not trade rects.
const maxSwapAreaDiff = 0.20

// Repair runs a bounded local search over pairs of placed rooms, swapping
// rects whenever a swap strictly increases the number of satisfied
// adjacency relationships plan-wide. Swaps that would trade rects of very
// different size or break a must_touch_edge constraint are rejected.
// Applies the best improving swap per pass until none remains or the pass
// cap hits. Reports whether any swap occurred.
func Repair(st *PlanState, in *intent.Intent, f *frame.Frame) bool {
	swapped := false

	for pass := 0; pass < maxRepairPasses; pass++ {
		base := satisfiedAdjacencies(st, in)

		bestGain := 0
		bestI, bestJ := -1, -1

		for i := 0; i < len(st.Order); i++ {
			for j := i + 1; j < len(st.Order); j++ {
				a := st.Rooms[st.Order[i]]
				b := st.Rooms[st.Order[j]]
				if !swapEligible(a, b, in, f) {
					continue
				}

				a.Rect, b.Rect = b.Rect, a.Rect
				gain := satisfiedAdjacencies(st, in) - base
				a.Rect, b.Rect = b.Rect, a.Rect

				if gain > bestGain {
					bestGain = gain
					bestI, bestJ = i, j
				}
			}
		}

		if bestGain <= 0 {
			break
		}
		a := st.Rooms[st.Order[bestI]]
		b := st.Rooms[st.Order[bestJ]]
		a.Rect, b.Rect = b.Rect, a.Rect
		swapped = true
	}

	return swapped
}

// swapEligible rejects swaps between rooms of very different area and
// swaps that would break either room's edge constraint.
func swapEligible(a, b *PlacedRoom, in *intent.Intent, f *frame.Frame) bool {
	areaA, areaB := a.Rect.Area(), b.Rect.Area()
	larger := areaA
	if areaB > larger {
		larger = areaB
	}
	if larger <= 0 {
		return false
	}
	diff := areaA - areaB
	if diff < 0 {
		diff = -diff
	}
	if diff/larger > maxSwapAreaDiff {
		return false
	}

	if rs := in.Room(a.ID); rs != nil && rs.MustTouchEdge != "" &&
		!b.Rect.TouchesEdge(f.Bounds, rs.MustTouchEdge) {
		return false
	}
	if rs := in.Room(b.ID); rs != nil && rs.MustTouchEdge != "" &&
		!a.Rect.TouchesEdge(f.Bounds, rs.MustTouchEdge) {
		return false
	}
	return true
}

// satisfiedAdjacencies counts declared adjacent_to relationships realized
// geometrically between placed rooms.
func satisfiedAdjacencies(st *PlanState, in *intent.Intent) int {
	n := 0
	for _, id := range st.Order {
		rs := in.Room(id)
		if rs == nil {
			continue
		}
		room := st.Rooms[id]
		for _, targetID := range rs.AdjacentTo {
			target := st.Room(targetID)
			if target != nil && room.Rect.Touches(target.Rect, 0.1) {
				n++
			}
		}
	}
	return n
}
