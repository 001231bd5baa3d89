package layout

import (
	"fmt"
	"math"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
)

// Candidate is one scored placement option for a room, reported to the
// inspection trace.
type Candidate struct {
	Rect    geo.Rect `json:"rect"`
	Carved  geo.Rect `json:"carved"`
	BandID  string   `json:"band_id"`
	DepthID string   `json:"depth_id"`
	Score   float64  `json:"score"`
	Chosen  bool     `json:"chosen"`
}

// Candidate scoring weights. Adjacency dominates so that attached rooms
// (ensuites, closets) land next to their targets.
const (
	scoreBandPref  = 3.0
	scoreDepthPref = 3.0
	scoreEdge      = 4.0
	scoreExterior  = 2.0
	scoreAdjacent  = 5.0
	scoreAspectCap = 3.0
)

// minRoomDim is the smallest usable room dimension when carving.
const minRoomDim = 1.5

// minFreeArea is the smallest remainder worth returning to the free pool.
const minFreeArea = 0.5

// PlaceRooms greedily assigns rooms to free regions of the frame in the
// given order. Rooms that find no feasible region are recorded in
// state.Unplaced with a structured reason. Placement is deterministic for
// a fixed order and frame. The optional observe callback receives every
// scored candidate for the inspection trace.
func PlaceRooms(in *intent.Intent, f *frame.Frame, order []OrderedRoom, observe func(roomID string, cands []Candidate)) *PlanState {
	st := NewPlanState(f)

	for _, or := range order {
		placeOne(st, in, f, or.Spec, observe)
	}
	return st
}

func placeOne(st *PlanState, in *intent.Intent, f *frame.Frame, rs intent.RoomSpec, observe func(string, []Candidate)) {
	if len(st.free) == 0 {
		st.Unplaced = append(st.Unplaced, UnplacedRoom{
			ID:     rs.ID,
			Reason: FailFootprintExhausted,
			Detail: "no free area remains in the footprint",
		})
		return
	}

	cands := make([]Candidate, 0, len(st.free))
	bestIdx := -1
	bestScore := math.Inf(-1)
	sized := 0

	for i, fr := range st.free {
		if fr.rect.Area() < rs.MinArea-geo.Epsilon {
			continue
		}
		sized++
		if rs.MustTouchEdge != "" && !fr.rect.TouchesEdge(f.Bounds, rs.MustTouchEdge) {
			continue
		}

		carved := carve(fr.rect, rs, st, in, f)
		sc := scoreCandidate(st, in, f, rs, fr, carved)
		cands = append(cands, Candidate{
			Rect:    fr.rect,
			Carved:  carved,
			BandID:  fr.bandID,
			DepthID: fr.depthID,
			Score:   sc,
		})
		if sc > bestScore {
			bestScore = sc
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		reason := FailNoCandidates
		detail := "no free region satisfies the placement constraints"
		if sized == 0 {
			reason = FailInsufficientArea
			detail = fmt.Sprintf("no free region offers %.1f area", rs.MinArea)
		}
		st.Unplaced = append(st.Unplaced, UnplacedRoom{ID: rs.ID, Reason: reason, Detail: detail})
		if observe != nil {
			observe(rs.ID, cands)
		}
		return
	}

	// Mark the chosen candidate for the trace. Candidates are appended in
	// free-pool order, so the best index maps back through the same scan.
	chosen := st.free[bestIdx]
	carved := carve(chosen.rect, rs, st, in, f)
	for ci := range cands {
		if cands[ci].Rect == chosen.rect && cands[ci].Score == bestScore {
			cands[ci].Chosen = true
			break
		}
	}
	if observe != nil {
		observe(rs.ID, cands)
	}

	st.Place(&PlacedRoom{
		ID:      rs.ID,
		Rect:    carved,
		BandID:  chosen.bandID,
		DepthID: chosen.depthID,
		Label:   rs.DisplayLabel(),
		Type:    rs.Type,
	})
	st.consumeFree(bestIdx, carved)
}

// scoreCandidate rates one free region for a room: axis preferences, edge
// and exterior contact, geometric adjacency to already-placed adjacency
// targets, and the aspect fitness of the carved rect.
func scoreCandidate(st *PlanState, in *intent.Intent, f *frame.Frame, rs intent.RoomSpec, fr freeRect, carved geo.Rect) float64 {
	sc := 0.0

	for _, id := range rs.PreferredBands {
		if id == fr.bandID {
			sc += scoreBandPref
			break
		}
	}
	for _, id := range rs.PreferredDepths {
		if id == fr.depthID {
			sc += scoreDepthPref
			break
		}
	}
	if rs.MustTouchEdge != "" && carved.TouchesEdge(f.Bounds, rs.MustTouchEdge) {
		sc += scoreEdge
	}
	if rs.MustTouchExterior && touchesAnyEdge(carved, f.Bounds) {
		sc += scoreExterior
	}
	for _, id := range rs.AdjacentTo {
		target := st.Room(id)
		if target != nil && carved.Touches(target.Rect, 0.1) {
			sc += scoreAdjacent
		}
	}
	if a := carved.Aspect(); !math.IsInf(a, 1) {
		fit := scoreAspectCap - (a - 1)
		if fit > 0 {
			sc += fit
		}
	}
	return sc
}

func touchesAnyEdge(r geo.Rect, bounds geo.Rect) bool {
	for _, e := range geo.Edges {
		if r.TouchesEdge(bounds, e) {
			return true
		}
	}
	return false
}

// carve trims a rect of roughly MinArea out of the free region. The carve
// keeps the region's full extent along one axis and anchors the other to
// the most constrained side: the required edge, then a placed adjacency
// target, then the front of the plan. Expansion beyond MinArea is the gap
// filler's job.
func carve(free geo.Rect, rs intent.RoomSpec, st *PlanState, in *intent.Intent, f *frame.Frame) geo.Rect {
	if free.Area() <= rs.MinArea*1.15 {
		return free
	}

	anchor := carveAnchor(free, rs, st, in, f)

	if anchor.Horizontal() {
		// Keep full width, trim height.
		h := clamp(rs.MinArea/free.Width(), minRoomDim, free.Height())
		if anchor == geo.EdgeSouth {
			return geo.Rect{X1: free.X1, Y1: free.Y1, X2: free.X2, Y2: free.Y1 + h}
		}
		return geo.Rect{X1: free.X1, Y1: free.Y2 - h, X2: free.X2, Y2: free.Y2}
	}

	// Keep full height, trim width.
	w := clamp(rs.MinArea/free.Height(), minRoomDim, free.Width())
	if anchor == geo.EdgeWest {
		return geo.Rect{X1: free.X1, Y1: free.Y1, X2: free.X1 + w, Y2: free.Y2}
	}
	return geo.Rect{X1: free.X2 - w, Y1: free.Y1, X2: free.X2, Y2: free.Y2}
}

// carveAnchor picks which side of the free region the carved rect should
// hug.
func carveAnchor(free geo.Rect, rs intent.RoomSpec, st *PlanState, in *intent.Intent, f *frame.Frame) geo.Edge {
	if rs.MustTouchEdge != "" {
		return rs.MustTouchEdge
	}
	for _, id := range rs.AdjacentTo {
		target := st.Room(id)
		if target == nil {
			continue
		}
		if edge, _, _, ok := free.SharedWall(target.Rect); ok {
			return edge
		}
	}
	// Default: hug the front of the plan so later rooms stack behind.
	return in.FrontEdge()
}

// consumeFree replaces free[idx] with whatever remains after carving.
func (s *PlanState) consumeFree(idx int, carved geo.Rect) {
	fr := s.free[idx]
	s.free = append(s.free[:idx], s.free[idx+1:]...)

	for _, rem := range subtractRect(fr.rect, carved) {
		if rem.Area() < minFreeArea {
			continue
		}
		s.free = append(s.free, freeRect{rect: rem, bandID: fr.bandID, depthID: fr.depthID})
	}
}

// subtractRect returns outer minus inner as up to four rects. inner must
// be contained in outer (the carve guarantees this).
func subtractRect(outer, inner geo.Rect) []geo.Rect {
	var out []geo.Rect
	if inner.Y1 > outer.Y1+geo.Epsilon { // below
		out = append(out, geo.Rect{X1: outer.X1, Y1: outer.Y1, X2: outer.X2, Y2: inner.Y1})
	}
	if inner.Y2 < outer.Y2-geo.Epsilon { // above
		out = append(out, geo.Rect{X1: outer.X1, Y1: inner.Y2, X2: outer.X2, Y2: outer.Y2})
	}
	if inner.X1 > outer.X1+geo.Epsilon { // left
		out = append(out, geo.Rect{X1: outer.X1, Y1: inner.Y1, X2: inner.X1, Y2: inner.Y2})
	}
	if inner.X2 < outer.X2-geo.Epsilon { // right
		out = append(out, geo.Rect{X1: inner.X2, Y1: inner.Y1, X2: outer.X2, Y2: inner.Y2})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
