package opening

import (
	"sort"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

// DoorDecision records one accept/reject outcome for the inspection trace.
type DoorDecision struct {
	Room     string `json:"room"`
	Other    string `json:"other"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// Neighbor ranking for single-door rooms. The declared ensuite owner is
// promoted above everything.
const ownerPriority = 1000

func neighborPriority(rs intent.RoomSpec) int {
	switch rs.Type {
	case intent.RoomCorridor, intent.RoomHall:
		return 100
	case intent.RoomFoyer:
		return 90
	}
	if rs.Circulation() {
		return 80
	}
	switch rs.Type {
	case intent.RoomLiving, intent.RoomDining:
		return 70
	case intent.RoomKitchen:
		return 60
	case intent.RoomBedroom:
		return 50
	}
	return 10
}

// candidate is one passing door option for a single-door room.
type candidate struct {
	pair     Pair
	owner    string // the single-door room
	other    string
	priority int
	seq      int // arrival order, breaks priority ties
}

// PlaceOpenings runs the door rule engine over the placed plan, then adds
// the exterior entry door and windows. Room rects are never mutated. The
// optional observe callback receives every door decision.
func PlaceOpenings(st *layout.PlanState, in *intent.Intent, f *frame.Frame, entry string, observe func(DoorDecision)) {
	pairs := BuildAdjacency(st, in.DoorWidth()+0.1)

	record := func(d DoorDecision) {
		if observe != nil {
			observe(d)
		}
	}

	single := make(map[string][]candidate)
	seq := 0

	for _, p := range pairs {
		a := layout.RoomSpecFor(in, p.A)
		b := layout.RoomSpecFor(in, p.B)

		ok, reason := DoorAllowed(in, a, b)
		if !ok {
			record(DoorDecision{Room: p.A, Other: p.B, Reason: reason})
			continue
		}

		switch {
		case a.Type.SingleDoor():
			single[p.A] = append(single[p.A], candidate{
				pair: p, owner: p.A, other: p.B,
				priority: candidatePriority(in, a, b), seq: seq,
			})
		case b.Type.SingleDoor():
			single[p.B] = append(single[p.B], candidate{
				pair: p, owner: p.B, other: p.A,
				priority: candidatePriority(in, b, a), seq: seq,
			})
		default:
			placeInteriorDoor(st, in, p)
			record(DoorDecision{Room: p.A, Other: p.B, Accepted: true})
		}
		seq++
	}

	// Single-door rooms get exactly one door, to the best-ranked neighbor.
	// A pair of single-door rooms shares one candidate, so a door placed
	// for one side also consumes the other side's budget.
	for _, id := range st.Order {
		cands := single[id]
		if len(cands) == 0 {
			continue
		}
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].priority != cands[j].priority {
				return cands[i].priority > cands[j].priority
			}
			return cands[i].seq < cands[j].seq
		})

		placed := st.DoorCount(id) > 0
		for _, c := range cands {
			if placed {
				record(DoorDecision{Room: id, Other: c.other, Reason: "single-door room already has its door"})
				continue
			}
			other := layout.RoomSpecFor(in, c.other)
			if other.Type.SingleDoor() && st.DoorCount(c.other) > 0 {
				record(DoorDecision{Room: id, Other: c.other, Reason: "counterpart single-door room already has its door"})
				continue
			}
			placeInteriorDoor(st, in, c.pair)
			record(DoorDecision{Room: id, Other: c.other, Accepted: true})
			placed = true
		}
	}

	placeEntryDoor(st, in, f, entry)
	placeWindows(st, in, f)
}

// candidatePriority ranks a neighbor for a single-door room, promoting the
// ensuite owner to the top.
func candidatePriority(in *intent.Intent, room, neighbor intent.RoomSpec) int {
	p := neighborPriority(neighbor)
	if classifyBath(in, room) == BathEnsuite && ensuiteOwner(in, room) == neighbor.ID {
		p += ownerPriority
	}
	return p
}

// placeInteriorDoor adds a door at the midpoint of the pair's shared wall,
// positioned relative to the owning room's wall span.
func placeInteriorDoor(st *layout.PlanState, in *intent.Intent, p Pair) {
	room := st.Rooms[p.A]
	lo, hi := room.Rect.EdgeSpan(p.Edge)

	pos := 0.5
	if hi-lo > geo.Epsilon {
		pos = ((p.Lo+p.Hi)/2 - lo) / (hi - lo)
	}

	st.AddOpening(layout.PlacedOpening{
		Type:       layout.OpeningDoor,
		Room:       p.A,
		ConnectsTo: p.B,
		Edge:       p.Edge,
		Position:   pos,
		Width:      in.DoorWidth(),
		Swing:      "in",
	})
}

// placeEntryDoor adds the single exterior door, centered on the front
// edge, when the resolved entry room actually touches it.
func placeEntryDoor(st *layout.PlanState, in *intent.Intent, f *frame.Frame, entry string) {
	room := st.Room(entry)
	if room == nil {
		return
	}
	front := in.FrontEdge()
	if !room.Rect.TouchesEdge(f.Bounds, front) {
		return
	}
	st.AddOpening(layout.PlacedOpening{
		Type:       layout.OpeningDoor,
		Room:       entry,
		Edge:       front,
		Position:   0.5,
		Width:      in.DoorWidth(),
		IsExterior: true,
		Swing:      "in",
	})
}

// placeWindows adds one window per window-wanting room on its longest
// exterior edge, preferring the garden edge when it is long enough.
// Bathrooms get a half-width window only if an exterior edge exists.
func placeWindows(st *layout.PlanState, in *intent.Intent, f *frame.Frame) {
	garden := in.GardenEdge()

	for _, id := range st.Order {
		rs := layout.RoomSpecFor(in, id)

		width := 0.0
		switch {
		case rs.Type.WantsWindow():
			width = in.WindowWidth() * 1.5
		case rs.Type.WantsHalfWindow():
			width = in.WindowWidth() / 2
		default:
			continue
		}

		room := st.Rooms[id]
		edge, ok := windowEdge(room.Rect, f.Bounds, garden, width)
		if !ok {
			continue
		}
		st.AddOpening(layout.PlacedOpening{
			Type:       layout.OpeningWindow,
			Room:       id,
			Edge:       edge,
			Position:   0.5,
			Width:      width,
			Sill:       in.SillHeight(),
			IsExterior: true,
		})
	}
}

// windowEdge picks the room's longest exterior edge, switching to the
// garden edge when that edge is exterior and long enough for the window.
func windowEdge(r, bounds geo.Rect, garden geo.Edge, width float64) (geo.Edge, bool) {
	best := geo.Edge("")
	bestLen := 0.0
	for _, e := range geo.Edges {
		if !r.TouchesEdge(bounds, e) {
			continue
		}
		l := edgeLength(r, e)
		if l > bestLen {
			best, bestLen = e, l
		}
	}
	if best == "" || bestLen < width {
		return "", false
	}
	if best != garden && r.TouchesEdge(bounds, garden) && edgeLength(r, garden) >= width {
		return garden, true
	}
	return best, true
}

func edgeLength(r geo.Rect, e geo.Edge) float64 {
	if e.Horizontal() {
		return r.Width()
	}
	return r.Height()
}
