package layout

import (
	"sort"

	"github.com/jfromaniello/planscript/pkg/intent"
)

// Priority breaks down why a room ranks where it does in the placement
// order. Higher totals place first.
type Priority struct {
	Anchor    int `json:"anchor"`
	FrontEdge int `json:"front_edge"`
	EdgeBound int `json:"edge_bound"`
	Adjacency int `json:"adjacency"`
	Total     int `json:"total"`
}

// OrderedRoom pairs a room spec with its computed placement priority.
type OrderedRoom struct {
	Spec     intent.RoomSpec `json:"spec"`
	Priority Priority        `json:"priority"`
}

const (
	anchorScore    = 100
	frontScore     = 20
	edgeBoundScore = 50
)

// Order computes the placement order for one variant. Anchor rooms
// (exterior door, foyer, circulation) come first, then edge-bound rooms,
// then by adjacency-constraint count, then declared order. Variant k > 0
// rotates rooms inside equal-priority groups by k, giving each variant a
// different but deterministic greedy seed. A final pass moves rooms whose
// sole adjacency target is a bedroom to directly follow that bedroom.
func Order(in *intent.Intent, variant int) []OrderedRoom {
	front := in.FrontEdge()

	rooms := make([]OrderedRoom, 0, len(in.Rooms))
	for _, rs := range in.Rooms {
		p := Priority{}
		if rs.HasExteriorDoor || rs.Type == intent.RoomFoyer || rs.Circulation() {
			p.Anchor = anchorScore
			if rs.MustTouchEdge == front {
				p.FrontEdge = frontScore
			}
		}
		if rs.MustTouchEdge != "" {
			p.EdgeBound = edgeBoundScore
		}
		p.Adjacency = len(rs.AdjacentTo) + len(rs.NeedsAccessFrom)
		p.Total = p.Anchor + p.FrontEdge + p.EdgeBound + p.Adjacency
		rooms = append(rooms, OrderedRoom{Spec: rs, Priority: p})
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].Priority.Total > rooms[j].Priority.Total
	})

	if variant > 0 {
		rotateEqualGroups(rooms, variant)
	}

	return attachToBedrooms(in, rooms)
}

// rotateEqualGroups rotates each run of equal-priority rooms left by k.
func rotateEqualGroups(rooms []OrderedRoom, k int) {
	start := 0
	for start < len(rooms) {
		end := start + 1
		for end < len(rooms) && rooms[end].Priority.Total == rooms[start].Priority.Total {
			end++
		}
		if n := end - start; n > 1 {
			rotated := make([]OrderedRoom, n)
			for i := 0; i < n; i++ {
				rotated[i] = rooms[start+(i+k)%n]
			}
			copy(rooms[start:end], rotated)
		}
		start = end
	}
}

// attachToBedrooms moves any room whose sole adjacency target is a bedroom
// (ensuites, closets) to immediately follow that bedroom, so the greedy
// placer sees the bedroom's neighbors while they are still free.
func attachToBedrooms(in *intent.Intent, rooms []OrderedRoom) []OrderedRoom {
	attached := make(map[string]string) // room id -> bedroom id
	for _, or := range rooms {
		if len(or.Spec.AdjacentTo) != 1 {
			continue
		}
		target := in.Room(or.Spec.AdjacentTo[0])
		if target != nil && target.Type == intent.RoomBedroom {
			attached[or.Spec.ID] = target.ID
		}
	}
	if len(attached) == 0 {
		return rooms
	}

	out := make([]OrderedRoom, 0, len(rooms))
	for _, or := range rooms {
		if _, ok := attached[or.Spec.ID]; ok {
			continue
		}
		out = append(out, or)
		for _, follower := range rooms {
			if attached[follower.Spec.ID] == or.Spec.ID {
				out = append(out, follower)
			}
		}
	}
	// Attached rooms whose bedroom is missing from the order keep their slot.
	if len(out) < len(rooms) {
		present := make(map[string]bool, len(out))
		for _, or := range out {
			present[or.Spec.ID] = true
		}
		for _, or := range rooms {
			if !present[or.Spec.ID] {
				out = append(out, or)
			}
		}
	}
	return out
}
