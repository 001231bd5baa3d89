// Package opening decides which adjacent room pairs get doors, places the
// exterior door and windows, and enforces the access and architectural
// rule sets while doing so.
package opening

import (
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/layout"
)

// Pair is one undirected adjacency between two placed rooms. A precedes B
// in placement order; Edge is the side of A facing B and Lo/Hi the shared
// interval along that wall's running axis.
type Pair struct {
	A    string   `json:"a"`
	B    string   `json:"b"`
	Edge geo.Edge `json:"edge"`
	Lo   float64  `json:"lo"`
	Hi   float64  `json:"hi"`
}

// BuildAdjacency returns all room pairs sharing a wall segment of at least
// minLen, in placement order. The scan order makes the result
// deterministic for a fixed plan.
func BuildAdjacency(st *layout.PlanState, minLen float64) []Pair {
	var pairs []Pair
	for i, idA := range st.Order {
		a := st.Rooms[idA]
		for _, idB := range st.Order[i+1:] {
			b := st.Rooms[idB]
			edge, lo, hi, ok := a.Rect.SharedWall(b.Rect)
			if !ok || hi-lo < minLen {
				continue
			}
			pairs = append(pairs, Pair{A: idA, B: idB, Edge: edge, Lo: lo, Hi: hi})
		}
	}
	return pairs
}
