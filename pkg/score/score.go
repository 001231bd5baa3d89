// Package score rates a placed plan against the intent's soft
// preferences. Every component is normalized to [0,1] so variants can be
// compared directly; higher is better.
package score

import (
	"math"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

// Breakdown itemizes the plan score by component. Components are the
// unweighted [0,1] values; Total is their weighted sum.
type Breakdown struct {
	Adjacency  float64 `json:"adjacency"`
	Aspect     float64 `json:"aspect"`
	Edge       float64 `json:"edge"`
	Efficiency float64 `json:"efficiency"`
	Total      float64 `json:"total"`
}

// Evaluate computes the soft score of a placed plan.
func Evaluate(st *layout.PlanState, in *intent.Intent, f *frame.Frame) Breakdown {
	b := Breakdown{
		Adjacency:  adjacencyScore(st, in),
		Aspect:     aspectScore(st, in),
		Edge:       edgeScore(st, in, f),
		Efficiency: efficiencyScore(st, f),
	}

	wa, was, we, wef := weights(in.Constraints.Soft)
	b.Total = wa*b.Adjacency + was*b.Aspect + we*b.Edge + wef*b.Efficiency
	return b
}

// weights resolves the soft weights, falling back to the defaults and
// normalizing so the total stays in [0,1].
func weights(w intent.SoftWeights) (adjacency, aspect, edge, efficiency float64) {
	adjacency, aspect, edge, efficiency =
		w.Adjacency, w.Aspect, w.Edge, w.Efficiency
	if adjacency == 0 && aspect == 0 && edge == 0 && efficiency == 0 {
		return DefaultAdjacencyWeight, DefaultAspectWeight,
			DefaultEdgeWeight, DefaultEfficiencyWeight
	}
	sum := adjacency + aspect + edge + efficiency
	if sum <= 0 {
		return DefaultAdjacencyWeight, DefaultAspectWeight,
			DefaultEdgeWeight, DefaultEfficiencyWeight
	}
	return adjacency / sum, aspect / sum, edge / sum, efficiency / sum
}

// adjacencyScore is the fraction of declared adjacent_to relationships
// realized as shared walls. Plans with no declared adjacencies score 1.
func adjacencyScore(st *layout.PlanState, in *intent.Intent) float64 {
	declared, satisfied := 0, 0
	for _, id := range st.Order {
		rs := in.Room(id)
		if rs == nil {
			continue
		}
		room := st.Room(id)
		for _, targetID := range rs.AdjacentTo {
			declared++
			if target := st.Room(targetID); target != nil && room.Rect.Touches(target.Rect, 0.1) {
				satisfied++
			}
		}
	}
	if declared == 0 {
		return 1
	}
	return float64(satisfied) / float64(declared)
}

// aspectScore averages per-room aspect fitness against each type's ideal
// ratio. Corridors are skipped.
func aspectScore(st *layout.PlanState, in *intent.Intent) float64 {
	total, n := 0.0, 0
	for _, id := range st.Order {
		rs := layout.RoomSpecFor(in, id)
		if rs.Type == intent.RoomCorridor || rs.Circulation() {
			continue
		}
		room := st.Room(id)
		a := room.Rect.Aspect()
		if math.IsInf(a, 1) {
			n++
			continue
		}
		fit := 1 - math.Abs(a-idealAspectFor(rs.Type))/aspectTolerance
		if fit < 0 {
			fit = 0
		}
		total += fit
		n++
	}
	if n == 0 {
		return 1
	}
	return total / float64(n)
}

// edgeScore is the fraction of rooms wanting exterior contact (declared
// via must_touch_exterior or implied by their window needs) that actually
// touch the footprint boundary.
func edgeScore(st *layout.PlanState, in *intent.Intent, f *frame.Frame) float64 {
	wanting, touching := 0, 0
	for _, id := range st.Order {
		rs := layout.RoomSpecFor(in, id)
		if !rs.MustTouchExterior && !rs.Type.WantsWindow() {
			continue
		}
		wanting++
		room := st.Room(id)
		for _, e := range geo.Edges {
			if room.Rect.TouchesEdge(f.Bounds, e) {
				touching++
				break
			}
		}
	}
	if wanting == 0 {
		return 1
	}
	return float64(touching) / float64(wanting)
}

// efficiencyScore is the placed room area as a fraction of the usable
// footprint area.
func efficiencyScore(st *layout.PlanState, f *frame.Frame) float64 {
	usable := f.InsideArea()
	if usable <= 0 {
		return 0
	}
	placed := 0.0
	for _, room := range st.Placed() {
		placed += room.Rect.Area()
	}
	if st.Corridor != nil {
		// The corridor polygon may extend past the registered rect.
		extra := st.Corridor.Area() - st.Room(layout.CorridorID).Rect.Area()
		if extra > 0 {
			placed += extra
		}
	}
	if placed > usable {
		return 1
	}
	return placed / usable
}
