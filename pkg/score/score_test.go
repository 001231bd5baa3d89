package score

import (
	"math"
	"testing"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

func scoreIntent(rooms ...intent.RoomSpec) *intent.Intent {
	return &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "score-test"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 10, Y2: 8},
		},
		Rooms: rooms,
	}
}

func placedState(f *frame.Frame, rooms ...*layout.PlacedRoom) *layout.PlanState {
	st := layout.NewPlanState(f)
	for _, r := range rooms {
		st.Place(r)
	}
	return st
}

func TestEvaluateFullySatisfiedPlan(t *testing.T) {
	in := scoreIntent(
		intent.RoomSpec{ID: "living", Type: intent.RoomLiving, MinArea: 20, AdjacentTo: []string{"kitchen"}},
		intent.RoomSpec{ID: "kitchen", Type: intent.RoomKitchen, MinArea: 12},
	)
	f, report := frame.Build(in)
	if !report.Valid {
		t.Fatalf("frame build failed: %v", report.ErrorMessages())
	}

	st := placedState(f,
		&layout.PlacedRoom{ID: "living", Rect: geo.R(0, 0, 5, 8), Type: intent.RoomLiving},
		&layout.PlacedRoom{ID: "kitchen", Rect: geo.R(5, 0, 10, 8), Type: intent.RoomKitchen},
	)

	b := Evaluate(st, in, f)
	if b.Adjacency != 1 {
		t.Errorf("adjacency = %.2f, want 1", b.Adjacency)
	}
	if b.Efficiency != 1 {
		t.Errorf("efficiency = %.2f, want 1 for a full footprint", b.Efficiency)
	}
	if b.Edge != 1 {
		t.Errorf("edge = %.2f, want 1, both rooms touch the boundary", b.Edge)
	}
	if b.Total <= 0 || b.Total > 1+geo.Epsilon {
		t.Errorf("total %.3f outside (0,1]", b.Total)
	}
}

func TestEvaluateMissedAdjacency(t *testing.T) {
	in := scoreIntent(
		intent.RoomSpec{ID: "living", Type: intent.RoomLiving, MinArea: 8, AdjacentTo: []string{"kitchen"}},
		intent.RoomSpec{ID: "kitchen", Type: intent.RoomKitchen, MinArea: 8},
	)
	f, _ := frame.Build(in)

	st := placedState(f,
		&layout.PlacedRoom{ID: "living", Rect: geo.R(0, 0, 3, 3), Type: intent.RoomLiving},
		&layout.PlacedRoom{ID: "kitchen", Rect: geo.R(6, 5, 10, 8), Type: intent.RoomKitchen},
	)

	b := Evaluate(st, in, f)
	if b.Adjacency != 0 {
		t.Errorf("adjacency = %.2f, want 0 for separated rooms", b.Adjacency)
	}
}

func TestAspectScorePrefersIdealRatio(t *testing.T) {
	in := scoreIntent(
		intent.RoomSpec{ID: "good", Type: intent.RoomLiving, MinArea: 8},
	)
	f, _ := frame.Build(in)

	// Aspect 1.4 matches the living ideal exactly.
	ideal := placedState(f, &layout.PlacedRoom{ID: "good", Rect: geo.R(0, 0, 7, 5), Type: intent.RoomLiving})
	sliver := placedState(f, &layout.PlacedRoom{ID: "good", Rect: geo.R(0, 0, 10, 1), Type: intent.RoomLiving})

	bi := Evaluate(ideal, in, f)
	bs := Evaluate(sliver, in, f)
	if bi.Aspect <= bs.Aspect {
		t.Errorf("ideal aspect %.2f should beat sliver %.2f", bi.Aspect, bs.Aspect)
	}
	if math.Abs(bi.Aspect-1) > 1e-6 {
		t.Errorf("exact ideal ratio should score 1, got %.3f", bi.Aspect)
	}
}

func TestWeightsNormalize(t *testing.T) {
	wa, was, we, wef := weights(intent.SoftWeights{Adjacency: 2, Aspect: 1, Edge: 1, Efficiency: 0})
	sum := wa + was + we + wef
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights should sum to 1, got %.6f", sum)
	}
	if wa != 0.5 {
		t.Errorf("adjacency weight = %.3f, want 0.5", wa)
	}

	wa, was, we, wef = weights(intent.SoftWeights{})
	if wa != DefaultAdjacencyWeight || was != DefaultAspectWeight ||
		we != DefaultEdgeWeight || wef != DefaultEfficiencyWeight {
		t.Error("zero weights should fall back to the defaults")
	}
}

func TestEfficiencyCountsCorridorOutline(t *testing.T) {
	in := scoreIntent()
	f, _ := frame.Build(in)

	st := placedState(f, &layout.PlacedRoom{ID: layout.CorridorID, Rect: geo.R(0, 0, 10, 1.2), Type: intent.RoomCorridor})
	poly := geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 1.2),
		geo.Pt(1.2, 1.2), geo.Pt(1.2, 5), geo.Pt(0, 5),
	)
	st.Corridor = &poly

	b := Evaluate(st, in, f)
	want := poly.Area() / f.InsideArea()
	if math.Abs(b.Efficiency-want) > 1e-6 {
		t.Errorf("efficiency = %.4f, want %.4f including the corridor elbow", b.Efficiency, want)
	}
}
