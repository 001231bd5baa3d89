package emit

import (
	"strings"
	"testing"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

func emitIntent() *intent.Intent {
	return &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "cottage"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 12, Y2: 8},
		},
		Bands: []intent.BandDef{{ID: "left", Width: 6}, {ID: "right", Width: 6}},
		Rooms: []intent.RoomSpec{
			{ID: "living", Type: intent.RoomLiving, MinArea: 20, PreferredBands: []string{"left"}},
			{ID: "bed1", Type: intent.RoomBedroom, Label: "Master Bedroom", MinArea: 16, PreferredBands: []string{"right"}},
		},
	}
}

func TestEmitBasicPlan(t *testing.T) {
	in := emitIntent()
	f, report := frame.Build(in)
	if !report.Valid {
		t.Fatalf("frame build failed: %v", report.ErrorMessages())
	}

	st := layout.NewPlanState(f)
	st.Place(&layout.PlacedRoom{ID: "living", Rect: geo.R(0, 0, 6, 8), BandID: "left", Type: intent.RoomLiving})
	st.Place(&layout.PlacedRoom{ID: "bed1", Rect: geo.R(6, 0, 12, 8), BandID: "right", Label: "Master Bedroom", Type: intent.RoomBedroom})
	st.AddOpening(layout.PlacedOpening{
		Type: layout.OpeningDoor, Room: "living", ConnectsTo: "bed1",
		Edge: geo.EdgeEast, Position: 0.5, Width: 0.9, Swing: "in",
	})
	st.AddOpening(layout.PlacedOpening{
		Type: layout.OpeningDoor, Room: "living", Edge: geo.EdgeSouth,
		Position: 0.5, Width: 0.9, IsExterior: true, Swing: "in",
	})
	st.AddOpening(layout.PlacedOpening{
		Type: layout.OpeningWindow, Room: "bed1", Edge: geo.EdgeNorth,
		Position: 0.5, Width: 1.8, Sill: 0.9,
	})

	text := Emit(st, f, in, "living")

	for _, want := range []string{
		`plan "cottage" {`,
		"footprint rect (0, 0) to (12, 8)",
		"# zone band:left",
		"# zone band:right",
		"room living {",
		"room bed1 {",
		"rect (6, 0) to (12, 8)",
		`label "Master Bedroom"`,
		"door between living and bed1 at 50% width 0.90",
		"door living on edge south at 50% width 0.90 exterior",
		"window bed1 on edge north at 50% width 1.80 sill 0.90",
		"assert no-overlap",
		"assert inside-footprint",
		"assert reachable from living",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("emitted text missing %q\n%s", want, text)
		}
	}
}

func TestEmitCorridorPolygon(t *testing.T) {
	in := emitIntent()
	in.Rooms = nil
	in.Bands = nil
	f, _ := frame.Build(in)

	st := layout.NewPlanState(f)
	st.Place(&layout.PlacedRoom{ID: layout.CorridorID, Rect: geo.R(0, 0, 12, 1.2), Type: intent.RoomCorridor})
	poly := geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(12, 0), geo.Pt(12, 1.2),
		geo.Pt(1.2, 1.2), geo.Pt(1.2, 6), geo.Pt(0, 6),
	)
	st.Corridor = &poly

	text := Emit(st, f, in, "")
	if !strings.Contains(text, "shape polygon (0, 0) (12, 0) (12, 1.2)") {
		t.Errorf("corridor should emit as a polygon:\n%s", text)
	}
	// No entry room means no reachability assertion.
	if strings.Contains(text, "assert reachable") {
		t.Error("reachability assertion should be omitted without an entry")
	}
}

func TestEmitDisabledAsserts(t *testing.T) {
	in := emitIntent()
	off := false
	in.Constraints.Hard = intent.HardConstraints{
		NoOverlap: &off, InsideFootprint: &off, AllReachable: &off,
	}
	f, _ := frame.Build(in)
	st := layout.NewPlanState(f)

	text := Emit(st, f, in, "living")
	if strings.Contains(text, "assert") {
		t.Errorf("disabled constraints should emit no assertions:\n%s", text)
	}
}
