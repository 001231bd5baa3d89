package solver

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
)

func boolPtr(b bool) *bool { return &b }

// Two-band footprint with a living room and a bedroom, one per side.
func splitIntent() *intent.Intent {
	return &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "split"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 12, Y2: 8},
		},
		Bands: []intent.BandDef{{ID: "left", Width: 6}, {ID: "right", Width: 6}},
		Rooms: []intent.RoomSpec{
			{ID: "living", Type: intent.RoomLiving, MinArea: 25, PreferredBands: []string{"left"}, MustTouchExterior: true},
			{ID: "bedroom", Type: intent.RoomBedroom, MinArea: 20, PreferredBands: []string{"right"}, MustTouchExterior: true},
		},
	}
}

func solveOK(t *testing.T, in *intent.Intent) *Result {
	t.Helper()
	res, err := Solve(in, Options{})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return res
}

func assertNoOverlapInside(t *testing.T, res *Result) {
	t.Helper()
	ids := res.Plan.Order
	for i, a := range ids {
		ra := res.Plan.Rooms[a].Rect
		if !res.Frame.ContainsRect(ra) {
			t.Errorf("room %q escapes the footprint: %+v", a, ra)
		}
		for _, b := range ids[i+1:] {
			if ra.Overlaps(res.Plan.Rooms[b].Rect) {
				t.Errorf("rooms %q and %q overlap", a, b)
			}
		}
	}
}

func TestSolveTwoRoomSplit(t *testing.T) {
	res := solveOK(t, splitIntent())

	if len(res.Plan.Unplaced) != 0 {
		t.Fatalf("unexpected unplaced rooms: %+v", res.Plan.Unplaced)
	}
	if res.Plan.Room("living") == nil || res.Plan.Room("bedroom") == nil {
		t.Fatal("both rooms should be placed")
	}
	assertNoOverlapInside(t, res)

	for _, want := range []string{"room living {", "room bedroom {"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("emitted text missing %q", want)
		}
	}
}

func TestSolveMustTouchEdgeNorth(t *testing.T) {
	in := &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "north"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 12, Y2: 10},
		},
		Rooms: []intent.RoomSpec{
			{ID: "living", Type: intent.RoomLiving, MinArea: 30, MustTouchEdge: geo.EdgeNorth},
		},
	}

	res := solveOK(t, in)
	got := res.Plan.Room("living").Rect
	if math.Abs(got.Y2-10) > 1e-3 {
		t.Errorf("north-bound room has y2=%.3f, want 10", got.Y2)
	}
}

func TestSolveEnsuitePlan(t *testing.T) {
	in := &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "ensuite"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 12, Y2: 8},
		},
		Rooms: []intent.RoomSpec{
			{ID: "hall", Type: intent.RoomHall, MinArea: 8, IsCirculation: true, HasExteriorDoor: true},
			{ID: "master", Type: intent.RoomBedroom, MinArea: 16, AdjacentTo: []string{"hall"}},
			{ID: "ensuite", Type: intent.RoomBath, MinArea: 6, IsEnsuite: boolPtr(true), AdjacentTo: []string{"master"}},
		},
	}

	res := solveOK(t, in)
	assertNoOverlapInside(t, res)

	ensuite := res.Plan.Room("ensuite")
	master := res.Plan.Room("master")
	if !ensuite.Rect.Touches(master.Rect, 0.1) {
		t.Error("ensuite should share a wall with its bedroom")
	}

	if got := res.Plan.DoorCount("ensuite"); got != 1 {
		t.Fatalf("ensuite should have exactly 1 interior door, got %d", got)
	}
	for _, d := range res.Plan.InteriorDoors() {
		if d.Room == "ensuite" || d.ConnectsTo == "ensuite" {
			other := d.Room
			if other == "ensuite" {
				other = d.ConnectsTo
			}
			if other != "master" {
				t.Errorf("ensuite door connects to %q, want master", other)
			}
		}
	}
}

func TestSolveLinearWingDegradesGracefully(t *testing.T) {
	in := &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "wing"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 6, Y2: 14},
		},
		Rooms: []intent.RoomSpec{
			{ID: "kitchen", Type: intent.RoomKitchen, MinArea: 10, IsCirculation: true, HasExteriorDoor: true},
			{ID: "bedroom", Type: intent.RoomBedroom, MinArea: 12, AdjacentTo: []string{"kitchen"}},
			{ID: "bath", Type: intent.RoomBath, MinArea: 5, IsEnsuite: boolPtr(false), AdjacentTo: []string{"kitchen"}},
		},
	}

	res, err := Solve(in, Options{})
	if err != nil {
		var se *SolveError
		if !errors.As(err, &se) {
			t.Fatalf("failure should be a SolveError, got %T: %v", err, err)
		}
		if se.Stage != "reachability" {
			t.Errorf("expected a reachability failure, got stage %q", se.Stage)
		}
		return
	}

	kitchen := res.Plan.Room("kitchen").Rect
	bedNear := res.Plan.Room("bedroom").Rect.Touches(kitchen, 0.1)
	bathNear := res.Plan.Room("bath").Rect.Touches(kitchen, 0.1)
	if !bedNear && !bathNear {
		t.Error("at least one of bedroom/bath should reach the kitchen")
	}
}

func TestSolveDeterministic(t *testing.T) {
	first := solveOK(t, splitIntent())
	second := solveOK(t, splitIntent())

	if !reflect.DeepEqual(first.Plan.Rooms, second.Plan.Rooms) {
		t.Error("placed rooms differ between identical solves")
	}
	if !reflect.DeepEqual(first.Plan.Openings, second.Plan.Openings) {
		t.Error("openings differ between identical solves")
	}
	if first.Text != second.Text {
		t.Error("emitted text differs between identical solves")
	}
}

func TestSolveNoBedroomToBedroomDoor(t *testing.T) {
	in := &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "beds"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 12, Y2: 8},
		},
		Bands: []intent.BandDef{{ID: "left", Width: 6}, {ID: "right", Width: 6}},
		Rooms: []intent.RoomSpec{
			{ID: "hall", Type: intent.RoomHall, MinArea: 8, HasExteriorDoor: true},
			{ID: "bed1", Type: intent.RoomBedroom, MinArea: 14, PreferredBands: []string{"left"}, AdjacentTo: []string{"hall"}},
			{ID: "bed2", Type: intent.RoomBedroom, MinArea: 14, PreferredBands: []string{"right"}, AdjacentTo: []string{"hall"}},
		},
	}

	res, err := Solve(in, Options{})
	if err != nil {
		t.Skipf("solve did not converge: %v", err)
	}
	for _, d := range res.Plan.InteriorDoors() {
		a := res.Plan.Room(d.Room)
		b := res.Plan.Room(d.ConnectsTo)
		if a.Type == intent.RoomBedroom && b.Type == intent.RoomBedroom {
			t.Errorf("direct bedroom-to-bedroom door between %q and %q", d.Room, d.ConnectsTo)
		}
	}
}

func TestSolveReachabilityConsistency(t *testing.T) {
	res := solveOK(t, splitIntent())

	rec := NewRecorder()
	if _, err := Solve(splitIntent(), Options{Trace: rec}); err != nil {
		t.Fatalf("traced solve failed: %v", err)
	}
	if rec.Entry == "" {
		t.Fatal("trace should record the resolved entry room")
	}
	reachable := map[string]bool{}
	for id := range rec.Graph {
		reachable[id] = true
	}
	for _, id := range rec.Unreached {
		delete(reachable, id)
	}
	if len(reachable)+len(rec.Unreached) != len(res.Plan.Order) {
		t.Error("reachable and unreachable sets should partition the placed rooms")
	}
}

func TestSolvePlacementFailure(t *testing.T) {
	in := &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "toobig"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 6, Y2: 6},
		},
		Rooms: []intent.RoomSpec{
			{ID: "ballroom", Type: intent.RoomLiving, MinArea: 500},
		},
	}

	_, err := Solve(in, Options{})
	if err == nil {
		t.Fatal("oversized room should fail the solve")
	}
	var se *SolveError
	if !errors.As(err, &se) {
		t.Fatalf("expected SolveError, got %T", err)
	}
	if se.Stage != "placement" {
		t.Errorf("stage = %q, want placement", se.Stage)
	}
	if len(se.Unplaced) == 0 {
		t.Error("error should carry per-room failure reasons")
	}
	if !strings.Contains(se.Error(), "ballroom") {
		t.Errorf("message should name the failing room: %s", se.Error())
	}
}

func TestSolveInvalidIntent(t *testing.T) {
	in := &intent.Intent{
		IntentVersion: "1",
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 10, Y2: 8},
		},
		Rooms: []intent.RoomSpec{
			{ID: "dup", Type: intent.RoomLiving, MinArea: 10},
			{ID: "dup", Type: intent.RoomKitchen, MinArea: 10},
		},
	}

	_, err := Solve(in, Options{})
	var se *SolveError
	if !errors.As(err, &se) {
		t.Fatalf("expected SolveError, got %v", err)
	}
	if se.Stage != "intent" {
		t.Errorf("stage = %q, want intent", se.Stage)
	}
}

func TestSolveVariantOverride(t *testing.T) {
	res, err := Solve(splitIntent(), Options{Variants: 1})
	if err != nil {
		t.Fatalf("single-variant solve failed: %v", err)
	}
	if res.Variant != 0 {
		t.Errorf("variant = %d, want 0", res.Variant)
	}
}
