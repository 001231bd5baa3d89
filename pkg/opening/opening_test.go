package opening

import (
	"math"
	"testing"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

func boolPtr(b bool) *bool { return &b }

func openingIntent(rooms ...intent.RoomSpec) *intent.Intent {
	return &intent.Intent{
		IntentVersion: "1",
		Plan:          intent.PlanDef{Name: "opening-test"},
		Footprint: intent.FootprintDef{
			Rect: &intent.RectDef{X1: 0, Y1: 0, X2: 12, Y2: 8},
		},
		Rooms: rooms,
	}
}

func buildState(t *testing.T, in *intent.Intent, rooms ...*layout.PlacedRoom) (*layout.PlanState, *frame.Frame) {
	t.Helper()
	f, report := frame.Build(in)
	if !report.Valid {
		t.Fatalf("frame build failed: %v", report.ErrorMessages())
	}
	st := layout.NewPlanState(f)
	for _, r := range rooms {
		st.Place(r)
	}
	return st, f
}

func TestBuildAdjacency(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "a", Type: intent.RoomLiving, MinArea: 8},
		intent.RoomSpec{ID: "b", Type: intent.RoomKitchen, MinArea: 8},
		intent.RoomSpec{ID: "c", Type: intent.RoomOffice, MinArea: 8},
	)
	st, _ := buildState(t, in,
		&layout.PlacedRoom{ID: "a", Rect: geo.R(0, 0, 6, 8), Type: intent.RoomLiving},
		&layout.PlacedRoom{ID: "b", Rect: geo.R(6, 0, 12, 8), Type: intent.RoomKitchen},
		&layout.PlacedRoom{ID: "c", Rect: geo.R(0, 0, 0, 0), Type: intent.RoomOffice},
	)

	pairs := BuildAdjacency(st, 1.0)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	p := pairs[0]
	if p.A != "a" || p.B != "b" {
		t.Errorf("pair = %s/%s, want a/b", p.A, p.B)
	}
	if p.Edge != geo.EdgeEast {
		t.Errorf("edge = %s, want east", p.Edge)
	}
	if p.Lo != 0 || p.Hi != 8 {
		t.Errorf("span = [%.1f,%.1f], want [0,8]", p.Lo, p.Hi)
	}

	if got := BuildAdjacency(st, 10.0); len(got) != 0 {
		t.Errorf("min-length filter should drop the pair, got %d", len(got))
	}
}

func TestClassifyBath(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "bed1", Type: intent.RoomBedroom, MinArea: 12},
		intent.RoomSpec{ID: "hall", Type: intent.RoomHall, MinArea: 4},
		intent.RoomSpec{ID: "explicit", Type: intent.RoomBath, MinArea: 4, IsEnsuite: boolPtr(true)},
		intent.RoomSpec{ID: "shared", Type: intent.RoomBath, MinArea: 4, IsEnsuite: boolPtr(false)},
		intent.RoomSpec{ID: "inferred", Type: intent.RoomBath, MinArea: 4, AdjacentTo: []string{"bed1"}},
		intent.RoomSpec{ID: "hallway-bath", Type: intent.RoomBath, MinArea: 4, AdjacentTo: []string{"bed1", "hall"}},
	)

	cases := map[string]BathKind{
		"explicit":     BathEnsuite,
		"shared":       BathShared,
		"inferred":     BathEnsuite,
		"hallway-bath": BathShared,
	}
	for id, want := range cases {
		if got := classifyBath(in, *in.Room(id)); got != want {
			t.Errorf("classifyBath(%s) = %s, want %s", id, got, want)
		}
	}

	if got := classifyBath(in, *in.Room("bed1")); got != notBath {
		t.Errorf("bedroom classified as bath: %s", got)
	}
}

func TestDoorAllowedBedroomPassThrough(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "bed1", Type: intent.RoomBedroom, MinArea: 12},
		intent.RoomSpec{ID: "bed2", Type: intent.RoomBedroom, MinArea: 12},
	)

	if ok, _ := DoorAllowed(in, *in.Room("bed1"), *in.Room("bed2")); ok {
		t.Error("bedroom-to-bedroom door should be rejected")
	}
}

func TestDoorAllowedSharedBath(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "hall", Type: intent.RoomHall, MinArea: 4},
		intent.RoomSpec{ID: "living", Type: intent.RoomLiving, MinArea: 20},
		intent.RoomSpec{ID: "bath", Type: intent.RoomBath, MinArea: 4, IsEnsuite: boolPtr(false)},
	)

	if ok, _ := DoorAllowed(in, *in.Room("bath"), *in.Room("living")); ok {
		t.Error("shared bath should not open into the living room")
	}
	if ok, reason := DoorAllowed(in, *in.Room("bath"), *in.Room("hall")); !ok {
		t.Errorf("shared bath to hall should be allowed: %s", reason)
	}
}

func TestDoorAllowedCleanPrivate(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "kitchen", Type: intent.RoomKitchen, MinArea: 10},
		intent.RoomSpec{ID: "hall", Type: intent.RoomHall, MinArea: 4},
		intent.RoomSpec{ID: "closet", Type: intent.RoomCloset, MinArea: 2},
		intent.RoomSpec{ID: "bed1", Type: intent.RoomBedroom, MinArea: 12},
	)

	if ok, _ := DoorAllowed(in, *in.Room("kitchen"), *in.Room("closet")); ok {
		t.Error("kitchen should not open into a closet")
	}
	// Open-plan allowance: kitchen next to a bedroom is fine.
	if ok, reason := DoorAllowed(in, *in.Room("kitchen"), *in.Room("bed1")); !ok {
		t.Errorf("kitchen to bedroom should be allowed: %s", reason)
	}
}

func TestDoorAllowedAccessRules(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "office", Type: intent.RoomOffice, MinArea: 8},
		intent.RoomSpec{ID: "kitchen", Type: intent.RoomKitchen, MinArea: 10},
		intent.RoomSpec{ID: "hall", Type: intent.RoomHall, MinArea: 4},
	)
	in.AccessRules = []intent.AccessRule{
		{Room: "office", AccessibleFrom: []string{"circulation"}},
	}

	if ok, _ := DoorAllowed(in, *in.Room("kitchen"), *in.Room("office")); ok {
		t.Error("access rule should block the kitchen-office door")
	}
	if ok, reason := DoorAllowed(in, *in.Room("hall"), *in.Room("office")); !ok {
		t.Errorf("circulation should reach the office: %s", reason)
	}
}

func TestPlaceOpeningsEnsuiteSingleDoor(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "hall", Type: intent.RoomHall, MinArea: 10, HasExteriorDoor: true},
		intent.RoomSpec{ID: "master", Type: intent.RoomBedroom, MinArea: 20, AdjacentTo: []string{"hall"}},
		intent.RoomSpec{ID: "ensuite", Type: intent.RoomBath, MinArea: 6, IsEnsuite: boolPtr(true), AdjacentTo: []string{"master"}},
	)
	st, f := buildState(t, in,
		&layout.PlacedRoom{ID: "hall", Rect: geo.R(0, 0, 12, 2), Type: intent.RoomHall},
		&layout.PlacedRoom{ID: "master", Rect: geo.R(0, 2, 6, 8), Type: intent.RoomBedroom},
		&layout.PlacedRoom{ID: "ensuite", Rect: geo.R(6, 2, 9, 8), Type: intent.RoomBath},
	)

	PlaceOpenings(st, in, f, "hall", nil)

	if got := st.DoorCount("ensuite"); got != 1 {
		t.Fatalf("ensuite should have exactly 1 interior door, got %d", got)
	}
	for _, d := range st.InteriorDoors() {
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
	if got := st.DoorCount("master"); got != 2 {
		t.Errorf("master should connect to hall and ensuite, got %d doors", got)
	}
}

func TestPlaceOpeningsAdjacentSingleDoorRooms(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "closet", Type: intent.RoomCloset, MinArea: 4},
		intent.RoomSpec{ID: "laundry", Type: intent.RoomLaundry, MinArea: 6},
		intent.RoomSpec{ID: "hall", Type: intent.RoomHall, MinArea: 12, HasExteriorDoor: true},
	)
	st, f := buildState(t, in,
		&layout.PlacedRoom{ID: "closet", Rect: geo.R(0, 0, 2, 4), Type: intent.RoomCloset},
		&layout.PlacedRoom{ID: "laundry", Rect: geo.R(2, 0, 4, 4), Type: intent.RoomLaundry},
		&layout.PlacedRoom{ID: "hall", Rect: geo.R(4, 0, 8, 4), Type: intent.RoomHall},
	)

	PlaceOpenings(st, in, f, "hall", nil)

	// The closet-laundry door counts against both rooms' budgets.
	if got := st.DoorCount("closet"); got != 1 {
		t.Errorf("closet should have exactly 1 interior door, got %d", got)
	}
	if got := st.DoorCount("laundry"); got != 1 {
		t.Errorf("laundry should have exactly 1 interior door, got %d", got)
	}
}

func TestPlaceOpeningsEntryDoor(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "foyer", Type: intent.RoomFoyer, MinArea: 6, HasExteriorDoor: true},
	)
	st, f := buildState(t, in,
		&layout.PlacedRoom{ID: "foyer", Rect: geo.R(4, 0, 8, 3), Type: intent.RoomFoyer},
	)

	PlaceOpenings(st, in, f, "foyer", nil)

	exterior := 0
	for _, op := range st.Openings {
		if op.Type == layout.OpeningDoor && op.IsExterior {
			exterior++
			if op.Edge != geo.EdgeSouth {
				t.Errorf("entry door on %s, want the front edge", op.Edge)
			}
			if op.Position != 0.5 {
				t.Errorf("entry door at %.2f, want centered", op.Position)
			}
		}
	}
	if exterior != 1 {
		t.Errorf("expected exactly 1 exterior door, got %d", exterior)
	}
}

func TestPlaceOpeningsWindows(t *testing.T) {
	in := openingIntent(
		intent.RoomSpec{ID: "living", Type: intent.RoomLiving, MinArea: 20},
		intent.RoomSpec{ID: "bath", Type: intent.RoomBath, MinArea: 4, IsEnsuite: boolPtr(false)},
		intent.RoomSpec{ID: "storage", Type: intent.RoomStorage, MinArea: 4},
	)
	st, f := buildState(t, in,
		&layout.PlacedRoom{ID: "living", Rect: geo.R(0, 0, 8, 8), Type: intent.RoomLiving},
		&layout.PlacedRoom{ID: "bath", Rect: geo.R(8, 0, 12, 4), Type: intent.RoomBath},
		&layout.PlacedRoom{ID: "storage", Rect: geo.R(8, 4, 12, 8), Type: intent.RoomStorage},
	)

	PlaceOpenings(st, in, f, "", nil)

	windows := map[string]layout.PlacedOpening{}
	for _, op := range st.Openings {
		if op.Type == layout.OpeningWindow {
			windows[op.Room] = op
		}
	}

	lw, ok := windows["living"]
	if !ok {
		t.Fatal("living room should receive a window")
	}
	if math.Abs(lw.Width-in.WindowWidth()*1.5) > 1e-9 {
		t.Errorf("living window width %.2f, want %.2f", lw.Width, in.WindowWidth()*1.5)
	}
	if lw.Sill != in.SillHeight() {
		t.Errorf("window sill %.2f, want %.2f", lw.Sill, in.SillHeight())
	}
	if !lw.IsExterior {
		t.Error("windows sit in exterior walls")
	}
	// Garden edge (north, opposite the default front) is exterior for the
	// living room and long enough, so it wins.
	if lw.Edge != geo.EdgeNorth {
		t.Errorf("living window on %s, want the garden edge", lw.Edge)
	}

	bw, ok := windows["bath"]
	if !ok {
		t.Fatal("bath should receive a half window, it touches the boundary")
	}
	if math.Abs(bw.Width-in.WindowWidth()/2) > 1e-9 {
		t.Errorf("bath window width %.2f, want %.2f", bw.Width, in.WindowWidth()/2)
	}

	if _, ok := windows["storage"]; ok {
		t.Error("storage should not receive a window")
	}
}
