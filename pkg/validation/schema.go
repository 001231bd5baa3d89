package validation

import (
	"fmt"

	"github.com/jfromaniello/planscript/pkg/intent"
)

// ValidateIntent performs structural validation on a parsed Intent.
// It checks reference integrity and obviously unsatisfiable values before
// any solving. Unit normalization is the caller's responsibility.
func ValidateIntent(in *intent.Intent) *Report {
	r := NewReport()

	validateFootprint(in, r)
	validateBands(in, r)
	validateRooms(in, r)
	validateReferences(in, r)
	validateEdges(in, r)

	return r
}

func validateFootprint(in *intent.Intent, r *Report) {
	f := in.Footprint
	if f.Rect == nil && !f.IsPolygon() {
		r.AddError(Result{
			Level:    LevelIntent,
			Message:  "footprint must declare a rect or a polygon with at least 3 vertices",
			Path:     "footprint",
			Expected: "rect or polygon",
		})
		return
	}
	bounds := f.Bounds()
	if bounds.IsEmpty() {
		r.AddError(Result{
			Level:       LevelIntent,
			Message:     "footprint has zero extent",
			Path:        "footprint",
			ActualValue: fmt.Sprintf("%.2f x %.2f", bounds.Width(), bounds.Height()),
			Expected:    "positive width and height",
		})
	}
}

func validateBands(in *intent.Intent, r *Report) {
	checkAxis := func(defs []intent.BandDef, path string, extent float64) {
		seen := make(map[string]bool, len(defs))
		total := 0.0
		for i, b := range defs {
			if b.ID == "" {
				r.AddError(Result{
					Level:    LevelIntent,
					Message:  fmt.Sprintf("%s[%d] has empty id", path, i),
					Path:     fmt.Sprintf("%s[%d].id", path, i),
					Expected: "non-empty string",
				})
				continue
			}
			if seen[b.ID] {
				r.AddError(Result{
					Level:       LevelIntent,
					Message:     fmt.Sprintf("duplicate %s id %q", path, b.ID),
					Path:        fmt.Sprintf("%s[%d].id", path, i),
					ActualValue: b.ID,
				})
			}
			seen[b.ID] = true
			if b.Width < 0 {
				r.AddError(Result{
					Level:       LevelIntent,
					Message:     fmt.Sprintf("%s %q has negative width", path, b.ID),
					Path:        fmt.Sprintf("%s[%d].width", path, i),
					ActualValue: b.Width,
					Expected:    ">= 0",
				})
			}
			total += b.Width
		}
		if total > extent+1e-6 {
			r.AddError(Result{
				Level:       LevelIntent,
				Message:     fmt.Sprintf("declared %s widths total %.2f, exceeding footprint extent %.2f", path, total, extent),
				Path:        path,
				ActualValue: total,
				Expected:    fmt.Sprintf("<= %.2f", extent),
			})
		}
	}

	bounds := in.Footprint.Bounds()
	checkAxis(in.Bands, "bands", bounds.Width())
	checkAxis(in.Depths, "depths", bounds.Height())
}

func validateRooms(in *intent.Intent, r *Report) {
	if len(in.Rooms) == 0 {
		r.AddError(Result{
			Level:    LevelIntent,
			Message:  "intent declares no rooms",
			Path:     "rooms",
			Expected: "at least 1 room",
		})
		return
	}

	seen := make(map[string]int, len(in.Rooms))
	footprintArea := in.Footprint.ToPolygon().Area()
	totalMin := 0.0

	for i, room := range in.Rooms {
		if room.ID == "" {
			r.AddError(Result{
				Level:    LevelIntent,
				Message:  fmt.Sprintf("rooms[%d] has empty id", i),
				Path:     fmt.Sprintf("rooms[%d].id", i),
				Expected: "non-empty string",
			})
			continue
		}
		if prev, dup := seen[room.ID]; dup {
			r.AddError(Result{
				Level:       LevelIntent,
				Message:     fmt.Sprintf("duplicate room id %q at indices %d and %d", room.ID, prev, i),
				Path:        fmt.Sprintf("rooms[%d].id", i),
				ActualValue: room.ID,
			})
		}
		seen[room.ID] = i

		if !room.Type.Valid() {
			r.AddError(Result{
				Level:       LevelIntent,
				Message:     fmt.Sprintf("room %q has unknown type %q", room.ID, room.Type),
				Path:        fmt.Sprintf("rooms[%d].type", i),
				ActualValue: string(room.Type),
			})
		}
		if room.MinArea <= 0 {
			r.AddError(Result{
				Level:       LevelIntent,
				Message:     fmt.Sprintf("room %q min_area must be > 0", room.ID),
				Path:        fmt.Sprintf("rooms[%d].min_area", i),
				ActualValue: room.MinArea,
				Expected:    "> 0",
			})
		}
		if room.MaxArea > 0 && room.MaxArea < room.MinArea {
			r.AddError(Result{
				Level:       LevelIntent,
				Message:     fmt.Sprintf("room %q max_area %.2f is below min_area %.2f", room.ID, room.MaxArea, room.MinArea),
				Path:        fmt.Sprintf("rooms[%d].max_area", i),
				ActualValue: room.MaxArea,
				Expected:    fmt.Sprintf(">= %.2f", room.MinArea),
			})
		}
		totalMin += room.MinArea
	}

	if footprintArea > 0 && totalMin > footprintArea {
		r.AddWarning(Result{
			Level:       LevelIntent,
			Message:     fmt.Sprintf("room min_area total %.1f exceeds footprint area %.1f; placement will likely fail", totalMin, footprintArea),
			Path:        "rooms",
			ActualValue: totalMin,
			Suggestions: []string{"Reduce min_area values or enlarge the footprint"},
		})
	}
}

func validateReferences(in *intent.Intent, r *Report) {
	bandIDs := make(map[string]bool, len(in.Bands))
	for _, b := range in.Bands {
		bandIDs[b.ID] = true
	}
	depthIDs := make(map[string]bool, len(in.Depths))
	for _, d := range in.Depths {
		depthIDs[d.ID] = true
	}

	for i, room := range in.Rooms {
		for _, id := range room.AdjacentTo {
			if in.Room(id) == nil {
				r.AddError(Result{
					Level:       LevelIntent,
					Message:     fmt.Sprintf("room %q adjacent_to references unknown room %q", room.ID, id),
					Path:        fmt.Sprintf("rooms[%d].adjacent_to", i),
					ActualValue: id,
				})
			}
		}
		for _, id := range room.NeedsAccessFrom {
			if in.Room(id) == nil {
				r.AddError(Result{
					Level:       LevelIntent,
					Message:     fmt.Sprintf("room %q needs_access_from references unknown room %q", room.ID, id),
					Path:        fmt.Sprintf("rooms[%d].needs_access_from", i),
					ActualValue: id,
				})
			}
		}
		// Preferred band/depth references are allowed to introduce new ids
		// when no explicit axis declarations exist (the frame infers them);
		// with explicit declarations they must resolve.
		if len(in.Bands) > 0 {
			for _, id := range room.PreferredBands {
				if !bandIDs[id] {
					r.AddError(Result{
						Level:       LevelIntent,
						Message:     fmt.Sprintf("room %q prefers unknown band %q", room.ID, id),
						Path:        fmt.Sprintf("rooms[%d].preferred_bands", i),
						ActualValue: id,
					})
				}
			}
		}
		if len(in.Depths) > 0 {
			for _, id := range room.PreferredDepths {
				if !depthIDs[id] {
					r.AddError(Result{
						Level:       LevelIntent,
						Message:     fmt.Sprintf("room %q prefers unknown depth %q", room.ID, id),
						Path:        fmt.Sprintf("rooms[%d].preferred_depths", i),
						ActualValue: id,
					})
				}
			}
		}
	}
}

func validateEdges(in *intent.Intent, r *Report) {
	if e := in.Plan.FrontEdge; e != "" && !e.Valid() {
		r.AddError(Result{
			Level:       LevelIntent,
			Message:     fmt.Sprintf("plan.front_edge %q is not a cardinal edge", e),
			Path:        "plan.front_edge",
			ActualValue: string(e),
			Expected:    "north|south|east|west",
		})
	}
	if e := in.Plan.GardenEdge; e != "" && !e.Valid() {
		r.AddError(Result{
			Level:       LevelIntent,
			Message:     fmt.Sprintf("plan.garden_edge %q is not a cardinal edge", e),
			Path:        "plan.garden_edge",
			ActualValue: string(e),
			Expected:    "north|south|east|west",
		})
	}
	for i, room := range in.Rooms {
		if e := room.MustTouchEdge; e != "" && !e.Valid() {
			r.AddError(Result{
				Level:       LevelIntent,
				Message:     fmt.Sprintf("room %q must_touch_edge %q is not a cardinal edge", room.ID, e),
				Path:        fmt.Sprintf("rooms[%d].must_touch_edge", i),
				ActualValue: string(e),
				Expected:    "north|south|east|west",
			})
		}
	}
}
