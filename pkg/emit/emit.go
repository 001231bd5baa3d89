// Package emit serializes a solved plan to PlanScript DSL text. The
// emitted form is intended to round-trip through the external compiler:
// rooms as rects (the corridor as a polygon when L-shaped), openings as
// door/window lines, and validation assertions for the enabled hard
// constraints.
package emit

import (
	"fmt"
	"strings"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

// Emit renders the plan state as PlanScript text. Rooms are grouped by
// the band they were placed from, with zone comments separating groups.
func Emit(st *layout.PlanState, f *frame.Frame, in *intent.Intent, entry string) string {
	var b strings.Builder

	name := in.Plan.Name
	if name == "" {
		name = "plan"
	}
	fmt.Fprintf(&b, "plan %q {\n", name)

	emitFootprint(&b, in)
	b.WriteString("\n")
	emitRooms(&b, st, f)
	emitOpenings(&b, st)
	emitAsserts(&b, in, entry)

	b.WriteString("}\n")
	return b.String()
}

func emitFootprint(b *strings.Builder, in *intent.Intent) {
	if in.Footprint.IsPolygon() {
		b.WriteString("  footprint polygon")
		for _, v := range in.Footprint.Polygon {
			fmt.Fprintf(b, " (%s, %s)", num(v[0]), num(v[1]))
		}
		b.WriteString("\n")
		return
	}
	r := in.Footprint.Bounds()
	fmt.Fprintf(b, "  footprint rect (%s, %s) to (%s, %s)\n",
		num(r.X1), num(r.Y1), num(r.X2), num(r.Y2))
}

// emitRooms writes room blocks grouped by band, preserving placement
// order within each group. Rooms with no band (the corridor) come last.
func emitRooms(b *strings.Builder, st *layout.PlanState, f *frame.Frame) {
	bands := make([]string, 0, len(f.Bands)+1)
	for _, band := range f.Bands {
		bands = append(bands, band.ID)
	}
	bands = append(bands, "")

	for _, bandID := range bands {
		wrote := false
		for _, id := range st.Order {
			room := st.Rooms[id]
			if room.BandID != bandID {
				continue
			}
			if !wrote && bandID != "" {
				fmt.Fprintf(b, "  # zone band:%s\n", bandID)
				wrote = true
			}
			emitRoom(b, st, room)
		}
		if wrote {
			b.WriteString("\n")
		}
	}
}

func emitRoom(b *strings.Builder, st *layout.PlanState, room *layout.PlacedRoom) {
	fmt.Fprintf(b, "  room %s {\n", room.ID)

	if room.ID == layout.CorridorID && st.Corridor != nil && st.Corridor.Len() > 4 {
		b.WriteString("    shape polygon")
		for _, v := range st.Corridor.Vertices {
			fmt.Fprintf(b, " (%s, %s)", num(v.X), num(v.Y))
		}
		b.WriteString("\n")
	} else {
		fmt.Fprintf(b, "    rect (%s, %s) to (%s, %s)\n",
			num(room.Rect.X1), num(room.Rect.Y1), num(room.Rect.X2), num(room.Rect.Y2))
	}

	fmt.Fprintf(b, "    type %s\n", room.Type)
	if room.Label != "" && room.Label != room.ID {
		fmt.Fprintf(b, "    label %q\n", room.Label)
	}
	b.WriteString("  }\n")
}

func emitOpenings(b *strings.Builder, st *layout.PlanState) {
	if len(st.Openings) == 0 {
		return
	}
	for _, op := range st.Openings {
		switch {
		case op.Type == layout.OpeningDoor && op.IsExterior:
			fmt.Fprintf(b, "  door %s on edge %s at %.0f%% width %.2f exterior\n",
				op.Room, op.Edge, op.Position*100, op.Width)
		case op.Type == layout.OpeningDoor:
			fmt.Fprintf(b, "  door between %s and %s at %.0f%% width %.2f\n",
				op.Room, op.ConnectsTo, op.Position*100, op.Width)
		default:
			fmt.Fprintf(b, "  window %s on edge %s at %.0f%% width %.2f sill %.2f\n",
				op.Room, op.Edge, op.Position*100, op.Width, op.Sill)
		}
	}
	b.WriteString("\n")
}

func emitAsserts(b *strings.Builder, in *intent.Intent, entry string) {
	hard := in.Constraints.Hard
	if hard.NoOverlapEnabled() {
		b.WriteString("  assert no-overlap\n")
	}
	if hard.InsideFootprintEnabled() {
		b.WriteString("  assert inside-footprint\n")
	}
	if hard.AllReachableEnabled() && entry != "" {
		fmt.Fprintf(b, "  assert reachable from %s\n", entry)
	}
}

// num formats a coordinate without trailing zero noise.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
