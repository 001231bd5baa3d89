// Package frame partitions a footprint into a band x depth grid of
// placement cells. The frame is built once per solve and shared read-only
// by every placement variant.
package frame

import (
	"fmt"

	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/validation"
)

// Band is a named vertical strip of the footprint along the X axis.
type Band struct {
	ID string  `json:"id"`
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
}

// Depth is a named horizontal strip of the footprint along the Y axis.
type Depth struct {
	ID string  `json:"id"`
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// Cell is the intersection of one band and one depth. Cells outside a
// polygonal footprint are kept (for stable indexing) but flagged.
type Cell struct {
	BandID          string   `json:"band_id"`
	DepthID         string   `json:"depth_id"`
	Rect            geo.Rect `json:"rect"`
	InsideFootprint bool     `json:"inside_footprint"`
}

// Frame is the immutable placement grid for one footprint.
type Frame struct {
	Bounds    geo.Rect     `json:"bounds"`
	Polygon   *geo.Polygon `json:"polygon,omitempty"`
	Bands     []Band       `json:"bands"`
	Depths    []Depth      `json:"depths"`
	Cells     []Cell       `json:"cells"`
}

// IsPolygonal reports whether the footprint is a non-rect polygon.
func (f *Frame) IsPolygonal() bool {
	return f.Polygon != nil
}

// ContainsRect reports whether r lies fully inside the footprint.
func (f *Frame) ContainsRect(r geo.Rect) bool {
	if f.Polygon != nil {
		return f.Polygon.ContainsRect(r)
	}
	return f.Bounds.ContainsRect(r)
}

// Band returns the band with the given id, or nil if not found.
func (f *Frame) Band(id string) *Band {
	for i := range f.Bands {
		if f.Bands[i].ID == id {
			return &f.Bands[i]
		}
	}
	return nil
}

// Depth returns the depth with the given id, or nil if not found.
func (f *Frame) Depth(id string) *Depth {
	for i := range f.Depths {
		if f.Depths[i].ID == id {
			return &f.Depths[i]
		}
	}
	return nil
}

// InsideArea returns the total area of cells inside the footprint.
func (f *Frame) InsideArea() float64 {
	total := 0.0
	for _, c := range f.Cells {
		if c.InsideFootprint {
			total += c.Rect.Area()
		}
	}
	return total
}

// Build derives the placement frame from the intent: bands and depths from
// explicit declarations or from the ids the rooms reference, then the cell
// grid as their cartesian product.
func Build(in *intent.Intent) (*Frame, *validation.Report) {
	r := validation.NewReport()

	bounds := in.Footprint.Bounds()
	f := &Frame{Bounds: bounds}
	if in.Footprint.IsPolygon() {
		poly := in.Footprint.ToPolygon()
		f.Polygon = &poly
	}

	bandDefs := axisDefs(in.Bands, collectRefs(in.Rooms, func(rm intent.RoomSpec) []string {
		return rm.PreferredBands
	}), "band")
	depthDefs := axisDefs(in.Depths, collectRefs(in.Rooms, func(rm intent.RoomSpec) []string {
		return rm.PreferredDepths
	}), "depth")

	for _, iv := range splitExtent(bandDefs, bounds.X1, bounds.X2) {
		f.Bands = append(f.Bands, Band{ID: iv.id, X1: iv.lo, X2: iv.hi})
	}
	for _, iv := range splitExtent(depthDefs, bounds.Y1, bounds.Y2) {
		f.Depths = append(f.Depths, Depth{ID: iv.id, Y1: iv.lo, Y2: iv.hi})
	}

	outside := 0
	for _, d := range f.Depths {
		for _, b := range f.Bands {
			rect := geo.R(b.X1, d.Y1, b.X2, d.Y2)
			inside := true
			if f.Polygon != nil {
				inside = f.Polygon.ContainsRect(rect)
			}
			if !inside {
				outside++
			}
			f.Cells = append(f.Cells, Cell{
				BandID:          b.ID,
				DepthID:         d.ID,
				Rect:            rect,
				InsideFootprint: inside,
			})
		}
	}

	if outside == len(f.Cells) {
		r.AddError(validation.Result{
			Level:    validation.LevelSpatial,
			Message:  "no frame cell lies inside the footprint",
			Path:     "footprint",
			Expected: "at least one band x depth cell inside the polygon",
		})
	} else if outside > 0 {
		r.AddInfo(validation.Result{
			Level:   validation.LevelSpatial,
			Message: fmt.Sprintf("%d of %d frame cells fall outside the footprint polygon", outside, len(f.Cells)),
			Path:    "footprint",
		})
	}

	return f, r
}

type interval struct {
	id     string
	lo, hi float64
}

// axisDefs picks the axis declarations: explicit defs win, otherwise the
// distinct ids referenced by rooms (in declaration order), otherwise a
// single full-extent interval.
func axisDefs(explicit []intent.BandDef, referenced []string, axis string) []intent.BandDef {
	if len(explicit) > 0 {
		return explicit
	}
	if len(referenced) > 0 {
		defs := make([]intent.BandDef, len(referenced))
		for i, id := range referenced {
			defs[i] = intent.BandDef{ID: id}
		}
		return defs
	}
	return []intent.BandDef{{ID: axis + "-main"}}
}

// splitExtent assigns each def an interval of [lo,hi]. Defs with explicit
// widths take them; the remaining extent is divided evenly among the rest.
func splitExtent(defs []intent.BandDef, lo, hi float64) []interval {
	extent := hi - lo
	fixed := 0.0
	flexible := 0
	for _, d := range defs {
		if d.Width > 0 {
			fixed += d.Width
		} else {
			flexible++
		}
	}
	remaining := extent - fixed
	if remaining < 0 {
		remaining = 0
	}
	share := 0.0
	if flexible > 0 {
		share = remaining / float64(flexible)
	}

	out := make([]interval, 0, len(defs))
	cursor := lo
	for _, d := range defs {
		w := d.Width
		if w <= 0 {
			w = share
		}
		out = append(out, interval{id: d.ID, lo: cursor, hi: cursor + w})
		cursor += w
	}
	// Absorb float drift into the last interval so the axis is fully covered.
	if len(out) > 0 && fixed == 0 {
		out[len(out)-1].hi = hi
	}
	return out
}

func collectRefs(rooms []intent.RoomSpec, pick func(intent.RoomSpec) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rm := range rooms {
		for _, id := range pick(rm) {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
