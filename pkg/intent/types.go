package intent

import "github.com/jfromaniello/planscript/pkg/geo"

// Intent is the top-level solve request: a footprint, the rooms wanted
// inside it, and the constraints the result must honor. Values are assumed
// unit-normalized (meters) by the caller.
type Intent struct {
	IntentVersion string        `yaml:"intent_version" json:"intent_version"`
	Plan          PlanDef       `yaml:"plan" json:"plan"`
	Footprint     FootprintDef  `yaml:"footprint" json:"footprint"`
	Bands         []BandDef     `yaml:"bands" json:"bands"`
	Depths        []BandDef     `yaml:"depths" json:"depths"`
	Defaults      Defaults      `yaml:"defaults" json:"defaults"`
	Constraints   Constraints   `yaml:"constraints" json:"constraints"`
	AccessRules   []AccessRule  `yaml:"access_rules" json:"access_rules"`
	Rooms         []RoomSpec    `yaml:"rooms" json:"rooms"`
}

// PlanDef carries plan-level metadata and the two designated edges.
type PlanDef struct {
	Name       string   `yaml:"name" json:"name"`
	FrontEdge  geo.Edge `yaml:"front_edge" json:"front_edge"`
	GardenEdge geo.Edge `yaml:"garden_edge" json:"garden_edge"`
}

// FootprintDef is either an axis-aligned rect or an ordered polygon
// (non-convex L/U forms). Exactly one of the two should be set.
type FootprintDef struct {
	Rect    *RectDef     `yaml:"rect" json:"rect,omitempty"`
	Polygon [][2]float64 `yaml:"polygon" json:"polygon,omitempty"`
}

// RectDef is the YAML shape of an axis-aligned rectangle.
type RectDef struct {
	X1 float64 `yaml:"x1" json:"x1"`
	Y1 float64 `yaml:"y1" json:"y1"`
	X2 float64 `yaml:"x2" json:"x2"`
	Y2 float64 `yaml:"y2" json:"y2"`
}

// IsPolygon reports whether the footprint is polygonal.
func (f FootprintDef) IsPolygon() bool {
	return len(f.Polygon) >= 3
}

// Bounds returns the axis-aligned bounding rect of the footprint.
func (f FootprintDef) Bounds() geo.Rect {
	if f.IsPolygon() {
		return f.ToPolygon().BoundingBox()
	}
	if f.Rect == nil {
		return geo.Rect{}
	}
	return geo.R(f.Rect.X1, f.Rect.Y1, f.Rect.X2, f.Rect.Y2)
}

// ToPolygon returns the footprint as a polygon (rect footprints are
// converted).
func (f FootprintDef) ToPolygon() geo.Polygon {
	if f.IsPolygon() {
		pts := make([]geo.Point2D, len(f.Polygon))
		for i, v := range f.Polygon {
			pts[i] = geo.Pt(v[0], v[1])
		}
		return geo.Polygon{Vertices: pts}.EnsureCCW()
	}
	return f.Bounds().ToPolygon()
}

// ContainsRect reports whether r lies fully inside the footprint.
func (f FootprintDef) ContainsRect(r geo.Rect) bool {
	if f.IsPolygon() {
		return f.ToPolygon().ContainsRect(r)
	}
	return f.Bounds().ContainsRect(r)
}

// BandDef names an interval along one of the footprint's principal axes.
// Width 0 means "split the remaining extent evenly".
type BandDef struct {
	ID    string  `yaml:"id" json:"id"`
	Width float64 `yaml:"width" json:"width"`
}

// Defaults carries solver-wide sizing defaults. Zero fields fall back to
// the built-in values via the accessor methods on Intent.
type Defaults struct {
	DoorWidth     float64 `yaml:"door_width" json:"door_width"`
	WindowWidth   float64 `yaml:"window_width" json:"window_width"`
	CorridorWidth float64 `yaml:"corridor_width" json:"corridor_width"`
	SillHeight    float64 `yaml:"sill_height" json:"sill_height"`
	Variants      int     `yaml:"variants" json:"variants"`
}

// Constraints separates the fatal checks from the scored preferences.
type Constraints struct {
	Hard HardConstraints `yaml:"hard" json:"hard"`
	Soft SoftWeights     `yaml:"soft" json:"soft"`
}

// HardConstraints are tri-state flags: nil means enabled.
type HardConstraints struct {
	NoOverlap       *bool `yaml:"no_overlap" json:"no_overlap,omitempty"`
	InsideFootprint *bool `yaml:"inside_footprint" json:"inside_footprint,omitempty"`
	AllReachable    *bool `yaml:"all_reachable" json:"all_reachable,omitempty"`
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// NoOverlapEnabled reports whether pairwise rect overlap is fatal.
func (h HardConstraints) NoOverlapEnabled() bool { return enabled(h.NoOverlap) }

// InsideFootprintEnabled reports whether out-of-footprint rects are fatal.
func (h HardConstraints) InsideFootprintEnabled() bool { return enabled(h.InsideFootprint) }

// AllReachableEnabled reports whether unreachable rooms are fatal.
func (h HardConstraints) AllReachableEnabled() bool { return enabled(h.AllReachable) }

// SoftWeights are the scoring weights. Zero values fall back to the
// built-in split (adjacency 0.4, aspect 0.2, edge 0.2, efficiency 0.2).
type SoftWeights struct {
	Adjacency  float64 `yaml:"adjacency" json:"adjacency"`
	Aspect     float64 `yaml:"aspect" json:"aspect"`
	Edge       float64 `yaml:"edge" json:"edge"`
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`
}

// AccessRule restricts which doors may exist for a room type or category.
// Empty allow-lists mean "no restriction". Entries in the lists are types
// or categories; "circulation" also matches is_circulation rooms.
type AccessRule struct {
	Room           string   `yaml:"room" json:"room"`
	AccessibleFrom []string `yaml:"accessible_from" json:"accessible_from,omitempty"`
	CanLeadTo      []string `yaml:"can_lead_to" json:"can_lead_to,omitempty"`
}

// RoomSpec describes one desired room.
type RoomSpec struct {
	ID                string   `yaml:"id" json:"id"`
	Type              RoomType `yaml:"type" json:"type"`
	Label             string   `yaml:"label" json:"label"`
	MinArea           float64  `yaml:"min_area" json:"min_area"`
	MaxArea           float64  `yaml:"max_area" json:"max_area"`
	MaxAspect         float64  `yaml:"max_aspect" json:"max_aspect"`
	MustTouchEdge     geo.Edge `yaml:"must_touch_edge" json:"must_touch_edge,omitempty"`
	MustTouchExterior bool     `yaml:"must_touch_exterior" json:"must_touch_exterior"`
	PreferredBands    []string `yaml:"preferred_bands" json:"preferred_bands,omitempty"`
	PreferredDepths   []string `yaml:"preferred_depths" json:"preferred_depths,omitempty"`
	AdjacentTo        []string `yaml:"adjacent_to" json:"adjacent_to,omitempty"`
	NeedsAccessFrom   []string `yaml:"needs_access_from" json:"needs_access_from,omitempty"`
	IsCirculation     bool     `yaml:"is_circulation" json:"is_circulation"`
	IsEnsuite         *bool    `yaml:"is_ensuite" json:"is_ensuite,omitempty"`
	HasExteriorDoor   bool     `yaml:"has_exterior_door" json:"has_exterior_door"`
}

// Circulation reports whether the room acts as circulation, either by
// explicit flag or by type.
func (r RoomSpec) Circulation() bool {
	return r.IsCirculation || r.Type.IsCirculationType()
}

// DisplayLabel returns the label, falling back to the id.
func (r RoomSpec) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.ID
}

// Room returns the room spec with the given id, or nil if not found.
func (i *Intent) Room(id string) *RoomSpec {
	for idx := range i.Rooms {
		if i.Rooms[idx].ID == id {
			return &i.Rooms[idx]
		}
	}
	return nil
}

// HasCirculation reports whether any declared room acts as circulation.
func (i *Intent) HasCirculation() bool {
	for _, r := range i.Rooms {
		if r.Circulation() {
			return true
		}
	}
	return false
}

// FrontEdge returns the declared front edge, defaulting to south.
func (i *Intent) FrontEdge() geo.Edge {
	if i.Plan.FrontEdge.Valid() {
		return i.Plan.FrontEdge
	}
	return geo.EdgeSouth
}

// GardenEdge returns the declared garden edge, defaulting to the edge
// opposite the front.
func (i *Intent) GardenEdge() geo.Edge {
	if i.Plan.GardenEdge.Valid() {
		return i.Plan.GardenEdge
	}
	return i.FrontEdge().Opposite()
}

// Built-in sizing defaults, used when the intent leaves them unset.
const (
	DefaultDoorWidth     = 0.9
	DefaultWindowWidth   = 1.2
	DefaultCorridorWidth = 1.2
	DefaultSillHeight    = 0.9
	DefaultVariants      = 4
)

// DoorWidth returns the configured door width.
func (i *Intent) DoorWidth() float64 {
	if i.Defaults.DoorWidth > 0 {
		return i.Defaults.DoorWidth
	}
	return DefaultDoorWidth
}

// WindowWidth returns the configured window width.
func (i *Intent) WindowWidth() float64 {
	if i.Defaults.WindowWidth > 0 {
		return i.Defaults.WindowWidth
	}
	return DefaultWindowWidth
}

// CorridorWidth returns the configured minimum corridor width.
func (i *Intent) CorridorWidth() float64 {
	if i.Defaults.CorridorWidth > 0 {
		return i.Defaults.CorridorWidth
	}
	return DefaultCorridorWidth
}

// SillHeight returns the configured window sill height.
func (i *Intent) SillHeight() float64 {
	if i.Defaults.SillHeight > 0 {
		return i.Defaults.SillHeight
	}
	return DefaultSillHeight
}

// Variants returns the number of placement variants to attempt.
func (i *Intent) Variants() int {
	if i.Defaults.Variants > 0 {
		return i.Defaults.Variants
	}
	return DefaultVariants
}
