// Package layout holds the mutable per-variant plan state and the
// placement phases that shape it: room ordering, greedy placement, swap
// repair, gap absorption, and corridor synthesis.
package layout

import (
	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/geo"
	"github.com/jfromaniello/planscript/pkg/intent"
)

// CorridorID is the reserved room id used for synthesized circulation.
const CorridorID = "corridor"

// PlacedRoom is one room fixed to a rectangle. Owned exclusively by its
// PlanState; lookups go through the state by id, never by pointer.
type PlacedRoom struct {
	ID      string          `json:"id"`
	Rect    geo.Rect        `json:"rect"`
	BandID  string          `json:"band_id,omitempty"`
	DepthID string          `json:"depth_id,omitempty"`
	Label   string          `json:"label,omitempty"`
	Type    intent.RoomType `json:"type"`
}

// OpeningType distinguishes doors from windows.
type OpeningType string

const (
	OpeningDoor   OpeningType = "door"
	OpeningWindow OpeningType = "window"
)

// PlacedOpening is a door or window attached to a placed room. Interior
// doors carry ConnectsTo; exterior doors and windows carry Edge.
type PlacedOpening struct {
	Type       OpeningType `json:"type"`
	Room       string      `json:"room"`
	ConnectsTo string      `json:"connects_to,omitempty"`
	Edge       geo.Edge    `json:"edge,omitempty"`
	Position   float64     `json:"position"` // normalized 0-1 along the wall
	Width      float64     `json:"width"`
	IsExterior bool        `json:"is_exterior"`
	Swing      string      `json:"swing,omitempty"` // doors only
	Sill       float64     `json:"sill,omitempty"`  // windows only
}

// FailReason classifies why a room could not be placed.
type FailReason string

const (
	FailNoCandidates       FailReason = "no_candidate_cells"
	FailInsufficientArea   FailReason = "insufficient_area"
	FailFootprintExhausted FailReason = "footprint_exhausted"
)

// UnplacedRoom records a placement failure with its structured reason.
type UnplacedRoom struct {
	ID     string     `json:"id"`
	Reason FailReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// PlanState is the mutable working set of one placement variant. Exactly
// one exists per variant attempt; discarded variants are dropped wholesale.
type PlanState struct {
	Order    []string               `json:"order"`
	Rooms    map[string]*PlacedRoom `json:"rooms"`
	Unplaced []UnplacedRoom         `json:"unplaced,omitempty"`
	Openings []PlacedOpening        `json:"openings"`
	Corridor *geo.Polygon           `json:"corridor,omitempty"`
	Failure  string                 `json:"failure,omitempty"`

	free []freeRect
}

// freeRect is an unoccupied region of the footprint, annotated with the
// band/depth of the cell it was carved from.
type freeRect struct {
	rect    geo.Rect
	bandID  string
	depthID string
}

// NewPlanState creates a state whose free pool is the frame's inside cells.
func NewPlanState(f *frame.Frame) *PlanState {
	st := &PlanState{
		Rooms:    make(map[string]*PlacedRoom),
		Openings: []PlacedOpening{},
	}
	for _, c := range f.Cells {
		if !c.InsideFootprint {
			continue
		}
		st.free = append(st.free, freeRect{rect: c.Rect, bandID: c.BandID, depthID: c.DepthID})
	}
	return st
}

// Place adds a room to the state, preserving insertion order.
func (s *PlanState) Place(pr *PlacedRoom) {
	if _, ok := s.Rooms[pr.ID]; !ok {
		s.Order = append(s.Order, pr.ID)
	}
	s.Rooms[pr.ID] = pr
}

// Room returns the placed room with the given id, or nil.
func (s *PlanState) Room(id string) *PlacedRoom {
	return s.Rooms[id]
}

// Placed returns the placed rooms in placement order.
func (s *PlanState) Placed() []*PlacedRoom {
	out := make([]*PlacedRoom, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, s.Rooms[id])
	}
	return out
}

// FreeRects returns copies of the current free pool rectangles.
func (s *PlanState) FreeRects() []geo.Rect {
	out := make([]geo.Rect, len(s.free))
	for i, fr := range s.free {
		out[i] = fr.rect
	}
	return out
}

// AddOpening appends an opening to the state.
func (s *PlanState) AddOpening(op PlacedOpening) {
	s.Openings = append(s.Openings, op)
}

// InteriorDoors returns the interior doors (doors with a ConnectsTo room).
func (s *PlanState) InteriorDoors() []PlacedOpening {
	var out []PlacedOpening
	for _, op := range s.Openings {
		if op.Type == OpeningDoor && op.ConnectsTo != "" {
			out = append(out, op)
		}
	}
	return out
}

// DoorCount returns how many interior doors touch the given room.
func (s *PlanState) DoorCount(roomID string) int {
	n := 0
	for _, op := range s.Openings {
		if op.Type != OpeningDoor || op.ConnectsTo == "" {
			continue
		}
		if op.Room == roomID || op.ConnectsTo == roomID {
			n++
		}
	}
	return n
}

// RoomSpecFor resolves the intent spec for a placed room id. The
// synthesized corridor has no declared spec, so it gets an implicit
// circulation one.
func RoomSpecFor(in *intent.Intent, id string) intent.RoomSpec {
	if rs := in.Room(id); rs != nil {
		return *rs
	}
	return intent.RoomSpec{
		ID:            id,
		Type:          intent.RoomCorridor,
		IsCirculation: true,
	}
}
