package solver

import (
	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/layout"
	"github.com/jfromaniello/planscript/pkg/opening"
)

// Trace is an optional inspection sink the solver writes to as it works:
// frame cells, per-variant ordering, placement candidates, door decisions
// and the final reachability graph. Implementations must not mutate the
// values they receive. The zero-value solver uses NoopTrace.
type Trace interface {
	OnFrame(f *frame.Frame)
	OnOrdering(variant int, order []layout.OrderedRoom)
	OnPlacement(variant int, roomID string, cands []layout.Candidate)
	OnDoorDecision(d opening.DoorDecision)
	OnReachability(entry string, graph map[string][]string, unreachable []string)
}

// NoopTrace discards everything.
type NoopTrace struct{}

func (NoopTrace) OnFrame(*frame.Frame)                               {}
func (NoopTrace) OnOrdering(int, []layout.OrderedRoom)               {}
func (NoopTrace) OnPlacement(int, string, []layout.Candidate)        {}
func (NoopTrace) OnDoorDecision(opening.DoorDecision)                {}
func (NoopTrace) OnReachability(string, map[string][]string, []string) {}

// Recorder collects the full trace in memory, for debugging and the dev
// server's inspection endpoints.
type Recorder struct {
	Frame      *frame.Frame
	Orderings  map[int][]layout.OrderedRoom
	Placements map[int]map[string][]layout.Candidate
	Doors      []opening.DoorDecision
	Entry      string
	Graph      map[string][]string
	Unreached  []string
}

// NewRecorder returns an empty recording trace.
func NewRecorder() *Recorder {
	return &Recorder{
		Orderings:  make(map[int][]layout.OrderedRoom),
		Placements: make(map[int]map[string][]layout.Candidate),
	}
}

func (r *Recorder) OnFrame(f *frame.Frame) { r.Frame = f }

func (r *Recorder) OnOrdering(variant int, order []layout.OrderedRoom) {
	r.Orderings[variant] = order
}

func (r *Recorder) OnPlacement(variant int, roomID string, cands []layout.Candidate) {
	if r.Placements[variant] == nil {
		r.Placements[variant] = make(map[string][]layout.Candidate)
	}
	r.Placements[variant][roomID] = cands
}

func (r *Recorder) OnDoorDecision(d opening.DoorDecision) {
	r.Doors = append(r.Doors, d)
}

func (r *Recorder) OnReachability(entry string, graph map[string][]string, unreachable []string) {
	r.Entry = entry
	r.Graph = graph
	r.Unreached = unreachable
}
