package layout

import (
	"fmt"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/validation"
)

// ValidatePlan runs the spatial hard constraints over a placed plan:
// pairwise room overlap and footprint containment. Reachability is checked
// separately once doors exist. Disabled constraints are skipped.
func ValidatePlan(st *PlanState, f *frame.Frame, hard intent.HardConstraints) *validation.Report {
	report := validation.NewReport()

	if hard.NoOverlapEnabled() {
		for i, idA := range st.Order {
			for _, idB := range st.Order[i+1:] {
				a, b := st.Rooms[idA], st.Rooms[idB]
				if !a.Rect.Overlaps(b.Rect) {
					continue
				}
				inter := a.Rect.Intersection(b.Rect)
				report.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("rooms '%s' and '%s' overlap by %.2f m²", idA, idB, inter.Area()),
					Path:        fmt.Sprintf("rooms.%s", idA),
					ActualValue: inter,
					Expected:    "rooms share walls but no interior area",
				})
			}
		}
	}

	if hard.InsideFootprintEnabled() {
		for _, id := range st.Order {
			room := st.Rooms[id]
			if f.ContainsRect(room.Rect) {
				continue
			}
			report.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("room '%s' extends outside the footprint", id),
				Path:        fmt.Sprintf("rooms.%s", id),
				ActualValue: room.Rect,
				Expected:    "room fully inside the footprint",
			})
		}
	}

	return report
}
