// Package reach resolves the plan's entry room and checks that every
// placed room can be reached from it through interior doors.
package reach

import (
	"sort"

	"github.com/jfromaniello/planscript/pkg/frame"
	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/layout"
)

// ResolveEntry picks the room the plan is entered through: the room
// flagged has_exterior_door, else the foyer, else the first circulation
// room touching the front edge, else any room touching the front edge.
// Empty when no placed room qualifies.
func ResolveEntry(st *layout.PlanState, in *intent.Intent, f *frame.Frame) string {
	for _, rs := range in.Rooms {
		if rs.HasExteriorDoor && st.Room(rs.ID) != nil {
			return rs.ID
		}
	}
	for _, rs := range in.Rooms {
		if rs.Type == intent.RoomFoyer && st.Room(rs.ID) != nil {
			return rs.ID
		}
	}

	front := in.FrontEdge()
	for _, id := range st.Order {
		rs := layout.RoomSpecFor(in, id)
		if rs.Circulation() && st.Rooms[id].Rect.TouchesEdge(f.Bounds, front) {
			return id
		}
	}
	for _, id := range st.Order {
		if st.Rooms[id].Rect.TouchesEdge(f.Bounds, front) {
			return id
		}
	}
	return ""
}

// BuildDoorGraph returns the undirected interior-door graph as sorted
// neighbor lists. Exterior doors contribute no edges.
func BuildDoorGraph(st *layout.PlanState) map[string][]string {
	graph := make(map[string][]string, len(st.Order))
	for _, id := range st.Order {
		graph[id] = nil
	}
	for _, d := range st.InteriorDoors() {
		graph[d.Room] = append(graph[d.Room], d.ConnectsTo)
		graph[d.ConnectsTo] = append(graph[d.ConnectsTo], d.Room)
	}
	for id := range graph {
		sort.Strings(graph[id])
	}
	return graph
}

// Unreachable runs BFS from the entry room over the door graph and
// returns the placed room ids the search never sees, sorted. An empty
// entry leaves every room unreachable.
func Unreachable(st *layout.PlanState, entry string) []string {
	visited := make(map[string]bool, len(st.Order))

	if st.Room(entry) != nil {
		graph := BuildDoorGraph(st)
		queue := []string{entry}
		visited[entry] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range graph[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	var out []string
	for _, id := range st.Order {
		if !visited[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
