package opening

import (
	"fmt"

	"github.com/jfromaniello/planscript/pkg/intent"
)

// BathKind classifies a bathroom for door purposes.
type BathKind string

const (
	BathEnsuite BathKind = "ensuite"
	BathShared  BathKind = "shared"
	notBath     BathKind = ""
)

// classifyBath resolves a bathroom's kind. An explicit is_ensuite flag
// wins; otherwise a bath adjacent to exactly one bedroom and no
// circulation is treated as that bedroom's ensuite.
func classifyBath(in *intent.Intent, rs intent.RoomSpec) BathKind {
	if rs.Type != intent.RoomBath && rs.Type != intent.RoomEnsuite {
		return notBath
	}
	if rs.IsEnsuite != nil {
		if *rs.IsEnsuite {
			return BathEnsuite
		}
		return BathShared
	}
	if rs.Type == intent.RoomEnsuite {
		return BathEnsuite
	}

	bedrooms := 0
	for _, id := range rs.AdjacentTo {
		target := in.Room(id)
		if target == nil {
			continue
		}
		if target.Circulation() {
			return BathShared
		}
		if target.Type == intent.RoomBedroom {
			bedrooms++
		}
	}
	if bedrooms == 1 {
		return BathEnsuite
	}
	return BathShared
}

// ensuiteOwner resolves the unique bedroom in the bath's adjacency list.
// Empty when the owner is ambiguous or absent.
func ensuiteOwner(in *intent.Intent, rs intent.RoomSpec) string {
	owner := ""
	for _, id := range rs.AdjacentTo {
		target := in.Room(id)
		if target == nil || target.Type != intent.RoomBedroom {
			continue
		}
		if owner != "" {
			return ""
		}
		owner = id
	}
	return owner
}

// matchKey reports whether an access-rule key applies to a room: exact
// type match first, then category, with "circulation" also covering the
// is_circulation flag.
func matchKey(key string, rs intent.RoomSpec) bool {
	if key == string(rs.Type) {
		return true
	}
	if key == string(intent.CategoryOf(rs.Type)) {
		return true
	}
	return key == string(intent.CategoryCirculation) && rs.Circulation()
}

// ruleFor finds the access rule governing a room, preferring an exact
// type-keyed rule over a category-keyed one.
func ruleFor(in *intent.Intent, rs intent.RoomSpec) *intent.AccessRule {
	for i := range in.AccessRules {
		if in.AccessRules[i].Room == string(rs.Type) {
			return &in.AccessRules[i]
		}
	}
	for i := range in.AccessRules {
		if matchKey(in.AccessRules[i].Room, rs) {
			return &in.AccessRules[i]
		}
	}
	return nil
}

// listAllows reports whether an allow-list admits the room. Empty lists
// are unrestricted.
func listAllows(list []string, rs intent.RoomSpec) bool {
	if len(list) == 0 {
		return true
	}
	for _, key := range list {
		if matchKey(key, rs) {
			return true
		}
	}
	return false
}

// accessAllowed checks the declared access rules for one direction of
// travel, src into dst.
func accessAllowed(in *intent.Intent, src, dst intent.RoomSpec) (bool, string) {
	if rule := ruleFor(in, dst); rule != nil && !listAllows(rule.AccessibleFrom, src) {
		return false, fmt.Sprintf("'%s' is not accessible from '%s'", dst.ID, src.ID)
	}
	if rule := ruleFor(in, src); rule != nil && !listAllows(rule.CanLeadTo, dst) {
		return false, fmt.Sprintf("'%s' cannot lead to '%s'", src.ID, dst.ID)
	}
	return true, ""
}

// architecturalAllowed enforces the built-in room-relationship rules for
// one direction, x against y. Callers evaluate both orderings; the rules
// are deliberately asymmetric.
func architecturalAllowed(in *intent.Intent, x, y intent.RoomSpec) (bool, string) {
	switch classifyBath(in, x) {
	case BathShared:
		if !y.Circulation() {
			return false, fmt.Sprintf("shared bathroom '%s' connects only to circulation", x.ID)
		}
	case BathEnsuite:
		if owner := ensuiteOwner(in, x); y.ID != owner {
			return false, fmt.Sprintf("ensuite '%s' connects only to its bedroom", x.ID)
		}
	}

	if x.Type == intent.RoomBedroom {
		if y.Type == intent.RoomBedroom {
			return false, fmt.Sprintf("bedrooms '%s' and '%s' may not connect directly", x.ID, y.ID)
		}
		if intent.CategoryOf(y.Type) == intent.CategoryPrivate && !ownsPrivateRoom(in, x, y) {
			return false, fmt.Sprintf("'%s' is not '%s's own private room", y.ID, x.ID)
		}
	}

	if intent.CategoryOf(x.Type) == intent.CategoryClean &&
		intent.CategoryOf(y.Type) == intent.CategoryPrivate {
		return false, fmt.Sprintf("'%s' may not open into private room '%s'", x.ID, y.ID)
	}

	return true, ""
}

// ownsPrivateRoom reports whether the private room y belongs to bedroom x:
// an ensuite owned by x, or a closet declared adjacent to x.
func ownsPrivateRoom(in *intent.Intent, x, y intent.RoomSpec) bool {
	if classifyBath(in, y) == BathEnsuite {
		return ensuiteOwner(in, y) == x.ID
	}
	if y.Type == intent.RoomCloset {
		for _, id := range y.AdjacentTo {
			if id == x.ID {
				return true
			}
		}
	}
	return false
}

// DoorAllowed runs the full rule set over an adjacent pair, both
// directions of the access rules and both orderings of the architectural
// rules. The reason names the first rule that blocked the pair.
func DoorAllowed(in *intent.Intent, a, b intent.RoomSpec) (bool, string) {
	if ok, reason := accessAllowed(in, a, b); !ok {
		return false, reason
	}
	if ok, reason := accessAllowed(in, b, a); !ok {
		return false, reason
	}
	if ok, reason := architecturalAllowed(in, a, b); !ok {
		return false, reason
	}
	if ok, reason := architecturalAllowed(in, b, a); !ok {
		return false, reason
	}
	return true, ""
}
