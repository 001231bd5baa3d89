package score

import "github.com/jfromaniello/planscript/pkg/intent"

// Default weights for the score components. Intents can override them via
// constraints.soft; zero weights fall back to these.
const (
	DefaultAdjacencyWeight  = 0.4
	DefaultAspectWeight     = 0.2
	DefaultEdgeWeight       = 0.2
	DefaultEfficiencyWeight = 0.2
)

// aspectTolerance is how far (in ratio units) a room's aspect may drift
// from its ideal before the per-room aspect score reaches zero.
const aspectTolerance = 1.5

// idealAspect is the target long/short ratio per room type. Rooms absent
// from the table use defaultIdealAspect. Corridors are excluded from the
// aspect component entirely; they are long by nature.
var idealAspect = map[intent.RoomType]float64{
	intent.RoomLiving:  1.4,
	intent.RoomDining:  1.3,
	intent.RoomBedroom: 1.3,
	intent.RoomKitchen: 1.5,
	intent.RoomBath:    1.5,
	intent.RoomEnsuite: 1.8,
	intent.RoomOffice:  1.2,
	intent.RoomFoyer:   1.2,
	intent.RoomLaundry: 1.5,
	intent.RoomCloset:  2.0,
	intent.RoomStorage: 1.5,
}

const defaultIdealAspect = 1.4

func idealAspectFor(t intent.RoomType) float64 {
	if v, ok := idealAspect[t]; ok {
		return v
	}
	return defaultIdealAspect
}
