package intent

// RoomType is the closed set of room types the solver understands.
type RoomType string

const (
	RoomBedroom  RoomType = "bedroom"
	RoomBath     RoomType = "bath"
	RoomEnsuite  RoomType = "ensuite"
	RoomKitchen  RoomType = "kitchen"
	RoomLiving   RoomType = "living"
	RoomDining   RoomType = "dining"
	RoomHall     RoomType = "hall"
	RoomCorridor RoomType = "corridor"
	RoomFoyer    RoomType = "foyer"
	RoomCloset   RoomType = "closet"
	RoomLaundry  RoomType = "laundry"
	RoomOffice   RoomType = "office"
	RoomStorage  RoomType = "storage"
)

// RoomTypes lists all known room types in a fixed order.
var RoomTypes = []RoomType{
	RoomBedroom, RoomBath, RoomEnsuite, RoomKitchen, RoomLiving,
	RoomDining, RoomHall, RoomCorridor, RoomFoyer, RoomCloset,
	RoomLaundry, RoomOffice, RoomStorage,
}

// Valid reports whether t is a known room type.
func (t RoomType) Valid() bool {
	for _, rt := range RoomTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Category groups room types for access-rule and architectural-rule
// matching. "circulation" is special: it also matches any room flagged
// is_circulation regardless of type.
type Category string

const (
	CategorySleeping    Category = "sleeping"
	CategoryPrivate     Category = "private"
	CategoryClean       Category = "clean"
	CategoryCirculation Category = "circulation"
	CategoryService     Category = "service"
	CategorySocial      Category = "social"
)

// CategoryOf returns the category a room type belongs to.
func CategoryOf(t RoomType) Category {
	switch t {
	case RoomBedroom:
		return CategorySleeping
	case RoomBath, RoomEnsuite, RoomCloset:
		return CategoryPrivate
	case RoomKitchen, RoomDining:
		return CategoryClean
	case RoomHall, RoomCorridor, RoomFoyer:
		return CategoryCirculation
	case RoomLaundry, RoomStorage:
		return CategoryService
	}
	return CategorySocial
}

// IsCirculationType reports whether the type itself denotes circulation.
func (t RoomType) IsCirculationType() bool {
	return CategoryOf(t) == CategoryCirculation
}

// SingleDoor reports whether rooms of this type are restricted to a single
// interior door.
func (t RoomType) SingleDoor() bool {
	switch t {
	case RoomBath, RoomEnsuite, RoomCloset, RoomLaundry:
		return true
	}
	return false
}

// WantsWindow reports whether rooms of this type receive a full window on
// their longest exterior edge.
func (t RoomType) WantsWindow() bool {
	switch t {
	case RoomLiving, RoomBedroom, RoomOffice, RoomDining:
		return true
	}
	return false
}

// WantsHalfWindow reports whether rooms of this type receive a half-width
// window when an exterior edge exists.
func (t RoomType) WantsHalfWindow() bool {
	return t == RoomBath || t == RoomEnsuite
}
