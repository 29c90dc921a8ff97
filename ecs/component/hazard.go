package component

type HazardKind int

const (
	HazardStatic HazardKind = iota
	HazardLightning
	HazardBird
	HazardNest
)

func (k HazardKind) String() string {
	switch k {
	case HazardLightning:
		return "lightning"
	case HazardBird:
		return "bird"
	case HazardNest:
		return "nest"
	}
	return "static"
}

// Hazard damages the player while overlapping and Active.
type Hazard struct {
	Kind      HazardKind
	Damage    int
	Knockback float64
	Active    bool
}

var HazardComponent = NewComponent[Hazard]()
