package component

import "gonum.org/v1/gonum/spatial/r2"

type BirdPhase int

const (
	BirdPatrol BirdPhase = iota
	BirdTelegraph
	BirdAttack
	BirdReturn
)

func (p BirdPhase) String() string {
	switch p {
	case BirdTelegraph:
		return "telegraph"
	case BirdAttack:
		return "attack"
	case BirdReturn:
		return "return"
	}
	return "patrol"
}

// Bird patrols Path in a loop and dives at the player when it sees them.
type Bird struct {
	Color string
	Path  []r2.Vec
	// Target indexes the waypoint the bird is heading for.
	Target int

	Speed         float64
	AttackSpeed   float64
	SensorRadius  float64
	TelegraphTime float64

	Phase BirdPhase
	Timer float64

	// Attack vector frozen at commit time.
	AttackDir      r2.Vec
	AttackDistance float64
	Traveled       float64

	FacingRight    bool
	WarningTexture string
	// Nest is the spawning nest, zero for authored birds.
	Nest uint64
}

var BirdComponent = NewComponent[Bird]()
