package component

// Facing is the direction the player sprite faces.
type Facing int

const (
	FacingFront Facing = iota
	FacingLeft
	FacingRight
)

type PlayerAnim int

const (
	PlayerIdle PlayerAnim = iota
	PlayerWalk
	PlayerFalling
)

func (a PlayerAnim) String() string {
	switch a {
	case PlayerWalk:
		return "walk"
	case PlayerFalling:
		return "falling"
	}
	return "idle"
}

type Player struct {
	MaxHealth int
	Health    int

	WalkSpeed   float64
	AirAccel    float64
	MaxSpeed    float64
	JumpImpulse float64

	// GroundCount is the number of solid shapes touching the feet sensor.
	GroundCount int
	Facing      Facing
	Anim        PlayerAnim

	HPTexture    string
	BoostTexture string

	// Hazards holds hazard entities currently overlapping the player body.
	Hazards ContactSet
	// Platforms holds moving platforms currently under the feet sensor.
	Platforms ContactSet

	IFrameTime float64
}

// Grounded reports whether any solid is under the feet sensor.
func (p *Player) Grounded() bool {
	return p.GroundCount > 0
}

var PlayerComponent = NewComponent[Player]()
