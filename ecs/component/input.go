package component

// Input stores per-tick input state for an entity.
type Input struct {
	MoveX          float64
	Jump           bool
	JumpPressed    bool
	ToggleUmbrella bool
	Rotate         float64
	Boost          bool
}

var InputComponent = NewComponent[Input]()
