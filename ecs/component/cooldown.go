package component

// Cooldown counts Remaining seconds down to zero. The boost ability is ready
// when Remaining is zero.
type Cooldown struct {
	Remaining float64
	Duration  float64
}

func (c *Cooldown) Ready() bool {
	return c == nil || c.Remaining <= 0
}

var CooldownComponent = NewComponent[Cooldown]()
