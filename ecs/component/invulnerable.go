package component

// Invulnerable marks an entity as immune to damage for Remaining seconds.
// The timer system removes it when Remaining reaches zero.
type Invulnerable struct {
	Remaining float64
}

var InvulnerableComponent = NewComponent[Invulnerable]()
