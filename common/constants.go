package common

// Simulation runs one fixed step per rendered frame.
const (
	TicksPerSecond = 60
	FixedDelta     = 1.0 / TicksPerSecond

	DefaultGravity = -4.9

	// StandardZoom is the camera zoom the canvas returns to whenever Play exits.
	StandardZoom = 1.0
	MinZoom      = 0.6
)
