package component

// Lightning pulses on for OnTime then off for OffTime, shifted by Phase.
type Lightning struct {
	OnTime  float64
	OffTime float64
	Phase   float64
}

var LightningComponent = NewComponent[Lightning]()
