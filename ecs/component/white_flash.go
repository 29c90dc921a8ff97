package component

// WhiteFlash blinks a damaged sprite white, toggling every Interval ticks
// until Ticks runs out.
type WhiteFlash struct {
	Ticks    int
	Interval int
	Timer    int
	On       bool
}

// Advance moves the blink one tick forward and reports whether it is over.
func (f *WhiteFlash) Advance() bool {
	f.Timer++
	if f.Timer >= max(f.Interval, 1) {
		f.Timer = 0
		f.On = !f.On
	}
	f.Ticks--
	return f.Ticks <= 0
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
