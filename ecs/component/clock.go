package component

// Clock is the shared simulation clock. Time only advances while play runs.
type Clock struct {
	Time float64
	Tick uint64
}

var ClockComponent = NewComponent[Clock]()
