package component

type GoalTag struct{}

var GoalTagComponent = NewComponent[GoalTag]()

type BarrierTag struct{}

var BarrierTagComponent = NewComponent[BarrierTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()
