package component

// AnimationClip is a horizontal filmstrip of equally sized frames. When
// FrameKeys is set each frame is its own texture and Strip is unused.
type AnimationClip struct {
	Strip     string
	FrameKeys []string
	Frames    int
	FrameTime float64
	Loop      bool
}

// Texture returns the texture key and filmstrip column for frame.
func (c AnimationClip) Texture(frame int) (string, int) {
	if len(c.FrameKeys) > 0 {
		return c.FrameKeys[frame%len(c.FrameKeys)], 0
	}
	return c.Strip, frame
}

type Animation struct {
	Clips   map[string]AnimationClip
	Current string
	Frame   int
	Elapsed float64
	Playing bool
}

// Play switches to clip name, restarting it only when it changes.
func (a *Animation) Play(name string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Clips[name]; !ok {
		return false
	}
	if a.Current == name && a.Playing {
		return true
	}
	a.Current = name
	a.Frame = 0
	a.Elapsed = 0
	a.Playing = true
	return true
}

func (a *Animation) Clip() (AnimationClip, bool) {
	if a == nil {
		return AnimationClip{}, false
	}
	c, ok := a.Clips[a.Current]
	return c, ok
}

var AnimationComponent = NewComponent[Animation]()
