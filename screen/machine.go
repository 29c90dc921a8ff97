package screen

import (
	"github.com/milk9111/gustfall/canvas"
	"github.com/milk9111/gustfall/common"
	"go.uber.org/zap"
)

type transition struct {
	next Mode
	// reset starts a fresh play session before entering next.
	reset bool
	// background hands the frozen play session to the next screen.
	background bool
}

var transitions = map[Mode]map[Exit]transition{
	ModeLoading: {
		ExitAssetsReady: {next: ModeMenu},
		ExitFail:        {next: ModeTerminated},
	},
	ModeMenu: {
		ExitPlay: {next: ModePlay, reset: true},
		ExitQuit: {next: ModeTerminated},
	},
	ModePlay: {
		ExitPause:   {next: ModePause, background: true},
		ExitVictory: {next: ModeVictory, background: true},
		ExitFail:    {next: ModeDefeat},
		ExitQuit:    {next: ModeTerminated},
	},
	ModePause: {
		ExitResume:  {next: ModePlay},
		ExitRestart: {next: ModePlay, reset: true},
		ExitQuit:    {next: ModeTerminated},
	},
	ModeVictory: {
		ExitRestart: {next: ModePlay, reset: true},
		ExitQuit:    {next: ModeTerminated},
	},
	ModeDefeat: {
		ExitRestart: {next: ModePlay, reset: true},
		ExitQuit:    {next: ModeTerminated},
	},
}

// Machine is the mode state machine. Screens never reference each other;
// every hand-off goes through the transition table.
type Machine struct {
	logger *zap.Logger
	canvas canvas.Canvas

	mode    Mode
	loading *Loading
	play    *Play
	panels  map[Mode]*Panel

	pending  Exit
	reason   error
	disposed bool
}

// NewMachine starts in Loading. c receives the zoom reset whenever play is
// left; it may be nil.
func NewMachine(logger *zap.Logger, loading *Loading, play *Play, c canvas.Canvas) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		logger:  logger,
		canvas:  c,
		mode:    ModeLoading,
		loading: loading,
		play:    play,
		panels: map[Mode]*Panel{
			ModeMenu:    NewPanel("Gustfall", ExitPlay, ExitQuit),
			ModePause:   NewPanel("Paused", ExitResume, ExitRestart, ExitQuit),
			ModeVictory: NewPanel("You made it down!", ExitRestart, ExitQuit),
			ModeDefeat:  NewPanel("You fell", ExitRestart, ExitQuit),
		},
	}
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// Reason is the error that last sent the machine back to the menu or
// stopped it, if any.
func (m *Machine) Reason() error {
	return m.reason
}

func (m *Machine) Play() *Play {
	return m.play
}

func (m *Machine) Panel(mode Mode) *Panel {
	return m.panels[mode]
}

func (m *Machine) Loading() *Loading {
	return m.loading
}

// Background is the frozen play session behind the current overlay.
func (m *Machine) Background() *Play {
	if p := m.panels[m.mode]; p != nil {
		return p.Background()
	}
	return nil
}

func (m *Machine) Terminated() bool {
	return m.mode == ModeTerminated
}

// Choose queues a UI command for the current screen, applied on the next
// Update. It reports whether the current mode accepts exit.
func (m *Machine) Choose(exit Exit) bool {
	if _, ok := transitions[m.mode][exit]; !ok {
		return false
	}
	m.pending = exit
	return true
}

func (m *Machine) Update() {
	if m.Terminated() {
		return
	}
	exit := m.pending
	m.pending = ExitNone

	if exit == ExitNone {
		switch m.mode {
		case ModeLoading:
			exit = m.loading.Update()
			if exit == ExitFail {
				m.reason = m.loading.Err()
			}
		case ModePlay:
			exit = m.play.Update()
		}
	}
	if exit != ExitNone {
		m.apply(exit)
	}
}

func (m *Machine) apply(exit Exit) {
	t, ok := transitions[m.mode][exit]
	if !ok {
		return
	}
	from := m.mode

	if from == ModePause && exit == ExitResume && m.Background() == nil {
		return
	}
	if from == ModePlay && m.canvas != nil {
		m.canvas.SetDynamicCameraZoom(common.StandardZoom)
	}
	for _, p := range m.panels {
		p.SetBackground(nil)
	}

	if t.reset {
		if err := m.play.Reset(); err != nil {
			m.logger.Error("play start failed", zap.Stringer("from", from), zap.Error(err))
			m.reason = err
			m.mode = ModeMenu
			return
		}
		m.reason = nil
	}
	if t.background {
		m.panels[t.next].SetBackground(m.play)
	}
	m.mode = t.next
	m.logger.Info("mode changed", zap.Stringer("from", from), zap.Stringer("exit", exit), zap.Stringer("to", m.mode))

	if m.mode == ModeTerminated {
		m.Dispose()
	}
}

func (m *Machine) Draw(c canvas.Canvas) {
	switch m.mode {
	case ModeLoading:
		m.loading.Draw(c)
	case ModePlay:
		m.play.Draw(c)
	default:
		if p := m.panels[m.mode]; p != nil {
			p.Draw(c)
		}
	}
}

// Dispose releases the play session exactly once.
func (m *Machine) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.play != nil {
		m.play.Dispose()
	}
	m.logger.Debug("screens disposed")
}
