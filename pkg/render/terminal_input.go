package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-flight/pkg/input"
)

// DefaultKeyHold is how long a key counts as held after its last event.
// Terminals report presses and auto-repeats but never releases.
const DefaultKeyHold = 120 * time.Millisecond

// TerminalDevice turns tcell key and mouse events into input.Device state.
// It is fed from the frame loop and not safe for concurrent use.
type TerminalDevice struct {
	state    *input.State
	hold     time.Duration
	lastSeen map[input.Button]time.Time

	keys  map[tcell.Key]input.Button
	runes map[rune]input.Button

	mouseX, mouseY int
	mouseSeen      bool
	buttons        tcell.ButtonMask
}

// NewTerminalDevice creates a device with the default key bindings.
func NewTerminalDevice(hold time.Duration) *TerminalDevice {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &TerminalDevice{
		state:    input.NewState(),
		hold:     hold,
		lastSeen: make(map[input.Button]time.Time),
		keys: map[tcell.Key]input.Button{
			tcell.KeyUp:     input.PitchDown,
			tcell.KeyDown:   input.PitchUp,
			tcell.KeyLeft:   input.RollLeft,
			tcell.KeyRight:  input.RollRight,
			tcell.KeyF1:     input.ToggleDebug,
			tcell.KeyEscape: input.Quit,
			tcell.KeyCtrlC:  input.Quit,
		},
		runes: map[rune]input.Button{
			'w': input.ThrustForward,
			's': input.ThrustBackward,
			'a': input.YawLeft,
			'd': input.YawRight,
			'q': input.StrafeLeft,
			'e': input.StrafeRight,
			'r': input.StrafeUp,
			'f': input.StrafeDown,
			' ': input.FirePrimary,
			'x': input.FireAlternate,
			'1': input.ToggleDebug,
		},
	}
}

// HandleEvent records ev at time now.
func (d *TerminalDevice) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b, ok := d.bindingFor(ev)
		if !ok {
			return
		}
		d.state.Press(b)
		d.lastSeen[b] = now
	case *tcell.EventMouse:
		x, y := ev.Position()
		if d.mouseSeen {
			d.state.MoveMouse(float64(x-d.mouseX), float64(y-d.mouseY))
		}
		d.mouseX, d.mouseY, d.mouseSeen = x, y, true

		pressed := ev.Buttons() &^ d.buttons
		if pressed&tcell.Button1 != 0 {
			d.state.Press(input.FirePrimary)
			d.lastSeen[input.FirePrimary] = now
		}
		if pressed&tcell.Button2 != 0 {
			d.state.Press(input.FireAlternate)
			d.lastSeen[input.FireAlternate] = now
		}
		d.buttons = ev.Buttons()
	}
}

func (d *TerminalDevice) bindingFor(ev *tcell.EventKey) (input.Button, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b, ok := d.runes[r]
		return b, ok
	}
	b, ok := d.keys[ev.Key()]
	return b, ok
}

// Expire releases keys not seen within the hold window before now.
func (d *TerminalDevice) Expire(now time.Time) {
	for b, seen := range d.lastSeen {
		if now.Sub(seen) >= d.hold {
			d.state.Release(b)
			delete(d.lastSeen, b)
		}
	}
}

// EndFrame clears per-frame edges and mouse movement.
func (d *TerminalDevice) EndFrame() { d.state.EndFrame() }

func (d *TerminalDevice) Down(b input.Button) bool        { return d.state.Down(b) }
func (d *TerminalDevice) JustPressed(b input.Button) bool { return d.state.JustPressed(b) }
func (d *TerminalDevice) MouseDelta() (float64, float64)  { return d.state.MouseDelta() }
