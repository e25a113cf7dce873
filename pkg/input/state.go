package input

// State is a Device backed by explicit per-frame button sets. Adapters that
// receive key events fill it; tests use it directly.
type State struct {
	held    map[Button]bool
	pressed map[Button]bool
	dx, dy  float64
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		held:    make(map[Button]bool),
		pressed: make(map[Button]bool),
	}
}

// Press marks b as held and pressed this frame. Repeated presses while
// already held do not retrigger.
func (s *State) Press(b Button) {
	if !s.held[b] {
		s.pressed[b] = true
	}
	s.held[b] = true
}

// Release marks b as up.
func (s *State) Release(b Button) {
	delete(s.held, b)
}

// MoveMouse accumulates pointer movement for this frame.
func (s *State) MoveMouse(dx, dy float64) {
	s.dx += dx
	s.dy += dy
}

// EndFrame clears per-frame edges and mouse movement.
func (s *State) EndFrame() {
	clear(s.pressed)
	s.dx, s.dy = 0, 0
}

func (s *State) Down(b Button) bool        { return s.held[b] }
func (s *State) JustPressed(b Button) bool { return s.pressed[b] }
func (s *State) MouseDelta() (float64, float64) {
	return s.dx, s.dy
}
