package drag

import (
	"github.com/abatilo/gantt/internal/bars"
)

// State is the gesture state of a Machine.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Result is the outcome of a finished gesture.
type Result struct {
	Action   Action
	Original bars.Bar
	Bar      bars.Bar
	Changed  bool
}

// Machine tracks one pointer gesture at a time. Every candidate is computed
// from the bar as it was when the gesture began.
//
// The zero value is an idle machine.
type Machine struct {
	state     State
	action    Action
	params    Params
	original  bars.Bar
	candidate bars.Bar
	changed   bool
}

// State returns the current gesture state.
func (m *Machine) State() State {
	return m.state
}

// Active returns the bar and action of the gesture in progress.
func (m *Machine) Active() (bars.Bar, Action, bool) {
	if m.state != Dragging {
		return bars.Bar{}, "", false
	}
	return m.candidate, m.action, true
}

// Begin starts a gesture on b with the pointer at x. A gesture already in
// progress on a different bar is kept and reported as GestureActiveError;
// one on the same bar is replaced.
func (m *Machine) Begin(b bars.Bar, action Action, x float64, p Params) error {
	if _, err := ParseAction(string(action)); err != nil {
		return err
	}
	if m.state == Dragging && m.original.ID != b.ID {
		return GestureActiveError{Active: m.original.ID, Requested: b.ID}
	}
	if b.IsDisabled {
		return DisabledError{ID: b.ID}
	}

	if action == Move {
		p.GrabOffset = x - b.X1
	}
	m.state = Dragging
	m.action = action
	m.params = p
	m.original = b
	m.candidate = b
	m.changed = false
	return nil
}

// Move recomputes the candidate for pointer position x and reports whether
// it differs from the bar the gesture started on.
func (m *Machine) Move(x float64) (bars.Bar, bool, error) {
	if m.state != Dragging {
		return bars.Bar{}, false, NoGestureError{}
	}
	m.candidate, m.changed = Apply(x, m.action, m.original, m.params)
	return m.candidate, m.changed, nil
}

// End applies the final pointer position and returns to Idle.
func (m *Machine) End(x float64) (Result, error) {
	if _, _, err := m.Move(x); err != nil {
		return Result{}, err
	}
	res := Result{Action: m.action, Original: m.original, Bar: m.candidate, Changed: m.changed}
	m.reset()
	return res, nil
}

// Cancel abandons the gesture without a result.
func (m *Machine) Cancel() {
	m.reset()
}

func (m *Machine) reset() {
	*m = Machine{}
}
