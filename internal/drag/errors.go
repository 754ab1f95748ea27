package drag

import "fmt"

// GestureActiveError indicates a gesture on another bar has not ended yet.
type GestureActiveError struct {
	Active    string
	Requested string
}

func (e GestureActiveError) Error() string {
	return fmt.Sprintf("gesture on %s still active; cannot start on %s", e.Active, e.Requested)
}

// NoGestureError indicates a pointer event arrived with no gesture in progress.
type NoGestureError struct{}

func (e NoGestureError) Error() string {
	return "no gesture in progress"
}

// UnknownActionError indicates an unrecognized drag action.
type UnknownActionError struct {
	Action string
}

func (e UnknownActionError) Error() string {
	return fmt.Sprintf("unknown drag action: %s (valid: move, start, end, progress)", e.Action)
}

// DisabledError indicates a gesture was requested on a frozen task.
type DisabledError struct {
	ID string
}

func (e DisabledError) Error() string {
	return fmt.Sprintf("task %s is disabled", e.ID)
}
