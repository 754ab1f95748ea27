package event

import (
	"fmt"

	"github.com/abatilo/gantt/internal/task"
)

// PanicError carries the value a host callback panicked with.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}

// Handlers is the set of host callbacks. A nil change handler disables the
// gestures and cell edits that would invoke it.
type Handlers struct {
	// OnDateChange receives the edited task and the tasks that depend on it.
	OnDateChange     func(t task.Task, children []task.Task) Ack
	OnProgressChange func(t task.Task, children []task.Task) Ack
	OnStatusChange   func(t task.Task, statusID string, children []task.Task) Ack
	OnWeightChange   func(t task.Task, children []task.Task) Ack
	// OnWeightsChange receives a whole sibling rebalance at once, target
	// first. When nil each task goes through OnWeightChange instead.
	OnWeightsChange func(tasks []task.Task) Ack
	OnDelete        func(t task.Task) Ack

	OnSelect        func(t task.Task, selected bool)
	OnClick         func(t task.Task)
	OnDoubleClick   func(t task.Task)
	OnExpanderClick func(t task.Task)
}

// Call invokes fn and converts a panic into a rejection. The returned error
// is non-nil only when fn panicked.
func Call(fn func() Ack) (ack Ack, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r}
			ack = Reject(err.Error())
		}
	}()
	return fn(), nil
}

// Notify invokes a fire-and-forget callback, recovering from a panic.
func Notify(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r}
		}
	}()
	fn()
	return nil
}

// DateChange invokes OnDateChange. ok is false when no handler is set.
func (h Handlers) DateChange(t task.Task, children []task.Task) (ack Ack, ok bool, err error) {
	if h.OnDateChange == nil {
		return Ack{}, false, nil
	}
	ack, err = Call(func() Ack { return h.OnDateChange(t, children) })
	return ack, true, err
}

// ProgressChange invokes OnProgressChange. ok is false when no handler is set.
func (h Handlers) ProgressChange(t task.Task, children []task.Task) (ack Ack, ok bool, err error) {
	if h.OnProgressChange == nil {
		return Ack{}, false, nil
	}
	ack, err = Call(func() Ack { return h.OnProgressChange(t, children) })
	return ack, true, err
}

// StatusChange invokes OnStatusChange. ok is false when no handler is set.
func (h Handlers) StatusChange(t task.Task, statusID string, children []task.Task) (ack Ack, ok bool, err error) {
	if h.OnStatusChange == nil {
		return Ack{}, false, nil
	}
	ack, err = Call(func() Ack { return h.OnStatusChange(t, statusID, children) })
	return ack, true, err
}

// WeightChange invokes OnWeightChange. ok is false when no handler is set.
func (h Handlers) WeightChange(t task.Task, children []task.Task) (ack Ack, ok bool, err error) {
	if h.OnWeightChange == nil {
		return Ack{}, false, nil
	}
	ack, err = Call(func() Ack { return h.OnWeightChange(t, children) })
	return ack, true, err
}

// WeightsChange invokes OnWeightsChange. ok is false when no handler is set.
func (h Handlers) WeightsChange(tasks []task.Task) (ack Ack, ok bool, err error) {
	if h.OnWeightsChange == nil {
		return Ack{}, false, nil
	}
	ack, err = Call(func() Ack { return h.OnWeightsChange(tasks) })
	return ack, true, err
}

// Delete invokes OnDelete. ok is false when no handler is set.
func (h Handlers) Delete(t task.Task) (ack Ack, ok bool, err error) {
	if h.OnDelete == nil {
		return Ack{}, false, nil
	}
	ack, err = Call(func() Ack { return h.OnDelete(t) })
	return ack, true, err
}
