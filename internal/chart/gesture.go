package chart

import (
	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/drag"
	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/task"
)

func disabled(id string) error {
	return drag.DisabledError{ID: id}
}

func (c *Chart) params() drag.Params {
	return drag.Params{
		XStep:    c.scale.XStep(c.opts.TimeStep),
		TimeStep: c.opts.TimeStep,
		RTL:      c.opts.RTL,
	}
}

// kindOf maps a drag action onto the callback that commits it.
func kindOf(a drag.Action) Kind {
	if a == drag.Progress {
		return ProgressChange
	}
	return DateChange
}

// PointerDown starts a gesture on the bar of id with the pointer at x and
// selects the task. Moving and resizing need OnDateChange; editing progress
// needs OnProgressChange.
func (c *Chart) PointerDown(id string, action drag.Action, x float64) error {
	b, ok := bars.Find(c.bars, id)
	if !ok {
		return gantterrors.TaskNotFoundError{ID: id}
	}
	kind := kindOf(action)
	if (kind == ProgressChange && c.handlers.OnProgressChange == nil) ||
		(kind == DateChange && c.handlers.OnDateChange == nil) {
		return NoHandlerError{ID: id, Kind: kind}
	}
	if err := c.gesture.Begin(b, action, x, c.params()); err != nil {
		return err
	}
	c.log.WithField("task", id).WithField("action", action).Debug("Gesture started")
	return c.Select(id)
}

// PointerMove updates the candidate of the gesture in progress. The bool
// reports whether the candidate differs from the bar the gesture began on.
func (c *Chart) PointerMove(x float64) (bars.Bar, bool, error) {
	return c.gesture.Move(x)
}

// PointerUp ends the gesture at x. A gesture that changed nothing returns a
// nil Commit; otherwise the change is offered to the host.
func (c *Chart) PointerUp(x float64) (*Commit, error) {
	res, err := c.gesture.End(x)
	if err != nil {
		return nil, err
	}
	if !res.Changed {
		c.log.WithField("task", res.Original.ID).Debug("Gesture ended without change")
		return nil, nil //nolint:nilnil // an unchanged gesture has nothing to commit
	}

	view := c.view()
	t, idx := task.Find(view, res.Bar.ID)
	if idx < 0 {
		return nil, gantterrors.TaskNotFoundError{ID: res.Bar.ID}
	}
	kind := kindOf(res.Action)
	if kind == ProgressChange {
		t = t.WithProgress(res.Bar.Progress)
	} else {
		t = t.WithDates(res.Bar.Start, res.Bar.End)
	}
	return c.offer(kind, t, children(view, t.ID)), nil
}

// Abandon drops the gesture in progress without committing.
func (c *Chart) Abandon() {
	if b, _, ok := c.gesture.Active(); ok {
		c.log.WithField("task", b.ID).Debug("Gesture abandoned")
	}
	c.gesture.Cancel()
}

// Dragging reports whether a gesture is in progress.
func (c *Chart) Dragging() bool {
	return c.gesture.State() == drag.Dragging
}
