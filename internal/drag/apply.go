// Package drag turns pointer coordinates into candidate bar changes.
package drag

import (
	"math"
	"strings"
	"time"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/task"
)

// Action is the kind of edit a gesture performs, chosen by the handle the
// pointer engaged.
type Action string

const (
	Move     Action = "move"
	Start    Action = "start"
	End      Action = "end"
	Progress Action = "progress"
)

// ParseAction accepts the action names plus the "resize-start",
// "resize-end" and "progress-edit" aliases.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move":
		return Move, nil
	case "start", "resize-start":
		return Start, nil
	case "end", "resize-end":
		return End, nil
	case "progress", "progress-edit":
		return Progress, nil
	default:
		return "", UnknownActionError{Action: s}
	}
}

// Params carries the snapping grid of a gesture.
type Params struct {
	// XStep is the pixel width of one snap step.
	XStep float64
	// TimeStep is the duration one snap step represents.
	TimeStep time.Duration
	// GrabOffset is the pointer's distance from the bar's left edge when a
	// move began.
	GrabOffset float64
	RTL        bool
}

// Apply computes the candidate bar for pointer position x. The bool reports
// whether the candidate differs from b; when it does not, b is returned.
func Apply(x float64, action Action, b bars.Bar, p Params) (bars.Bar, bool) {
	if b.IsDisabled || p.XStep <= 0 || math.IsNaN(x) {
		return b, false
	}
	if b.Type == task.TypeMilestone {
		if action != Move {
			return b, false
		}
		return moveMilestone(x, b, p)
	}

	switch action {
	case Progress:
		return progress(x, b, p)
	case Start:
		return resizeStart(x, b, p)
	case End:
		return resizeEnd(x, b, p)
	case Move:
		return move(x, b, p)
	default:
		return b, false
	}
}

// snap counts the whole steps between from and x.
func snap(x, from, xStep float64) int {
	return int(math.Round((x - from) / xStep))
}

// dateShift moves date by steps time steps; a fractional count only occurs
// when an edge was pinned to its limit. Under RTL later dates sit to
// the left, so the sign flips. The result keeps date's wall-clock offset
// when the shift crosses a zone transition.
func dateShift(date time.Time, steps float64, p Params) time.Time {
	delta := time.Duration(math.Round(steps * float64(p.TimeStep)))
	if p.RTL {
		delta = -delta
	}
	out := date.Add(delta)
	_, refOff := date.Zone()
	_, newOff := out.Zone()
	return out.Add(time.Duration(refOff-newOff) * time.Second)
}

func refill(b bars.Bar, rtl bool) bars.Bar {
	b.ProgressX, b.ProgressWidth = bars.ProgressGeometry(b.X1, b.X2, b.Progress, rtl, b.ProgressOn())
	return b
}

func progress(x float64, b bars.Bar, p Params) (bars.Bar, bool) {
	if !b.ProgressOn() {
		return b, false
	}
	var value float64
	switch {
	case x >= b.X2:
		value = 100
	case x <= b.X1:
		value = 0
	case p.RTL:
		value = math.Round((b.X2 - x) * 100 / (b.X2 - b.X1))
	default:
		value = math.Round((x - b.X1) * 100 / (b.X2 - b.X1))
	}
	if p.RTL && (x >= b.X2 || x <= b.X1) {
		value = 100 - value
	}
	if value == b.Progress {
		return b, false
	}
	b.Progress = value
	return refill(b, p.RTL), true
}

func resizeStart(x float64, b bars.Bar, p Params) (bars.Bar, bool) {
	// a bar already narrower than both handles may grow but not shrink
	limit := max(b.X2-2*b.HandleWidth, b.X1)
	newX1 := b.X1 + float64(snap(x, b.X1, p.XStep))*p.XStep
	if x >= limit || newX1 > limit {
		newX1 = limit
	}
	if newX1 == b.X1 {
		return b, false
	}
	steps := (newX1 - b.X1) / p.XStep
	b.X1 = newX1
	if p.RTL {
		b.End = dateShift(b.End, steps, p)
	} else {
		b.Start = dateShift(b.Start, steps, p)
	}
	return refill(b, p.RTL), true
}

func resizeEnd(x float64, b bars.Bar, p Params) (bars.Bar, bool) {
	limit := min(b.X1+2*b.HandleWidth, b.X2)
	newX2 := b.X2 + float64(snap(x, b.X2, p.XStep))*p.XStep
	if x <= limit || newX2 < limit {
		newX2 = limit
	}
	if newX2 == b.X2 {
		return b, false
	}
	steps := (newX2 - b.X2) / p.XStep
	b.X2 = newX2
	if p.RTL {
		b.Start = dateShift(b.Start, steps, p)
	} else {
		b.End = dateShift(b.End, steps, p)
	}
	return refill(b, p.RTL), true
}

func move(x float64, b bars.Bar, p Params) (bars.Bar, bool) {
	steps := snap(x-p.GrabOffset, b.X1, p.XStep)
	if steps == 0 {
		return b, false
	}
	width := b.X2 - b.X1
	duration := b.End.Sub(b.Start)

	b.X1 += float64(steps) * p.XStep
	b.X2 = b.X1 + width
	if p.RTL {
		b.End = dateShift(b.End, float64(steps), p)
		b.Start = b.End.Add(-duration)
	} else {
		b.Start = dateShift(b.Start, float64(steps), p)
		b.End = b.Start.Add(duration)
	}
	return refill(b, p.RTL), true
}

func moveMilestone(x float64, b bars.Bar, p Params) (bars.Bar, bool) {
	steps := snap(x-p.GrabOffset, b.X1, p.XStep)
	if steps == 0 {
		return b, false
	}
	width := b.X2 - b.X1
	b.X1 += float64(steps) * p.XStep
	b.X2 = b.X1 + width
	b.Start = dateShift(b.Start, float64(steps), p)
	b.End = b.Start
	return b, true
}
