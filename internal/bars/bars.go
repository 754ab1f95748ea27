// Package bars compiles tasks into positioned bar geometry.
//
// A compile is a pure function of the task list, the time scale and the
// style. Bars are rebuilt from scratch on every call and never patched.
package bars

import (
	"fmt"

	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// TypeSmallTask marks a task bar widened so both drag handles stay grabbable.
const TypeSmallTask = "smalltask"

// milestoneRotation shrinks the diamond so its rotated diagonal fits the row.
const milestoneRotation = 1.414

// Bar is the pixel-space projection of one task.
type Bar struct {
	task.Task

	// TypeInternal is the task type, or TypeSmallTask for a widened task bar.
	TypeInternal string

	X1, X2 float64
	Y      float64
	Height float64
	Index  int

	ProgressX     float64
	ProgressWidth float64

	BarCornerRadius float64
	HandleWidth     float64

	Colors task.Styles

	// BarChildren holds the indices, within the compiled slice, of the bars
	// that list this bar's task as a dependency.
	BarChildren []int
}

func (b Bar) String() string {
	return fmt.Sprintf("%s[%s] x=%.2f..%.2f y=%.2f", b.ID, b.TypeInternal, b.X1, b.X2, b.Y)
}

// Compile converts tasks into bars, one per task in input order; a task's
// position is its row index. Dependencies naming unknown ids are skipped.
func Compile(tasks []task.Task, scale timeaxis.Scale, style Style, statuses []task.StatusOption) []Bar {
	out := make([]Bar, len(tasks))
	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		out[i] = Convert(t, i, scale, style, statuses)
		byID[t.ID] = i
	}

	for i, t := range tasks {
		for _, dep := range t.Dependencies {
			if j, ok := byID[dep]; ok {
				out[j].BarChildren = append(out[j].BarChildren, i)
			}
		}
	}
	return out
}

// Convert builds the bar of a single task placed on row index.
func Convert(t task.Task, index int, scale timeaxis.Scale, style Style, statuses []task.StatusOption) Bar {
	t = t.Normalize()
	if t.Type != task.TypeProject {
		t.HideChildren = nil
	}

	colors, statusApplied := ResolveColors(t, style, statuses)
	if statusApplied {
		t.Styles = nil
	}

	if t.Type == task.TypeMilestone {
		return milestone(t, index, scale, style, colors)
	}

	height := style.TaskHeight()
	var x1, x2 float64
	if scale.RTL {
		x1, x2 = scale.X(t.End), scale.X(t.Start)
	} else {
		x1, x2 = scale.X(t.Start), scale.X(t.End)
	}

	typ := string(t.Type)
	if t.Type == task.TypeTask && x2-x1 < 2*style.HandleWidth {
		typ = TypeSmallTask
		x2 = x1 + 2*style.HandleWidth
	}

	px, pw := ProgressGeometry(x1, x2, t.Progress, scale.RTL, t.ProgressOn())
	return Bar{
		Task:            t,
		TypeInternal:    typ,
		X1:              x1,
		X2:              x2,
		Y:               RowY(index, style.RowHeight, height),
		Height:          height,
		Index:           index,
		ProgressX:       px,
		ProgressWidth:   pw,
		BarCornerRadius: style.BarCornerRadius,
		HandleWidth:     style.HandleWidth,
		Colors:          colors,
	}
}

func milestone(t task.Task, index int, scale timeaxis.Scale, style Style, colors task.Styles) Bar {
	height := style.TaskHeight()
	x := scale.X(t.Start)
	t.End = t.Start
	t.Progress = 0
	colors.ProgressColor = ""
	colors.ProgressSelectedColor = ""

	return Bar{
		Task:            t,
		TypeInternal:    string(task.TypeMilestone),
		X1:              x - height/2,
		X2:              x + height/2,
		Y:               RowY(index, style.RowHeight, height),
		Height:          height / milestoneRotation,
		Index:           index,
		BarCornerRadius: style.BarCornerRadius,
		HandleWidth:     style.HandleWidth,
		Colors:          colors,
	}
}

// Children resolves b's dependents within the slice b was compiled into.
func (b Bar) Children(all []Bar) []Bar {
	out := make([]Bar, 0, len(b.BarChildren))
	for _, i := range b.BarChildren {
		if i >= 0 && i < len(all) {
			out = append(out, all[i])
		}
	}
	return out
}

// Find returns the bar for id.
func Find(all []Bar, id string) (Bar, bool) {
	for _, b := range all {
		if b.ID == id {
			return b, true
		}
	}
	return Bar{}, false
}
