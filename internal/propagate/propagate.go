// Package propagate folds an accepted task edit back into the task list,
// carrying its effects onto the owning project.
//
// Every function returns new slices and new task values; inputs are never
// modified. Each rule writes only when the recomputed value differs from
// the stored one, so re-applying to a consistent list changes nothing.
package propagate

import (
	"math"
	"time"

	"github.com/abatilo/gantt/internal/task"
)

// Result is the outcome of propagating one edit.
type Result struct {
	// Tasks is the full updated list, in the original order.
	Tasks []task.Task
	// Children holds the project's children after a whole-project move
	// shifted them.
	Children []task.Task
	// Changed lists every task whose value differs from the previous list,
	// in list order.
	Changed []task.Task
}

// OwningProject returns the project an edit to t must be reflected in: its
// own project, or itself when t is a project. Empty when there is none.
func OwningProject(t task.Task) string {
	if t.Project != "" {
		return t.Project
	}
	if t.Type == task.TypeProject {
		return t.ID
	}
	return ""
}

// Apply replaces the task with edited.ID in prev by edited and then runs
// the cascade, bounds and roll-up rules in that order. An id that is not in
// prev leaves the list unchanged.
func Apply(prev []task.Task, edited task.Task) Result {
	old, idx := task.Find(prev, edited.ID)
	if idx < 0 {
		return Result{Tasks: prev}
	}
	edited = edited.Normalize()
	next := task.Replace(prev, edited)

	var children []task.Task
	if edited.Type == task.TypeProject {
		next, children = Cascade(next, edited.ID, edited.Start.Sub(old.Start))
	}

	if pid := OwningProject(edited); pid != "" {
		next = applyBounds(next, pid)
		next = applyRollup(next, pid)
	}

	return Result{Tasks: next, Children: children, Changed: Diff(prev, next)}
}

// Cascade shifts every child of projectID by delta, preserving each child's
// duration. A zero delta is a no-op.
func Cascade(tasks []task.Task, projectID string, delta time.Duration) ([]task.Task, []task.Task) {
	if delta == 0 {
		return tasks, nil
	}
	out := make([]task.Task, len(tasks))
	var moved []task.Task
	for i, t := range tasks {
		if t.Project == projectID && t.ID != projectID {
			t = t.Shift(delta)
			moved = append(moved, t)
		}
		out[i] = t
	}
	return out, moved
}

// Bounds returns the earliest start and latest end over the children of
// projectID. It reports false when the project has no children.
func Bounds(tasks []task.Task, projectID string) (time.Time, time.Time, bool) {
	children := task.ChildrenOf(tasks, projectID)
	if len(children) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end := children[0].Start, children[0].End
	for _, c := range children[1:] {
		if c.Start.Before(start) {
			start = c.Start
		}
		if c.End.After(end) {
			end = c.End
		}
	}
	return start, end, true
}

// Rollup returns the rounded weighted mean progress of the children of
// projectID, milestones and nested projects included. A child without an
// explicit weight counts round(100/n) where n is the number of children.
// It reports false when there are none.
func Rollup(tasks []task.Task, projectID string) (float64, bool) {
	group := task.ChildrenOf(tasks, projectID)
	if len(group) == 0 {
		return 0, false
	}

	def := int(math.Round(100 / float64(len(group))))
	var weighted, total, plain float64
	for _, c := range group {
		w := float64(max(c.WeightOr(def), 0))
		weighted += w * c.Progress
		total += w
		plain += c.Progress
	}
	if total == 0 {
		return math.Round(plain / float64(len(group))), true
	}
	return math.Round(weighted / total), true
}

func applyBounds(tasks []task.Task, projectID string) []task.Task {
	project, idx := task.Find(tasks, projectID)
	if idx < 0 {
		return tasks
	}
	start, end, ok := Bounds(tasks, projectID)
	if !ok || (project.Start.Equal(start) && project.End.Equal(end)) {
		return tasks
	}
	project.Start, project.End = start, end
	return task.Replace(tasks, project)
}

func applyRollup(tasks []task.Task, projectID string) []task.Task {
	project, idx := task.Find(tasks, projectID)
	if idx < 0 {
		return tasks
	}
	progress, ok := Rollup(tasks, projectID)
	if !ok || project.Progress == progress {
		return tasks
	}
	project.Progress = progress
	return task.Replace(tasks, project)
}

// Settle brings every project in the list into agreement with its
// children and returns the changed tasks alongside the new list.
func Settle(tasks []task.Task) ([]task.Task, []task.Task) {
	next := tasks
	for _, t := range tasks {
		if t.Type != task.TypeProject {
			continue
		}
		next = applyBounds(next, t.ID)
		next = applyRollup(next, t.ID)
	}
	return next, Diff(tasks, next)
}

// Diff returns the tasks of next that differ from their counterpart in prev
// by date, progress or weight, or that prev does not contain.
func Diff(prev, next []task.Task) []task.Task {
	byID := make(map[string]task.Task, len(prev))
	for _, t := range prev {
		byID[t.ID] = t
	}
	var changed []task.Task
	for _, t := range next {
		old, ok := byID[t.ID]
		if !ok || !same(old, t) {
			changed = append(changed, t)
		}
	}
	return changed
}

func same(a, b task.Task) bool {
	return a.Start.Equal(b.Start) &&
		a.End.Equal(b.End) &&
		a.Progress == b.Progress &&
		a.WeightOr(-1) == b.WeightOr(-1) &&
		a.StatusID == b.StatusID &&
		a.Collapsed() == b.Collapsed()
}
