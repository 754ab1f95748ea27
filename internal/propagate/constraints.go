package propagate

import (
	"fmt"

	"github.com/abatilo/gantt/internal/task"
)

// ConstraintKind names which start-offset list a violation came from.
type ConstraintKind string

const (
	StartAfter  ConstraintKind = "start_after"
	StartBefore ConstraintKind = "start_before"
)

// ConstraintError describes one violated start-offset constraint.
type ConstraintError struct {
	ID    string
	Other string
	Kind  ConstraintKind
	Days  int
}

func (e ConstraintError) Error() string {
	if e.Kind == StartAfter {
		return fmt.Sprintf("task %s must start at least %d day(s) after %s ends", e.ID, e.Days, e.Other)
	}
	return fmt.Sprintf("task %s must start at least %d day(s) before %s starts", e.ID, e.Days, e.Other)
}

// CheckConstraints validates every task's StartAfter and StartBefore
// entries. Constraints naming unknown tasks are skipped.
func CheckConstraints(tasks []task.Task) []ConstraintError {
	byID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var violations []ConstraintError
	for _, t := range tasks {
		for _, c := range t.StartAfter {
			other, ok := byID[c.ID]
			if !ok {
				continue
			}
			if t.Start.Before(other.End.AddDate(0, 0, c.Days)) {
				violations = append(violations, ConstraintError{ID: t.ID, Other: c.ID, Kind: StartAfter, Days: c.Days})
			}
		}
		for _, c := range t.StartBefore {
			other, ok := byID[c.ID]
			if !ok {
				continue
			}
			if t.Start.After(other.Start.AddDate(0, 0, -c.Days)) {
				violations = append(violations, ConstraintError{ID: t.ID, Other: c.ID, Kind: StartBefore, Days: c.Days})
			}
		}
	}
	return violations
}

// CheckTask validates only the constraints that involve id, either as the
// constrained task or as the referenced one.
func CheckTask(tasks []task.Task, id string) []ConstraintError {
	var out []ConstraintError
	for _, v := range CheckConstraints(tasks) {
		if v.ID == id || v.Other == id {
			out = append(out, v)
		}
	}
	return out
}
