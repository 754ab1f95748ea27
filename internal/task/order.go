package task

import (
	"math"
	"slices"
)

// Find returns the task with the given ID and its index, or -1.
func Find(tasks []Task, id string) (Task, int) {
	for i, t := range tasks {
		if t.ID == id {
			return t, i
		}
	}
	return Task{}, -1
}

// Replace returns a new list with the task carrying t.ID swapped for t.
// The input list is left untouched.
func Replace(tasks []Task, t Task) []Task {
	out := make([]Task, len(tasks))
	for i, existing := range tasks {
		if existing.ID == t.ID {
			out[i] = t
		} else {
			out[i] = existing
		}
	}
	return out
}

// Remove returns a new list without the task with the given ID.
func Remove(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// ChildrenOf returns the tasks owned by the given project, in list order.
func ChildrenOf(tasks []Task, projectID string) []Task {
	var children []Task
	for _, t := range tasks {
		if t.Project == projectID && t.ID != projectID {
			children = append(children, t)
		}
	}
	return children
}

// orderKey treats a missing or zero display order as "last".
func orderKey(t Task) int {
	if t.DisplayOrder == nil || *t.DisplayOrder == 0 {
		return math.MaxInt
	}
	return *t.DisplayOrder
}

// SortByDisplayOrder returns a copy of tasks stably sorted by display order.
func SortByDisplayOrder(tasks []Task) []Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b Task) int {
		ka, kb := orderKey(a), orderKey(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Visible returns the tasks to draw: display-ordered, with every task owned
// (directly or through a chain of projects) by a collapsed project removed.
func Visible(tasks []Task) []Task {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	hidden := func(t Task) bool {
		seen := map[string]bool{t.ID: true}
		for owner := t.Project; owner != "" && !seen[owner]; {
			seen[owner] = true
			p, ok := byID[owner]
			if !ok {
				return false
			}
			if p.Collapsed() {
				return true
			}
			owner = p.Project
		}
		return false
	}

	var visible []Task
	for _, t := range SortByDisplayOrder(tasks) {
		if !hidden(t) {
			visible = append(visible, t)
		}
	}
	return visible
}
