package propagate

import (
	"math"

	"github.com/abatilo/gantt/internal/task"
)

const (
	minWeight   = 1
	totalWeight = 100
)

// ClampWeight bounds a raw weight edit to [1,100]; NaN becomes 1.
func ClampWeight(raw float64) int {
	if math.IsNaN(raw) {
		return minWeight
	}
	return int(math.Round(max(minWeight, min(totalWeight, raw))))
}

// Redistribute sets the weight of task id to raw and rebalances its
// task-type siblings so the group sums to 100. Disabled siblings keep their
// weight. Every other sibling keeps at least 1; the rest of the pool is
// shared in proportion to each sibling's prior weight above that floor,
// with the rounding remainder going to the last sibling.
//
// The floor wins over the total: when disabled siblings already hold more
// than 100 minus one per editable task, the target and every editable
// sibling get 1 and the group sums to more than 100.
//
// The returned slice holds only the updated tasks, target first. It is
// empty when id is unknown.
func Redistribute(tasks []task.Task, id string, raw float64) []task.Task {
	target, idx := task.Find(tasks, id)
	if idx < 0 {
		return nil
	}
	want := ClampWeight(raw)

	if target.Project == "" {
		return []task.Task{target.WithWeight(want)}
	}

	var editable, fixed []task.Task
	inGroup := false
	for _, c := range task.ChildrenOf(tasks, target.Project) {
		if c.Type != task.TypeTask {
			continue
		}
		switch {
		case c.ID == id:
			inGroup = true
		case c.IsDisabled:
			fixed = append(fixed, c)
		default:
			editable = append(editable, c)
		}
	}

	fixedSum := 0
	for _, c := range fixed {
		fixedSum += c.WeightOr(0)
	}

	if len(editable) == 0 || !inGroup || target.IsDisabled {
		return []task.Task{target.WithWeight(clampInt(want, minWeight, totalWeight-fixedSum))}
	}

	m := len(editable)
	clamped := clampInt(want, minWeight, totalWeight-fixedSum-m*minWeight)
	available := max(0, totalWeight-fixedSum-clamped)
	extra := max(0, available-m*minWeight)

	updated := make([]task.Task, 0, m+1)
	updated = append(updated, target.WithWeight(clamped))

	above := make([]int, m)
	sumAbove := 0
	for i, c := range editable {
		above[i] = max(0, c.WeightOr(minWeight)-minWeight)
		sumAbove += above[i]
	}

	if sumAbove == 0 {
		share, carry := extra/m, extra%m
		for i, c := range editable {
			w := minWeight + share
			if i < carry {
				w++
			}
			updated = append(updated, c.WithWeight(w))
		}
		return updated
	}

	assigned := 0
	for i, c := range editable {
		var add int
		if i == m-1 {
			add = extra - assigned
		} else {
			add = above[i] * extra / sumAbove
			assigned += add
		}
		updated = append(updated, c.WithWeight(minWeight+add))
	}
	return updated
}

// clampInt bounds v to [lo,hi], preferring lo when the range is empty.
func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// ApplyWeights folds a batch of weight updates into tasks and rolls the
// affected projects' progress up again.
func ApplyWeights(tasks []task.Task, updated []task.Task) Result {
	next := tasks
	projects := map[string]bool{}
	for _, u := range updated {
		cur, idx := task.Find(next, u.ID)
		if idx < 0 {
			continue
		}
		cur.Weight = u.Weight
		next = task.Replace(next, cur)
		if pid := OwningProject(cur); pid != "" {
			projects[pid] = true
		}
	}
	for _, t := range next {
		if projects[t.ID] {
			next = applyRollup(next, t.ID)
		}
	}
	return Result{Tasks: next, Changed: Diff(tasks, next)}
}
