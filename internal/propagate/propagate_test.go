//nolint:testpackage // Tests require internal access for thorough testing
package propagate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatilo/gantt/internal/task"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func project() []task.Task {
	return []task.Task{
		{ID: "P", Type: task.TypeProject, Start: day(1), End: day(21), Progress: 50, HideChildren: task.Bool(false)},
		{ID: "a", Type: task.TypeTask, Project: "P", Start: day(1), End: day(10), Progress: 40, Weight: task.Int(50)},
		{ID: "b", Type: task.TypeTask, Project: "P", Start: day(8), End: day(21), Progress: 60, Weight: task.Int(50)},
		{ID: "loose", Type: task.TypeTask, Start: day(2), End: day(3)},
	}
}

func get(t *testing.T, tasks []task.Task, id string) task.Task {
	t.Helper()
	found, idx := task.Find(tasks, id)
	require.GreaterOrEqual(t, idx, 0, "task %s missing", id)
	return found
}

func TestRollupWeightedMean(t *testing.T) {
	got, ok := Rollup(project(), "P")
	require.True(t, ok)
	assert.InDelta(t, 50.0, got, 0)
}

func TestRollupDefaultWeights(t *testing.T) {
	tasks := []task.Task{
		{ID: "P", Type: task.TypeProject},
		{ID: "a", Type: task.TypeTask, Project: "P", Progress: 0},
		{ID: "b", Type: task.TypeTask, Project: "P", Progress: 50},
		{ID: "c", Type: task.TypeTask, Project: "P", Progress: 100},
		{ID: "m", Type: task.TypeMilestone, Project: "P", Progress: 0},
	}
	got, ok := Rollup(tasks, "P")
	require.True(t, ok)
	assert.InDelta(t, 38.0, got, 0, "(0+50+100+0)/4 rounded")

	_, ok = Rollup(tasks, "nobody")
	assert.False(t, ok)
}

func TestRollupCountsMilestones(t *testing.T) {
	tasks := []task.Task{
		{ID: "P", Type: task.TypeProject},
		{ID: "a", Type: task.TypeTask, Project: "P", Progress: 40},
		{ID: "m", Type: task.TypeMilestone, Project: "P", Progress: 100},
	}
	got, ok := Rollup(tasks, "P")
	require.True(t, ok)
	assert.InDelta(t, 70.0, got, 0)

	only := []task.Task{tasks[0], tasks[2]}
	got, ok = Rollup(only, "P")
	require.True(t, ok)
	assert.InDelta(t, 100.0, got, 0)

	settled, changed := Settle(only)
	require.Len(t, changed, 1)
	assert.InDelta(t, 100.0, get(t, settled, "P").Progress, 0)
}

func TestRollupExplicitWeights(t *testing.T) {
	tasks := []task.Task{
		{ID: "P", Type: task.TypeProject},
		{ID: "a", Type: task.TypeTask, Project: "P", Progress: 100, Weight: task.Int(80)},
		{ID: "b", Type: task.TypeTask, Project: "P", Progress: 0, Weight: task.Int(20)},
	}
	got, _ := Rollup(tasks, "P")
	assert.InDelta(t, 80.0, got, 0)

	tasks[1].Weight, tasks[2].Weight = task.Int(0), task.Int(0)
	got, _ = Rollup(tasks, "P")
	assert.InDelta(t, 50.0, got, 0, "zero weights fall back to a plain mean")
}

func TestProgressEditRollsUp(t *testing.T) {
	prev := project()
	edited := get(t, prev, "a").WithProgress(100)

	res := Apply(prev, edited)
	assert.InDelta(t, 80.0, get(t, res.Tasks, "P").Progress, 0)
	assert.InDelta(t, 50.0, get(t, prev, "P").Progress, 0, "input untouched")

	ids := make([]string, 0, len(res.Changed))
	for _, c := range res.Changed {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"P", "a"}, ids)
}

func TestProjectMoveCascades(t *testing.T) {
	prev := project()
	moved := get(t, prev, "P").Shift(72 * time.Hour)

	shifted, children := Cascade(prev, "P", moved.Start.Sub(day(1)))
	require.Len(t, children, 2)
	assert.Equal(t, day(4), get(t, shifted, "a").Start)
	assert.Equal(t, day(13), get(t, shifted, "a").End)
	assert.Equal(t, day(24), get(t, shifted, "b").End)
	assert.Equal(t, day(21), get(t, shifted, "P").End, "cascade alone leaves the project")
	assert.Equal(t, day(2), get(t, shifted, "loose").Start)

	res := Apply(prev, moved)
	assert.Equal(t, day(4), get(t, res.Tasks, "P").Start)
	assert.Equal(t, day(24), get(t, res.Tasks, "P").End)
	assert.Len(t, res.Children, 2)
	for _, c := range res.Children {
		orig := get(t, prev, c.ID)
		assert.Equal(t, orig.End.Sub(orig.Start), c.End.Sub(c.Start))
	}
}

func TestProjectEndOnlyDoesNotCascade(t *testing.T) {
	prev := project()
	p := get(t, prev, "P")
	p.End = day(28)

	res := Apply(prev, p)
	assert.Empty(t, res.Children)
	assert.Equal(t, day(10), get(t, res.Tasks, "a").End)
	assert.Equal(t, day(21), get(t, res.Tasks, "P").End, "bounds pull the end back to the children")
}

func TestLeafMoveUpdatesBounds(t *testing.T) {
	prev := project()
	b := get(t, prev, "b").Shift(5 * 24 * time.Hour)

	res := Apply(prev, b)
	assert.Empty(t, res.Children)
	assert.Equal(t, day(1), get(t, res.Tasks, "P").Start)
	assert.Equal(t, day(26), get(t, res.Tasks, "P").End)
	assert.Equal(t, day(1), get(t, res.Tasks, "a").Start, "leaf moves never cascade")
}

func TestApplyIsIdempotent(t *testing.T) {
	prev := project()
	res := Apply(prev, get(t, prev, "a"))
	assert.Empty(t, res.Changed)
	assert.Equal(t, prev, res.Tasks)

	once := Apply(prev, get(t, prev, "b").Shift(48*time.Hour))
	twice := Apply(once.Tasks, get(t, once.Tasks, "b"))
	assert.Empty(t, twice.Changed)
}

func TestApplyUnknownAndMilestone(t *testing.T) {
	prev := project()
	res := Apply(prev, task.Task{ID: "ghost"})
	assert.Equal(t, prev, res.Tasks)

	tasks := append(project(), task.Task{ID: "m", Type: task.TypeMilestone, Project: "P", Start: day(25), End: day(25)})
	settled, _ := Settle(tasks)
	m := get(t, settled, "m")
	m.End = day(30)
	res = Apply(settled, m)
	got := get(t, res.Tasks, "m")
	assert.Equal(t, got.Start, got.End)
}

func TestSettle(t *testing.T) {
	tasks := project()
	tasks[0].Start, tasks[0].End, tasks[0].Progress = day(5), day(6), 0

	settled, changed := Settle(tasks)
	require.Len(t, changed, 1)
	p := get(t, settled, "P")
	assert.Equal(t, day(1), p.Start)
	assert.Equal(t, day(21), p.End)
	assert.InDelta(t, 50.0, p.Progress, 0)

	again, changed := Settle(settled)
	assert.Empty(t, changed)
	assert.Equal(t, settled, again)
}

func TestSettleLeavesChildlessProject(t *testing.T) {
	tasks := []task.Task{{ID: "P", Type: task.TypeProject, Start: day(3), End: day(4), Progress: 12}}
	settled, changed := Settle(tasks)
	assert.Empty(t, changed)
	assert.Equal(t, tasks, settled)
}

func TestClampWeight(t *testing.T) {
	assert.Equal(t, 1, ClampWeight(0))
	assert.Equal(t, 1, ClampWeight(-4))
	assert.Equal(t, 100, ClampWeight(250))
	assert.Equal(t, 34, ClampWeight(33.7))
	assert.Equal(t, 1, ClampWeight(math.NaN()))
}

func group(weights ...*int) []task.Task {
	tasks := []task.Task{{ID: "P", Type: task.TypeProject}}
	for i, w := range weights {
		tasks = append(tasks, task.Task{ID: string(rune('a' + i)), Type: task.TypeTask, Project: "P", Weight: w})
	}
	return tasks
}

func weightsOf(updated []task.Task) map[string]int {
	out := map[string]int{}
	for _, u := range updated {
		out[u.ID] = u.WeightOr(0)
	}
	return out
}

func sum(m map[string]int) int {
	total := 0
	for _, w := range m {
		total += w
	}
	return total
}

func TestRedistributeProportional(t *testing.T) {
	updated := Redistribute(group(task.Int(50), task.Int(30), task.Int(20)), "a", 60)
	require.Len(t, updated, 3)
	assert.Equal(t, "a", updated[0].ID)
	assert.Equal(t, map[string]int{"a": 60, "b": 23, "c": 17}, weightsOf(updated))
}

func TestRedistributeEvenSplit(t *testing.T) {
	updated := Redistribute(group(nil, nil, nil), "a", 51)
	assert.Equal(t, map[string]int{"a": 51, "b": 25, "c": 24}, weightsOf(updated))
}

func TestRedistributeFixedSiblings(t *testing.T) {
	tasks := group(task.Int(40), task.Int(50), task.Int(10))
	tasks[3].IsDisabled = true

	updated := Redistribute(tasks, "a", 95)
	w := weightsOf(updated)
	assert.Equal(t, 89, w["a"])
	assert.Equal(t, 1, w["b"])
	assert.NotContains(t, w, "c", "disabled siblings are never rewritten")
	assert.Equal(t, 90, sum(w))
}

func TestRedistributeFixedSiblingsExhaustPool(t *testing.T) {
	tasks := group(task.Int(30), task.Int(30), task.Int(99))
	tasks[3].IsDisabled = true

	w := weightsOf(Redistribute(tasks, "a", 50))
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, w)
	assert.Equal(t, 101, sum(w)+99, "editable weights never drop below 1")
}

func TestRedistributeNoEditableSiblings(t *testing.T) {
	tasks := group(task.Int(70), task.Int(30))
	tasks[2].IsDisabled = true

	updated := Redistribute(tasks, "a", 90)
	require.Len(t, updated, 1)
	assert.Equal(t, 70, updated[0].WeightOr(0))
}

func TestRedistributeStandalone(t *testing.T) {
	tasks := []task.Task{{ID: "x", Type: task.TypeTask}}
	assert.Equal(t, 100, Redistribute(tasks, "x", 400)[0].WeightOr(0))
	assert.Equal(t, 1, Redistribute(tasks, "x", -3)[0].WeightOr(0))
	assert.Nil(t, Redistribute(tasks, "nope", 10))
}

func TestRedistributeAlwaysSumsTo100(t *testing.T) {
	layouts := [][]*int{
		{task.Int(50), task.Int(30), task.Int(20)},
		{task.Int(1), task.Int(1), task.Int(98)},
		{nil, task.Int(10), nil, task.Int(7)},
		{task.Int(33), task.Int(33), task.Int(33), task.Int(1), task.Int(0)},
	}
	for _, layout := range layouts {
		for _, raw := range []float64{1, 7, 33.3, 50, 77, 99, 100} {
			w := weightsOf(Redistribute(group(layout...), "a", raw))
			assert.Equal(t, 100, sum(w), "layout=%v raw=%v weights=%v", layout, raw, w)
			for id, v := range w {
				assert.GreaterOrEqual(t, v, 1, "weight of %s", id)
			}
		}
	}
}

func TestApplyWeightsRollsUp(t *testing.T) {
	prev := project()
	updated := Redistribute(prev, "a", 80)
	res := ApplyWeights(prev, updated)

	assert.Equal(t, 80, get(t, res.Tasks, "a").WeightOr(0))
	assert.Equal(t, 20, get(t, res.Tasks, "b").WeightOr(0))
	assert.InDelta(t, 44.0, get(t, res.Tasks, "P").Progress, 0)
}

func TestCheckConstraints(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Type: task.TypeTask, Start: day(1), End: day(5)},
		{ID: "b", Type: task.TypeTask, Start: day(6), End: day(8), StartAfter: []task.StartConstraint{{ID: "a", Days: 2}}},
		{ID: "c", Type: task.TypeTask, Start: day(7), End: day(9), StartAfter: []task.StartConstraint{{ID: "a", Days: 2}}},
		{ID: "d", Type: task.TypeTask, Start: day(1), End: day(2), StartBefore: []task.StartConstraint{{ID: "c", Days: 3}}},
		{ID: "e", Type: task.TypeTask, Start: day(5), End: day(6), StartBefore: []task.StartConstraint{{ID: "c", Days: 3}, {ID: "ghost", Days: 1}}},
	}

	violations := CheckConstraints(tasks)
	require.Len(t, violations, 2)
	assert.Equal(t, ConstraintError{ID: "b", Other: "a", Kind: StartAfter, Days: 2}, violations[0])
	assert.Equal(t, "e", violations[1].ID)
	assert.Contains(t, violations[1].Error(), "before c starts")

	assert.Len(t, CheckTask(tasks, "a"), 1)
	assert.Empty(t, CheckTask(tasks, "d"))
}
