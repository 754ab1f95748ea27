//nolint:testpackage // Tests require internal access for thorough testing
package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/deps"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/tasklist"
	"github.com/abatilo/gantt/internal/timeaxis"
)

func init() {
	color.NoColor = true
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func fixture() []task.Task {
	return []task.Task{
		{ID: "p", Type: task.TypeProject, Name: "Launch", Start: day(1), End: day(10), Progress: 25, HideChildren: task.Bool(false)},
		{ID: "a", Type: task.TypeTask, Name: "Build", Start: day(1), End: day(5), Progress: 50, Project: "p", StatusID: "IN_PROGRESS"},
		{ID: "b", Type: task.TypeTask, Name: "Ship", Start: day(5), End: day(10), Project: "p", Dependencies: []string{"a"}},
	}
}

var statuses = []task.StatusOption{{ID: "IN_PROGRESS", Value: "In progress"}}

func rows() []tasklist.Row {
	return tasklist.Table{Tasks: fixture(), Statuses: statuses, Locale: "en-GB", Location: time.UTC}.Rows()
}

func TestHumanTaskList(t *testing.T) {
	f := NewHumanFormatter()
	out := f.FormatTaskList(rows())

	assert.Contains(t, out, "▼ [P] [p] Launch  2024-03-01 → 2024-03-10 25%")
	assert.Contains(t, out, "[T] [a] Build  2024-03-01 → 2024-03-05 50% (In progress)")
	assert.Equal(t, "No tasks found.\n", f.FormatTaskList(nil))
}

func TestHumanTask(t *testing.T) {
	r := rows()[2]
	out := NewHumanFormatter().FormatTask(r)

	assert.Contains(t, out, "[T] [b] Ship\n")
	assert.Contains(t, out, "Depends:  a\n")
	assert.Contains(t, out, "Project:  p\n")
	assert.Contains(t, out, "(2024-03-05)")
}

func TestHumanGraph(t *testing.T) {
	nodes := deps.NewGraph(fixture()).BuildTree()
	out := NewHumanFormatter().FormatGraph(nodes)

	assert.Equal(t, "[P] [p] Launch\n ├── [T] [a] Build\n └── [T] [b] Ship\n", out)
}

func TestHumanCheck(t *testing.T) {
	f := NewHumanFormatter()
	assert.Contains(t, f.FormatCheck(CheckReport{}), "OK")

	out := f.FormatCheck(CheckReport{
		Cycle:      []string{"a", "b", "a"},
		Violations: []propagate.ConstraintError{{ID: "b", Other: "a", Kind: propagate.StartAfter, Days: 2}},
	})
	assert.Contains(t, out, "cycle: a → b → a")
	assert.Contains(t, out, "constraint: task b must start at least 2 day(s) after a ends")
}

func TestHumanHeader(t *testing.T) {
	cols := []timeaxis.Column{
		{X: 0, Top: "March 2024", Bottom: "01"},
		{X: 38, Top: "March 2024", Bottom: "02"},
	}
	out := NewHumanFormatter().FormatHeader(cols)
	assert.Equal(t, 1, strings.Count(out, "March 2024"))
	assert.Contains(t, out, "     38.00  02\n")
}

func TestJSONTaskList(t *testing.T) {
	out := NewJSONFormatter().FormatTaskList(rows())

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "project", decoded[0]["type"])
	assert.Equal(t, "In progress", decoded[1]["status_label"])
	assert.Equal(t, []any{"a"}, decoded[2]["dependencies"])
	assert.Equal(t, "2024-03-05T00:00:00Z", decoded[2]["start"])
}

func TestJSONBars(t *testing.T) {
	tasks := fixture()
	scale := timeaxis.New(timeaxis.Day, []time.Time{day(1), day(2), day(3)}, 10, false)
	compiled := bars.Compile(tasks, scale, bars.DefaultStyle(), statuses)

	var decoded []barJSON
	require.NoError(t, json.Unmarshal([]byte(NewJSONFormatter().FormatBars(compiled)), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, []string{"b"}, decoded[1].Children)
	assert.Equal(t, 2, decoded[2].Index)
}

func TestJSONCheckAndErrors(t *testing.T) {
	f := NewJSONFormatter()

	var c checkJSON
	require.NoError(t, json.Unmarshal([]byte(f.FormatCheck(CheckReport{Cycle: []string{"a", "a"}})), &c))
	assert.False(t, c.OK)
	assert.Equal(t, []string{"a", "a"}, c.Cycle)

	assert.JSONEq(t, `{"error":"boom"}`, f.FormatError(errors.New("boom")))
	assert.JSONEq(t, `{"message":"done"}`, f.FormatMessage("done"))
}
