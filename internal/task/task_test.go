//nolint:testpackage // Tests require internal access for thorough testing
package task

import (
	"math"
	"strings"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestIsValidType(t *testing.T) {
	tests := []struct {
		typ   Type
		valid bool
	}{
		{TypeTask, true},
		{TypeMilestone, true},
		{TypeProject, true},
		{Type("smalltask"), false},
		{Type(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := IsValidType(tt.typ); got != tt.valid {
				t.Errorf("IsValidType(%q) = %v, want %v", tt.typ, got, tt.valid)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	m := Task{ID: "m", Type: TypeMilestone, Start: day(5), End: day(9)}.Normalize()
	if !m.End.Equal(m.Start) {
		t.Errorf("milestone End = %v, want %v", m.End, m.Start)
	}

	inverted := Task{ID: "t", Type: TypeTask, Start: day(5), End: day(2)}.Normalize()
	if inverted.End.Before(inverted.Start) {
		t.Errorf("task End %v before Start %v", inverted.End, inverted.Start)
	}

	ok := Task{ID: "t", Type: TypeTask, Start: day(2), End: day(5)}.Normalize()
	if !ok.End.Equal(day(5)) {
		t.Errorf("End = %v, want %v", ok.End, day(5))
	}
}

func TestShiftPreservesDuration(t *testing.T) {
	orig := Task{ID: "a", Start: day(1), End: day(4)}
	moved := orig.Shift(72 * time.Hour)
	if moved.End.Sub(moved.Start) != orig.End.Sub(orig.Start) {
		t.Errorf("duration = %v, want %v", moved.End.Sub(moved.Start), orig.End.Sub(orig.Start))
	}
	if !orig.Start.Equal(day(1)) {
		t.Error("Shift modified the receiver")
	}
}

func TestProgressOn(t *testing.T) {
	if !(Task{}).ProgressOn() {
		t.Error("nil ProgressEnabled should default to enabled")
	}
	if (Task{ProgressEnabled: Bool(false)}).ProgressOn() {
		t.Error("explicit false should disable progress")
	}
}

func TestClampProgress(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{250, 100},
		{nan, 0},
	}
	for _, tt := range tests {
		if got := ClampProgress(tt.in); got != tt.want {
			t.Errorf("ClampProgress(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatusResolution(t *testing.T) {
	global := []StatusOption{{ID: "OPEN", Value: "Open", Color: "#fff"}}
	own := []StatusOption{{ID: "DEV", Value: "In dev", Color: "#8d6e63"}}

	tests := []struct {
		name   string
		task   Task
		wantID string
		found  bool
	}{
		{"global palette", Task{StatusID: "OPEN"}, "OPEN", true},
		{"task palette wins", Task{StatusID: "DEV", Statuses: own}, "DEV", true},
		{"task palette hides global", Task{StatusID: "OPEN", Statuses: own}, "", false},
		{"no status", Task{}, "", false},
		{"unknown status", Task{StatusID: "NOPE"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.task.Status(global)
			if ok != tt.found || got.ID != tt.wantID {
				t.Errorf("Status() = (%q, %v), want (%q, %v)", got.ID, ok, tt.wantID, tt.found)
			}
		})
	}
}

func TestSortByDisplayOrder(t *testing.T) {
	tasks := []Task{
		{ID: "none"},
		{ID: "third", DisplayOrder: Int(3)},
		{ID: "first", DisplayOrder: Int(1)},
		{ID: "zero", DisplayOrder: Int(0)},
		{ID: "second", DisplayOrder: Int(2)},
	}
	sorted := SortByDisplayOrder(tasks)
	want := []string{"first", "second", "third", "none", "zero"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Position %d: got %s, want %s", i, sorted[i].ID, id)
		}
	}
	if tasks[0].ID != "none" {
		t.Error("SortByDisplayOrder reordered its input")
	}
}

func TestVisible(t *testing.T) {
	tasks := []Task{
		{ID: "p", Type: TypeProject, HideChildren: Bool(true), DisplayOrder: Int(1)},
		{ID: "a", Type: TypeTask, Project: "p", DisplayOrder: Int(2)},
		{ID: "q", Type: TypeProject, HideChildren: Bool(false), DisplayOrder: Int(3)},
		{ID: "b", Type: TypeTask, Project: "q", DisplayOrder: Int(4)},
		{ID: "c", Type: TypeTask, Project: "missing", DisplayOrder: Int(5)},
	}
	visible := Visible(tasks)
	var ids []string
	for _, v := range visible {
		ids = append(ids, v.ID)
	}
	if got := strings.Join(ids, ","); got != "p,q,b,c" {
		t.Errorf("Visible = %s, want p,q,b,c", got)
	}
}

func TestReplaceAndRemove(t *testing.T) {
	tasks := []Task{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	replaced := Replace(tasks, Task{ID: "b", Name: "B2"})
	if replaced[1].Name != "B2" || tasks[1].Name != "B" {
		t.Errorf("Replace: got %q, input %q", replaced[1].Name, tasks[1].Name)
	}
	removed := Remove(tasks, "a")
	if len(removed) != 1 || removed[0].ID != "b" {
		t.Errorf("Remove = %v", removed)
	}
	if _, idx := Find(tasks, "zz"); idx != -1 {
		t.Errorf("Find(zz) index = %d, want -1", idx)
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID("Discussion with team", func(_ string) bool { return false })
	if !strings.HasPrefix(id, "discussion-with-") {
		t.Errorf("ID %q missing name slug", id)
	}

	existingIDs := map[string]bool{}
	existsFn := func(id string) bool {
		return existingIDs[id]
	}

	id1 := GenerateID("Review", existsFn)
	existingIDs[id1] = true
	id2 := GenerateID("Review", existsFn)
	if id1 == id2 {
		t.Error("Expected different IDs for repeated names")
	}

	if got := slug("  Party Time!! "); got != "party-time" {
		t.Errorf("slug = %q, want %q", got, "party-time")
	}
}
