package task

import (
	"math"
	"time"
)

// Type is the kind of schedulable item a task represents.
type Type string

const (
	TypeTask      Type = "task"
	TypeMilestone Type = "milestone"
	TypeProject   Type = "project"
)

// IsValidType checks if a type string is valid.
func IsValidType(t Type) bool {
	switch t {
	case TypeTask, TypeMilestone, TypeProject:
		return true
	default:
		return false
	}
}

// StatusOption is one entry of a status palette.
type StatusOption struct {
	ID    string `yaml:"id"              json:"id"              mapstructure:"id"`
	Value string `yaml:"value"           json:"value"           mapstructure:"value"`
	Color string `yaml:"color,omitempty" json:"color,omitempty" mapstructure:"color"`
}

// Styles overrides the computed bar colors for a single task.
type Styles struct {
	BackgroundColor         string `yaml:"background_color,omitempty"          json:"backgroundColor,omitempty"`
	BackgroundSelectedColor string `yaml:"background_selected_color,omitempty" json:"backgroundSelectedColor,omitempty"`
	ProgressColor           string `yaml:"progress_color,omitempty"            json:"progressColor,omitempty"`
	ProgressSelectedColor   string `yaml:"progress_selected_color,omitempty"   json:"progressSelectedColor,omitempty"`
}

// StartConstraint is a whole-day start offset relative to another task.
//
// In StartAfter it means "start at least Days days after the other task ends";
// in StartBefore it means "start at least Days days before the other task starts".
type StartConstraint struct {
	ID   string `yaml:"id"   json:"id"`
	Days int    `yaml:"days" json:"days"`
}

// Task represents one schedulable item on the chart.
//
// Tasks are values: every edit produces a new Task and slices held by a Task
// are never modified after construction.
type Task struct {
	ID       string
	Type     Type
	Name     string
	Start    time.Time
	End      time.Time
	Progress float64 // 0..100

	// ProgressEnabled defaults to true when nil.
	ProgressEnabled *bool
	IsDisabled      bool

	Project      string
	Dependencies []string
	StartAfter   []StartConstraint
	StartBefore  []StartConstraint

	// HideChildren is only meaningful for projects. Nil means "no children".
	HideChildren *bool
	DisplayOrder *int

	StatusID string
	Statuses []StatusOption
	Styles   *Styles

	// Weight is the contribution to the owning project's progress roll-up.
	Weight *int

	Notes string
}

// ProgressOn reports whether progress editing and fill rendering are enabled.
func (t Task) ProgressOn() bool {
	return t.ProgressEnabled == nil || *t.ProgressEnabled
}

// Collapsed reports whether t is a project whose children are hidden.
func (t Task) Collapsed() bool {
	return t.Type == TypeProject && t.HideChildren != nil && *t.HideChildren
}

// WeightOr returns the explicit weight or def when none is set.
func (t Task) WeightOr(def int) int {
	if t.Weight == nil {
		return def
	}
	return *t.Weight
}

// Normalize enforces the per-type date invariants: a milestone ends where it
// starts, and no task ends before it starts.
func (t Task) Normalize() Task {
	if t.Type == TypeMilestone || t.End.Before(t.Start) {
		t.End = t.Start
	}
	return t
}

// Shift returns a copy of t moved by d, preserving its duration.
func (t Task) Shift(d time.Duration) Task {
	t.Start = t.Start.Add(d)
	t.End = t.End.Add(d)
	return t
}

// WithDates returns a copy of t with new bounds.
func (t Task) WithDates(start, end time.Time) Task {
	t.Start = start
	t.End = end
	return t.Normalize()
}

// WithProgress returns a copy of t with progress clamped to [0,100].
func (t Task) WithProgress(p float64) Task {
	t.Progress = ClampProgress(p)
	return t
}

// WithWeight returns a copy of t with the given explicit weight.
func (t Task) WithWeight(w int) Task {
	t.Weight = &w
	return t
}

// StatusOptions returns the effective palette: the task's own statuses win
// over the global list.
func (t Task) StatusOptions(global []StatusOption) []StatusOption {
	if t.Statuses != nil {
		return t.Statuses
	}
	return global
}

// Status resolves the task's current status option.
func (t Task) Status(global []StatusOption) (StatusOption, bool) {
	if t.StatusID == "" {
		return StatusOption{}, false
	}
	for _, opt := range t.StatusOptions(global) {
		if opt.ID == t.StatusID {
			return opt, true
		}
	}
	return StatusOption{}, false
}

// ClampProgress bounds p to [0,100]; NaN becomes 0.
func ClampProgress(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Bool returns a pointer to b, for the optional tri-state fields.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to i, for the optional numeric fields.
func Int(i int) *int {
	return &i
}
