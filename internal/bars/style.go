package bars

import "github.com/abatilo/gantt/internal/task"

// Style holds the layout and palette inputs of a compile.
type Style struct {
	RowHeight       float64
	BarFill         float64 // bar height as a percentage of RowHeight
	BarCornerRadius float64
	HandleWidth     float64

	Task      task.Styles
	Project   task.Styles
	Milestone task.Styles
}

// DefaultStyle returns the stock layout and colors.
func DefaultStyle() Style {
	return Style{
		RowHeight:       50,
		BarFill:         60,
		BarCornerRadius: 3,
		HandleWidth:     8,
		Task: task.Styles{
			BackgroundColor:         "#b8c2cc",
			BackgroundSelectedColor: "#aeb8c2",
			ProgressColor:           "#a3a3ff",
			ProgressSelectedColor:   "#8282f5",
		},
		Project: task.Styles{
			BackgroundColor:         "#fac465",
			BackgroundSelectedColor: "#f7bb53",
			ProgressColor:           "#7db59a",
			ProgressSelectedColor:   "#59a985",
		},
		Milestone: task.Styles{
			BackgroundColor:         "#f1c453",
			BackgroundSelectedColor: "#f29e4c",
		},
	}
}

// TaskHeight is the drawn height of a regular bar.
func (s Style) TaskHeight() float64 {
	return s.RowHeight * s.BarFill / 100
}

func (s Style) palette(t task.Type) task.Styles {
	switch t {
	case task.TypeProject:
		return s.Project
	case task.TypeMilestone:
		return s.Milestone
	default:
		return s.Task
	}
}

// StatusColor returns the color of t's resolved status. A status without a
// color gets a hash-derived one. Only regular tasks are status-colored.
func StatusColor(t task.Task, statuses []task.StatusOption) (string, bool) {
	if t.Type != task.TypeTask {
		return "", false
	}
	opt, ok := t.Status(statuses)
	if !ok {
		return "", false
	}
	if opt.Color != "" {
		return opt.Color, true
	}
	return HashColor(opt.ID), true
}

// ResolveColors computes the effective bar colors of t. Precedence is status
// color, then the task's own style override, then the per-type defaults.
// The second result reports whether a status color applied.
func ResolveColors(t task.Task, style Style, statuses []task.StatusOption) (task.Styles, bool) {
	if color, ok := StatusColor(t, statuses); ok {
		return task.Styles{
			BackgroundColor:         color,
			BackgroundSelectedColor: color,
			ProgressColor:           Darken(color, 0.2),
			ProgressSelectedColor:   Darken(color, 0.35),
		}, true
	}

	colors := style.palette(t.Type)
	if o := t.Styles; o != nil {
		if o.BackgroundColor != "" {
			colors.BackgroundColor = o.BackgroundColor
		}
		if o.BackgroundSelectedColor != "" {
			colors.BackgroundSelectedColor = o.BackgroundSelectedColor
		}
		if o.ProgressColor != "" {
			colors.ProgressColor = o.ProgressColor
		}
		if o.ProgressSelectedColor != "" {
			colors.ProgressSelectedColor = o.ProgressSelectedColor
		}
	}
	return colors, false
}
