package output

import (
	"encoding/json"
	"time"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/deps"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/tasklist"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID              string                 `json:"id"`
	Type            string                 `json:"type"`
	Name            string                 `json:"name"`
	Start           string                 `json:"start"`
	End             string                 `json:"end"`
	Progress        float64                `json:"progress"`
	ProgressEnabled bool                   `json:"progress_enabled"`
	Disabled        bool                   `json:"disabled,omitempty"`
	Project         string                 `json:"project,omitempty"`
	Dependencies    []string               `json:"dependencies,omitempty"`
	StartAfter      []task.StartConstraint `json:"start_after,omitempty"`
	StartBefore     []task.StartConstraint `json:"start_before,omitempty"`
	HideChildren    *bool                  `json:"hide_children,omitempty"`
	DisplayOrder    *int                   `json:"display_order,omitempty"`
	Status          string                 `json:"status,omitempty"`
	StatusLabel     string                 `json:"status_label,omitempty"`
	Weight          *int                   `json:"weight,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
}

func toTaskJSON(r tasklist.Row) taskJSON {
	t := r.Task
	return taskJSON{
		ID:              t.ID,
		Type:            string(t.Type),
		Name:            t.Name,
		Start:           t.Start.Format(time.RFC3339),
		End:             t.End.Format(time.RFC3339),
		Progress:        t.Progress,
		ProgressEnabled: t.ProgressOn(),
		Disabled:        t.IsDisabled,
		Project:         t.Project,
		Dependencies:    t.Dependencies,
		StartAfter:      t.StartAfter,
		StartBefore:     t.StartBefore,
		HideChildren:    t.HideChildren,
		DisplayOrder:    t.DisplayOrder,
		Status:          t.StatusID,
		StatusLabel:     r.Status,
		Weight:          t.Weight,
		Notes:           t.Notes,
	}
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(row tasklist.Row) string {
	return marshalJSON(toTaskJSON(row))
}

// FormatTaskList formats table rows as JSON.
func (f *JSONFormatter) FormatTaskList(rows []tasklist.Row) string {
	jsonTasks := make([]taskJSON, len(rows))
	for i, r := range rows {
		jsonTasks[i] = toTaskJSON(r)
	}
	return marshalJSON(jsonTasks)
}

// barJSON is the JSON representation of compiled bar geometry.
type barJSON struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Index         int      `json:"index"`
	X1            float64  `json:"x1"`
	X2            float64  `json:"x2"`
	Y             float64  `json:"y"`
	Height        float64  `json:"height"`
	ProgressX     float64  `json:"progress_x"`
	ProgressWidth float64  `json:"progress_width"`
	Background    string   `json:"background"`
	Progress      string   `json:"progress_color,omitempty"`
	Children      []string `json:"children,omitempty"`
}

// FormatBars formats compiled bars as JSON.
func (f *JSONFormatter) FormatBars(all []bars.Bar) string {
	out := make([]barJSON, len(all))
	for i, b := range all {
		var children []string
		for _, c := range b.Children(all) {
			children = append(children, c.ID)
		}
		out[i] = barJSON{
			ID:            b.ID,
			Type:          b.TypeInternal,
			Index:         b.Index,
			X1:            b.X1,
			X2:            b.X2,
			Y:             b.Y,
			Height:        b.Height,
			ProgressX:     b.ProgressX,
			ProgressWidth: b.ProgressWidth,
			Background:    b.Colors.BackgroundColor,
			Progress:      b.Colors.ProgressColor,
			Children:      children,
		}
	}
	return marshalJSON(out)
}

// columnJSON is the JSON representation of a header cell.
type columnJSON struct {
	X      float64 `json:"x"`
	Date   string  `json:"date"`
	Top    string  `json:"top"`
	Bottom string  `json:"bottom"`
}

// FormatHeader formats the calendar header as JSON.
func (f *JSONFormatter) FormatHeader(cols []timeaxis.Column) string {
	out := make([]columnJSON, len(cols))
	for i, c := range cols {
		out[i] = columnJSON{X: c.X, Date: c.Date.Format(time.RFC3339), Top: c.Top, Bottom: c.Bottom}
	}
	return marshalJSON(out)
}

// violationJSON is the JSON representation of a constraint violation.
type violationJSON struct {
	ID      string `json:"id"`
	Other   string `json:"other"`
	Kind    string `json:"kind"`
	Days    int    `json:"days"`
	Message string `json:"message"`
}

type checkJSON struct {
	OK         bool            `json:"ok"`
	Cycle      []string        `json:"cycle,omitempty"`
	Violations []violationJSON `json:"violations,omitempty"`
}

// FormatCheck formats a validation report as JSON.
func (f *JSONFormatter) FormatCheck(report CheckReport) string {
	out := checkJSON{OK: report.OK(), Cycle: report.Cycle}
	for _, v := range report.Violations {
		out.Violations = append(out.Violations, violationJSON{
			ID:      v.ID,
			Other:   v.Other,
			Kind:    string(v.Kind),
			Days:    v.Days,
			Message: v.Error(),
		})
	}
	return marshalJSON(out)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}

// graphNodeJSON is the JSON representation of a graph node.
type graphNodeJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Children []graphNodeJSON `json:"children,omitempty"`
}

func toGraphNodeJSON(node deps.Node) graphNodeJSON {
	children := make([]graphNodeJSON, len(node.Children))
	for i, c := range node.Children {
		children[i] = toGraphNodeJSON(c)
	}
	return graphNodeJSON{
		ID:       node.Task.ID,
		Name:     node.Task.Name,
		Type:     string(node.Task.Type),
		Children: children,
	}
}

// FormatGraph formats the ownership tree as JSON.
func (f *JSONFormatter) FormatGraph(nodes []deps.Node) string {
	jsonNodes := make([]graphNodeJSON, len(nodes))
	for i, n := range nodes {
		jsonNodes[i] = toGraphNodeJSON(n)
	}
	return marshalJSON(jsonNodes)
}
