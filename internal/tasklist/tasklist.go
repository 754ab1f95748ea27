// Package tasklist is the tabular view of a chart: one row per visible task
// with editable date, progress, weight and status cells.
//
// Cell edits never touch the task list. They build the edited task, hand it
// to the host through event.Handlers and return the host's acknowledgement.
package tasklist

import (
	"strconv"
	"time"

	"github.com/abatilo/gantt/internal/deps"
	"github.com/abatilo/gantt/internal/event"
	"github.com/abatilo/gantt/internal/locale"
	"github.com/abatilo/gantt/internal/task"
)

const (
	expandedSymbol  = "▼"
	collapsedSymbol = "▶"

	// InputDateLayout is the value format of date cells.
	InputDateLayout = "2006-01-02"
)

// Columns reports which optional columns the table shows.
type Columns struct {
	Status   bool
	Progress bool
}

// ColumnsFor shows the status column when any task carries a status id or
// its own palette, and the progress column when any task has progress
// enabled.
func ColumnsFor(tasks []task.Task) Columns {
	var c Columns
	for _, t := range tasks {
		if t.StatusID != "" || len(t.Statuses) > 0 {
			c.Status = true
		}
		if t.ProgressOn() {
			c.Progress = true
		}
	}
	return c
}

// Row is the display model of one table row.
type Row struct {
	Task     task.Task
	Name     string
	Expander string
	Selected bool

	StartLabel string
	EndLabel   string
	StartInput string
	EndInput   string

	Weight   string
	Progress string
	Status   string

	DateEditable     bool
	ProgressEditable bool
	WeightEditable   bool
	StatusEditable   bool
}

// Table binds a task list to the host callbacks.
type Table struct {
	Tasks    []task.Task
	Statuses []task.StatusOption
	Handlers event.Handlers

	// Locale drives the long date labels.
	Locale string
	// Location is where date cells are read and written. Nil means time.Local.
	Location *time.Location
	Selected string

	// NameRenderer replaces the plain task name in the first column.
	NameRenderer func(t task.Task) string
}

func (tb Table) location() *time.Location {
	if tb.Location == nil {
		return time.Local
	}
	return tb.Location
}

// Columns returns the optional columns for the table's tasks.
func (tb Table) Columns() Columns {
	return ColumnsFor(tb.Tasks)
}

// Rows builds the display rows in list order.
func (tb Table) Rows() []Row {
	rows := make([]Row, 0, len(tb.Tasks))
	for _, t := range tb.Tasks {
		rows = append(rows, tb.row(t))
	}
	return rows
}

func (tb Table) row(t task.Task) Row {
	editable := !t.IsDisabled && t.Type == task.TypeTask
	r := Row{
		Task:       t,
		Name:       t.Name,
		Expander:   Expander(t),
		Selected:   t.ID == tb.Selected,
		StartLabel: locale.LongDate(tb.Locale, t.Start.In(tb.location())),
		EndLabel:   locale.LongDate(tb.Locale, t.End.In(tb.location())),
		StartInput: t.Start.In(tb.location()).Format(InputDateLayout),
		EndInput:   t.End.In(tb.location()).Format(InputDateLayout),

		DateEditable:     editable && tb.Handlers.OnDateChange != nil,
		ProgressEditable: editable && t.ProgressOn() && tb.Handlers.OnProgressChange != nil,
		WeightEditable:   editable && tb.weightHandled(),
		StatusEditable:   editable && tb.Handlers.OnStatusChange != nil && len(t.StatusOptions(tb.Statuses)) > 0,
	}
	if tb.NameRenderer != nil {
		r.Name = tb.NameRenderer(t)
	}

	switch t.Type {
	case task.TypeTask:
		r.Weight = strconv.Itoa(t.WeightOr(0)) + "%"
		r.Progress = formatProgress(t.Progress)
	case task.TypeProject:
		r.Progress = formatProgress(t.Progress)
	}
	if opt, ok := t.Status(tb.Statuses); ok {
		r.Status = opt.Value
	}
	return r
}

func (tb Table) weightHandled() bool {
	return tb.Handlers.OnWeightChange != nil || tb.Handlers.OnWeightsChange != nil
}

// Expander returns ▼ for an expanded project, ▶ for a collapsed one and
// nothing for a task without children.
func Expander(t task.Task) string {
	switch {
	case t.Type != task.TypeProject || t.HideChildren == nil:
		return ""
	case *t.HideChildren:
		return collapsedSymbol
	default:
		return expandedSymbol
	}
}

func formatProgress(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// Children returns the tasks that depend on id, in list order.
func (tb Table) Children(id string) []task.Task {
	g := deps.NewGraph(tb.Tasks)
	var out []task.Task
	for _, dep := range g.Dependents(id) {
		if t, ok := g.Get(dep); ok {
			out = append(out, t)
		}
	}
	return out
}
