// Package chart is the widget controller. It owns the compiled bars, the
// selection and the gesture in progress, and turns pointer events into
// changes offered to the host.
//
// The task list belongs to the host. A Chart only replaces its copy when a
// host callback accepts a change or the host calls SetTasks. A Chart is not
// safe for concurrent use.
package chart

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/deps"
	"github.com/abatilo/gantt/internal/drag"
	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/event"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/tasklist"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// Chart is the interactive controller over one task list.
type Chart struct {
	opts     Options
	handlers event.Handlers
	log      *logrus.Logger

	tasks   []task.Task
	pending []*Commit

	visible []task.Task
	scale   timeaxis.Scale
	bars    []bars.Bar

	selected string
	gesture  drag.Machine
}

// New builds a chart over tasks and compiles it.
func New(tasks []task.Task, handlers event.Handlers, opts Options) *Chart {
	opts = opts.withDefaults()
	c := &Chart{
		opts:     opts,
		handlers: handlers,
		log:      opts.Logger,
	}
	c.SetTasks(tasks)
	return c
}

// SetTasks replaces the host's task list and recompiles. Commits still
// pending stay shown on top of the new list.
func (c *Chart) SetTasks(tasks []task.Task) {
	c.tasks = slices.Clone(tasks)
	if err := c.Validate(); err != nil {
		c.log.WithError(err).Warn("Task list has a dependency cycle")
	}
	c.compile()
}

// view is the host list with every pending commit applied on top.
func (c *Chart) view() []task.Task {
	out := c.tasks
	for _, cm := range c.pending {
		out = cm.applyTo(out)
	}
	return out
}

func (c *Chart) compile() {
	c.visible = task.Visible(c.view())
	dates := timeaxis.ForTasks(c.visible, c.opts.ViewMode, c.opts.PreSteps, c.opts.Now())
	c.scale = timeaxis.New(c.opts.ViewMode, dates, c.opts.ColumnWidth, c.opts.RTL)
	c.bars = bars.Compile(c.visible, c.scale, c.opts.Style, c.opts.Statuses)
}

// Tasks returns the host's task list as last accepted.
func (c *Chart) Tasks() []task.Task {
	return slices.Clone(c.tasks)
}

// Visible returns the display-ordered tasks that have a row.
func (c *Chart) Visible() []task.Task {
	return slices.Clone(c.visible)
}

// Scale returns the current time axis.
func (c *Chart) Scale() timeaxis.Scale {
	return c.scale
}

// Options returns the effective options.
func (c *Chart) Options() Options {
	return c.opts
}

// Bars returns the compiled bars with the candidate of the gesture in
// progress in place of its bar.
func (c *Chart) Bars() []bars.Bar {
	out := slices.Clone(c.bars)
	if cand, _, ok := c.gesture.Active(); ok {
		for i := range out {
			if out[i].ID == cand.ID {
				out[i] = cand
			}
		}
	}
	return out
}

// Bar returns the current bar of id.
func (c *Chart) Bar(id string) (bars.Bar, bool) {
	return bars.Find(c.Bars(), id)
}

// Header returns the column labels of the time axis.
func (c *Chart) Header() []timeaxis.Column {
	return c.scale.Header(c.opts.Locale)
}

// Today returns the x of the column holding the current time.
func (c *Chart) Today() (float64, bool) {
	return c.scale.TodayColumn(c.opts.Now())
}

// ScrollX returns the horizontal offset that brings ViewDate into view:
// one column before the first tick at or after it. Zero when unset.
func (c *Chart) ScrollX() float64 {
	if c.opts.ViewDate.IsZero() {
		return 0
	}
	for i, d := range c.scale.Dates {
		if !d.Before(c.opts.ViewDate) {
			return float64(max(i-1, 0)) * c.scale.ColumnWidth
		}
	}
	return 0
}

// Height is the pixel height of the bar area.
func (c *Chart) Height() float64 {
	return float64(len(c.bars)) * c.opts.Style.RowHeight
}

// Link is one dependency arrow, drawn from a predecessor to a dependent.
type Link struct {
	From, To string
	// FromIndex and ToIndex are row indices.
	FromIndex, ToIndex int
}

// Links returns the dependency arrows in draw order.
func (c *Chart) Links() []Link {
	all := c.Bars()
	var links []Link
	for _, b := range all {
		for _, child := range b.Children(all) {
			links = append(links, Link{From: b.ID, To: child.ID, FromIndex: b.Index, ToIndex: child.Index})
		}
	}
	return links
}

// Validate reports the first dependency cycle in the host's list.
func (c *Chart) Validate() error {
	return deps.NewGraph(c.tasks).Validate()
}

// Violations lists the start-offset constraints the host's list breaks.
func (c *Chart) Violations() []propagate.ConstraintError {
	return propagate.CheckConstraints(c.tasks)
}

// Table returns the list view over the visible tasks.
func (c *Chart) Table() tasklist.Table {
	return tasklist.Table{
		Tasks:        c.Visible(),
		Statuses:     c.opts.Statuses,
		Handlers:     c.handlers,
		Locale:       c.opts.Locale,
		Location:     c.opts.Location,
		Selected:     c.selected,
		NameRenderer: c.opts.NameRenderer,
	}
}

// Tooltip renders the tooltip of task id.
func (c *Chart) Tooltip(id string) (string, bool) {
	t, idx := task.Find(c.view(), id)
	if idx < 0 {
		return "", false
	}
	return c.opts.TooltipContent(t, c.opts.Locale), true
}

func (c *Chart) find(id string) (task.Task, error) {
	t, idx := task.Find(c.view(), id)
	if idx < 0 {
		return task.Task{}, gantterrors.TaskNotFoundError{ID: id}
	}
	return t, nil
}

// children returns the tasks that list id as a dependency.
func children(tasks []task.Task, id string) []task.Task {
	g := deps.NewGraph(tasks)
	var out []task.Task
	for _, dep := range g.Dependents(id) {
		if t, ok := g.Get(dep); ok {
			out = append(out, t)
		}
	}
	return out
}

// Selected returns the selected task id, or "".
func (c *Chart) Selected() string {
	return c.selected
}

// Select makes id the selected task, notifying OnSelect for the task losing
// and the task gaining selection. An empty id clears the selection.
func (c *Chart) Select(id string) error {
	if id == c.selected {
		return nil
	}
	var next task.Task
	if id != "" {
		t, err := c.find(id)
		if err != nil {
			return err
		}
		next = t
	}

	if prev, idx := task.Find(c.view(), c.selected); idx >= 0 && c.handlers.OnSelect != nil {
		c.notify("select", func() { c.handlers.OnSelect(prev, false) })
	}
	c.selected = id
	if id != "" && c.handlers.OnSelect != nil {
		c.notify("select", func() { c.handlers.OnSelect(next, true) })
	}
	return nil
}

// Click reports a single click on task id.
func (c *Chart) Click(id string) error {
	t, err := c.find(id)
	if err != nil {
		return err
	}
	if c.handlers.OnClick != nil {
		c.notify("click", func() { c.handlers.OnClick(t) })
	}
	return nil
}

// DoubleClick reports a double click on task id.
func (c *Chart) DoubleClick(id string) error {
	t, err := c.find(id)
	if err != nil {
		return err
	}
	if c.handlers.OnDoubleClick != nil {
		c.notify("double click", func() { c.handlers.OnDoubleClick(t) })
	}
	return nil
}

// ToggleExpander reports a click on a project's expander with its collapsed
// state flipped. The chart itself does not change; the host answers with
// SetTasks. Tasks without children report false.
func (c *Chart) ToggleExpander(id string) (task.Task, bool, error) {
	t, err := c.find(id)
	if err != nil {
		return task.Task{}, false, err
	}
	toggled, ok := tasklist.Toggle(t)
	if !ok {
		return t, false, nil
	}
	if c.handlers.OnExpanderClick != nil {
		c.notify("expander", func() { c.handlers.OnExpanderClick(toggled) })
	}
	return toggled, true, nil
}

func (c *Chart) notify(name string, fn func()) {
	if err := event.Notify(fn); err != nil {
		c.log.WithError(err).WithField("callback", name).Warn("Recovered panic in host callback")
	}
}
