package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abatilo/gantt/internal/chart"
	"github.com/abatilo/gantt/internal/event"
	gantterrors "github.com/abatilo/gantt/internal/errors"
	ganttlog "github.com/abatilo/gantt/internal/log"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/session"
	"github.com/abatilo/gantt/internal/storage"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/tasklist"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// commitTimeout bounds how long a command waits on a pending commit.
const commitTimeout = 10 * time.Second

// host owns the task list on behalf of the chart. Its handlers run the
// propagation rules over every accepted change and write the affected tasks
// back to the store.
type host struct {
	store *storage.Store
	tasks []task.Task
	sess  session.Session
	log   *logrus.Logger
}

// openHost loads the store and the saved session, exiting on failure.
func openHost() *host {
	store, err := getStore()
	if err != nil {
		printError(err)
	}
	tasks, err := store.List()
	if err != nil {
		printError(err)
	}
	sess, err := session.Load(store.BasePath())
	if err != nil {
		printError(err)
	}
	return &host{store: store, tasks: tasks, sess: sess, log: ganttlog.GetLogger()}
}

// options builds chart options from the config, with the saved view
// applied on top.
func (h *host) options() chart.Options {
	opts, err := cfg.ChartOptions()
	if err != nil {
		printError(err)
	}
	if h.sess.ViewMode != "" {
		mode, err := timeaxis.ParseViewMode(h.sess.ViewMode)
		if err != nil {
			printError(err)
		}
		opts.ViewMode = mode
	}
	if h.sess.ViewDate != nil {
		opts.ViewDate = *h.sess.ViewDate
	}
	return opts
}

// chart builds a chart over the host's tasks with the saved selection.
func (h *host) chart() *chart.Chart {
	return h.chartWith(h.options())
}

func (h *host) chartWith(opts chart.Options) *chart.Chart {
	c := chart.New(h.tasks, h.handlers(), opts)
	if h.sess.Selected != "" {
		if _, idx := task.Find(h.tasks, h.sess.Selected); idx >= 0 {
			_ = c.Select(h.sess.Selected)
		}
	}
	return c
}

func (h *host) handlers() event.Handlers {
	return event.Handlers{
		OnDateChange: func(t task.Task, _ []task.Task) event.Ack {
			return h.apply(propagate.Apply(h.tasks, t))
		},
		OnProgressChange: func(t task.Task, _ []task.Task) event.Ack {
			return h.apply(propagate.Apply(h.tasks, t))
		},
		OnStatusChange: func(t task.Task, _ string, _ []task.Task) event.Ack {
			if err := h.store.Save(t); err != nil {
				return event.Reject(err.Error())
			}
			return h.apply(propagate.Apply(h.tasks, t))
		},
		OnWeightsChange: func(updated []task.Task) event.Ack {
			return h.apply(propagate.ApplyWeights(h.tasks, updated))
		},
		OnWeightChange: func(t task.Task, _ []task.Task) event.Ack {
			return h.apply(propagate.ApplyWeights(h.tasks, []task.Task{t}))
		},
		OnDelete: h.delete,
		OnSelect: func(t task.Task, selected bool) {
			if selected == (h.sess.Selected == t.ID) {
				return
			}
			if err := session.Select(h.store.BasePath(), t.ID, selected); err != nil {
				h.log.WithError(err).Warn("Failed to save selection")
				return
			}
			if selected {
				h.sess.Selected = t.ID
			} else {
				h.sess.Selected = ""
			}
		},
		OnExpanderClick: func(t task.Task) {
			if err := h.store.Save(t); err != nil {
				h.log.WithError(err).WithField("id", t.ID).Warn("Failed to save expander state")
			}
		},
	}
}

// apply persists the changed tasks of res and adopts its list.
func (h *host) apply(res propagate.Result) event.Ack {
	if err := h.store.SaveAll(res.Changed); err != nil {
		return event.Reject(err.Error())
	}
	h.tasks = res.Tasks
	h.log.WithField("changed", len(res.Changed)).Debug("Applied change")
	return event.Accept()
}

// delete removes t and every reference to it, then settles the projects
// that may have lost a child.
func (h *host) delete(t task.Task) event.Ack {
	if err := h.store.RemoveReferences(t.ID); err != nil {
		return event.Reject(err.Error())
	}
	if err := h.store.Delete(t.ID); err != nil {
		return event.Reject(err.Error())
	}
	tasks, err := h.store.List()
	if err != nil {
		return event.Reject(err.Error())
	}
	next, changed := propagate.Settle(tasks)
	if err = h.store.SaveAll(changed); err != nil {
		return event.Reject(err.Error())
	}
	h.tasks = next
	return event.Accept()
}

// resolve waits for cm and exits with the host's reason when it was
// declined.
func (h *host) resolve(ctx context.Context, c *chart.Chart, cm *chart.Commit) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, commitTimeout)
	defer cancel()

	outcome, err := c.Await(ctx, cm)
	switch {
	case outcome == event.Pending:
		printError(err)
	case outcome == event.Rejected:
		printError(gantterrors.DeclinedError{ID: cm.Task.ID, Reason: reason(err)})
	}
}

// wait resolves an acknowledgement returned by a table edit.
func wait(ctx context.Context, id string, ack event.Ack) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, commitTimeout)
	defer cancel()
	if err := ack.Wait(ctx); err != nil {
		printError(gantterrors.DeclinedError{ID: id, Reason: reason(err)})
	}
}

func reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// table is the list view over every task, hidden children included.
func (h *host) table() tasklist.Table {
	tb := h.chart().Table()
	tb.Tasks = h.tasks
	return tb
}

// rows renders tasks as table rows.
func (h *host) rows(tasks []task.Task) []tasklist.Row {
	tb := h.table()
	tb.Tasks = tasks
	return tb.Rows()
}

// row renders the current state of task id.
func (h *host) row(id string) tasklist.Row {
	t, idx := task.Find(h.tasks, id)
	if idx < 0 {
		printError(gantterrors.TaskNotFoundError{ID: id})
	}
	return h.rows([]task.Task{t})[0]
}
