package chart

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abatilo/gantt/internal/event"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/task"
)

// Kind is the kind of change a Commit offers the host.
type Kind string

const (
	DateChange     Kind = "date"
	ProgressChange Kind = "progress"
	Deletion       Kind = "delete"
)

// NoHandlerError indicates a change whose host callback is not set.
type NoHandlerError struct {
	ID   string
	Kind Kind
}

func (e NoHandlerError) Error() string {
	return fmt.Sprintf("no %s handler for task %s", e.Kind, e.ID)
}

// Commit is one change offered to the host and the host's answer.
type Commit struct {
	ID       string
	Kind     Kind
	Task     task.Task
	Children []task.Task

	// Outcome is Pending until the host's answer is known.
	Outcome event.Outcome
	// Err holds the reason a commit was rejected.
	Err error

	ack event.Ack
}

func (cm *Commit) applyTo(tasks []task.Task) []task.Task {
	if cm.Kind == Deletion {
		return task.Remove(tasks, cm.Task.ID)
	}
	if _, idx := task.Find(tasks, cm.Task.ID); idx < 0 {
		return tasks
	}
	return task.Replace(tasks, cm.Task)
}

func (cm *Commit) fields() logrus.Fields {
	return logrus.Fields{"commit": cm.ID, "kind": cm.Kind, "task": cm.Task.ID}
}

// Pending returns the commits still waiting for the host.
func (c *Chart) Pending() []*Commit {
	return slices.Clone(c.pending)
}

// offer hands cm to the matching host callback and records the answer.
func (c *Chart) offer(kind Kind, t task.Task, children []task.Task) *Commit {
	cm := &Commit{ID: uuid.NewString(), Kind: kind, Task: t, Children: children, Outcome: event.Pending}

	if kind == DateChange && c.opts.EnforceConstraints {
		next := propagate.Apply(c.view(), t).Tasks
		if violations := propagate.CheckTask(next, t.ID); len(violations) > 0 {
			c.decline(cm, violations[0])
			return cm
		}
	}

	var (
		ack event.Ack
		err error
	)
	switch kind {
	case DateChange:
		ack, _, err = c.handlers.DateChange(t, children)
	case ProgressChange:
		ack, _, err = c.handlers.ProgressChange(t, children)
	case Deletion:
		ack, _, err = c.handlers.Delete(t)
	}
	if err != nil {
		c.log.WithFields(cm.fields()).WithError(err).Warn("Recovered panic in host callback")
	}

	switch ack.Outcome() {
	case event.Accepted:
		c.accept(cm)
	case event.Rejected:
		c.decline(cm, ack.Wait(context.Background()))
	case event.Pending:
		cm.ack = ack
		c.pending = append(c.pending, cm)
		c.log.WithFields(cm.fields()).Debug("Commit pending")
		c.compile()
	}
	return cm
}

// Await blocks until the host answers cm or ctx ends. When ctx ends first
// the commit stays pending and ctx.Err() is returned.
func (c *Chart) Await(ctx context.Context, cm *Commit) (event.Outcome, error) {
	if cm.Outcome != event.Pending {
		return cm.Outcome, cm.Err
	}
	err := cm.ack.Wait(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return event.Pending, err
	}
	if err != nil {
		c.decline(cm, err)
		return cm.Outcome, cm.Err
	}
	c.accept(cm)
	return cm.Outcome, nil
}

// AwaitAll resolves every pending commit in the order they were offered.
func (c *Chart) AwaitAll(ctx context.Context) error {
	for _, cm := range c.Pending() {
		if _, err := c.Await(ctx, cm); err != nil && ctx.Err() != nil {
			return err
		}
	}
	return nil
}

func (c *Chart) accept(cm *Commit) {
	cm.Outcome = event.Accepted
	c.drop(cm)
	c.tasks = cm.applyTo(c.tasks)
	if cm.Kind == Deletion && c.selected == cm.Task.ID {
		c.selected = ""
	}
	c.log.WithFields(cm.fields()).Debug("Commit accepted")
	c.compile()
}

func (c *Chart) decline(cm *Commit, reason error) {
	cm.Outcome = event.Rejected
	cm.Err = reason
	c.drop(cm)
	c.log.WithFields(cm.fields()).WithError(reason).Warn("Commit declined")
	c.compile()
}

func (c *Chart) drop(cm *Commit) {
	c.pending = slices.DeleteFunc(c.pending, func(p *Commit) bool { return p == cm })
}

// Delete offers the removal of task id, or of the selected task when id is
// empty, to OnDelete.
func (c *Chart) Delete(id string) (*Commit, error) {
	if id == "" {
		id = c.selected
	}
	t, err := c.find(id)
	if err != nil {
		return nil, err
	}
	if c.handlers.OnDelete == nil {
		return nil, NoHandlerError{ID: id, Kind: Deletion}
	}
	if t.IsDisabled {
		return nil, disabled(id)
	}
	return c.offer(Deletion, t, nil), nil
}
