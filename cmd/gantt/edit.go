package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/chart"
	"github.com/abatilo/gantt/internal/drag"
	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/tasklist"
)

// visibleBar returns the bar of id or exits with the reason it has none.
func visibleBar(h *host, c *chart.Chart, id string) bars.Bar {
	b, ok := c.Bar(id)
	if !ok {
		requireTask(h, id)
		printError(NotVisibleError{ID: id})
	}
	return b
}

// grabPoint is where a pointer takes hold of a bar for an action.
func grabPoint(b bars.Bar, action drag.Action) float64 {
	switch action {
	case drag.End:
		return b.X2
	case drag.Progress:
		return b.ProgressX + b.ProgressWidth
	default:
		return b.X1
	}
}

// dragCmd implements 'gantt drag'.
func dragCmd() *cobra.Command {
	var actionName string
	var from, to, by float64
	var via []float64
	cmd := &cobra.Command{
		Use:   "drag <id>",
		Short: "Drag a bar: move it, resize an edge or set progress",
		Long: "Replays a pointer gesture on a bar. The pointer goes down at --from (the grabbed " +
			"edge by default), passes through every --via point and is released at --to, or " +
			"--by pixels from the start. The accepted change is propagated and saved.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := args[0]
			action, err := drag.ParseAction(actionName)
			if err != nil {
				printError(err)
			}
			flags := cmd.Flags()
			if flags.Changed("to") == flags.Changed("by") {
				printError(InvalidFlagError{Flag: "to", Value: fmt.Sprint(to), Reason: "give exactly one of --to or --by"})
			}

			h := openHost()
			c := h.chart()
			b := visibleBar(h, c, id)
			if b.IsDisabled {
				printError(drag.DisabledError{ID: id})
			}
			if !flags.Changed("from") {
				from = grabPoint(b, action)
			}
			if flags.Changed("by") {
				to = from + by
			}

			if err = c.PointerDown(id, action, from); err != nil {
				printError(err)
			}
			for _, x := range append(via, to) {
				if _, _, err = c.PointerMove(x); err != nil {
					c.Abandon()
					printError(err)
				}
			}
			cm, err := c.PointerUp(to)
			if err != nil {
				printError(err)
			}
			if cm == nil {
				printOutput(formatter.FormatMessage(fmt.Sprintf("Task %s unchanged", id)))
				return
			}
			h.resolve(cmd.Context(), c, cm)
			printOutput(formatter.FormatTaskList(h.rows(affected(h.tasks, id, cm.Children))))
		},
	}
	cmd.Flags().StringVarP(&actionName, "action", "a", string(drag.Move), "Action (move, start, end, progress)")
	cmd.Flags().Float64Var(&from, "from", 0, "Pointer-down x in pixels (defaults to the grabbed edge)")
	cmd.Flags().Float64Var(&to, "to", 0, "Pointer-up x in pixels")
	cmd.Flags().Float64Var(&by, "by", 0, "Pointer travel in pixels")
	cmd.Flags().Float64SliceVar(&via, "via", nil, "Intermediate pointer positions")
	return cmd
}

// affected lists the edited task, its project and the given children in
// their current state.
func affected(tasks []task.Task, id string, children []task.Task) []task.Task {
	ids := []string{id}
	if t, idx := task.Find(tasks, id); idx >= 0 && t.Project != "" {
		ids = append(ids, t.Project)
	}
	for _, ch := range children {
		ids = append(ids, ch.ID)
	}

	var out []task.Task
	seen := map[string]bool{}
	for _, want := range ids {
		if t, idx := task.Find(tasks, want); idx >= 0 && !seen[want] {
			seen[want] = true
			out = append(out, t)
		}
	}
	return out
}

// progressCmd implements 'gantt progress'.
func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set a task's progress",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(cmd *cobra.Command, args []string) {
			h := openHost()
			ack, err := h.table().EditProgress(args[0], args[1])
			if err != nil {
				printError(err)
			}
			wait(cmd.Context(), args[0], ack)
			printOutput(formatter.FormatTaskList(h.rows(affected(h.tasks, args[0], nil))))
		},
	}
}

// weightCmd implements 'gantt weight'.
func weightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weight <id> <weight>",
		Short: "Set a task's weight and rebalance its siblings",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(cmd *cobra.Command, args []string) {
			h := openHost()
			updated, ack, err := h.table().EditWeight(args[0], args[1])
			if err != nil {
				printError(err)
			}
			wait(cmd.Context(), args[0], ack)
			printOutput(formatter.FormatTaskList(h.rows(affected(h.tasks, args[0], updated))))
		},
	}
}

// statusCmd implements 'gantt status'.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status-id>",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(cmd *cobra.Command, args []string) {
			h := openHost()
			ack, err := h.table().EditStatus(args[0], args[1])
			if err != nil {
				printError(err)
			}
			wait(cmd.Context(), args[0], ack)
			printOutput(formatter.FormatTask(h.row(args[0])))
		},
	}
}

// dateCmd implements 'gantt date'.
func dateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "date <id> <start|end> <YYYY-MM-DD>",
		Short: "Set a task's start or end date",
		Args:  cobra.ExactArgs(3), //nolint:mnd // CLI takes 3 positional args
		Run: func(cmd *cobra.Command, args []string) {
			h := openHost()
			field := tasklist.Field(args[1])
			if field != tasklist.StartField && field != tasklist.EndField {
				printError(InvalidFlagError{Flag: "field", Value: args[1], Reason: "expected start or end"})
			}
			tb := h.table()
			ack, err := tb.EditDate(args[0], field, args[2])
			if err != nil {
				printError(err)
			}
			wait(cmd.Context(), args[0], ack)
			printOutput(formatter.FormatTaskList(h.rows(affected(h.tasks, args[0], tb.Children(args[0])))))
		},
	}
}

// expandCmd implements 'gantt expand'.
func expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <id>",
		Short: "Collapse or expand a project",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			h := openHost()
			t, ok, err := h.chart().ToggleExpander(args[0])
			if err != nil {
				printError(err)
			}
			if !ok {
				printError(gantterrors.DeclinedError{ID: args[0], Reason: "only projects with children can be collapsed"})
			}
			h.tasks = task.Replace(h.tasks, t)
			printOutput(formatter.FormatTask(h.row(t.ID)))
		},
	}
}
