package main

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abatilo/gantt/internal/deps"
	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/storage"
	"github.com/abatilo/gantt/internal/task"
)

// addCmd implements 'gantt add'.
func addCmd() *cobra.Command {
	var (
		id, typeName, start, end, project, status, notes string
		dependencies, after, before                  []string
		progress                                     float64
		weight                                       int
		noProgress, disabled                         bool
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			h := openHost()

			typ := task.Type(typeName)
			if !task.IsValidType(typ) {
				printError(gantterrors.InvalidTypeError{Value: typeName})
			}
			startAt, err := storage.ParseTime(start)
			if err != nil {
				printError(err)
			}
			endAt := startAt
			if end != "" {
				if endAt, err = storage.ParseTime(end); err != nil {
					printError(err)
				}
			}

			t := task.Task{
				ID:           id,
				Type:         typ,
				Name:         args[0],
				Start:        startAt,
				End:          endAt,
				Progress:     task.ClampProgress(progress),
				IsDisabled:   disabled,
				Project:      project,
				Dependencies: dependencies,
				StatusID:     status,
				Notes:        notes,
			}
			if noProgress {
				t.ProgressEnabled = task.Bool(false)
			}
			if cmd.Flags().Changed("weight") {
				t.Weight = task.Int(propagate.ClampWeight(float64(weight)))
			}
			if t.StartAfter, err = parseConstraints("after", after); err != nil {
				printError(err)
			}
			if t.StartBefore, err = parseConstraints("before", before); err != nil {
				printError(err)
			}
			if typ == task.TypeProject {
				t.HideChildren = task.Bool(false)
			}

			for _, dep := range dependencies {
				requireTask(h, dep)
			}
			if status != "" {
				if _, ok := t.Status(cfg.Statuses); !ok {
					printError(gantterrors.UnknownStatusError{ID: args[0], Status: status})
				}
			}
			if project != "" {
				owner, idx := task.Find(h.tasks, project)
				if idx < 0 {
					printError(gantterrors.TaskNotFoundError{ID: project})
				}
				if owner.Type != task.TypeProject {
					printError(NotProjectError{ID: project})
				}
				if owner.HideChildren == nil {
					owner.HideChildren = task.Bool(false)
					if err = h.store.Save(owner); err != nil {
						printError(err)
					}
					h.tasks = task.Replace(h.tasks, owner)
				}
			}

			created, err := h.store.CreateTask(t)
			if err != nil {
				printError(err)
			}
			h.tasks = append(h.tasks, created)
			if project != "" {
				res := propagate.Apply(h.tasks, created)
				if err = h.store.SaveAll(res.Changed); err != nil {
					printError(err)
				}
				h.tasks = res.Tasks
			}
			printOutput(formatter.FormatTask(h.row(created.ID)))
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Explicit task id (generated from the name by default)")
	cmd.Flags().StringVarP(&typeName, "type", "t", string(task.TypeTask), "Type (task, milestone, project)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "End date (defaults to start)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Owning project id")
	cmd.Flags().StringSliceVarP(&dependencies, "deps", "d", nil, "Ids of tasks this one depends on")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress percentage")
	cmd.Flags().IntVarP(&weight, "weight", "w", 0, "Weight in the project's progress roll-up (1-100)")
	cmd.Flags().StringVar(&status, "status", "", "Status id")
	cmd.Flags().StringSliceVar(&after, "after", nil, "Start at least N days after a task ends (id:days)")
	cmd.Flags().StringSliceVar(&before, "before", nil, "Start at least N days before a task starts (id:days)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress tracking")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Lock the task against edits")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

// parseConstraints reads "id:days" pairs.
func parseConstraints(flag string, values []string) ([]task.StartConstraint, error) {
	var out []task.StartConstraint
	for _, v := range values {
		id, days, ok := strings.Cut(v, ":")
		if !ok || id == "" {
			return nil, InvalidFlagError{Flag: flag, Value: v, Reason: "expected id:days"}
		}
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return nil, InvalidFlagError{Flag: flag, Value: v, Reason: "days must be a non-negative integer"}
		}
		out = append(out, task.StartConstraint{ID: id, Days: n})
	}
	return out, nil
}

// depCmd implements 'gantt dep'.
func depCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dep <id> <depends-on-id>",
		Short: "Add a dependency",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			h := openHost()
			taskID := args[0]
			depID := args[1]

			graph := deps.NewGraph(h.tasks)
			if err := graph.ValidateAddDep(taskID, depID); err != nil {
				printError(err)
			}

			t, _ := graph.Get(taskID)
			if slices.Contains(t.Dependencies, depID) {
				printOutput(formatter.FormatMessage("Dependency already exists"))
				return
			}

			t.Dependencies = append(slices.Clone(t.Dependencies), depID)
			if err := h.store.Save(t); err != nil {
				printError(err)
			}
			h.tasks = task.Replace(h.tasks, t)
			printOutput(formatter.FormatTask(h.row(taskID)))
		},
	}
}

// undepCmd implements 'gantt undep'.
func undepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undep <id> <depends-on-id>",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			h := openHost()
			t, err := h.store.Load(args[0])
			if err != nil {
				printError(err)
			}

			depID := args[1]
			originalLen := len(t.Dependencies)
			t.Dependencies = slices.DeleteFunc(slices.Clone(t.Dependencies), func(d string) bool {
				return d == depID
			})
			if len(t.Dependencies) == originalLen {
				printOutput(formatter.FormatMessage("Dependency not found"))
				return
			}
			if err = h.store.Save(t); err != nil {
				printError(err)
			}
			h.tasks = task.Replace(h.tasks, t)
			printOutput(formatter.FormatTask(h.row(t.ID)))
		},
	}
}
