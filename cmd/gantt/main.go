package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abatilo/gantt/internal/config"
	"github.com/abatilo/gantt/internal/deps"
	gantterrors "github.com/abatilo/gantt/internal/errors"
	ganttlog "github.com/abatilo/gantt/internal/log"
	"github.com/abatilo/gantt/internal/output"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/session"
	"github.com/abatilo/gantt/internal/storage"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput bool
	configPath string
	storeDir   string
	cfg        config.Config
	formatter  output.Formatter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gantt",
		Short: "A file-based Gantt chart",
		Long:  "gantt - A file-based Gantt chart with drag editing, dependency arrows and project roll-ups.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}

			loaded, err := config.Load(configPath)
			if err != nil {
				printError(err)
			}
			cfg = loaded
			if os.Getenv("LOG_LEVEL") == "" && !ganttlog.SetLevel(cfg.LogLevel) {
				ganttlog.GetLogger().WithField("log_level", cfg.LogLevel).Warn("Unknown log level")
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./gantt.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "dir", "", "Chart directory (overrides store_dir)")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		rmCmd(),
		depCmd(),
		undepCmd(),
		graphCmd(),
		checkCmd(),
		settleCmd(),
		ticksCmd(),
		barsCmd(),
		tooltipCmd(),
		dragCmd(),
		progressCmd(),
		weightCmd(),
		statusCmd(),
		dateCmd(),
		expandCmd(),
		selectCmd(),
		viewCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*storage.Store, error) {
	dir := cfg.StoreDir
	if storeDir != "" {
		dir = storeDir
	}
	return storage.NewStore(dir)
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// initCmd implements 'gantt init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the chart directory",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized chart at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// listCmd implements 'gantt list'.
func listCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks as table rows",
		Run: func(_ *cobra.Command, _ []string) {
			h := openHost()
			c := h.chart()
			tb := c.Table()
			if all {
				tb.Tasks = h.tasks
			}
			printOutput(formatter.FormatTaskList(tb.Rows()))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include children of collapsed projects")
	return cmd
}

// showCmd implements 'gantt show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			h := openHost()
			if _, err := h.store.Load(args[0]); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(h.row(args[0])))
		},
	}
}

// graphCmd implements 'gantt graph'.
func graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Display the project tree",
		Run: func(_ *cobra.Command, _ []string) {
			h := openHost()
			printOutput(formatter.FormatGraph(deps.NewGraph(h.tasks).BuildTree()))
		},
	}
}

// checkCmd implements 'gantt check'.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report dependency cycles and start constraint violations",
		Run: func(_ *cobra.Command, _ []string) {
			h := openHost()
			report := output.CheckReport{
				Cycle:      deps.NewGraph(h.tasks).DetectCycle(),
				Violations: propagate.CheckConstraints(h.tasks),
			}
			printOutput(formatter.FormatCheck(report))
			if !report.OK() {
				os.Exit(1)
			}
		},
	}
}

// settleCmd implements 'gantt settle'.
func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Recompute every project's dates and progress from its children",
		Run: func(_ *cobra.Command, _ []string) {
			h := openHost()
			_, changed := propagate.Settle(h.tasks)
			if err := h.store.SaveAll(changed); err != nil {
				printError(err)
			}
			if len(changed) == 0 {
				printOutput(formatter.FormatMessage("All projects are up to date"))
				return
			}
			printOutput(formatter.FormatTaskList(h.rows(changed)))
		},
	}
}

// rmCmd implements 'gantt rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			h := openHost()
			c := h.chart()
			cm, err := c.Delete(args[0])
			if err != nil {
				printError(err)
			}
			h.resolve(cmd.Context(), c, cm)
			if err = session.Forget(h.store.BasePath(), args[0]); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %s", args[0])))
		},
	}
}

// requireTask fails unless id names a stored task.
func requireTask(h *host, id string) {
	if !h.store.Exists(id) {
		printError(gantterrors.TaskNotFoundError{ID: id})
	}
}
