package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/gantt/internal/chart"
	"github.com/abatilo/gantt/internal/session"
	"github.com/abatilo/gantt/internal/storage"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// withViewFlag applies a --view override to opts.
func withViewFlag(opts chart.Options, view string) chart.Options {
	if view == "" {
		return opts
	}
	mode, err := timeaxis.ParseViewMode(view)
	if err != nil {
		printError(err)
	}
	opts.ViewMode = mode
	opts.ColumnWidth = cfg.ColumnWidth
	return opts
}

// ticksCmd implements 'gantt ticks'.
func ticksCmd() *cobra.Command {
	var view, date string
	var before, after int
	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Print the calendar header",
		Long: "Print the calendar header columns. Without --date the range covers every task; " +
			"with --date it spans --before and --after steps around that date.",
		Run: func(_ *cobra.Command, _ []string) {
			h := openHost()
			opts := withViewFlag(h.options(), view)

			if date == "" {
				printOutput(formatter.FormatHeader(h.chartWith(opts).Header()))
				return
			}
			focus, err := storage.ParseTime(date)
			if err != nil {
				printError(err)
			}
			dates := timeaxis.Around(opts.ViewMode, focus, before, after)
			scale := timeaxis.New(opts.ViewMode, dates, opts.ColumnWidth, opts.RTL)
			printOutput(formatter.FormatHeader(scale.Header(opts.Locale)))
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "View mode (Hour, Quarter Day, Half Day, Day, Week, Month, QuarterYear, Year)")
	cmd.Flags().StringVar(&date, "date", "", "Focus date")
	cmd.Flags().IntVar(&before, "before", 2, "Steps before the focus date") //nolint:mnd // flag default
	cmd.Flags().IntVar(&after, "after", 10, "Steps after the focus date")   //nolint:mnd // flag default
	return cmd
}

// barsCmd implements 'gantt bars'.
func barsCmd() *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Compile the visible tasks and print their bar geometry",
		Run: func(_ *cobra.Command, _ []string) {
			h := openHost()
			c := h.chartWith(withViewFlag(h.options(), view))
			printOutput(formatter.FormatBars(c.Bars()))
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "View mode override")
	return cmd
}

// tooltipCmd implements 'gantt tooltip'.
func tooltipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tooltip <id>",
		Short: "Print a task's tooltip",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			h := openHost()
			text, ok := h.chart().Tooltip(args[0])
			if !ok {
				requireTask(h, args[0])
				printError(NotVisibleError{ID: args[0]})
			}
			printOutput(formatter.FormatMessage(text))
		},
	}
}

// selectCmd implements 'gantt select'.
func selectCmd() *cobra.Command {
	var deselect bool
	cmd := &cobra.Command{
		Use:   "select [id]",
		Short: "Select a task, or clear the selection",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			h := openHost()
			c := h.chart()
			if deselect || len(args) == 0 {
				if err := c.Select(""); err != nil {
					printError(err)
				}
				printOutput(formatter.FormatMessage("Selection cleared"))
				return
			}
			if err := c.Select(args[0]); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(h.row(c.Selected())))
		},
	}
	cmd.Flags().BoolVar(&deselect, "clear", false, "Clear the selection")
	return cmd
}

// viewCmd implements 'gantt view'.
func viewCmd() *cobra.Command {
	var mode, date string
	var reset bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show or save the view mode and focus date",
		Run: func(cmd *cobra.Command, _ []string) {
			h := openHost()
			base := h.store.BasePath()

			switch {
			case reset:
				if err := session.SetView(base, "", nil); err != nil {
					printError(err)
				}
				h.sess.ViewMode, h.sess.ViewDate = "", nil
			case cmd.Flags().Changed("mode") || cmd.Flags().Changed("date"):
				stored := h.sess.ViewMode
				if mode != "" {
					m, err := timeaxis.ParseViewMode(mode)
					if err != nil {
						printError(err)
					}
					stored = string(m)
				}
				focus := h.sess.ViewDate
				if date != "" {
					d, err := storage.ParseTime(date)
					if err != nil {
						printError(err)
					}
					focus = &d
				}
				if err := session.SetView(base, stored, focus); err != nil {
					printError(err)
				}
				h.sess.ViewMode, h.sess.ViewDate = stored, focus
			}

			opts := h.options()
			msg := fmt.Sprintf("View: %s", opts.ViewMode)
			if !opts.ViewDate.IsZero() {
				c := h.chartWith(opts)
				msg += fmt.Sprintf(" at %s (scroll %.0fpx)", opts.ViewDate.Format(time.DateOnly), c.ScrollX())
			}
			printOutput(formatter.FormatMessage(msg))
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "View mode to save")
	cmd.Flags().StringVar(&date, "date", "", "Focus date to save")
	cmd.Flags().BoolVar(&reset, "reset", false, "Forget the saved view")
	return cmd
}
