package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/deps"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/tasklist"
	"github.com/abatilo/gantt/internal/timeaxis"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(row tasklist.Row) string {
	t := row.Task
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s] %s\n", f.typeMark(t.Type), bold(t.ID), t.Name)
	fmt.Fprintf(&sb, "  Start:    %s (%s)\n", row.StartLabel, row.StartInput)
	fmt.Fprintf(&sb, "  End:      %s (%s)\n", row.EndLabel, row.EndInput)
	if row.Progress != "" {
		fmt.Fprintf(&sb, "  Progress: %s\n", row.Progress)
	}
	if row.Weight != "" {
		fmt.Fprintf(&sb, "  Weight:   %s\n", row.Weight)
	}
	if row.Status != "" {
		fmt.Fprintf(&sb, "  Status:   %s\n", row.Status)
	}
	if t.Project != "" {
		fmt.Fprintf(&sb, "  Project:  %s\n", t.Project)
	}
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(&sb, "  Depends:  %s\n", strings.Join(t.Dependencies, ", "))
	}
	for _, c := range t.StartAfter {
		fmt.Fprintf(&sb, "  After:    %s +%dd\n", c.ID, c.Days)
	}
	for _, c := range t.StartBefore {
		fmt.Fprintf(&sb, "  Before:   %s -%dd\n", c.ID, c.Days)
	}
	if t.IsDisabled {
		sb.WriteString("  " + dim("disabled") + "\n")
	}
	if t.Notes != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Notes)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats table rows for display.
func (f *HumanFormatter) FormatTaskList(rows []tasklist.Row) string {
	if len(rows) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(f.formatTaskLine(r))
	}
	return sb.String()
}

// formatTaskLine formats a single row as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(r tasklist.Row) string {
	expander := r.Expander
	if expander == "" {
		expander = " "
	}
	name := r.Name
	if r.Task.IsDisabled {
		name = dim(name)
	}
	extra := ""
	if r.Progress != "" {
		extra += " " + cyan(r.Progress)
	}
	if r.Status != "" {
		extra += " " + yellow("("+r.Status+")")
	}
	return fmt.Sprintf("%s %s [%s] %s  %s → %s%s\n",
		expander, f.typeMark(r.Task.Type), r.Task.ID, name, r.StartInput, r.EndInput, extra)
}

func (f *HumanFormatter) typeMark(t task.Type) string {
	switch t {
	case task.TypeProject:
		return "[P]"
	case task.TypeMilestone:
		return "[◆]"
	default:
		return "[T]"
	}
}

// FormatBars formats compiled bar geometry, one bar per line.
func (f *HumanFormatter) FormatBars(all []bars.Bar) string {
	if len(all) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, b := range all {
		fmt.Fprintf(&sb, "%2d %-10s %-24s x=%7.2f..%-7.2f y=%6.2f h=%5.2f progress=%.2f\n",
			b.Index, b.TypeInternal, b.ID, b.X1, b.X2, b.Y, b.Height, b.ProgressWidth)
	}
	return sb.String()
}

// FormatHeader formats the calendar header, printing a top label only when
// it changes.
func (f *HumanFormatter) FormatHeader(cols []timeaxis.Column) string {
	var sb strings.Builder
	top := ""
	for _, c := range cols {
		if c.Top != top {
			top = c.Top
			sb.WriteString(bold(top) + "\n")
		}
		fmt.Fprintf(&sb, "  %8.2f  %s\n", c.X, c.Bottom)
	}
	return sb.String()
}

// FormatCheck formats a validation report.
func (f *HumanFormatter) FormatCheck(report CheckReport) string {
	if report.OK() {
		return green("OK") + ": no cycles or constraint violations\n"
	}

	var sb strings.Builder
	if len(report.Cycle) > 0 {
		fmt.Fprintf(&sb, "%s: %s\n", red("cycle"), strings.Join(report.Cycle, " → "))
	}
	for _, v := range report.Violations {
		fmt.Fprintf(&sb, "%s: %s\n", red("constraint"), v.Error())
	}
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("%s %s\n", red("Error:"), err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

// FormatGraph formats the ownership tree as ASCII art.
func (f *HumanFormatter) FormatGraph(nodes []deps.Node) string {
	if len(nodes) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, node := range nodes {
		f.formatGraphNode(&sb, node, "", true)
	}
	return sb.String()
}

func (f *HumanFormatter) formatGraphNode(sb *strings.Builder, node deps.Node, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		connector = ""
	}

	fmt.Fprintf(sb, "%s%s%s [%s] %s\n", prefix, connector, f.typeMark(node.Task.Type), node.Task.ID, node.Task.Name)

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		childPrefix = " "
	}

	for i, child := range node.Children {
		f.formatGraphNode(sb, child, childPrefix, i == len(node.Children)-1)
	}
}
