package output

import (
	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/deps"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/tasklist"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(row tasklist.Row) string
	FormatTaskList(rows []tasklist.Row) string
	FormatBars(all []bars.Bar) string
	FormatHeader(cols []timeaxis.Column) string
	FormatGraph(nodes []deps.Node) string
	FormatCheck(report CheckReport) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// CheckReport is the result of validating a task list.
type CheckReport struct {
	// Cycle is the id path of the first dependency cycle, empty when none.
	Cycle      []string
	Violations []propagate.ConstraintError
}

// OK reports whether nothing was found.
func (r CheckReport) OK() bool {
	return len(r.Cycle) == 0 && len(r.Violations) == 0
}
