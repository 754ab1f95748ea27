package tasklist

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/event"
	ganttlog "github.com/abatilo/gantt/internal/log"
	"github.com/abatilo/gantt/internal/propagate"
	"github.com/abatilo/gantt/internal/task"
)

// Field names the date cell being edited.
type Field string

const (
	StartField Field = "start"
	EndField   Field = "end"
)

// NotEditableError indicates a cell edit on a row that does not offer it.
type NotEditableError struct {
	ID   string
	Cell string
}

func (e NotEditableError) Error() string {
	return fmt.Sprintf("%s of task %s is not editable", e.Cell, e.ID)
}

func (tb Table) lookup(id string) (task.Task, error) {
	t, idx := task.Find(tb.Tasks, id)
	if idx < 0 {
		return task.Task{}, gantterrors.TaskNotFoundError{ID: id}
	}
	return t, nil
}

// ParseInputDate reads a YYYY-MM-DD cell value as midnight in loc.
func ParseInputDate(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(InputDateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, gantterrors.InvalidDateError{Value: value}
	}
	return d, nil
}

// parseNumber reads a numeric cell; anything unparseable becomes NaN.
func parseNumber(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// EditDate sets the start or end of task id from a YYYY-MM-DD value and
// passes the result to OnDateChange. An end before the start collapses onto
// the start.
func (tb Table) EditDate(id string, field Field, value string) (event.Ack, error) {
	t, err := tb.lookup(id)
	if err != nil {
		return event.Ack{}, err
	}
	if !tb.row(t).DateEditable {
		return event.Ack{}, NotEditableError{ID: id, Cell: string(field) + " date"}
	}
	d, err := ParseInputDate(value, tb.location())
	if err != nil {
		return event.Ack{}, err
	}

	switch field {
	case StartField:
		t = t.WithDates(d, t.End)
	case EndField:
		t = t.WithDates(t.Start, d)
	default:
		return event.Ack{}, NotEditableError{ID: id, Cell: string(field)}
	}
	ack, _, _ := tb.Handlers.DateChange(t, tb.Children(id))
	return ack, nil
}

// EditProgress clamps value to [0,100] and passes the task to
// OnProgressChange. Unparseable input counts as 0.
func (tb Table) EditProgress(id, value string) (event.Ack, error) {
	t, err := tb.lookup(id)
	if err != nil {
		return event.Ack{}, err
	}
	if !tb.row(t).ProgressEditable {
		return event.Ack{}, NotEditableError{ID: id, Cell: "progress"}
	}
	ack, _, _ := tb.Handlers.ProgressChange(t.WithProgress(parseNumber(value)), tb.Children(id))
	return ack, nil
}

// EditWeight sets the weight of task id and rebalances its siblings so the
// group sums to 100. The whole rebalance goes to OnWeightsChange when set;
// otherwise each updated task goes through OnWeightChange. The updated
// tasks are returned target first.
func (tb Table) EditWeight(id, value string) ([]task.Task, event.Ack, error) {
	t, err := tb.lookup(id)
	if err != nil {
		return nil, event.Ack{}, err
	}
	if !tb.row(t).WeightEditable {
		return nil, event.Ack{}, NotEditableError{ID: id, Cell: "weight"}
	}

	raw := parseNumber(value)
	if math.IsNaN(raw) {
		raw = 1
	}
	updated := propagate.Redistribute(tb.Tasks, id, raw)

	if len(updated) > 1 {
		if ack, ok, _ := tb.Handlers.WeightsChange(updated); ok {
			return updated, ack, nil
		}
	}
	if tb.Handlers.OnWeightChange == nil {
		return updated, event.Reject("no weight handler"), nil
	}
	acks := make([]event.Ack, 0, len(updated))
	for _, u := range updated {
		ack, _, _ := tb.Handlers.WeightChange(u, tb.Children(u.ID))
		acks = append(acks, ack)
	}
	return updated, event.All(acks...), nil
}

// EditStatus sets the status of task id and passes it to OnStatusChange.
func (tb Table) EditStatus(id, statusID string) (event.Ack, error) {
	t, err := tb.lookup(id)
	if err != nil {
		return event.Ack{}, err
	}
	if !tb.row(t).StatusEditable {
		return event.Ack{}, NotEditableError{ID: id, Cell: "status"}
	}
	known := false
	for _, opt := range t.StatusOptions(tb.Statuses) {
		if opt.ID == statusID {
			known = true
			break
		}
	}
	if !known {
		return event.Ack{}, gantterrors.UnknownStatusError{ID: id, Status: statusID}
	}
	t.StatusID = statusID
	ack, _, _ := tb.Handlers.StatusChange(t, statusID, tb.Children(id))
	return ack, nil
}

// ToggleExpander reports a project's expander click with its collapsed
// state flipped. Tasks without children are ignored.
func (tb Table) ToggleExpander(id string) (task.Task, bool, error) {
	t, err := tb.lookup(id)
	if err != nil {
		return task.Task{}, false, err
	}
	toggled, ok := Toggle(t)
	if !ok {
		return t, false, nil
	}
	if tb.Handlers.OnExpanderClick != nil {
		if err := event.Notify(func() { tb.Handlers.OnExpanderClick(toggled) }); err != nil {
			ganttlog.GetLogger().WithError(err).WithField("callback", "expander").Warn("Recovered panic in host callback")
		}
	}
	return toggled, true, nil
}

// Toggle flips a project's collapsed state. It reports false for a task
// without children.
func Toggle(t task.Task) (task.Task, bool) {
	if t.Type != task.TypeProject || t.HideChildren == nil {
		return t, false
	}
	t.HideChildren = task.Bool(!*t.HideChildren)
	return t, true
}
