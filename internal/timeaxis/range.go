package timeaxis

import (
	"time"

	"github.com/abatilo/gantt/internal/task"
)

// DateRange returns the visible window for tasks in mode m: the tasks' full
// extent widened by preSteps columns before and a mode-specific margin after.
// It reports false when tasks is empty.
func DateRange(tasks []task.Task, m ViewMode, preSteps int) (time.Time, time.Time, bool) {
	if len(tasks) == 0 {
		return time.Time{}, time.Time{}, false
	}

	start, end := tasks[0].Start, tasks[0].Start
	for _, t := range tasks {
		if t.Start.Before(start) {
			start = t.Start
		}
		if t.End.After(end) {
			end = t.End
		}
	}

	switch m {
	case Year:
		start = align(start.AddDate(-1, 0, 0), Year)
		end = align(end.AddDate(1, 0, 0), Year)
	case QuarterYear:
		start = align(start.AddDate(0, -3, 0), QuarterYear)
		end = align(end.AddDate(0, 3, 0), QuarterYear)
	case Month:
		start = align(start.AddDate(0, -preSteps, 0), Month)
		end = align(end.AddDate(1, 0, 0), Year)
	case Week:
		start = monday(startOfDay(start)).AddDate(0, 0, -7*preSteps)
		end = startOfDay(end).AddDate(0, 1, 15)
	case Day:
		start = startOfDay(start).AddDate(0, 0, -preSteps)
		end = startOfDay(end).AddDate(0, 0, 19)
	case QuarterDay:
		start = startOfDay(start).AddDate(0, 0, -preSteps)
		end = addHours(startOfDay(end), 66)
	case HalfDay:
		start = startOfDay(start).AddDate(0, 0, -preSteps)
		end = addHours(startOfDay(end), 108)
	default:
		start = addHours(align(start, Hour), -preSteps)
		end = startOfDay(end).AddDate(0, 0, 1)
	}
	return start, end, true
}

// Seed generates the tick sequence from start, one column of mode m at a
// time, until a tick reaches or passes end. The result always holds at
// least two strictly increasing ticks.
func Seed(start, end time.Time, m ViewMode) []time.Time {
	dates := []time.Time{start}
	cur := start
	for cur.Before(end) || len(dates) < 2 {
		next := step(cur, m, 1)
		if !next.After(cur) {
			break
		}
		dates = append(dates, next)
		cur = next
	}
	return dates
}

// Around returns ticks centred on focus: the column containing focus,
// before columns earlier and after columns later.
func Around(m ViewMode, focus time.Time, before, after int) []time.Time {
	origin := align(focus, m)
	return Seed(step(origin, m, -max(before, 0)), step(origin, m, max(after, 0)), m)
}

// ForTasks seeds ticks covering tasks, falling back to a window around now
// when there are none.
func ForTasks(tasks []task.Task, m ViewMode, preSteps int, now time.Time) []time.Time {
	start, end, ok := DateRange(tasks, m, preSteps)
	if !ok {
		return Around(m, now, preSteps, preSteps)
	}
	return Seed(start, end, m)
}
